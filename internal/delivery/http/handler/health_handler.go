package handler

import (
	"context"
	"time"

	"jobswipe/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db      Pinger
	cache   Pinger
	timeout time.Duration
}

// NewHealthHandler reports the database as required and the cache as optional.
// A nil cache is reported as disabled.
func NewHealthHandler(db, cache Pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache, timeout: 2 * time.Second}
}

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Cache    string `json:"cache"`
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/health", h.Check)
}

func (h *HealthHandler) Check(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), h.timeout)
	defer cancel()

	res := healthResponse{Status: "ok", Database: "up", Cache: "up"}

	if h.db == nil || h.db.Ping(ctx) != nil {
		res.Status = "down"
		res.Database = "down"
	}
	switch {
	case h.cache == nil:
		res.Cache = "disabled"
	case h.cache.Ping(ctx) != nil:
		res.Cache = "down"
		if res.Status == "ok" {
			res.Status = "degraded"
		}
	}

	if res.Database == "down" {
		return response.Error(c, fiber.StatusServiceUnavailable, response.MessageServiceUnavailable, res)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}
