package routes

import (
	"jobswipe/internal/delivery/http/handler"
	v1 "jobswipe/internal/delivery/http/routes/v1"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health   *handler.HealthHandler
	handlers v1.Handlers
	auth     fiber.Handler
}

// NewRegistry takes the auth middleware that guards every /api/v1 route
// outside /auth.
func NewRegistry(health *handler.HealthHandler, handlers v1.Handlers, auth fiber.Handler) *Registry {
	return &Registry{health: health, handlers: handlers, auth: auth}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	if r.health == nil {
		return
	}
	r.health.RegisterRoutes(app)
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	v1.Register(api.Group("/v1"), r.handlers, r.auth)
}
