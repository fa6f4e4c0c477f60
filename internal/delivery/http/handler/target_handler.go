package handler

import (
	"errors"
	"strconv"
	"strings"

	"jobswipe/internal/delivery/http/dto"
	"jobswipe/internal/delivery/http/middleware"
	"jobswipe/internal/domain/target"
	"jobswipe/internal/domain/validation"
	"jobswipe/internal/pkg/response"
	uctarget "jobswipe/internal/usecase/target"

	"github.com/gofiber/fiber/v3"
)

type TargetHandler struct {
	uc uctarget.TargetUsecase
}

func NewTargetHandler(uc uctarget.TargetUsecase) *TargetHandler {
	return &TargetHandler{uc: uc}
}

func (h *TargetHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Get("/deck", h.Deck)
}

func (h *TargetHandler) List(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	f, err := parseFilter(c)
	if err != nil {
		return err
	}

	items, err := h.uc.List(c.Context(), userID, f)
	if err != nil {
		return mapTargetUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewTargetListResponse(items))
}

func (h *TargetHandler) Deck(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	f, err := parseFilter(c)
	if err != nil {
		return err
	}

	view, err := h.uc.Deck(c.Context(), userID, f)
	if err != nil {
		return mapTargetUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewDeckResponse(view))
}

// parseFilter reads city, skills (comma separated), salary_min, salary_max
// and has_video from the query string.
func parseFilter(c fiber.Ctx) (target.Filter, error) {
	errs := validation.Errors{}
	f := target.Filter{City: c.Query("city")}

	if raw := strings.TrimSpace(c.Query("skills")); raw != "" {
		f.Skills = strings.Split(raw, ",")
	}

	intParam := func(name string) int {
		raw := strings.TrimSpace(c.Query(name))
		if raw == "" {
			return 0
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			errs.Add(name, "must be an integer")
			return 0
		}
		return n
	}
	f.SalaryMin = intParam("salary_min")
	f.SalaryMax = intParam("salary_max")

	if raw := strings.TrimSpace(c.Query("has_video")); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			errs.Add("has_video", "must be a boolean")
		}
		f.HasVideo = b
	}

	if err := errs.Err(); err != nil {
		return target.Filter{}, err
	}
	return f, nil
}

func mapTargetUsecaseError(err error) error {
	if _, ok := validation.As(err); ok {
		return err
	}
	switch {
	case errors.Is(err, uctarget.ErrRoleRequired):
		return middleware.NewAppError(fiber.StatusForbidden, "Choose a role first", nil, err)
	case errors.Is(err, uctarget.ErrUnavailable):
		return middleware.NewAppError(fiber.StatusServiceUnavailable, "Targets are temporarily unavailable", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
