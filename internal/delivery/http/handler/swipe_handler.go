package handler

import (
	"errors"

	"jobswipe/internal/delivery/http/dto"
	"jobswipe/internal/delivery/http/middleware"
	"jobswipe/internal/domain/validation"
	"jobswipe/internal/pkg/response"
	ucswipe "jobswipe/internal/usecase/swipe"

	"github.com/gofiber/fiber/v3"
)

type SwipeHandler struct {
	uc      ucswipe.SwipeUsecase
	limiter fiber.Handler
}

// NewSwipeHandler takes an optional limiter applied in front of the write.
func NewSwipeHandler(uc ucswipe.SwipeUsecase, limiter fiber.Handler) *SwipeHandler {
	return &SwipeHandler{uc: uc, limiter: limiter}
}

func (h *SwipeHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	if h.limiter != nil {
		r.Post("/", h.limiter, h.Create)
		return
	}
	r.Post("/", h.Create)
}

func (h *SwipeHandler) Create(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	var req dto.CreateSwipeRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	sw, err := h.uc.Record(c.Context(), userID, ucswipe.RecordInput{
		TargetID:   req.TargetID,
		TargetType: req.TargetType,
		Direction:  req.Direction,
	})
	if err != nil {
		return mapSwipeUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "created", dto.NewSwipeResponse(sw))
}

func mapSwipeUsecaseError(err error) error {
	if _, ok := validation.As(err); ok {
		return err
	}
	switch {
	case errors.Is(err, ucswipe.ErrRoleRequired):
		return middleware.NewAppError(fiber.StatusForbidden, "Choose a role first", nil, err)
	case errors.Is(err, ucswipe.ErrTargetTypeMismatch):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Target type does not fit your role", nil, err)
	case errors.Is(err, ucswipe.ErrTargetNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Target not found", nil, err)
	case errors.Is(err, ucswipe.ErrAlreadySwiped):
		return middleware.NewAppError(fiber.StatusConflict, "Target already swiped", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
