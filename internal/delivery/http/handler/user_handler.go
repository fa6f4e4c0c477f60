package handler

import (
	"errors"

	"jobswipe/internal/delivery/http/dto"
	"jobswipe/internal/delivery/http/middleware"
	"jobswipe/internal/domain/validation"
	"jobswipe/internal/pkg/response"
	"jobswipe/internal/usecase/profile"

	"github.com/gofiber/fiber/v3"
)

type UserHandler struct {
	uc profile.ProfileUsecase
}

func NewUserHandler(uc profile.ProfileUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

func (h *UserHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/me", h.GetMe)
	r.Patch("/me", h.UpdateMe)
	r.Delete("/me", h.DeleteMe)
	r.Post("/me/role", h.AssignRole)
	r.Post("/me/onboarding", h.CompleteOnboarding)
}

func (h *UserHandler) GetMe(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	u, err := h.uc.Get(c.Context(), userID)
	if err != nil {
		return mapProfileUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUserResponse(u))
}

func (h *UserHandler) UpdateMe(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	var req dto.UpdateProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	u, err := h.uc.Update(c.Context(), userID, req.Patch())
	if err != nil {
		return mapProfileUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUserResponse(u))
}

func (h *UserHandler) AssignRole(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	var req dto.AssignRoleRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	u, err := h.uc.AssignRole(c.Context(), userID, req.Role)
	if err != nil {
		return mapProfileUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUserResponse(u))
}

func (h *UserHandler) CompleteOnboarding(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	u, err := h.uc.CompleteOnboarding(c.Context(), userID)
	if err != nil {
		return mapProfileUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUserResponse(u))
}

func (h *UserHandler) DeleteMe(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Context(), userID); err != nil {
		return mapProfileUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func mapProfileUsecaseError(err error) error {
	if _, ok := validation.As(err); ok {
		return err
	}
	switch {
	case errors.Is(err, profile.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	case errors.Is(err, profile.ErrRoleAlreadySet):
		return middleware.NewAppError(fiber.StatusConflict, "Role already set", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
