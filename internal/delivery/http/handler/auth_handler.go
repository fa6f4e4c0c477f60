package handler

import (
	"errors"

	"jobswipe/internal/delivery/http/dto"
	"jobswipe/internal/delivery/http/middleware"
	"jobswipe/internal/pkg/response"
	ucauth "jobswipe/internal/usecase/auth"

	"github.com/gofiber/fiber/v3"
)

type AuthHandler struct {
	uc ucauth.AuthUsecase
}

func NewAuthHandler(uc ucauth.AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

func (h *AuthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/telegram", h.Telegram)
	r.Post("/refresh", h.Refresh)
}

func (h *AuthHandler) Telegram(c fiber.Ctx) error {
	var req dto.TelegramAuthRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	sess, err := h.uc.SignIn(c.Context(), req.InitData)
	if err != nil {
		return mapAuthUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewSessionResponse(sess))
}

func (h *AuthHandler) Refresh(c fiber.Ctx) error {
	tok, ok := middleware.BearerToken(c.Get("Authorization"))
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	sess, err := h.uc.Refresh(c.Context(), tok)
	if err != nil {
		return mapAuthUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewSessionResponse(sess))
}

func mapAuthUsecaseError(err error) error {
	switch {
	case errors.Is(err, ucauth.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "init_data is required", nil, err)
	case errors.Is(err, ucauth.ErrInitDataExpired):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Init data expired", nil, err)
	case errors.Is(err, ucauth.ErrInvalidInitData):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid init data", nil, err)
	case errors.Is(err, ucauth.ErrInvalidToken):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid refresh token", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
