package handler

import (
	"jobswipe/internal/delivery/http/dto"
	"jobswipe/internal/delivery/http/middleware"
	"jobswipe/internal/pkg/response"
	ucmatch "jobswipe/internal/usecase/match"

	"github.com/gofiber/fiber/v3"
)

type MatchHandler struct {
	uc ucmatch.MatchUsecase
}

func NewMatchHandler(uc ucmatch.MatchUsecase) *MatchHandler {
	return &MatchHandler{uc: uc}
}

func (h *MatchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
}

func (h *MatchHandler) List(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	views, err := h.uc.List(c.Context(), userID)
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMatchListResponse(views))
}
