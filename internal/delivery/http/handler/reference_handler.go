package handler

import (
	"jobswipe/internal/delivery/http/dto"
	"jobswipe/internal/delivery/http/middleware"
	"jobswipe/internal/pkg/response"
	ucreference "jobswipe/internal/usecase/reference"

	"github.com/gofiber/fiber/v3"
)

type ReferenceHandler struct {
	uc ucreference.ReferenceUsecase
}

func NewReferenceHandler(uc ucreference.ReferenceUsecase) *ReferenceHandler {
	return &ReferenceHandler{uc: uc}
}

// RegisterRoutes mounts /cities and /job-categories on r.
func (h *ReferenceHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/cities", h.Cities)
	r.Get("/job-categories", h.JobCategories)
}

func (h *ReferenceHandler) Cities(c fiber.Ctx) error {
	items, err := h.uc.Cities(c.Context(), c.Query("q"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewCityListResponse(items))
}

func (h *ReferenceHandler) JobCategories(c fiber.Ctx) error {
	items, err := h.uc.JobCategories(c.Context())
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobCategoryListResponse(items))
}
