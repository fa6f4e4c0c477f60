package handler

import (
	"errors"

	"jobswipe/internal/delivery/http/dto"
	"jobswipe/internal/delivery/http/middleware"
	"jobswipe/internal/domain/validation"
	"jobswipe/internal/pkg/response"
	ucvacancy "jobswipe/internal/usecase/vacancy"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type VacancyHandler struct {
	uc ucvacancy.VacancyUsecase
}

func NewVacancyHandler(uc ucvacancy.VacancyUsecase) *VacancyHandler {
	return &VacancyHandler{uc: uc}
}

func (h *VacancyHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/", h.Create)
	r.Get("/mine", h.ListMine)
	r.Get("/:id", h.Get)
	r.Patch("/:id", h.Update)
	r.Delete("/:id", h.Delete)
}

func (h *VacancyHandler) Create(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	var req dto.CreateVacancyRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	v, err := h.uc.Create(c.Context(), userID, req.Vacancy())
	if err != nil {
		return mapVacancyUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "created", dto.NewVacancyResponse(v))
}

func (h *VacancyHandler) ListMine(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	items, err := h.uc.ListMine(c.Context(), userID)
	if err != nil {
		return mapVacancyUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewVacancyListResponse(items))
}

func (h *VacancyHandler) Get(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	id, err := vacancyIDParam(c)
	if err != nil {
		return err
	}

	v, err := h.uc.Get(c.Context(), userID, id)
	if err != nil {
		return mapVacancyUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewVacancyResponse(v))
}

func (h *VacancyHandler) Update(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	id, err := vacancyIDParam(c)
	if err != nil {
		return err
	}

	var req dto.UpdateVacancyRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	v, err := h.uc.Update(c.Context(), userID, id, req.Patch())
	if err != nil {
		return mapVacancyUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewVacancyResponse(v))
}

func (h *VacancyHandler) Delete(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	id, err := vacancyIDParam(c)
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Context(), userID, id); err != nil {
		return mapVacancyUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func vacancyIDParam(c fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, "Invalid vacancy id", nil, err)
	}
	return id, nil
}

func mapVacancyUsecaseError(err error) error {
	if _, ok := validation.As(err); ok {
		return err
	}
	switch {
	case errors.Is(err, ucvacancy.ErrNotEmployer):
		return middleware.NewAppError(fiber.StatusForbidden, "Only employers manage vacancies", nil, err)
	case errors.Is(err, ucvacancy.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Vacancy belongs to another employer", nil, err)
	case errors.Is(err, ucvacancy.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Vacancy not found", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
