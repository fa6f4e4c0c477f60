package dto

import (
	"time"

	"jobswipe/internal/domain/vacancy"
	"jobswipe/internal/pkg/optional"

	"github.com/google/uuid"
)

type CreateVacancyRequest struct {
	Title             string   `json:"title"`
	Description       string   `json:"description"`
	City              string   `json:"city"`
	SalaryMin         *int     `json:"salary_min"`
	SalaryMax         *int     `json:"salary_max"`
	RequiredSkills    []string `json:"required_skills"`
	RecruiterName     *string  `json:"recruiter_name"`
	RecruiterPhotoURL *string  `json:"recruiter_photo_url"`
	VideoURL          *string  `json:"video_url"`
}

func (r CreateVacancyRequest) Vacancy() vacancy.Vacancy {
	return vacancy.Vacancy{
		Title:             r.Title,
		Description:       r.Description,
		City:              r.City,
		SalaryMin:         r.SalaryMin,
		SalaryMax:         r.SalaryMax,
		RequiredSkills:    r.RequiredSkills,
		RecruiterName:     r.RecruiterName,
		RecruiterPhotoURL: r.RecruiterPhotoURL,
		VideoURL:          r.VideoURL,
	}
}

// UpdateVacancyRequest is a partial update; null clears salary, recruiter
// and video fields.
type UpdateVacancyRequest struct {
	Title             *string                `json:"title"`
	Description       *string                `json:"description"`
	City              *string                `json:"city"`
	SalaryMin         optional.Value[int]    `json:"salary_min"`
	SalaryMax         optional.Value[int]    `json:"salary_max"`
	RequiredSkills    *[]string              `json:"required_skills"`
	RecruiterName     optional.Value[string] `json:"recruiter_name"`
	RecruiterPhotoURL optional.Value[string] `json:"recruiter_photo_url"`
	VideoURL          optional.Value[string] `json:"video_url"`
	IsActive          *bool                  `json:"is_active"`
}

func (r UpdateVacancyRequest) Patch() vacancy.Patch {
	return vacancy.Patch{
		Title:             r.Title,
		Description:       r.Description,
		City:              r.City,
		SalaryMin:         r.SalaryMin,
		SalaryMax:         r.SalaryMax,
		RequiredSkills:    r.RequiredSkills,
		RecruiterName:     r.RecruiterName,
		RecruiterPhotoURL: r.RecruiterPhotoURL,
		VideoURL:          r.VideoURL,
		IsActive:          r.IsActive,
	}
}

type VacancyResponse struct {
	ID                uuid.UUID `json:"id"`
	EmployerID        uuid.UUID `json:"employer_id"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	City              string    `json:"city"`
	SalaryMin         *int      `json:"salary_min"`
	SalaryMax         *int      `json:"salary_max"`
	RequiredSkills    []string  `json:"required_skills"`
	RecruiterName     *string   `json:"recruiter_name"`
	RecruiterPhotoURL *string   `json:"recruiter_photo_url"`
	VideoURL          *string   `json:"video_url"`
	IsActive          bool      `json:"is_active"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func NewVacancyResponse(v vacancy.Vacancy) VacancyResponse {
	return VacancyResponse{
		ID:                v.ID,
		EmployerID:        v.EmployerID,
		Title:             v.Title,
		Description:       v.Description,
		City:              v.City,
		SalaryMin:         v.SalaryMin,
		SalaryMax:         v.SalaryMax,
		RequiredSkills:    nonNil(v.RequiredSkills),
		RecruiterName:     v.RecruiterName,
		RecruiterPhotoURL: v.RecruiterPhotoURL,
		VideoURL:          v.VideoURL,
		IsActive:          v.IsActive,
		CreatedAt:         v.CreatedAt,
		UpdatedAt:         v.UpdatedAt,
	}
}

func NewVacancyListResponse(items []vacancy.Vacancy) []VacancyResponse {
	out := make([]VacancyResponse, 0, len(items))
	for _, v := range items {
		out = append(out, NewVacancyResponse(v))
	}
	return out
}
