package dto

import (
	"time"

	"jobswipe/internal/domain/user"

	"github.com/google/uuid"
)

type UserResponse struct {
	ID                  uuid.UUID `json:"id"`
	TelegramID          int64     `json:"telegram_id"`
	Username            *string   `json:"username"`
	FirstName           string    `json:"first_name"`
	LastName            *string   `json:"last_name"`
	PhotoURL            *string   `json:"photo_url"`
	Role                *string   `json:"role"`
	City                *string   `json:"city"`
	Skills              []string  `json:"skills"`
	SalaryExpectation   *int      `json:"salary_expectation"`
	Experience          *string   `json:"experience"`
	ResumeURL           *string   `json:"resume_url"`
	PortfolioURL        *string   `json:"portfolio_url"`
	VideoURL            *string   `json:"video_url"`
	CompanyName         *string   `json:"company_name"`
	CompanyDescription  *string   `json:"company_description"`
	OnboardingCompleted bool      `json:"onboarding_completed"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

func NewUserResponse(u user.User) UserResponse {
	var role *string
	if u.Role != nil {
		r := string(*u.Role)
		role = &r
	}
	return UserResponse{
		ID:                  u.ID,
		TelegramID:          u.TelegramID,
		Username:            u.Username,
		FirstName:           u.FirstName,
		LastName:            u.LastName,
		PhotoURL:            u.PhotoURL,
		Role:                role,
		City:                u.City,
		Skills:              nonNil(u.Skills),
		SalaryExpectation:   u.SalaryExpectation,
		Experience:          u.Experience,
		ResumeURL:           u.ResumeURL,
		PortfolioURL:        u.PortfolioURL,
		VideoURL:            u.VideoURL,
		CompanyName:         u.CompanyName,
		CompanyDescription:  u.CompanyDescription,
		OnboardingCompleted: u.OnboardingCompleted,
		CreatedAt:           u.CreatedAt,
		UpdatedAt:           u.UpdatedAt,
	}
}

// SeekerCardResponse is what an employer sees of a seeker while swiping. The
// platform id stays private until a match exists.
type SeekerCardResponse struct {
	ID                uuid.UUID `json:"id"`
	FirstName         string    `json:"first_name"`
	LastName          *string   `json:"last_name"`
	PhotoURL          *string   `json:"photo_url"`
	City              *string   `json:"city"`
	Skills            []string  `json:"skills"`
	SalaryExpectation *int      `json:"salary_expectation"`
	Experience        *string   `json:"experience"`
	ResumeURL         *string   `json:"resume_url"`
	PortfolioURL      *string   `json:"portfolio_url"`
	VideoURL          *string   `json:"video_url"`
}

func NewSeekerCardResponse(u user.User) SeekerCardResponse {
	return SeekerCardResponse{
		ID:                u.ID,
		FirstName:         u.FirstName,
		LastName:          u.LastName,
		PhotoURL:          u.PhotoURL,
		City:              u.City,
		Skills:            nonNil(u.Skills),
		SalaryExpectation: u.SalaryExpectation,
		Experience:        u.Experience,
		ResumeURL:         u.ResumeURL,
		PortfolioURL:      u.PortfolioURL,
		VideoURL:          u.VideoURL,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
