package dto

import (
	"jobswipe/internal/domain/user"
	"jobswipe/internal/pkg/optional"
)

// UpdateProfileRequest leaves absent fields untouched. An empty string clears
// an optional text field; null clears salary_expectation.
type UpdateProfileRequest struct {
	FirstName          *string             `json:"first_name"`
	LastName           *string             `json:"last_name"`
	City               *string             `json:"city"`
	Skills             *[]string           `json:"skills"`
	SalaryExpectation  optional.Value[int] `json:"salary_expectation"`
	Experience         *string             `json:"experience"`
	ResumeURL          *string             `json:"resume_url"`
	PortfolioURL       *string             `json:"portfolio_url"`
	VideoURL           *string             `json:"video_url"`
	CompanyName        *string             `json:"company_name"`
	CompanyDescription *string             `json:"company_description"`
}

func (r UpdateProfileRequest) Patch() user.ProfilePatch {
	return user.ProfilePatch{
		FirstName:          r.FirstName,
		LastName:           r.LastName,
		City:               r.City,
		Skills:             r.Skills,
		SalaryExpectation:  r.SalaryExpectation,
		Experience:         r.Experience,
		ResumeURL:          r.ResumeURL,
		PortfolioURL:       r.PortfolioURL,
		VideoURL:           r.VideoURL,
		CompanyName:        r.CompanyName,
		CompanyDescription: r.CompanyDescription,
	}
}

type AssignRoleRequest struct {
	Role string `json:"role" validate:"required"`
}
