package vacancy

import (
	"errors"
	"time"

	"jobswipe/internal/pkg/optional"

	"github.com/google/uuid"
)

var (
	ErrNotFound  = errors.New("vacancy not found")
	ErrForbidden = errors.New("vacancy belongs to another employer")
)

type Vacancy struct {
	ID                uuid.UUID `json:"id"`
	EmployerID        uuid.UUID `json:"employer_id"`
	Title             string    `json:"title" validate:"required,max=120"`
	Description       string    `json:"description" validate:"max=5000"`
	City              string    `json:"city" validate:"required,max=100"`
	SalaryMin         *int      `json:"salary_min" validate:"omitempty,min=0,max=100000000"`
	SalaryMax         *int      `json:"salary_max" validate:"omitempty,min=0,max=100000000"`
	RequiredSkills    []string  `json:"required_skills" validate:"max=30,dive,required,max=50"`
	RecruiterName     *string   `json:"recruiter_name" validate:"omitempty,max=100"`
	RecruiterPhotoURL *string   `json:"recruiter_photo_url" validate:"omitempty,max=2048,httpurl"`
	VideoURL          *string   `json:"video_url" validate:"omitempty,max=2048,httpurl"`
	IsActive          bool      `json:"is_active"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (v Vacancy) HasVideo() bool {
	return v.VideoURL != nil && *v.VideoURL != ""
}

// Patch is a partial update. Nullable columns use optional.Value so an
// explicit null clears them.
type Patch struct {
	Title             *string
	Description       *string
	City              *string
	SalaryMin         optional.Value[int]
	SalaryMax         optional.Value[int]
	RequiredSkills    *[]string
	RecruiterName     optional.Value[string]
	RecruiterPhotoURL optional.Value[string]
	VideoURL          optional.Value[string]
	IsActive          *bool
}

func (p Patch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.City == nil &&
		!p.SalaryMin.Set && !p.SalaryMax.Set && p.RequiredSkills == nil &&
		!p.RecruiterName.Set && !p.RecruiterPhotoURL.Set && !p.VideoURL.Set &&
		p.IsActive == nil
}

// Apply returns v with the patch merged in; v itself is not modified.
func (p Patch) Apply(v Vacancy) Vacancy {
	if p.Title != nil {
		v.Title = *p.Title
	}
	if p.Description != nil {
		v.Description = *p.Description
	}
	if p.City != nil {
		v.City = *p.City
	}
	if p.SalaryMin.Set {
		v.SalaryMin = p.SalaryMin.Ptr()
	}
	if p.SalaryMax.Set {
		v.SalaryMax = p.SalaryMax.Ptr()
	}
	if p.RequiredSkills != nil {
		v.RequiredSkills = append([]string(nil), (*p.RequiredSkills)...)
	}
	if p.RecruiterName.Set {
		v.RecruiterName = p.RecruiterName.Ptr()
	}
	if p.RecruiterPhotoURL.Set {
		v.RecruiterPhotoURL = p.RecruiterPhotoURL.Ptr()
	}
	if p.VideoURL.Set {
		v.VideoURL = p.VideoURL.Ptr()
	}
	if p.IsActive != nil {
		v.IsActive = *p.IsActive
	}
	return v
}
