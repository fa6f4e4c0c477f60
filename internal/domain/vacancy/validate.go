package vacancy

import (
	"strings"

	"jobswipe/internal/domain/validation"

	"github.com/go-playground/validator/v10"
)

// Ceilings mirrored by the validate tags on Vacancy.
const (
	MaxTitleLen         = 120
	MaxDescriptionLen   = 5000
	MaxCityLen          = 100
	MaxRecruiterNameLen = 100
)

// Normalize trims text and tidies skills so validation sees stored values.
func Normalize(v Vacancy) Vacancy {
	v.Title = strings.TrimSpace(v.Title)
	v.Description = strings.TrimSpace(v.Description)
	v.City = strings.TrimSpace(v.City)
	v.RequiredSkills = validation.NormalizeTags(v.RequiredSkills)

	blankToNil := func(s *string) *string {
		if s == nil {
			return nil
		}
		t := strings.TrimSpace(*s)
		if t == "" {
			return nil
		}
		return &t
	}
	v.RecruiterName = blankToNil(v.RecruiterName)
	v.RecruiterPhotoURL = blankToNil(v.RecruiterPhotoURL)
	v.VideoURL = blankToNil(v.VideoURL)
	return v
}

func init() {
	validation.RegisterStructRule(salaryBand, Vacancy{})
}

// salaryBand requires salary_min <= salary_max when both are present; the
// error lands on salary_max.
func salaryBand(sl validator.StructLevel) {
	v := sl.Current().Interface().(Vacancy)
	if v.SalaryMin != nil && v.SalaryMax != nil && *v.SalaryMin > *v.SalaryMax {
		sl.ReportError(v.SalaryMax, "salary_max", "SalaryMax", "gtefield", "salary_min")
	}
}

// Validate checks a complete vacancy.
func Validate(v Vacancy) error {
	return validation.Struct(v)
}
