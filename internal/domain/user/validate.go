package user

import (
	"strings"

	"jobswipe/internal/domain/validation"
)

// Ceilings mirrored by the validate tags on ProfilePatch.
const (
	MaxNameLen               = 64
	MaxCityLen               = 100
	MaxExperienceLen         = 2000
	MaxCompanyNameLen        = 120
	MaxCompanyDescriptionLen = 2000
)

// Normalize trims strings and tidies the skills list in place.
func (p *ProfilePatch) Normalize() {
	trim := func(s *string) *string {
		if s == nil {
			return nil
		}
		v := strings.TrimSpace(*s)
		return &v
	}
	p.FirstName = trim(p.FirstName)
	p.LastName = trim(p.LastName)
	p.City = trim(p.City)
	p.Experience = trim(p.Experience)
	p.ResumeURL = trim(p.ResumeURL)
	p.PortfolioURL = trim(p.PortfolioURL)
	p.VideoURL = trim(p.VideoURL)
	p.CompanyName = trim(p.CompanyName)
	p.CompanyDescription = trim(p.CompanyDescription)
	if p.Skills != nil {
		s := validation.NormalizeTags(*p.Skills)
		p.Skills = &s
	}
}

func (p ProfilePatch) Validate() error {
	return validation.Struct(p)
}
