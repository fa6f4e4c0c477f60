// Package target describes what a user swipes on: vacancies for seekers,
// seeker profiles for employers.
package target

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strings"

	"jobswipe/internal/domain/swipe"
	"jobswipe/internal/domain/user"
	"jobswipe/internal/domain/vacancy"
	"jobswipe/internal/domain/validation"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type Target struct {
	Type    swipe.TargetType
	Vacancy *vacancy.Vacancy `json:",omitempty"`
	Seeker  *user.User       `json:",omitempty"`
}

func FromVacancy(v vacancy.Vacancy) Target {
	return Target{Type: swipe.TargetVacancy, Vacancy: &v}
}

func FromSeeker(u user.User) Target {
	return Target{Type: swipe.TargetUser, Seeker: &u}
}

func (t Target) ID() uuid.UUID {
	switch {
	case t.Vacancy != nil:
		return t.Vacancy.ID
	case t.Seeker != nil:
		return t.Seeker.ID
	default:
		return uuid.Nil
	}
}

// TypeFor is the target kind a role swipes on.
func TypeFor(r user.Role) swipe.TargetType {
	if r == user.RoleEmployer {
		return swipe.TargetUser
	}
	return swipe.TargetVacancy
}

// Filter fields at their zero value mean "no filter".
type Filter struct {
	City      string   `json:"city" validate:"max=100"`
	Skills    []string `json:"skills" validate:"max=30,dive,required,max=50"`
	SalaryMin int      `json:"salary_min" validate:"min=0,max=100000000"`
	SalaryMax int      `json:"salary_max" validate:"min=0,max=100000000"`
	HasVideo  bool     `json:"has_video"`
}

func init() {
	validation.RegisterStructRule(salaryBand, Filter{})
}

// salaryBand only applies when both bounds are set.
func salaryBand(sl validator.StructLevel) {
	f := sl.Current().Interface().(Filter)
	if f.SalaryMin > 0 && f.SalaryMax > 0 && f.SalaryMin > f.SalaryMax {
		sl.ReportError(f.SalaryMax, "salary_max", "SalaryMax", "gtefield", "salary_min")
	}
}

func (f Filter) Normalize() Filter {
	f.City = strings.TrimSpace(f.City)
	f.Skills = validation.NormalizeTags(f.Skills)
	if f.SalaryMin < 0 {
		f.SalaryMin = 0
	}
	if f.SalaryMax < 0 {
		f.SalaryMax = 0
	}
	return f
}

func (f Filter) Validate() error {
	return validation.Struct(f)
}

// Key identifies filters the store answers identically. City and skills
// are compared exactly, as the RPCs do; only skill order is irrelevant.
func (f Filter) Key() string {
	f = f.Normalize()
	skills := append([]string(nil), f.Skills...)
	sort.Strings(skills)

	b, _ := json.Marshal(struct {
		City      string   `json:"city"`
		Skills    []string `json:"skills"`
		SalaryMin int      `json:"salary_min"`
		SalaryMax int      `json:"salary_max"`
		HasVideo  bool     `json:"has_video"`
	}{f.City, skills, f.SalaryMin, f.SalaryMax, f.HasVideo})
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:16])
}

// Exclude drops targets the viewer already swiped, the viewer's own profile
// and vacancies the viewer owns.
func Exclude(items []Target, viewerID uuid.UUID, swiped map[uuid.UUID]struct{}) []Target {
	out := make([]Target, 0, len(items))
	seen := make(map[uuid.UUID]struct{}, len(items))
	for _, t := range items {
		id := t.ID()
		if id == uuid.Nil || id == viewerID {
			continue
		}
		if _, ok := swiped[id]; ok {
			continue
		}
		if t.Vacancy != nil && t.Vacancy.EmployerID == viewerID {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, t)
	}
	return out
}
