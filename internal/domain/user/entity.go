package user

import (
	"errors"
	"strings"
	"time"

	"jobswipe/internal/pkg/optional"

	"github.com/google/uuid"
)

type Role string

const (
	RoleSeeker   Role = "seeker"
	RoleEmployer Role = "employer"
)

var ErrInvalidRole = errors.New("invalid role")

func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleSeeker:
		return RoleSeeker, nil
	case RoleEmployer:
		return RoleEmployer, nil
	default:
		return "", ErrInvalidRole
	}
}

// User is keyed internally by ID and externally by TelegramID. Role is nil
// until the first assignment and never changes afterwards.
type User struct {
	ID         uuid.UUID
	TelegramID int64
	Username   *string
	FirstName  string
	LastName   *string
	PhotoURL   *string
	Role       *Role

	City              *string
	Skills            []string
	SalaryExpectation *int
	Experience        *string
	ResumeURL         *string
	PortfolioURL      *string
	VideoURL          *string

	CompanyName        *string
	CompanyDescription *string

	OnboardingCompleted bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (u User) HasRole(r Role) bool {
	return u.Role != nil && *u.Role == r
}

func (u User) DisplayName() string {
	name := strings.TrimSpace(u.FirstName)
	if u.LastName != nil && strings.TrimSpace(*u.LastName) != "" {
		name = strings.TrimSpace(name + " " + strings.TrimSpace(*u.LastName))
	}
	if name == "" && u.Username != nil {
		name = *u.Username
	}
	return name
}

// Identity is what the messaging platform tells us about a user at launch.
type Identity struct {
	TelegramID int64
	Username   string
	FirstName  string
	LastName   string
	PhotoURL   string
}

// ProfilePatch holds the fields a profile save may touch; nil means
// unchanged. An empty string clears an optional text field and a null
// salary_expectation clears the salary.
type ProfilePatch struct {
	FirstName          *string             `json:"first_name" validate:"omitempty,min=1,max=64"`
	LastName           *string             `json:"last_name" validate:"omitempty,max=64"`
	City               *string             `json:"city" validate:"omitempty,max=100"`
	Skills             *[]string           `json:"skills" validate:"omitempty,max=30,dive,required,max=50"`
	SalaryExpectation  optional.Value[int] `json:"salary_expectation" validate:"omitempty,min=0,max=100000000"`
	Experience         *string             `json:"experience" validate:"omitempty,max=2000"`
	ResumeURL          *string             `json:"resume_url" validate:"omitempty,max=2048,httpurl"`
	PortfolioURL       *string             `json:"portfolio_url" validate:"omitempty,max=2048,httpurl"`
	VideoURL           *string             `json:"video_url" validate:"omitempty,max=2048,httpurl"`
	CompanyName        *string             `json:"company_name" validate:"omitempty,max=120"`
	CompanyDescription *string             `json:"company_description" validate:"omitempty,max=2000"`
}

func (p ProfilePatch) Empty() bool {
	return p == ProfilePatch{}
}
