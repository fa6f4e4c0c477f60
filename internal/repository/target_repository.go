package repository

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"jobswipe/internal/database"
	"jobswipe/internal/domain/target"
	"jobswipe/internal/domain/user"
	"jobswipe/internal/domain/vacancy"
	"jobswipe/internal/repository/rowcodec"

	"github.com/google/uuid"
)

var (
	//go:embed schemas/vacancy_row.json
	vacancyRowSchema []byte
	//go:embed schemas/seeker_row.json
	seekerRowSchema []byte
)

var (
	vacancyRowCodec = rowcodec.MustNew[vacancyRow]("vacancy", vacancyRowSchema)
	seekerRowCodec  = rowcodec.MustNew[seekerRow]("seeker", seekerRowSchema)
)

type vacancyRow struct {
	ID                uuid.UUID `mapstructure:"id"`
	EmployerID        uuid.UUID `mapstructure:"employer_id"`
	Title             string    `mapstructure:"title"`
	Description       *string   `mapstructure:"description"`
	City              string    `mapstructure:"city"`
	SalaryMin         *int      `mapstructure:"salary_min"`
	SalaryMax         *int      `mapstructure:"salary_max"`
	RequiredSkills    []string  `mapstructure:"required_skills"`
	RecruiterName     *string   `mapstructure:"recruiter_name"`
	RecruiterPhotoURL *string   `mapstructure:"recruiter_photo_url"`
	VideoURL          *string   `mapstructure:"video_url"`
	IsActive          bool      `mapstructure:"is_active"`
	CreatedAt         time.Time `mapstructure:"created_at"`
	UpdatedAt         time.Time `mapstructure:"updated_at"`
}

type seekerRow struct {
	ID                  uuid.UUID `mapstructure:"id"`
	TelegramID          int64     `mapstructure:"telegram_id"`
	Username            *string   `mapstructure:"username"`
	FirstName           string    `mapstructure:"first_name"`
	LastName            *string   `mapstructure:"last_name"`
	PhotoURL            *string   `mapstructure:"photo_url"`
	City                *string   `mapstructure:"city"`
	Skills              []string  `mapstructure:"skills"`
	SalaryExpectation   *int      `mapstructure:"salary_expectation"`
	Experience          *string   `mapstructure:"experience"`
	ResumeURL           *string   `mapstructure:"resume_url"`
	PortfolioURL        *string   `mapstructure:"portfolio_url"`
	VideoURL            *string   `mapstructure:"video_url"`
	OnboardingCompleted bool      `mapstructure:"onboarding_completed"`
	CreatedAt           time.Time `mapstructure:"created_at"`
	UpdatedAt           time.Time `mapstructure:"updated_at"`
}

// PostgresTargetRepository calls the filter procedures and reads each row as
// jsonb, so a procedure returning an unexpected shape fails loudly instead
// of scanning into the wrong columns.
type PostgresTargetRepository struct {
	db database.DB
}

func NewPostgresTargetRepository(db database.DB) *PostgresTargetRepository {
	return &PostgresTargetRepository{db: db}
}

func (r *PostgresTargetRepository) VacanciesForSeeker(ctx context.Context, seekerID uuid.UUID, f target.Filter) ([]vacancy.Vacancy, error) {
	raws, err := r.queryJSON(ctx,
		`SELECT to_jsonb(v) FROM get_filtered_vacancies_for_seeker($1, $2, $3, $4, $5, $6) v`,
		seekerID, f,
	)
	if err != nil {
		return nil, err
	}

	out := make([]vacancy.Vacancy, 0, len(raws))
	for _, raw := range raws {
		row, err := vacancyRowCodec.Decode(ctx, raw)
		if err != nil {
			return nil, err
		}
		out = append(out, row.toVacancy())
	}
	return out, nil
}

func (r *PostgresTargetRepository) SeekersForEmployer(ctx context.Context, employerID uuid.UUID, f target.Filter) ([]user.User, error) {
	raws, err := r.queryJSON(ctx,
		`SELECT to_jsonb(u) FROM get_filtered_seekers_for_employer($1, $2, $3, $4, $5, $6) u`,
		employerID, f,
	)
	if err != nil {
		return nil, err
	}

	out := make([]user.User, 0, len(raws))
	for _, raw := range raws {
		row, err := seekerRowCodec.Decode(ctx, raw)
		if err != nil {
			return nil, err
		}
		out = append(out, row.toUser())
	}
	return out, nil
}

func (r *PostgresTargetRepository) queryJSON(ctx context.Context, query string, viewerID uuid.UUID, f target.Filter) ([][]byte, error) {
	f = f.Normalize()
	skills := f.Skills
	if skills == nil {
		skills = []string{}
	}

	rows, err := r.db.Query(ctx, query, viewerID, f.City, skills, f.SalaryMin, f.SalaryMax, f.HasVideo)
	if err != nil {
		return nil, fmt.Errorf("query targets: %w", err)
	}
	defer rows.Close()

	out := make([][]byte, 0)
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		out = append(out, raw)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r vacancyRow) toVacancy() vacancy.Vacancy {
	v := vacancy.Vacancy{
		ID:                r.ID,
		EmployerID:        r.EmployerID,
		Title:             r.Title,
		Description:       deref(r.Description),
		City:              r.City,
		SalaryMin:         r.SalaryMin,
		SalaryMax:         r.SalaryMax,
		RequiredSkills:    r.RequiredSkills,
		RecruiterName:     r.RecruiterName,
		RecruiterPhotoURL: r.RecruiterPhotoURL,
		VideoURL:          r.VideoURL,
		IsActive:          r.IsActive,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
	if v.RequiredSkills == nil {
		v.RequiredSkills = []string{}
	}
	return v
}

func (r seekerRow) toUser() user.User {
	role := user.RoleSeeker
	u := user.User{
		ID:                  r.ID,
		TelegramID:          r.TelegramID,
		Username:            r.Username,
		FirstName:           r.FirstName,
		LastName:            r.LastName,
		PhotoURL:            r.PhotoURL,
		Role:                &role,
		City:                r.City,
		Skills:              r.Skills,
		SalaryExpectation:   r.SalaryExpectation,
		Experience:          r.Experience,
		ResumeURL:           r.ResumeURL,
		PortfolioURL:        r.PortfolioURL,
		VideoURL:            r.VideoURL,
		OnboardingCompleted: r.OnboardingCompleted,
		CreatedAt:           r.CreatedAt,
		UpdatedAt:           r.UpdatedAt,
	}
	if u.Skills == nil {
		u.Skills = []string{}
	}
	return u
}
