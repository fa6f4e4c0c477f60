package repository

import (
	"context"
	"errors"
	"strings"

	"jobswipe/internal/database"
	"jobswipe/internal/domain/user"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const userColumns = `id, telegram_id, username, first_name, last_name, photo_url, role,
	city, skills, salary_expectation, experience, resume_url, portfolio_url, video_url,
	company_name, company_description, onboarding_completed, created_at, updated_at`

type PostgresUserRepository struct {
	db database.DB
}

func NewPostgresUserRepository(db database.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// UpsertByTelegramID refreshes the platform-owned fields on every sign-in and
// leaves profile fields alone.
func (r *PostgresUserRepository) UpsertByTelegramID(ctx context.Context, id user.Identity) (user.User, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO users (id, telegram_id, username, first_name, last_name, photo_url)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (telegram_id) DO UPDATE SET
			username = EXCLUDED.username,
			first_name = CASE WHEN users.first_name = '' THEN EXCLUDED.first_name ELSE users.first_name END,
			last_name = COALESCE(users.last_name, EXCLUDED.last_name),
			photo_url = EXCLUDED.photo_url,
			updated_at = now()
		 RETURNING `+userColumns,
		uuid.New(),
		id.TelegramID,
		nullIfEmpty(id.Username),
		strings.TrimSpace(id.FirstName),
		nullIfEmpty(id.LastName),
		nullIfEmpty(id.PhotoURL),
	)
	return scanUser(row)
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *PostgresUserRepository) UpdateProfile(ctx context.Context, id uuid.UUID, p user.ProfilePatch) (user.User, error) {
	var skills any
	if p.Skills != nil {
		skills = *p.Skills
	}
	var salary *int
	if p.SalaryExpectation.Set {
		salary = p.SalaryExpectation.Ptr()
	}

	row := r.db.QueryRow(ctx,
		`UPDATE users SET
			first_name = COALESCE($2, first_name),
			last_name = CASE WHEN $3::text IS NULL THEN last_name ELSE NULLIF($3, '') END,
			city = CASE WHEN $4::text IS NULL THEN city ELSE NULLIF($4, '') END,
			skills = COALESCE($5::text[], skills),
			salary_expectation = CASE WHEN $13::boolean THEN $6::integer ELSE salary_expectation END,
			experience = CASE WHEN $7::text IS NULL THEN experience ELSE NULLIF($7, '') END,
			resume_url = CASE WHEN $8::text IS NULL THEN resume_url ELSE NULLIF($8, '') END,
			portfolio_url = CASE WHEN $9::text IS NULL THEN portfolio_url ELSE NULLIF($9, '') END,
			video_url = CASE WHEN $10::text IS NULL THEN video_url ELSE NULLIF($10, '') END,
			company_name = CASE WHEN $11::text IS NULL THEN company_name ELSE NULLIF($11, '') END,
			company_description = CASE WHEN $12::text IS NULL THEN company_description ELSE NULLIF($12, '') END,
			updated_at = now()
		 WHERE id = $1
		 RETURNING `+userColumns,
		id,
		p.FirstName,
		p.LastName,
		p.City,
		skills,
		salary,
		p.Experience,
		p.ResumeURL,
		p.PortfolioURL,
		p.VideoURL,
		p.CompanyName,
		p.CompanyDescription,
		p.SalaryExpectation.Set,
	)
	return scanUser(row)
}

func (r *PostgresUserRepository) AssignRole(ctx context.Context, id uuid.UUID, role user.Role) (user.User, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE users SET role = $2, updated_at = now()
		 WHERE id = $1 AND role IS NULL
		 RETURNING `+userColumns,
		id, string(role),
	)
	u, err := scanUser(row)
	if errors.Is(err, user.ErrNotFound) {
		existing, getErr := r.GetByID(ctx, id)
		if getErr != nil {
			return user.User{}, getErr
		}
		if existing.Role != nil {
			return existing, user.ErrRoleAlreadySet
		}
	}
	return u, err
}

func (r *PostgresUserRepository) SetOnboardingCompleted(ctx context.Context, id uuid.UUID) (user.User, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE users SET onboarding_completed = true, updated_at = now()
		 WHERE id = $1
		 RETURNING `+userColumns,
		id,
	)
	return scanUser(row)
}

func (r *PostgresUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return user.ErrNotFound
	}
	return nil
}

func scanUser(row database.Row) (user.User, error) {
	var u user.User
	var role *string
	err := row.Scan(
		&u.ID, &u.TelegramID, &u.Username, &u.FirstName, &u.LastName, &u.PhotoURL, &role,
		&u.City, &u.Skills, &u.SalaryExpectation, &u.Experience, &u.ResumeURL, &u.PortfolioURL, &u.VideoURL,
		&u.CompanyName, &u.CompanyDescription, &u.OnboardingCompleted, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	if role != nil {
		rr := user.Role(*role)
		u.Role = &rr
	}
	if u.Skills == nil {
		u.Skills = []string{}
	}
	return u, nil
}

func nullIfEmpty(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
