package repository

import (
	"context"
	"errors"

	"jobswipe/internal/database"
	"jobswipe/internal/domain/vacancy"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const vacancyColumns = `id, employer_id, title, description, city, salary_min, salary_max,
	required_skills, recruiter_name, recruiter_photo_url, video_url, is_active, created_at, updated_at`

type PostgresVacancyRepository struct {
	db database.DB
}

func NewPostgresVacancyRepository(db database.DB) *PostgresVacancyRepository {
	return &PostgresVacancyRepository{db: db}
}

func (r *PostgresVacancyRepository) Create(ctx context.Context, v vacancy.Vacancy) (vacancy.Vacancy, error) {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	row := r.db.QueryRow(ctx,
		`INSERT INTO vacancies (id, employer_id, title, description, city, salary_min, salary_max,
			required_skills, recruiter_name, recruiter_photo_url, video_url, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING `+vacancyColumns,
		v.ID, v.EmployerID, v.Title, v.Description, v.City, v.SalaryMin, v.SalaryMax,
		skillsOrEmpty(v.RequiredSkills), v.RecruiterName, v.RecruiterPhotoURL, v.VideoURL, v.IsActive,
	)
	return scanVacancy(row)
}

func (r *PostgresVacancyRepository) GetByID(ctx context.Context, id uuid.UUID) (vacancy.Vacancy, error) {
	row := r.db.QueryRow(ctx, `SELECT `+vacancyColumns+` FROM vacancies WHERE id = $1`, id)
	return scanVacancy(row)
}

func (r *PostgresVacancyRepository) ListByEmployer(ctx context.Context, employerID uuid.UUID) ([]vacancy.Vacancy, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+vacancyColumns+`
		 FROM vacancies
		 WHERE employer_id = $1
		 ORDER BY created_at DESC`,
		employerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]vacancy.Vacancy, 0)
	for rows.Next() {
		v, err := scanVacancy(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresVacancyRepository) CountByEmployer(ctx context.Context, employerID uuid.UUID) (int, error) {
	var n int
	row := r.db.QueryRow(ctx, `SELECT count(*) FROM vacancies WHERE employer_id = $1`, employerID)
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *PostgresVacancyRepository) Update(ctx context.Context, v vacancy.Vacancy) (vacancy.Vacancy, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE vacancies SET
			title = $3, description = $4, city = $5, salary_min = $6, salary_max = $7,
			required_skills = $8, recruiter_name = $9, recruiter_photo_url = $10, video_url = $11,
			is_active = $12, updated_at = now()
		 WHERE id = $1 AND employer_id = $2
		 RETURNING `+vacancyColumns,
		v.ID, v.EmployerID, v.Title, v.Description, v.City, v.SalaryMin, v.SalaryMax,
		skillsOrEmpty(v.RequiredSkills), v.RecruiterName, v.RecruiterPhotoURL, v.VideoURL, v.IsActive,
	)
	return scanVacancy(row)
}

func (r *PostgresVacancyRepository) Delete(ctx context.Context, id, employerID uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM vacancies WHERE id = $1 AND employer_id = $2`, id, employerID)
	if err != nil {
		return err
	}
	if n == 0 {
		return vacancy.ErrNotFound
	}
	return nil
}

func scanVacancy(row database.Row) (vacancy.Vacancy, error) {
	var v vacancy.Vacancy
	err := row.Scan(
		&v.ID, &v.EmployerID, &v.Title, &v.Description, &v.City, &v.SalaryMin, &v.SalaryMax,
		&v.RequiredSkills, &v.RecruiterName, &v.RecruiterPhotoURL, &v.VideoURL, &v.IsActive, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return vacancy.Vacancy{}, vacancy.ErrNotFound
		}
		return vacancy.Vacancy{}, err
	}
	if v.RequiredSkills == nil {
		v.RequiredSkills = []string{}
	}
	return v, nil
}

func skillsOrEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
