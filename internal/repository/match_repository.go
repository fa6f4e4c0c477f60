package repository

import (
	"context"

	"jobswipe/internal/database"
	"jobswipe/internal/domain/match"

	"github.com/google/uuid"
)

type PostgresMatchRepository struct {
	db database.DB
}

func NewPostgresMatchRepository(db database.DB) *PostgresMatchRepository {
	return &PostgresMatchRepository{db: db}
}

func (r *PostgresMatchRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]match.Record, error) {
	rows, err := r.db.Query(ctx,
		`SELECT
			m.id, m.seeker_id, m.employer_id, m.vacancy_id, m.created_at, m.expires_at,
			o.id, o.telegram_id, o.username, o.first_name, o.last_name, o.photo_url, o.company_name,
			v.id, v.title, v.city, v.salary_min, v.salary_max
		 FROM matches m
		 JOIN users o ON o.id = CASE WHEN m.seeker_id = $1 THEN m.employer_id ELSE m.seeker_id END
		 LEFT JOIN vacancies v ON v.id = m.vacancy_id
		 WHERE m.seeker_id = $1 OR m.employer_id = $1
		 ORDER BY m.created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]match.Record, 0)
	for rows.Next() {
		var (
			rec       match.Record
			vacID     *uuid.UUID
			vacTitle  *string
			vacCity   *string
			vacSalMin *int
			vacSalMax *int
		)
		err := rows.Scan(
			&rec.Match.ID, &rec.Match.SeekerID, &rec.Match.EmployerID, &rec.Match.VacancyID,
			&rec.Match.CreatedAt, &rec.Match.ExpiresAt,
			&rec.Other.ID, &rec.Other.TelegramID, &rec.Other.Username, &rec.Other.FirstName,
			&rec.Other.LastName, &rec.Other.PhotoURL, &rec.Other.CompanyName,
			&vacID, &vacTitle, &vacCity, &vacSalMin, &vacSalMax,
		)
		if err != nil {
			return nil, err
		}
		if vacID != nil {
			rec.Vacancy = &match.VacancySummary{
				ID:        *vacID,
				Title:     deref(vacTitle),
				City:      deref(vacCity),
				SalaryMin: vacSalMin,
				SalaryMax: vacSalMax,
			}
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListCreatedAfter pages through matches in (created_at, id) order. The id
// tiebreak keeps a page boundary from skipping rows sharing a timestamp.
func (r *PostgresMatchRepository) ListCreatedAfter(ctx context.Context, after match.Cursor, limit int) ([]match.Match, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db.Query(ctx,
		`SELECT id, seeker_id, employer_id, vacancy_id, created_at, expires_at
		 FROM matches
		 WHERE (created_at, id) > ($1, $2)
		 ORDER BY created_at ASC, id ASC
		 LIMIT $3`,
		after.CreatedAt, after.ID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]match.Match, 0)
	for rows.Next() {
		var m match.Match
		if err := rows.Scan(&m.ID, &m.SeekerID, &m.EmployerID, &m.VacancyID, &m.CreatedAt, &m.ExpiresAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresMatchRepository) CleanExpired(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT clean_expired_matches()`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
