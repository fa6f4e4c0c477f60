package repository

import (
	"context"

	"jobswipe/internal/database"
	"jobswipe/internal/domain/reference"
)

type PostgresReferenceRepository struct {
	db database.DB
}

func NewPostgresReferenceRepository(db database.DB) *PostgresReferenceRepository {
	return &PostgresReferenceRepository{db: db}
}

func (r *PostgresReferenceRepository) Cities(ctx context.Context) ([]reference.City, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM cities ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]reference.City, 0)
	for rows.Next() {
		var c reference.City
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PostgresReferenceRepository) JobCategories(ctx context.Context) ([]reference.JobCategory, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM job_categories ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]reference.JobCategory, 0)
	for rows.Next() {
		var c reference.JobCategory
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
