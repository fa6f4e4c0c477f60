package seeder

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"jobswipe/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"gopkg.in/yaml.v3"
)

//go:embed demo.yaml
var demoYAML []byte

type DemoVacancy struct {
	Title          string   `yaml:"title"`
	Description    string   `yaml:"description"`
	City           string   `yaml:"city"`
	SalaryMin      *int     `yaml:"salary_min"`
	SalaryMax      *int     `yaml:"salary_max"`
	RequiredSkills []string `yaml:"required_skills"`
}

type DemoEmployer struct {
	TelegramID         int64         `yaml:"telegram_id"`
	FirstName          string        `yaml:"first_name"`
	Username           string        `yaml:"username"`
	CompanyName        string        `yaml:"company_name"`
	CompanyDescription string        `yaml:"company_description"`
	City               string        `yaml:"city"`
	Vacancies          []DemoVacancy `yaml:"vacancies"`
}

type DemoData struct {
	Employers []DemoEmployer `yaml:"employers"`
}

// ParseDemo decodes and checks the demo file. Every employer needs a
// telegram id and every vacancy a title, a city and a sane salary range.
func ParseDemo(b []byte) (DemoData, error) {
	var dd DemoData
	if err := yaml.Unmarshal(b, &dd); err != nil {
		return DemoData{}, fmt.Errorf("parse demo data: %w", err)
	}
	seen := map[int64]struct{}{}
	for i, e := range dd.Employers {
		if e.TelegramID <= 0 {
			return DemoData{}, fmt.Errorf("employer %d: telegram_id required", i)
		}
		if _, ok := seen[e.TelegramID]; ok {
			return DemoData{}, fmt.Errorf("employer %d: duplicate telegram_id %d", i, e.TelegramID)
		}
		seen[e.TelegramID] = struct{}{}
		for j, v := range e.Vacancies {
			if strings.TrimSpace(v.Title) == "" || strings.TrimSpace(v.City) == "" {
				return DemoData{}, fmt.Errorf("employer %d vacancy %d: title and city required", i, j)
			}
			if v.SalaryMin != nil && v.SalaryMax != nil && *v.SalaryMin > *v.SalaryMax {
				return DemoData{}, fmt.Errorf("employer %d vacancy %d: salary_min above salary_max", i, j)
			}
			dd.Employers[i].Vacancies[j].RequiredSkills = uniqueNonEmpty(v.RequiredSkills)
		}
	}
	return dd, nil
}

// DemoSeeder creates onboarded employer accounts with a few vacancies so a
// fresh dev database has a deck to swipe. Rerunning it adds nothing new.
type DemoSeeder struct {
	Data []byte
}

func (DemoSeeder) Name() string { return "demo" }

func (s DemoSeeder) Run(ctx context.Context, db database.DB) error {
	raw := s.Data
	if raw == nil {
		raw = demoYAML
	}
	dd, err := ParseDemo(raw)
	if err != nil {
		return err
	}

	if err := requireColumns(ctx, db, "users",
		"id", "telegram_id", "username", "first_name", "role", "city",
		"company_name", "company_description", "onboarding_completed",
	); err != nil {
		return err
	}
	if err := requireColumns(ctx, db, "vacancies",
		"id", "employer_id", "title", "description", "city",
		"salary_min", "salary_max", "required_skills", "recruiter_name",
	); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	for _, e := range dd.Employers {
		var employerID uuid.UUID
		err := tx.QueryRow(ctx,
			`INSERT INTO users (
				telegram_id, username, first_name, role, city,
				company_name, company_description, onboarding_completed
			)
			VALUES ($1, NULLIF($2, ''), $3, 'employer', $4, $5, $6, true)
			ON CONFLICT (telegram_id) DO UPDATE SET telegram_id = EXCLUDED.telegram_id
			RETURNING id`,
			e.TelegramID, e.Username, e.FirstName, e.City, e.CompanyName, e.CompanyDescription,
		).Scan(&employerID)
		if err != nil {
			return fmt.Errorf("upsert employer %d: %w", e.TelegramID, err)
		}

		for _, v := range e.Vacancies {
			exists, err := vacancyExists(ctx, tx, employerID, v.Title)
			if err != nil {
				return err
			}
			if exists {
				continue
			}
			skills := v.RequiredSkills
			if skills == nil {
				skills = []string{}
			}
			if _, err := tx.Exec(ctx,
				`INSERT INTO vacancies (
					employer_id, title, description, city,
					salary_min, salary_max, required_skills, recruiter_name
				)
				VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''))`,
				employerID, v.Title, v.Description, v.City,
				v.SalaryMin, v.SalaryMax, skills, e.FirstName,
			); err != nil {
				return fmt.Errorf("insert vacancy %q: %w", v.Title, err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func vacancyExists(ctx context.Context, tx database.Tx, employerID uuid.UUID, title string) (bool, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx,
		`SELECT id FROM vacancies WHERE employer_id = $1 AND title = $2 LIMIT 1`,
		employerID, title,
	).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
