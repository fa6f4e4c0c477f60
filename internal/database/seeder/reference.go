package seeder

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"jobswipe/internal/database"

	"gopkg.in/yaml.v3"
)

//go:embed reference.yaml
var referenceYAML []byte

type ReferenceData struct {
	Cities        []string `yaml:"cities"`
	JobCategories []string `yaml:"job_categories"`
}

// ParseReference decodes the seed file, dropping blanks and duplicates.
func ParseReference(b []byte) (ReferenceData, error) {
	var rd ReferenceData
	if err := yaml.Unmarshal(b, &rd); err != nil {
		return ReferenceData{}, fmt.Errorf("parse reference data: %w", err)
	}
	rd.Cities = uniqueNonEmpty(rd.Cities)
	rd.JobCategories = uniqueNonEmpty(rd.JobCategories)
	return rd, nil
}

// ReferenceSeeder upserts cities and job categories. Data nil means the
// embedded reference.yaml.
type ReferenceSeeder struct {
	Data []byte
}

func (ReferenceSeeder) Name() string { return "reference" }

func (s ReferenceSeeder) Run(ctx context.Context, db database.DB) error {
	raw := s.Data
	if raw == nil {
		raw = referenceYAML
	}
	rd, err := ParseReference(raw)
	if err != nil {
		return err
	}

	if err := requireColumns(ctx, db, "cities", "id", "name"); err != nil {
		return err
	}
	if err := requireColumns(ctx, db, "job_categories", "id", "name"); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	for _, name := range rd.Cities {
		if _, err := tx.Exec(ctx, `INSERT INTO cities (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, name); err != nil {
			return err
		}
	}
	for _, name := range rd.JobCategories {
		if _, err := tx.Exec(ctx, `INSERT INTO job_categories (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, name); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func requireColumns(ctx context.Context, db database.DB, table string, columns ...string) error {
	rows, err := db.Query(
		ctx,
		`SELECT column_name FROM information_schema.columns WHERE table_schema='public' AND table_name=$1`,
		table,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	existing := map[string]struct{}{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return err
		}
		existing[c] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, col := range columns {
		if _, ok := existing[col]; !ok {
			return fmt.Errorf("schema mismatch: missing column %s.%s (run migrations first)", table, col)
		}
	}
	return nil
}

func uniqueNonEmpty(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
