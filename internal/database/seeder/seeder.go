package seeder

import (
	"context"

	"jobswipe/internal/database"
)

type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}

func Defaults() []Seeder {
	return []Seeder{
		ReferenceSeeder{},
	}
}
