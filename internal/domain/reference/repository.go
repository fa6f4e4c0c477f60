package reference

import "context"

type Repository interface {
	Cities(ctx context.Context) ([]City, error)
	JobCategories(ctx context.Context) ([]JobCategory, error)
}
