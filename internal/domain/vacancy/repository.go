package vacancy

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, v Vacancy) (Vacancy, error)
	GetByID(ctx context.Context, id uuid.UUID) (Vacancy, error)
	ListByEmployer(ctx context.Context, employerID uuid.UUID) ([]Vacancy, error)
	CountByEmployer(ctx context.Context, employerID uuid.UUID) (int, error)
	// Update writes the editable columns of v for the row owned by v.EmployerID.
	Update(ctx context.Context, v Vacancy) (Vacancy, error)
	Delete(ctx context.Context, id, employerID uuid.UUID) error
}
