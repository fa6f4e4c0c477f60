package target

import (
	"context"

	"jobswipe/internal/domain/user"
	"jobswipe/internal/domain/vacancy"

	"github.com/google/uuid"
)

// Source runs the stored filter procedures. Results already exclude the
// viewer's own rows and everything the viewer swiped at query time.
type Source interface {
	VacanciesForSeeker(ctx context.Context, seekerID uuid.UUID, f Filter) ([]vacancy.Vacancy, error)
	SeekersForEmployer(ctx context.Context, employerID uuid.UUID, f Filter) ([]user.User, error)
}
