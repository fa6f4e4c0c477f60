package swipe

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// Create returns ErrAlreadySwiped when the pair exists.
	Create(ctx context.Context, s Swipe) (Swipe, error)
	SwipedTargetIDs(ctx context.Context, swiperID uuid.UUID) (map[uuid.UUID]struct{}, error)
}
