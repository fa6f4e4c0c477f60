package match

import (
	"bytes"
	"context"
	"time"

	"github.com/google/uuid"
)

// Cursor is a position in (created_at, id) order. Matches sharing a
// timestamp are told apart by id.
type Cursor struct {
	CreatedAt time.Time
	ID        uuid.UUID
}

func CursorOf(m Match) Cursor {
	return Cursor{CreatedAt: m.CreatedAt, ID: m.ID}
}

// Before reports whether m sorts strictly after c.
func (c Cursor) Before(m Match) bool {
	if !m.CreatedAt.Equal(c.CreatedAt) {
		return m.CreatedAt.After(c.CreatedAt)
	}
	return bytes.Compare(m.ID[:], c.ID[:]) > 0
}

type Repository interface {
	// ListForUser returns matches of userID newest first.
	ListForUser(ctx context.Context, userID uuid.UUID) ([]Record, error)
	// ListCreatedAfter returns matches ordered by (created_at, id) that sort
	// strictly after the cursor.
	ListCreatedAfter(ctx context.Context, after Cursor, limit int) ([]Match, error)
	CleanExpired(ctx context.Context) (int, error)
}
