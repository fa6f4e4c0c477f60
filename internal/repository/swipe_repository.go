package repository

import (
	"context"
	"errors"

	"jobswipe/internal/database"
	"jobswipe/internal/domain/swipe"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type PostgresSwipeRepository struct {
	db database.DB
}

func NewPostgresSwipeRepository(db database.DB) *PostgresSwipeRepository {
	return &PostgresSwipeRepository{db: db}
}

func (r *PostgresSwipeRepository) Create(ctx context.Context, s swipe.Swipe) (swipe.Swipe, error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}

	row := r.db.QueryRow(ctx,
		`INSERT INTO swipes (id, swiper_id, target_id, target_type, direction)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (swiper_id, target_id) DO NOTHING
		 RETURNING id, swiper_id, target_id, target_type, direction, created_at`,
		s.ID, s.SwiperID, s.TargetID, string(s.TargetType), string(s.Direction),
	)

	var out swipe.Swipe
	var tt, dir string
	if err := row.Scan(&out.ID, &out.SwiperID, &out.TargetID, &tt, &dir, &out.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return swipe.Swipe{}, swipe.ErrAlreadySwiped
		}
		return swipe.Swipe{}, err
	}
	out.TargetType = swipe.TargetType(tt)
	out.Direction = swipe.Direction(dir)
	return out, nil
}

func (r *PostgresSwipeRepository) SwipedTargetIDs(ctx context.Context, swiperID uuid.UUID) (map[uuid.UUID]struct{}, error) {
	rows, err := r.db.Query(ctx, `SELECT target_id FROM swipes WHERE swiper_id = $1`, swiperID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[uuid.UUID]struct{})
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
