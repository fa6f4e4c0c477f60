package dto

import (
	"time"

	"jobswipe/internal/domain/swipe"

	"github.com/google/uuid"
)

type CreateSwipeRequest struct {
	TargetID   string `json:"target_id" validate:"required"`
	TargetType string `json:"target_type" validate:"required"`
	Direction  string `json:"direction" validate:"required"`
}

type SwipeResponse struct {
	ID         uuid.UUID `json:"id"`
	TargetID   uuid.UUID `json:"target_id"`
	TargetType string    `json:"target_type"`
	Direction  string    `json:"direction"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewSwipeResponse(s swipe.Swipe) SwipeResponse {
	return SwipeResponse{
		ID:         s.ID,
		TargetID:   s.TargetID,
		TargetType: string(s.TargetType),
		Direction:  string(s.Direction),
		CreatedAt:  s.CreatedAt,
	}
}
