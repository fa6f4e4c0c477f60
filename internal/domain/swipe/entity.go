package swipe

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

type TargetType string

const (
	TargetVacancy TargetType = "vacancy"
	TargetUser    TargetType = "user"
)

type Direction string

const (
	Like    Direction = "like"
	Dislike Direction = "dislike"
)

var (
	ErrInvalidTargetType = errors.New("invalid target type")
	ErrInvalidDirection  = errors.New("invalid direction")
	ErrAlreadySwiped     = errors.New("target already swiped")
)

func ParseTargetType(s string) (TargetType, error) {
	switch TargetType(strings.ToLower(strings.TrimSpace(s))) {
	case TargetVacancy:
		return TargetVacancy, nil
	case TargetUser:
		return TargetUser, nil
	default:
		return "", ErrInvalidTargetType
	}
}

func ParseDirection(s string) (Direction, error) {
	switch Direction(strings.ToLower(strings.TrimSpace(s))) {
	case Like:
		return Like, nil
	case Dislike:
		return Dislike, nil
	default:
		return "", ErrInvalidDirection
	}
}

// Swipe is an append-only decision; (SwiperID, TargetID) is unique.
type Swipe struct {
	ID         uuid.UUID
	SwiperID   uuid.UUID
	TargetID   uuid.UUID
	TargetType TargetType
	Direction  Direction
	CreatedAt  time.Time
}
