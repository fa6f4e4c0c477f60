package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound       = errors.New("user not found")
	ErrRoleAlreadySet = errors.New("role already set")
)

type Repository interface {
	UpsertByTelegramID(ctx context.Context, id Identity) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, p ProfilePatch) (User, error)
	// AssignRole sets the role only when none is stored yet.
	AssignRole(ctx context.Context, id uuid.UUID, r Role) (User, error)
	SetOnboardingCompleted(ctx context.Context, id uuid.UUID) (User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
