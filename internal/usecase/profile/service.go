package profile

import (
	"context"
	"errors"

	"jobswipe/internal/domain/user"
	"jobswipe/internal/domain/validation"
	"jobswipe/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrNotFound       = errors.New("user not found")
	ErrRoleAlreadySet = errors.New("role already set")
	ErrInternal       = errors.New("internal error")
)

type ProfileUsecase interface {
	Get(ctx context.Context, userID uuid.UUID) (user.User, error)
	Update(ctx context.Context, userID uuid.UUID, p user.ProfilePatch) (user.User, error)
	AssignRole(ctx context.Context, userID uuid.UUID, role string) (user.User, error)
	CompleteOnboarding(ctx context.Context, userID uuid.UUID) (user.User, error)
	Delete(ctx context.Context, userID uuid.UUID) error
}

type Service struct {
	users  user.Repository
	cache  usecase.Cache
	logger *zap.Logger
}

func NewService(users user.Repository, cache usecase.Cache, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{users: users, cache: cache, logger: logger}
}

func (s *Service) Get(ctx context.Context, userID uuid.UUID) (user.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return user.User{}, s.mapRepoError("get user", userID, err)
	}
	return u, nil
}

// Update validates the patch before anything reaches the store; a validation
// failure comes back as *validation.Error.
func (s *Service) Update(ctx context.Context, userID uuid.UUID, p user.ProfilePatch) (user.User, error) {
	p.Normalize()
	if err := p.Validate(); err != nil {
		return user.User{}, err
	}
	if p.Empty() {
		return s.Get(ctx, userID)
	}

	u, err := s.users.UpdateProfile(ctx, userID, p)
	if err != nil {
		return user.User{}, s.mapRepoError("update profile", userID, err)
	}
	return u, nil
}

func (s *Service) AssignRole(ctx context.Context, userID uuid.UUID, role string) (user.User, error) {
	r, err := user.ParseRole(role)
	if err != nil {
		errs := validation.Errors{}
		errs.Add("role", "must be seeker or employer")
		return user.User{}, errs.Err()
	}

	u, err := s.users.AssignRole(ctx, userID, r)
	if err != nil {
		if errors.Is(err, user.ErrRoleAlreadySet) {
			return u, ErrRoleAlreadySet
		}
		return user.User{}, s.mapRepoError("assign role", userID, err)
	}
	return u, nil
}

func (s *Service) CompleteOnboarding(ctx context.Context, userID uuid.UUID) (user.User, error) {
	u, err := s.users.SetOnboardingCompleted(ctx, userID)
	if err != nil {
		return user.User{}, s.mapRepoError("complete onboarding", userID, err)
	}
	return u, nil
}

// Delete removes the user row; the store cascades swipes, vacancies and
// matches. Cached views of the user are dropped as well.
func (s *Service) Delete(ctx context.Context, userID uuid.UUID) error {
	if err := s.users.Delete(ctx, userID); err != nil {
		return s.mapRepoError("delete user", userID, err)
	}
	if s.cache != nil {
		_ = s.cache.Delete(ctx,
			usecase.DeckCacheKey(userID),
			usecase.MatchesCacheKey(userID),
			usecase.EmployerVacanciesCacheKey(userID),
		)
		_ = s.cache.DeleteByPattern(ctx, usecase.TargetsCachePattern(userID))
	}
	return nil
}

func (s *Service) mapRepoError(op string, userID uuid.UUID, err error) error {
	if errors.Is(err, user.ErrNotFound) {
		return ErrNotFound
	}
	s.logger.Error(op, zap.String("user_id", userID.String()), zap.Error(err))
	return ErrInternal
}
