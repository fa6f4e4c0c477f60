package vacancy

import (
	"context"
	"errors"
	"time"

	"jobswipe/internal/domain/user"
	"jobswipe/internal/domain/vacancy"
	"jobswipe/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrNotEmployer = errors.New("only employers manage vacancies")
	ErrNotFound    = errors.New("vacancy not found")
	ErrForbidden   = errors.New("vacancy belongs to another employer")
	ErrInternal    = errors.New("internal error")
)

type VacancyUsecase interface {
	Create(ctx context.Context, employerID uuid.UUID, v vacancy.Vacancy) (vacancy.Vacancy, error)
	ListMine(ctx context.Context, employerID uuid.UUID) ([]vacancy.Vacancy, error)
	Get(ctx context.Context, viewerID, id uuid.UUID) (vacancy.Vacancy, error)
	Update(ctx context.Context, employerID, id uuid.UUID, p vacancy.Patch) (vacancy.Vacancy, error)
	Delete(ctx context.Context, employerID, id uuid.UUID) error
}

type Service struct {
	vacancies vacancy.Repository
	users     user.Repository
	cache     usecase.Cache
	cacheTTL  time.Duration
	logger    *zap.Logger
}

func NewService(vacancies vacancy.Repository, users user.Repository, cache usecase.Cache, cacheTTL time.Duration, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{vacancies: vacancies, users: users, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

func (s *Service) Create(ctx context.Context, employerID uuid.UUID, v vacancy.Vacancy) (vacancy.Vacancy, error) {
	if err := s.requireEmployer(ctx, employerID); err != nil {
		return vacancy.Vacancy{}, err
	}

	v = vacancy.Normalize(v)
	if err := vacancy.Validate(v); err != nil {
		return vacancy.Vacancy{}, err
	}
	v.ID = uuid.New()
	v.EmployerID = employerID
	v.IsActive = true

	created, err := s.vacancies.Create(ctx, v)
	if err != nil {
		s.logger.Error("create vacancy", zap.String("employer_id", employerID.String()), zap.Error(err))
		return vacancy.Vacancy{}, ErrInternal
	}
	s.invalidate(ctx, employerID)
	return created, nil
}

func (s *Service) ListMine(ctx context.Context, employerID uuid.UUID) ([]vacancy.Vacancy, error) {
	if err := s.requireEmployer(ctx, employerID); err != nil {
		return nil, err
	}

	key := usecase.EmployerVacanciesCacheKey(employerID)
	if s.cache != nil {
		var cached []vacancy.Vacancy
		if ok, err := s.cache.GetJSON(ctx, key, &cached); err == nil && ok {
			return cached, nil
		}
	}

	items, err := s.vacancies.ListByEmployer(ctx, employerID)
	if err != nil {
		s.logger.Error("list vacancies", zap.String("employer_id", employerID.String()), zap.Error(err))
		return nil, ErrInternal
	}
	if s.cache != nil {
		_ = s.cache.SetJSON(ctx, key, items, s.cacheTTL)
	}
	return items, nil
}

// Get hides inactive vacancies from everyone but their owner.
func (s *Service) Get(ctx context.Context, viewerID, id uuid.UUID) (vacancy.Vacancy, error) {
	v, err := s.vacancies.GetByID(ctx, id)
	if err != nil {
		return vacancy.Vacancy{}, s.mapRepoError("get vacancy", id, err)
	}
	if !v.IsActive && v.EmployerID != viewerID {
		return vacancy.Vacancy{}, ErrNotFound
	}
	return v, nil
}

func (s *Service) Update(ctx context.Context, employerID, id uuid.UUID, p vacancy.Patch) (vacancy.Vacancy, error) {
	current, err := s.owned(ctx, employerID, id)
	if err != nil {
		return vacancy.Vacancy{}, err
	}

	next := vacancy.Normalize(p.Apply(current))
	if err := vacancy.Validate(next); err != nil {
		return vacancy.Vacancy{}, err
	}
	if p.Empty() {
		return current, nil
	}

	updated, err := s.vacancies.Update(ctx, next)
	if err != nil {
		return vacancy.Vacancy{}, s.mapRepoError("update vacancy", id, err)
	}
	s.invalidate(ctx, employerID)
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, employerID, id uuid.UUID) error {
	if _, err := s.owned(ctx, employerID, id); err != nil {
		return err
	}
	if err := s.vacancies.Delete(ctx, id, employerID); err != nil {
		return s.mapRepoError("delete vacancy", id, err)
	}
	s.invalidate(ctx, employerID)
	return nil
}

func (s *Service) owned(ctx context.Context, employerID, id uuid.UUID) (vacancy.Vacancy, error) {
	if err := s.requireEmployer(ctx, employerID); err != nil {
		return vacancy.Vacancy{}, err
	}
	v, err := s.vacancies.GetByID(ctx, id)
	if err != nil {
		return vacancy.Vacancy{}, s.mapRepoError("get vacancy", id, err)
	}
	if v.EmployerID != employerID {
		return vacancy.Vacancy{}, ErrForbidden
	}
	return v, nil
}

func (s *Service) requireEmployer(ctx context.Context, userID uuid.UUID) error {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return ErrNotEmployer
		}
		s.logger.Error("load user", zap.String("user_id", userID.String()), zap.Error(err))
		return ErrInternal
	}
	if !u.HasRole(user.RoleEmployer) {
		return ErrNotEmployer
	}
	return nil
}

func (s *Service) invalidate(ctx context.Context, employerID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, usecase.EmployerVacanciesCacheKey(employerID)); err != nil {
		s.logger.Warn("invalidate vacancy list", zap.String("employer_id", employerID.String()), zap.Error(err))
	}
}

func (s *Service) mapRepoError(op string, id uuid.UUID, err error) error {
	if errors.Is(err, vacancy.ErrNotFound) {
		return ErrNotFound
	}
	s.logger.Error(op, zap.String("vacancy_id", id.String()), zap.Error(err))
	return ErrInternal
}
