package reference

import (
	"context"
	"errors"
	"strings"
	"time"

	"jobswipe/internal/domain/reference"
	"jobswipe/internal/usecase"

	"go.uber.org/zap"
)

var ErrInternal = errors.New("internal error")

type ReferenceUsecase interface {
	Cities(ctx context.Context, q string) ([]reference.City, error)
	JobCategories(ctx context.Context) ([]reference.JobCategory, error)
}

type Service struct {
	repo     reference.Repository
	cache    usecase.Cache
	cacheTTL time.Duration
	logger   *zap.Logger
}

func NewService(repo reference.Repository, cache usecase.Cache, cacheTTL time.Duration, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

// Cities returns every city whose name contains q, ignoring case.
func (s *Service) Cities(ctx context.Context, q string) ([]reference.City, error) {
	var all []reference.City
	if !s.cached(ctx, usecase.CitiesCacheKey, &all) {
		items, err := s.repo.Cities(ctx)
		if err != nil {
			s.logger.Error("list cities", zap.Error(err))
			return nil, ErrInternal
		}
		all = items
		s.store(ctx, usecase.CitiesCacheKey, all)
	}

	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return all, nil
	}
	out := make([]reference.City, 0)
	for _, c := range all {
		if strings.Contains(strings.ToLower(c.Name), q) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *Service) JobCategories(ctx context.Context) ([]reference.JobCategory, error) {
	var all []reference.JobCategory
	if s.cached(ctx, usecase.JobCategoriesCacheKey, &all) {
		return all, nil
	}
	items, err := s.repo.JobCategories(ctx)
	if err != nil {
		s.logger.Error("list job categories", zap.Error(err))
		return nil, ErrInternal
	}
	s.store(ctx, usecase.JobCategoriesCacheKey, items)
	return items, nil
}

func (s *Service) cached(ctx context.Context, key string, out any) bool {
	if s.cache == nil {
		return false
	}
	ok, err := s.cache.GetJSON(ctx, key, out)
	return err == nil && ok
}

func (s *Service) store(ctx context.Context, key string, v any) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetJSON(ctx, key, v, s.cacheTTL); err != nil {
		s.logger.Warn("cache reference data", zap.String("key", key), zap.Error(err))
	}
}
