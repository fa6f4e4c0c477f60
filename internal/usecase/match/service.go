package match

import (
	"context"
	"errors"
	"time"

	"jobswipe/internal/domain/match"
	"jobswipe/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrInternal = errors.New("internal error")

type MatchUsecase interface {
	List(ctx context.Context, userID uuid.UUID) ([]match.View, error)
	Invalidate(ctx context.Context, userIDs ...uuid.UUID)
}

type Service struct {
	matches  match.Repository
	cache    usecase.Cache
	cacheTTL time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

func NewService(matches match.Repository, cache usecase.Cache, cacheTTL time.Duration, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{matches: matches, cache: cache, cacheTTL: cacheTTL, logger: logger, now: time.Now}
}

// List returns the user's matches newest first. Records may come from the
// cache; expiry is always derived against the current clock.
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]match.View, error) {
	records, err := s.records(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	out := make([]match.View, 0, len(records))
	for _, r := range records {
		out = append(out, match.NewView(r, now))
	}
	return out, nil
}

func (s *Service) records(ctx context.Context, userID uuid.UUID) ([]match.Record, error) {
	key := usecase.MatchesCacheKey(userID)
	if s.cache != nil {
		var cached []match.Record
		if ok, err := s.cache.GetJSON(ctx, key, &cached); err == nil && ok {
			return cached, nil
		}
	}

	records, err := s.matches.ListForUser(ctx, userID)
	if err != nil {
		s.logger.Error("list matches", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, ErrInternal
	}
	if s.cache != nil {
		_ = s.cache.SetJSON(ctx, key, records, s.cacheTTL)
	}
	return records, nil
}

func (s *Service) Invalidate(ctx context.Context, userIDs ...uuid.UUID) {
	if s.cache == nil || len(userIDs) == 0 {
		return
	}
	keys := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		keys = append(keys, usecase.MatchesCacheKey(id))
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		s.logger.Warn("invalidate matches", zap.Strings("keys", keys), zap.Error(err))
	}
}
