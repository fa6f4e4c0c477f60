package swipe

import (
	"context"
	"errors"

	"jobswipe/internal/domain/swipe"
	"jobswipe/internal/domain/target"
	"jobswipe/internal/domain/user"
	"jobswipe/internal/domain/vacancy"
	"jobswipe/internal/domain/validation"
	"jobswipe/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrRoleRequired       = errors.New("role not chosen")
	ErrTargetTypeMismatch = errors.New("target type does not match role")
	ErrTargetNotFound     = errors.New("target not found")
	ErrAlreadySwiped      = errors.New("target already swiped")
	ErrInternal           = errors.New("internal error")
)

type RecordInput struct {
	TargetID   string
	TargetType string
	Direction  string
}

type SwipeUsecase interface {
	Record(ctx context.Context, swiperID uuid.UUID, in RecordInput) (swipe.Swipe, error)
}

// deckSession is the part of the target usecase a swipe touches.
type deckSession interface {
	AdvanceDeck(ctx context.Context, userID, targetID uuid.UUID) error
	Invalidate(ctx context.Context, userID uuid.UUID)
}

type Service struct {
	swipes    swipe.Repository
	users     user.Repository
	vacancies vacancy.Repository
	decks     deckSession
	cache     usecase.Cache
	logger    *zap.Logger
}

func NewService(swipes swipe.Repository, users user.Repository, vacancies vacancy.Repository, decks deckSession, cache usecase.Cache, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{swipes: swipes, users: users, vacancies: vacancies, decks: decks, cache: cache, logger: logger}
}

// Record appends the decision. Match creation is left to the store; the
// caller learns about a match through the match feed only.
func (s *Service) Record(ctx context.Context, swiperID uuid.UUID, in RecordInput) (swipe.Swipe, error) {
	sw, err := parse(in)
	if err != nil {
		return swipe.Swipe{}, err
	}
	sw.SwiperID = swiperID

	swiper, err := s.users.GetByID(ctx, swiperID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return swipe.Swipe{}, ErrRoleRequired
		}
		s.logger.Error("load swiper", zap.String("user_id", swiperID.String()), zap.Error(err))
		return swipe.Swipe{}, ErrInternal
	}
	if swiper.Role == nil {
		return swipe.Swipe{}, ErrRoleRequired
	}
	if target.TypeFor(*swiper.Role) != sw.TargetType {
		return swipe.Swipe{}, ErrTargetTypeMismatch
	}
	if err := s.checkTarget(ctx, swiperID, sw); err != nil {
		return swipe.Swipe{}, err
	}

	created, err := s.swipes.Create(ctx, sw)
	if err != nil {
		if errors.Is(err, swipe.ErrAlreadySwiped) {
			return swipe.Swipe{}, ErrAlreadySwiped
		}
		s.logger.Error("record swipe", zap.String("user_id", swiperID.String()), zap.Error(err))
		return swipe.Swipe{}, ErrInternal
	}

	s.afterSwipe(ctx, created)
	return created, nil
}

func parse(in RecordInput) (swipe.Swipe, error) {
	errs := validation.Errors{}

	id, err := uuid.Parse(in.TargetID)
	if err != nil || id == uuid.Nil {
		errs.Add("target_id", "must be a valid id")
	}
	tt, err := swipe.ParseTargetType(in.TargetType)
	if err != nil {
		errs.Add("target_type", "must be vacancy or user")
	}
	dir, err := swipe.ParseDirection(in.Direction)
	if err != nil {
		errs.Add("direction", "must be like or dislike")
	}
	if err := errs.Err(); err != nil {
		return swipe.Swipe{}, err
	}
	return swipe.Swipe{ID: uuid.New(), TargetID: id, TargetType: tt, Direction: dir}, nil
}

// checkTarget rejects targets that could never appear in the swiper's deck.
func (s *Service) checkTarget(ctx context.Context, swiperID uuid.UUID, sw swipe.Swipe) error {
	switch sw.TargetType {
	case swipe.TargetVacancy:
		v, err := s.vacancies.GetByID(ctx, sw.TargetID)
		if err != nil {
			if errors.Is(err, vacancy.ErrNotFound) {
				return ErrTargetNotFound
			}
			s.logger.Error("load target vacancy", zap.String("target_id", sw.TargetID.String()), zap.Error(err))
			return ErrInternal
		}
		if !v.IsActive || v.EmployerID == swiperID {
			return ErrTargetNotFound
		}
	case swipe.TargetUser:
		if sw.TargetID == swiperID {
			return ErrTargetNotFound
		}
		u, err := s.users.GetByID(ctx, sw.TargetID)
		if err != nil {
			if errors.Is(err, user.ErrNotFound) {
				return ErrTargetNotFound
			}
			s.logger.Error("load target user", zap.String("target_id", sw.TargetID.String()), zap.Error(err))
			return ErrInternal
		}
		if !u.HasRole(user.RoleSeeker) {
			return ErrTargetNotFound
		}
	}
	return nil
}

func (s *Service) afterSwipe(ctx context.Context, sw swipe.Swipe) {
	if s.decks != nil {
		s.decks.Invalidate(ctx, sw.SwiperID)
		if err := s.decks.AdvanceDeck(ctx, sw.SwiperID, sw.TargetID); err != nil {
			s.logger.Warn("advance deck", zap.String("user_id", sw.SwiperID.String()), zap.Error(err))
		}
	}
	if s.cache != nil {
		if err := s.cache.Delete(ctx, usecase.MatchesCacheKey(sw.SwiperID)); err != nil {
			s.logger.Warn("invalidate matches", zap.String("user_id", sw.SwiperID.String()), zap.Error(err))
		}
	}
}
