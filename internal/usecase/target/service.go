package target

import (
	"context"
	"errors"
	"time"

	"jobswipe/internal/domain/swipe"
	"jobswipe/internal/domain/target"
	"jobswipe/internal/domain/user"
	"jobswipe/internal/domain/vacancy"
	"jobswipe/internal/pkg/retry"
	"jobswipe/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

var (
	ErrRoleRequired = errors.New("role not chosen")
	ErrUnavailable  = errors.New("targets unavailable")
	ErrInternal     = errors.New("internal error")
)

// Calls to action shown on an exhausted employer deck.
const (
	ActionCreateVacancy   = "create_vacancy"
	ActionManageVacancies = "manage_vacancies"
)

type DeckView struct {
	State        target.State
	Index        int
	Total        int
	Current      *target.Target
	CallToAction string
}

type TargetUsecase interface {
	List(ctx context.Context, userID uuid.UUID, f target.Filter) ([]target.Target, error)
	Deck(ctx context.Context, userID uuid.UUID, f target.Filter) (DeckView, error)
	AdvanceDeck(ctx context.Context, userID, targetID uuid.UUID) error
	Invalidate(ctx context.Context, userID uuid.UUID)
}

type Options struct {
	CacheTTL time.Duration
	Retry    retry.Policy
	// Retryable classifies store errors; nil retries everything.
	Retryable func(error) bool
}

type Service struct {
	source    target.Source
	users     user.Repository
	swipes    swipe.Repository
	vacancies vacancy.Repository
	cache     usecase.Cache
	opts      Options
	logger    *zap.Logger

	group singleflight.Group
}

func NewService(source target.Source, users user.Repository, swipes swipe.Repository, vacancies vacancy.Repository, cache usecase.Cache, opts Options, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Retry.Attempts <= 0 {
		opts.Retry = retry.Default
	}
	return &Service{
		source:    source,
		users:     users,
		swipes:    swipes,
		vacancies: vacancies,
		cache:     cache,
		opts:      opts,
		logger:    logger,
	}
}

// List returns every target matching f for the user, minus anything the user
// already swiped and anything the user owns.
func (s *Service) List(ctx context.Context, userID uuid.UUID, f target.Filter) ([]target.Target, error) {
	u, f, err := s.prepare(ctx, userID, f)
	if err != nil {
		return nil, err
	}
	return s.list(ctx, u, f)
}

func (s *Service) prepare(ctx context.Context, userID uuid.UUID, f target.Filter) (user.User, target.Filter, error) {
	f = f.Normalize()
	if err := f.Validate(); err != nil {
		return user.User{}, f, err
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, f, ErrRoleRequired
		}
		s.logger.Error("load user", zap.String("user_id", userID.String()), zap.Error(err))
		return user.User{}, f, ErrInternal
	}
	if u.Role == nil {
		return user.User{}, f, ErrRoleRequired
	}
	return u, f, nil
}

func (s *Service) list(ctx context.Context, u user.User, f target.Filter) ([]target.Target, error) {
	key := usecase.TargetsCacheKey(u.ID, f.Key())
	if s.cache != nil {
		var cached []target.Target
		if ok, err := s.cache.GetJSON(ctx, key, &cached); err == nil && ok {
			return cached, nil
		}
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		fetchCtx := context.WithoutCancel(ctx)
		items, err := s.fetch(fetchCtx, u, f)
		if err != nil {
			return nil, err
		}
		if s.cache != nil {
			if err := s.cache.SetJSON(fetchCtx, key, items, s.opts.CacheTTL); err != nil {
				s.logger.Warn("cache targets", zap.String("key", key), zap.Error(err))
			}
		}
		return items, nil
	})
	if err != nil {
		s.logger.Error("fetch targets", zap.String("user_id", u.ID.String()), zap.Error(err))
		return nil, ErrUnavailable
	}
	return v.([]target.Target), nil
}

func (s *Service) fetch(ctx context.Context, u user.User, f target.Filter) ([]target.Target, error) {
	var items []target.Target
	err := retry.Do(ctx, s.opts.Retry, s.opts.Retryable, func(ctx context.Context) error {
		items = items[:0]
		if u.HasRole(user.RoleEmployer) {
			seekers, err := s.source.SeekersForEmployer(ctx, u.ID, f)
			if err != nil {
				return err
			}
			for _, sk := range seekers {
				items = append(items, target.FromSeeker(sk))
			}
			return nil
		}

		vacancies, err := s.source.VacanciesForSeeker(ctx, u.ID, f)
		if err != nil {
			return err
		}
		for _, v := range vacancies {
			items = append(items, target.FromVacancy(v))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	swiped, err := s.swipes.SwipedTargetIDs(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	return target.Exclude(items, u.ID, swiped), nil
}

// Deck resumes the user's swipe session. It is rebuilt when none is stored,
// the filter changed or the stored one ran out.
func (s *Service) Deck(ctx context.Context, userID uuid.UUID, f target.Filter) (DeckView, error) {
	u, f, err := s.prepare(ctx, userID, f)
	if err != nil {
		return DeckView{}, err
	}

	filterKey := f.Key()
	deck, ok := s.loadDeck(ctx, userID)
	if !ok || deck.FilterKey != filterKey || deck.State() == target.StateExhausted {
		items, err := s.list(ctx, u, f)
		if err != nil {
			return DeckView{}, err
		}
		deck = target.NewDeck(filterKey, items)
		s.saveDeck(ctx, userID, deck)
	}

	view := DeckView{State: deck.State(), Index: deck.Index, Total: len(deck.Items)}
	if cur, ok := deck.Current(); ok {
		view.Current = &cur
	}
	if view.State == target.StateExhausted && u.HasRole(user.RoleEmployer) {
		view.CallToAction = s.employerAction(ctx, userID)
	}
	return view, nil
}

// AdvanceDeck moves the stored session past targetID, if one is stored.
func (s *Service) AdvanceDeck(ctx context.Context, userID, targetID uuid.UUID) error {
	deck, ok := s.loadDeck(ctx, userID)
	if !ok {
		return nil
	}
	if deck.Advance(targetID) {
		s.saveDeck(ctx, userID, deck)
	}
	return nil
}

// Invalidate drops every cached target list of the user.
func (s *Service) Invalidate(ctx context.Context, userID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPattern(ctx, usecase.TargetsCachePattern(userID)); err != nil {
		s.logger.Warn("invalidate targets", zap.String("user_id", userID.String()), zap.Error(err))
	}
}

func (s *Service) employerAction(ctx context.Context, employerID uuid.UUID) string {
	n, err := s.vacancies.CountByEmployer(ctx, employerID)
	if err != nil {
		s.logger.Warn("count vacancies", zap.String("employer_id", employerID.String()), zap.Error(err))
		return ActionManageVacancies
	}
	if n == 0 {
		return ActionCreateVacancy
	}
	return ActionManageVacancies
}

func (s *Service) loadDeck(ctx context.Context, userID uuid.UUID) (target.Deck, bool) {
	if s.cache == nil {
		return target.Deck{}, false
	}
	var d target.Deck
	ok, err := s.cache.GetJSON(ctx, usecase.DeckCacheKey(userID), &d)
	if err != nil || !ok || !d.Loaded {
		return target.Deck{}, false
	}
	return d, true
}

func (s *Service) saveDeck(ctx context.Context, userID uuid.UUID, d target.Deck) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetJSON(ctx, usecase.DeckCacheKey(userID), d, s.opts.CacheTTL); err != nil {
		s.logger.Warn("save deck", zap.String("user_id", userID.String()), zap.Error(err))
	}
}
