package swipe

import (
	"context"
	"errors"
	"testing"
	"time"

	"jobswipe/internal/domain/swipe"
	"jobswipe/internal/domain/user"
	"jobswipe/internal/domain/vacancy"
	"jobswipe/internal/domain/validation"
	"jobswipe/internal/usecase"

	"github.com/google/uuid"
)

type mockSwipeRepo struct {
	created []swipe.Swipe
	seen    map[uuid.UUID]bool
}

func (m *mockSwipeRepo) Create(ctx context.Context, s swipe.Swipe) (swipe.Swipe, error) {
	if m.seen == nil {
		m.seen = map[uuid.UUID]bool{}
	}
	if m.seen[s.TargetID] {
		return swipe.Swipe{}, swipe.ErrAlreadySwiped
	}
	m.seen[s.TargetID] = true
	s.CreatedAt = time.Now()
	m.created = append(m.created, s)
	return s, nil
}
func (m *mockSwipeRepo) SwipedTargetIDs(context.Context, uuid.UUID) (map[uuid.UUID]struct{}, error) {
	return nil, nil
}

type mockUsers map[uuid.UUID]user.User

func (m mockUsers) UpsertByTelegramID(context.Context, user.Identity) (user.User, error) {
	return user.User{}, nil
}
func (m mockUsers) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	u, ok := m[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}
func (m mockUsers) UpdateProfile(context.Context, uuid.UUID, user.ProfilePatch) (user.User, error) {
	return user.User{}, nil
}
func (m mockUsers) AssignRole(context.Context, uuid.UUID, user.Role) (user.User, error) {
	return user.User{}, nil
}
func (m mockUsers) SetOnboardingCompleted(context.Context, uuid.UUID) (user.User, error) {
	return user.User{}, nil
}
func (m mockUsers) Delete(context.Context, uuid.UUID) error { return nil }

type mockVacancies map[uuid.UUID]vacancy.Vacancy

func (m mockVacancies) Create(ctx context.Context, v vacancy.Vacancy) (vacancy.Vacancy, error) {
	return v, nil
}
func (m mockVacancies) GetByID(ctx context.Context, id uuid.UUID) (vacancy.Vacancy, error) {
	v, ok := m[id]
	if !ok {
		return vacancy.Vacancy{}, vacancy.ErrNotFound
	}
	return v, nil
}
func (m mockVacancies) ListByEmployer(context.Context, uuid.UUID) ([]vacancy.Vacancy, error) {
	return nil, nil
}
func (m mockVacancies) CountByEmployer(context.Context, uuid.UUID) (int, error) { return 0, nil }
func (m mockVacancies) Update(ctx context.Context, v vacancy.Vacancy) (vacancy.Vacancy, error) {
	return v, nil
}
func (m mockVacancies) Delete(context.Context, uuid.UUID, uuid.UUID) error { return nil }

type mockDecks struct {
	advanced    []uuid.UUID
	invalidated int
}

func (m *mockDecks) AdvanceDeck(ctx context.Context, userID, targetID uuid.UUID) error {
	m.advanced = append(m.advanced, targetID)
	return nil
}
func (m *mockDecks) Invalidate(context.Context, uuid.UUID) { m.invalidated++ }

type mockCache struct {
	deleted []string
}

func (m *mockCache) GetJSON(context.Context, string, any) (bool, error) { return false, nil }
func (m *mockCache) SetJSON(context.Context, string, any, time.Duration) error {
	return nil
}
func (m *mockCache) Delete(ctx context.Context, keys ...string) error {
	m.deleted = append(m.deleted, keys...)
	return nil
}
func (m *mockCache) DeleteByPattern(context.Context, string) error { return nil }

type fixture struct {
	svc      *Service
	repo     *mockSwipeRepo
	decks    *mockDecks
	cache    *mockCache
	seeker   user.User
	employer user.User
	vac      vacancy.Vacancy
}

func newFixture() *fixture {
	sr, er := user.RoleSeeker, user.RoleEmployer
	f := &fixture{
		repo:     &mockSwipeRepo{},
		decks:    &mockDecks{},
		cache:    &mockCache{},
		seeker:   user.User{ID: uuid.New(), Role: &sr},
		employer: user.User{ID: uuid.New(), Role: &er},
	}
	f.vac = vacancy.Vacancy{ID: uuid.New(), EmployerID: f.employer.ID, IsActive: true}
	users := mockUsers{f.seeker.ID: f.seeker, f.employer.ID: f.employer}
	f.svc = NewService(f.repo, users, mockVacancies{f.vac.ID: f.vac}, f.decks, f.cache, nil)
	return f
}

func TestService_Record_LikeAdvancesAndInvalidates(t *testing.T) {
	f := newFixture()

	sw, err := f.svc.Record(context.Background(), f.seeker.ID, RecordInput{
		TargetID: f.vac.ID.String(), TargetType: "vacancy", Direction: "like",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if sw.Direction != swipe.Like || sw.SwiperID != f.seeker.ID {
		t.Fatalf("unexpected swipe %+v", sw)
	}
	if len(f.decks.advanced) != 1 || f.decks.advanced[0] != f.vac.ID || f.decks.invalidated != 1 {
		t.Fatalf("expected deck advance and target invalidation")
	}
	if len(f.cache.deleted) != 1 || f.cache.deleted[0] != usecase.MatchesCacheKey(f.seeker.ID) {
		t.Fatalf("expected match cache invalidated, got %v", f.cache.deleted)
	}
}

func TestService_Record_Duplicate(t *testing.T) {
	f := newFixture()
	in := RecordInput{TargetID: f.vac.ID.String(), TargetType: "vacancy", Direction: "dislike"}

	if _, err := f.svc.Record(context.Background(), f.seeker.ID, in); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := f.svc.Record(context.Background(), f.seeker.ID, in); !errors.Is(err, ErrAlreadySwiped) {
		t.Fatalf("expected ErrAlreadySwiped, got %v", err)
	}
}

func TestService_Record_RoleMustMatchTargetType(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Record(context.Background(), f.employer.ID, RecordInput{
		TargetID: f.vac.ID.String(), TargetType: "vacancy", Direction: "like",
	})
	if !errors.Is(err, ErrTargetTypeMismatch) {
		t.Fatalf("expected ErrTargetTypeMismatch, got %v", err)
	}
}

func TestService_Record_EmployerSwipesSeeker(t *testing.T) {
	f := newFixture()

	if _, err := f.svc.Record(context.Background(), f.employer.ID, RecordInput{
		TargetID: f.seeker.ID.String(), TargetType: "user", Direction: "like",
	}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	_, err := f.svc.Record(context.Background(), f.employer.ID, RecordInput{
		TargetID: f.employer.ID.String(), TargetType: "user", Direction: "like",
	})
	if !errors.Is(err, ErrTargetNotFound) {
		t.Fatalf("self swipe must be rejected, got %v", err)
	}
}

func TestService_Record_InvalidInput(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Record(context.Background(), f.seeker.ID, RecordInput{TargetID: "x", TargetType: "job", Direction: "super"})
	fields, ok := validation.As(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	for _, k := range []string{"target_id", "target_type", "direction"} {
		if _, ok := fields[k]; !ok {
			t.Fatalf("expected %s error, got %v", k, fields)
		}
	}
	if len(f.repo.created) != 0 {
		t.Fatalf("store must not be called")
	}
}

func TestService_Record_UnknownVacancy(t *testing.T) {
	f := newFixture()
	_, err := f.svc.Record(context.Background(), f.seeker.ID, RecordInput{
		TargetID: uuid.NewString(), TargetType: "vacancy", Direction: "like",
	})
	if !errors.Is(err, ErrTargetNotFound) {
		t.Fatalf("expected ErrTargetNotFound, got %v", err)
	}
}
