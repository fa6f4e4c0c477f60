package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"jobswipe/internal/domain/user"
	"jobswipe/internal/pkg/jwt"

	"github.com/google/uuid"
)

type mockUserRepo struct {
	upserted []user.Identity
	byID     map[uuid.UUID]user.User
	err      error
}

func (m *mockUserRepo) UpsertByTelegramID(ctx context.Context, id user.Identity) (user.User, error) {
	if m.err != nil {
		return user.User{}, m.err
	}
	m.upserted = append(m.upserted, id)
	u := user.User{ID: uuid.New(), TelegramID: id.TelegramID, FirstName: id.FirstName}
	if m.byID == nil {
		m.byID = map[uuid.UUID]user.User{}
	}
	m.byID[u.ID] = u
	return u, nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (m *mockUserRepo) UpdateProfile(context.Context, uuid.UUID, user.ProfilePatch) (user.User, error) {
	return user.User{}, nil
}
func (m *mockUserRepo) AssignRole(context.Context, uuid.UUID, user.Role) (user.User, error) {
	return user.User{}, nil
}
func (m *mockUserRepo) SetOnboardingCompleted(context.Context, uuid.UUID) (user.User, error) {
	return user.User{}, nil
}
func (m *mockUserRepo) Delete(context.Context, uuid.UUID) error { return nil }

func newTokens() *jwt.HMACService {
	return jwt.NewHMACService("a", "r", time.Hour, 24*time.Hour)
}

func TestService_SignIn_DevIdentity(t *testing.T) {
	repo := &mockUserRepo{}
	svc := NewService(repo, newTokens(), nil, true, nil)

	sess, err := svc.SignIn(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(repo.upserted) != 1 || repo.upserted[0].TelegramID != 1 {
		t.Fatalf("expected dev identity upsert, got %+v", repo.upserted)
	}
	if sess.AccessToken == "" || sess.RefreshToken == "" {
		t.Fatalf("expected tokens")
	}
}

func TestService_SignIn_EmptyWithoutDevIdentity(t *testing.T) {
	svc := NewService(&mockUserRepo{}, newTokens(), NewInitDataVerifier(testBotToken, time.Hour), false, nil)
	if _, err := svc.SignIn(context.Background(), "  "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestService_SignIn_VerifiedInitData(t *testing.T) {
	repo := &mockUserRepo{}
	svc := NewService(repo, newTokens(), NewInitDataVerifier(testBotToken, time.Hour), false, nil)
	data := signedInitData(t, testBotToken, time.Now(), `{"id":555,"first_name":"Анна"}`)

	sess, err := svc.SignIn(context.Background(), data)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if sess.User.TelegramID != 555 {
		t.Fatalf("unexpected user %+v", sess.User)
	}
}

func TestService_SignIn_RepoFailureIsInternal(t *testing.T) {
	svc := NewService(&mockUserRepo{err: errors.New("db down")}, newTokens(), nil, true, nil)
	if _, err := svc.SignIn(context.Background(), ""); !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
}

func TestService_Refresh(t *testing.T) {
	repo := &mockUserRepo{}
	tokens := newTokens()
	svc := NewService(repo, tokens, nil, true, nil)

	sess, err := svc.SignIn(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := svc.Refresh(context.Background(), sess.AccessToken); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("access token must not refresh, got %v", err)
	}
	next, err := svc.Refresh(context.Background(), sess.RefreshToken)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if next.User.ID != sess.User.ID {
		t.Fatalf("expected same user")
	}
}
