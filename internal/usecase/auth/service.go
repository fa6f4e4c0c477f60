package auth

import (
	"context"
	"errors"
	"strings"

	"jobswipe/internal/domain/user"
	"jobswipe/internal/pkg/jwt"

	"go.uber.org/zap"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidToken = errors.New("invalid token")
	ErrInternal     = errors.New("internal error")
)

type Session struct {
	User         user.User
	AccessToken  string
	RefreshToken string
}

type AuthUsecase interface {
	SignIn(ctx context.Context, initData string) (Session, error)
	Refresh(ctx context.Context, refreshToken string) (Session, error)
}

type Service struct {
	users       user.Repository
	tokens      jwt.Service
	verifier    *InitDataVerifier
	devIdentity bool
	logger      *zap.Logger
}

func NewService(users user.Repository, tokens jwt.Service, verifier *InitDataVerifier, devIdentity bool, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{users: users, tokens: tokens, verifier: verifier, devIdentity: devIdentity, logger: logger}
}

// SignIn upserts the user behind initData and opens a session for it. Empty
// initData resolves to DevIdentity when the dev fallback is enabled.
func (s *Service) SignIn(ctx context.Context, initData string) (Session, error) {
	var identity user.Identity
	switch {
	case strings.TrimSpace(initData) == "" && s.devIdentity:
		identity = DevIdentity
	case strings.TrimSpace(initData) == "":
		return Session{}, ErrInvalidInput
	case s.verifier == nil:
		return Session{}, ErrInvalidInitData
	default:
		id, err := s.verifier.Verify(initData)
		if err != nil {
			return Session{}, err
		}
		identity = id
	}

	u, err := s.users.UpsertByTelegramID(ctx, identity)
	if err != nil {
		s.logger.Error("upsert user", zap.Int64("telegram_id", identity.TelegramID), zap.Error(err))
		return Session{}, ErrInternal
	}
	return s.issue(u)
}

func (s *Service) Refresh(ctx context.Context, refreshToken string) (Session, error) {
	claims, err := s.tokens.ValidateToken(strings.TrimSpace(refreshToken))
	if err != nil || !s.tokens.IsRefreshToken(claims) {
		return Session{}, ErrInvalidToken
	}

	u, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return Session{}, ErrInvalidToken
		}
		return Session{}, ErrInternal
	}
	return s.issue(u)
}

func (s *Service) issue(u user.User) (Session, error) {
	access, err := s.tokens.GenerateAccessToken(u.ID, u.TelegramID)
	if err != nil {
		return Session{}, ErrInternal
	}
	refresh, err := s.tokens.GenerateRefreshToken(u.ID, u.TelegramID)
	if err != nil {
		return Session{}, ErrInternal
	}
	return Session{User: u, AccessToken: access, RefreshToken: refresh}, nil
}
