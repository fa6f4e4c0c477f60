package auth

import (
	"errors"
	"strings"
	"time"

	"jobswipe/internal/domain/user"

	initdata "github.com/telegram-mini-apps/init-data-golang"
)

var (
	ErrInvalidInitData = errors.New("invalid init data")
	ErrInitDataExpired = errors.New("init data expired")
)

// DevIdentity stands in for the platform user when no launch data exists.
var DevIdentity = user.Identity{
	TelegramID: 1,
	Username:   "dev_user",
	FirstName:  "Dev",
	LastName:   "User",
}

// InitDataVerifier checks the signed launch parameters a Telegram Mini App
// receives and extracts the user from them. A zero maxAge skips the
// auth_date age check.
type InitDataVerifier struct {
	botToken string
	maxAge   time.Duration
}

func NewInitDataVerifier(botToken string, maxAge time.Duration) *InitDataVerifier {
	return &InitDataVerifier{botToken: botToken, maxAge: maxAge}
}

func (v *InitDataVerifier) Verify(raw string) (user.Identity, error) {
	raw = strings.TrimSpace(raw)
	if err := initdata.Validate(raw, v.botToken, v.maxAge); err != nil {
		if errors.Is(err, initdata.ErrExpired) {
			return user.Identity{}, ErrInitDataExpired
		}
		return user.Identity{}, ErrInvalidInitData
	}

	data, err := initdata.Parse(raw)
	if err != nil || data.User.ID <= 0 {
		return user.Identity{}, ErrInvalidInitData
	}

	return user.Identity{
		TelegramID: data.User.ID,
		Username:   data.User.Username,
		FirstName:  data.User.FirstName,
		LastName:   data.User.LastName,
		PhotoURL:   data.User.PhotoURL,
	}, nil
}
