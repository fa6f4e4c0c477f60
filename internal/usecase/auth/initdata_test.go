package auth

import (
	"errors"
	"net/url"
	"strconv"
	"testing"
	"time"

	initdata "github.com/telegram-mini-apps/init-data-golang"
)

const testBotToken = "123456:test-token"

func signedInitData(t *testing.T, botToken string, authDate time.Time, userJSON string) string {
	t.Helper()
	payload := map[string]string{"query_id": "AAH", "user": userJSON}

	values := url.Values{}
	for k, v := range payload {
		values.Set(k, v)
	}
	values.Set("auth_date", strconv.FormatInt(authDate.Unix(), 10))
	values.Set("hash", initdata.Sign(payload, botToken, authDate))
	return values.Encode()
}

func TestInitDataVerifier_Valid(t *testing.T) {
	v := NewInitDataVerifier(testBotToken, time.Hour)
	data := signedInitData(t, testBotToken, time.Now().Add(-time.Minute), `{"id":777,"first_name":"Иван","last_name":"Петров","username":"ivan"}`)

	id, err := v.Verify(data)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if id.TelegramID != 777 || id.FirstName != "Иван" || id.Username != "ivan" {
		t.Fatalf("unexpected identity %+v", id)
	}
}

func TestInitDataVerifier_WrongToken(t *testing.T) {
	v := NewInitDataVerifier(testBotToken, time.Hour)
	data := signedInitData(t, "other:token", time.Now(), `{"id":777,"first_name":"A"}`)

	if _, err := v.Verify(data); !errors.Is(err, ErrInvalidInitData) {
		t.Fatalf("expected ErrInvalidInitData, got %v", err)
	}
}

func TestInitDataVerifier_Tampered(t *testing.T) {
	v := NewInitDataVerifier(testBotToken, time.Hour)
	data := signedInitData(t, testBotToken, time.Now(), `{"id":777,"first_name":"A"}`)
	values, _ := url.ParseQuery(data)
	values.Set("user", `{"id":1,"first_name":"A"}`)

	if _, err := v.Verify(values.Encode()); !errors.Is(err, ErrInvalidInitData) {
		t.Fatalf("expected ErrInvalidInitData, got %v", err)
	}
}

func TestInitDataVerifier_Expired(t *testing.T) {
	v := NewInitDataVerifier(testBotToken, time.Hour)
	data := signedInitData(t, testBotToken, time.Now().Add(-2*time.Hour), `{"id":777,"first_name":"A"}`)

	if _, err := v.Verify(data); !errors.Is(err, ErrInitDataExpired) {
		t.Fatalf("expected ErrInitDataExpired, got %v", err)
	}
}

func TestInitDataVerifier_MissingHash(t *testing.T) {
	v := NewInitDataVerifier(testBotToken, time.Hour)
	raw := "auth_date=" + strconv.FormatInt(time.Now().Unix(), 10) + "&user=%7B%22id%22%3A1%7D"
	if _, err := v.Verify(raw); !errors.Is(err, ErrInvalidInitData) {
		t.Fatalf("expected ErrInvalidInitData, got %v", err)
	}
}

func TestInitDataVerifier_MissingUser(t *testing.T) {
	v := NewInitDataVerifier(testBotToken, time.Hour)
	data := signedInitData(t, testBotToken, time.Now(), `{"first_name":"A"}`)

	if _, err := v.Verify(data); !errors.Is(err, ErrInvalidInitData) {
		t.Fatalf("expected ErrInvalidInitData, got %v", err)
	}
}

func TestInitDataVerifier_ZeroMaxAgeSkipsExpiry(t *testing.T) {
	v := NewInitDataVerifier(testBotToken, 0)
	data := signedInitData(t, testBotToken, time.Now().Add(-72*time.Hour), `{"id":5,"first_name":"A"}`)

	id, err := v.Verify(data)
	if err != nil || id.TelegramID != 5 {
		t.Fatalf("expected identity 5, got %+v (%v)", id, err)
	}
}
