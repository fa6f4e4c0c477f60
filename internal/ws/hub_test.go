package ws

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"jobswipe/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeTokens struct {
	users map[string]uuid.UUID
}

func (f fakeTokens) ValidateAccessToken(tok string) (jwt.Claims, error) {
	id, ok := f.users[tok]
	if !ok {
		return jwt.Claims{}, errors.New("bad token")
	}
	return jwt.Claims{UserID: id, TokenType: jwt.TokenTypeAccess}, nil
}

type testServer struct {
	hub    *Hub
	srv    *httptest.Server
	cancel context.CancelFunc
	done   chan struct{}
}

func startServer(t *testing.T, tokens fakeTokens) *testServer {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(nil)
	done := make(chan struct{})
	go func() {
		defer close(done)
		hub.Run(ctx)
	}()

	srv := httptest.NewServer(NewHandler(hub, tokens, nil).Mux())
	ts := &testServer{hub: hub, srv: srv, cancel: cancel, done: done}
	t.Cleanup(ts.stop)
	return ts
}

func (ts *testServer) stop() {
	ts.cancel()
	<-ts.done
	ts.srv.Close()
}

func (ts *testServer) dial(t *testing.T, token string) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.srv.URL, "http") + "/ws/matches?token=" + token
	return websocket.DefaultDialer.Dial(url, nil)
}

func waitForClients(t *testing.T, hub *Hub, userID uuid.UUID, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if hub.ClientCount(userID) == want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("expected %d clients for %s, got %d", want, userID, hub.ClientCount(userID))
}

func TestHub_NotifyUserReachesEveryConnectionOfThatUser(t *testing.T) {
	alice, bob := uuid.New(), uuid.New()
	ts := startServer(t, fakeTokens{users: map[string]uuid.UUID{"alice": alice, "bob": bob}})

	a1, _, err := ts.dial(t, "alice")
	if err != nil {
		t.Fatalf("dial a1: %v", err)
	}
	defer func() { _ = a1.Close() }()
	a2, _, err := ts.dial(t, "alice")
	if err != nil {
		t.Fatalf("dial a2: %v", err)
	}
	defer func() { _ = a2.Close() }()
	b, _, err := ts.dial(t, "bob")
	if err != nil {
		t.Fatalf("dial b: %v", err)
	}
	defer func() { _ = b.Close() }()

	waitForClients(t, ts.hub, alice, 2)
	waitForClients(t, ts.hub, bob, 1)

	ts.hub.NotifyUser(alice, []byte(`{"type":"match_created"}`))

	for i, conn := range []*websocket.Conn{a1, a2} {
		_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, msg, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("conn %d read: %v", i, err)
		}
		if string(msg) != `{"type":"match_created"}` {
			t.Fatalf("conn %d: unexpected message %s", i, msg)
		}
	}

	_ = b.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
	if _, _, err := b.ReadMessage(); err == nil {
		t.Fatalf("bob should not receive alice's message")
	}
}

func TestHandler_RejectsMissingOrBadToken(t *testing.T) {
	ts := startServer(t, fakeTokens{users: map[string]uuid.UUID{}})

	for _, tok := range []string{"", "nope"} {
		conn, res, err := ts.dial(t, tok)
		if err == nil {
			_ = conn.Close()
			t.Fatalf("token %q: expected handshake failure", tok)
		}
		if res == nil || res.StatusCode != http.StatusUnauthorized {
			t.Fatalf("token %q: expected 401, got %+v", tok, res)
		}
	}
}

func TestHub_DisconnectRemovesClient(t *testing.T) {
	alice := uuid.New()
	ts := startServer(t, fakeTokens{users: map[string]uuid.UUID{"alice": alice}})

	conn, _, err := ts.dial(t, "alice")
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	waitForClients(t, ts.hub, alice, 1)

	_ = conn.Close()
	waitForClients(t, ts.hub, alice, 0)
}

func TestHub_RegisterAfterStopFails(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(nil)
	done := make(chan struct{})
	go func() {
		defer close(done)
		hub.Run(ctx)
	}()
	cancel()
	<-done

	if hub.Register(&Client{userID: uuid.New(), send: make(chan []byte, 1)}) {
		t.Fatalf("expected register to fail on a stopped hub")
	}
	hub.NotifyUser(uuid.New(), []byte("x"))
}
