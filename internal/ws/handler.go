package ws

import (
	"net/http"
	"strings"

	"jobswipe/internal/pkg/jwt"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type TokenValidator interface {
	ValidateAccessToken(tokenString string) (jwt.Claims, error)
}

// Handler upgrades GET /ws/matches?token=<access jwt> into a push channel
// for the token's user.
type Handler struct {
	hub      *Hub
	tokens   TokenValidator
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

func NewHandler(hub *Hub, tokens TokenValidator, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		hub:    hub,
		tokens: tokens,
		logger: logger.Named("ws"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// Mux serves the match channel at /ws/matches.
func (h *Handler) Mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/ws/matches", h)
	return mux
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.hub == nil {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	token := strings.TrimSpace(r.URL.Query().Get("token"))
	if token == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	claims, err := h.tokens.ValidateAccessToken(token)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("ws upgrade error", zap.Error(err))
		return
	}

	client := NewClient(h.hub, conn, claims.UserID)
	if !h.hub.Register(client) {
		_ = conn.Close()
		return
	}
	go client.WritePump()
	go client.ReadPump()
}
