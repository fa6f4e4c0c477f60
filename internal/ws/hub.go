package ws

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type delivery struct {
	userID  uuid.UUID
	payload []byte
}

// Hub fans messages out to the open connections of one user. A user may hold
// several connections (tabs, devices); every one of them gets each message.
type Hub struct {
	clients    map[uuid.UUID]map[*Client]struct{}
	notify     chan delivery
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mutex      sync.RWMutex
	logger     *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		clients:    make(map[uuid.UUID]map[*Client]struct{}),
		notify:     make(chan delivery, 1024),
		register:   make(chan *Client),
		unregister: make(chan *Client, 128),
		done:       make(chan struct{}),
		logger:     logger.Named("ws"),
	}
}

// Run owns the client set until ctx ends; then every connection is closed.
func (h *Hub) Run(ctx context.Context) {
	defer h.shutdown()

	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.register:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			set, ok := h.clients[client.userID]
			if !ok {
				set = make(map[*Client]struct{})
				h.clients[client.userID] = set
			}
			set[client] = struct{}{}
			total := len(set)
			h.mutex.Unlock()
			h.logger.Debug("ws connected", zap.String("user_id", client.userID.String()), zap.Int("user_clients", total))

		case client := <-h.unregister:
			h.remove(client)

		case d := <-h.notify:
			h.mutex.RLock()
			snapshot := make([]*Client, 0, len(h.clients[d.userID]))
			for c := range h.clients[d.userID] {
				snapshot = append(snapshot, c)
			}
			h.mutex.RUnlock()

			for _, client := range snapshot {
				select {
				case client.send <- d.payload:
				default:
					h.logger.Warn("ws client too slow, dropping", zap.String("user_id", d.userID.String()))
					h.remove(client)
				}
			}
		}
	}
}

func (h *Hub) remove(client *Client) {
	if client == nil {
		return
	}
	h.mutex.Lock()
	defer h.mutex.Unlock()

	set, ok := h.clients[client.userID]
	if !ok {
		return
	}
	if _, ok := set[client]; !ok {
		return
	}
	delete(set, client)
	close(client.send)
	if len(set) == 0 {
		delete(h.clients, client.userID)
	}
	h.logger.Debug("ws disconnected", zap.String("user_id", client.userID.String()))
}

func (h *Hub) shutdown() {
	close(h.done)

	h.mutex.Lock()
	defer h.mutex.Unlock()
	for id, set := range h.clients {
		for c := range set {
			close(c.send)
		}
		delete(h.clients, id)
	}
}

// Register blocks until Run accepts the client. It reports false once the
// hub has stopped.
func (h *Hub) Register(client *Client) bool {
	if h == nil {
		return false
	}
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) Unregister(client *Client) {
	if h == nil {
		return
	}
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// NotifyUser queues payload for every connection of userID. It never blocks;
// when the queue is full the message is dropped and logged.
func (h *Hub) NotifyUser(userID uuid.UUID, payload []byte) {
	if h == nil {
		return
	}
	select {
	case h.notify <- delivery{userID: userID, payload: payload}:
	default:
		h.logger.Warn("ws notify dropped", zap.String("reason", "buffer_full"), zap.String("user_id", userID.String()))
	}
}

func (h *Hub) ClientCount(userID uuid.UUID) int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients[userID])
}
