// Package matchfeed turns matches created by the store into push events.
// Matches arrive through Postgres LISTEN and a periodic poll; each one is
// announced once, on the shared Redis channel when it is reachable and to
// local WebSocket clients otherwise.
package matchfeed

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"jobswipe/internal/domain/match"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// NotifyChannel is the Postgres channel the match trigger notifies on.
	NotifyChannel = "match_created"
	// EventsChannel is the Redis channel shared by every server instance.
	EventsChannel = "match_events"

	EventTypeMatchCreated = "match_created"

	notifiedKeyPrefix = "match:notified:"
	dedupeTTL         = 48 * time.Hour
	seenPruneAt       = 1024
)

// Message is the payload sent on EventsChannel and over WebSocket.
type Message struct {
	Type  string      `json:"type"`
	Match match.Event `json:"match"`
}

type Locker interface {
	SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
}

type Publisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

type Notifier interface {
	NotifyUser(userID uuid.UUID, payload []byte)
}

type Invalidator interface {
	Invalidate(ctx context.Context, userIDs ...uuid.UUID)
}

// Sink receives every match the feed observes, possibly more than once.
type Sink interface {
	Dispatch(ctx context.Context, ev match.Event) (bool, error)
}

type Dispatcher struct {
	locks   Locker
	bus     Publisher
	local   Notifier
	matches Invalidator
	logger  *zap.Logger
	now     func() time.Time

	mu   sync.Mutex
	seen map[uuid.UUID]time.Time
}

func NewDispatcher(locks Locker, bus Publisher, local Notifier, matches Invalidator, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		locks:   locks,
		bus:     bus,
		local:   local,
		matches: matches,
		logger:  logger.Named("matchfeed"),
		now:     time.Now,
		seen:    make(map[uuid.UUID]time.Time),
	}
}

// Dispatch announces ev unless it was already announced. It reports whether
// this call did the announcing.
func (d *Dispatcher) Dispatch(ctx context.Context, ev match.Event) (bool, error) {
	if ev.MatchID == uuid.Nil {
		return false, nil
	}
	if !d.claim(ctx, ev.MatchID) {
		return false, nil
	}

	if d.matches != nil {
		d.matches.Invalidate(ctx, ev.SeekerID, ev.EmployerID)
	}

	payload, err := json.Marshal(Message{Type: EventTypeMatchCreated, Match: ev})
	if err != nil {
		return false, err
	}

	if d.bus != nil {
		err := d.bus.Publish(ctx, EventsChannel, payload)
		if err == nil {
			d.logger.Info("match announced", zap.String("match_id", ev.MatchID.String()))
			return true, nil
		}
		d.logger.Warn("publish match event failed, delivering locally", zap.String("match_id", ev.MatchID.String()), zap.Error(err))
	}

	deliverLocal(d.local, ev, payload)
	d.logger.Info("match announced locally", zap.String("match_id", ev.MatchID.String()))
	return true, nil
}

// claim takes the match for this process. The Redis key spans instances;
// the local map covers repeats from LISTEN and poll and stands in when Redis
// is down.
func (d *Dispatcher) claim(ctx context.Context, id uuid.UUID) bool {
	now := d.now()

	d.mu.Lock()
	if at, ok := d.seen[id]; ok && now.Sub(at) < dedupeTTL {
		d.mu.Unlock()
		return false
	}
	d.seen[id] = now
	if len(d.seen) > seenPruneAt {
		for k, at := range d.seen {
			if now.Sub(at) >= dedupeTTL {
				delete(d.seen, k)
			}
		}
	}
	d.mu.Unlock()

	if d.locks == nil {
		return true
	}
	ok, err := d.locks.SetIfNotExists(ctx, notifiedKeyPrefix+id.String(), "1", dedupeTTL)
	if err != nil {
		d.logger.Debug("dedupe lock unavailable, using local state", zap.Error(err))
		return true
	}
	return ok
}

func deliverLocal(n Notifier, ev match.Event, payload []byte) {
	if n == nil {
		return
	}
	n.NotifyUser(ev.SeekerID, payload)
	if ev.EmployerID != ev.SeekerID {
		n.NotifyUser(ev.EmployerID, payload)
	}
}

// reconnectBackOff never gives up; callers stop on ctx.
func reconnectBackOff(initial, ceiling time.Duration) *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = initial
	b.MaxInterval = ceiling
	b.MaxElapsedTime = 0
	b.Reset()
	return b
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
