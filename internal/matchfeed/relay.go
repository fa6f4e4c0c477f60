package matchfeed

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"jobswipe/internal/infrastructure/cache"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

type Subscriber interface {
	Subscribe(ctx context.Context, channel string, fn func(payload []byte)) error
}

// Relay hands events from EventsChannel to this instance's WebSocket clients.
type Relay struct {
	bus     Subscriber
	local   Notifier
	logger  *zap.Logger
	backoff *backoff.ExponentialBackOff
}

func NewRelay(bus Subscriber, local Notifier, logger *zap.Logger) *Relay {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Relay{bus: bus, local: local, logger: logger.Named("matchfeed.relay"), backoff: reconnectBackOff(2*time.Second, 30*time.Second)}
}

// Run blocks until ctx ends. Without Redis it idles, since the dispatcher
// then delivers locally.
func (r *Relay) Run(ctx context.Context) error {
	r.backoff.Reset()
	for {
		err := r.bus.Subscribe(ctx, EventsChannel, r.handle)
		if ctx.Err() != nil {
			return nil
		}
		if errors.Is(err, cache.ErrUnavailable) {
			r.logger.Info("event bus unavailable, relay idle")
			<-ctx.Done()
			return nil
		}

		wait := r.backoff.NextBackOff()
		r.logger.Warn("subscription lost", zap.Duration("retry_in", wait), zap.Error(err))
		if !sleep(ctx, wait) {
			return nil
		}
	}
}

func (r *Relay) handle(payload []byte) {
	var msg Message
	if err := json.Unmarshal(payload, &msg); err != nil {
		r.logger.Warn("bad match event", zap.Error(err))
		return
	}
	if msg.Type != EventTypeMatchCreated {
		return
	}
	deliverLocal(r.local, msg.Match, payload)
}
