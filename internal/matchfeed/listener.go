package matchfeed

import (
	"context"
	"encoding/json"
	"time"

	"jobswipe/internal/database"
	"jobswipe/internal/domain/match"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// Listener follows NotifyChannel and reconnects with exponential backoff
// whenever the connection drops.
type Listener struct {
	db      database.Listener
	sink    Sink
	logger  *zap.Logger
	backoff *backoff.ExponentialBackOff
}

func NewListener(db database.Listener, sink Sink, logger *zap.Logger) *Listener {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Listener{
		db:      db,
		sink:    sink,
		logger:  logger.Named("matchfeed.listen"),
		backoff: reconnectBackOff(time.Second, 30*time.Second),
	}
}

// Run blocks until ctx ends.
func (l *Listener) Run(ctx context.Context) error {
	l.backoff.Reset()
	for {
		started := time.Now()
		err := l.db.Listen(ctx, NotifyChannel, func(payload string) {
			l.handle(ctx, payload)
		})
		if ctx.Err() != nil {
			return nil
		}
		// A connection that held longer than the cap starts over.
		if time.Since(started) > l.backoff.MaxInterval {
			l.backoff.Reset()
		}

		wait := l.backoff.NextBackOff()
		l.logger.Warn("listen connection lost", zap.Duration("retry_in", wait), zap.Error(err))
		if !sleep(ctx, wait) {
			return nil
		}
	}
}

func (l *Listener) handle(ctx context.Context, payload string) {
	var ev match.Event
	if err := json.Unmarshal([]byte(payload), &ev); err != nil {
		l.logger.Warn("bad match notification", zap.String("payload", payload), zap.Error(err))
		return
	}
	if _, err := l.sink.Dispatch(ctx, ev); err != nil {
		l.logger.Error("dispatch match", zap.String("match_id", ev.MatchID.String()), zap.Error(err))
	}
}
