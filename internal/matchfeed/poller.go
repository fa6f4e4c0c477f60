package matchfeed

import (
	"context"
	"time"

	"jobswipe/internal/domain/match"

	"go.uber.org/zap"
)

const pollBatch = 100

type createdLister interface {
	ListCreatedAfter(ctx context.Context, after match.Cursor, limit int) ([]match.Match, error)
}

// Poller catches matches LISTEN missed by reading everything created after
// a watermark on every tick.
type Poller struct {
	matches  createdLister
	sink     Sink
	interval time.Duration
	logger   *zap.Logger

	watermark match.Cursor
}

// NewPoller starts the watermark one interval before now.
func NewPoller(matches createdLister, sink Sink, interval time.Duration, logger *zap.Logger) *Poller {
	if logger == nil {
		logger = zap.NewNop()
	}
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Poller{
		matches:   matches,
		sink:      sink,
		interval:  interval,
		logger:    logger.Named("matchfeed.poll"),
		watermark: match.Cursor{CreatedAt: time.Now().Add(-interval)},
	}
}

func (p *Poller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := p.Poll(ctx); err != nil && ctx.Err() == nil {
				p.logger.Warn("poll matches", zap.Error(err))
			}
		}
	}
}

// Poll dispatches every match after the watermark and returns how many it
// saw. The watermark only moves past matches that were handed to the sink.
func (p *Poller) Poll(ctx context.Context) (int, error) {
	seen := 0
	for {
		items, err := p.matches.ListCreatedAfter(ctx, p.watermark, pollBatch)
		if err != nil {
			return seen, err
		}
		for _, m := range items {
			if _, err := p.sink.Dispatch(ctx, match.EventFromMatch(m)); err != nil {
				return seen, err
			}
			if p.watermark.Before(m) {
				p.watermark = match.CursorOf(m)
			}
			seen++
		}
		if len(items) < pollBatch {
			return seen, nil
		}
	}
}

func (p *Poller) Watermark() match.Cursor {
	return p.watermark
}
