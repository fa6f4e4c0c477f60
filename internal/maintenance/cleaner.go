// Package maintenance runs housekeeping against the store: removing matches
// whose contact window has passed.
package maintenance

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type expiredCleaner interface {
	CleanExpired(ctx context.Context) (int, error)
}

type Cleaner struct {
	matches expiredCleaner
	logger  *zap.Logger
	timeout time.Duration
}

func NewCleaner(matches expiredCleaner, logger *zap.Logger) *Cleaner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cleaner{matches: matches, logger: logger.Named("maintenance"), timeout: time.Minute}
}

// CleanExpired deletes expired matches and returns how many went.
func (c *Cleaner) CleanExpired(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	started := time.Now()
	n, err := c.matches.CleanExpired(ctx)
	if err != nil {
		c.logger.Error("clean expired matches", zap.Error(err))
		return 0, err
	}
	c.logger.Info("expired matches cleaned", zap.Int("deleted", n), zap.Duration("took", time.Since(started)))
	return n, nil
}
