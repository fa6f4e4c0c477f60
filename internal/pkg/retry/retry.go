// Package retry runs an operation a bounded number of times with exponential
// backoff between attempts.
package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

type Policy struct {
	Attempts  int
	BaseDelay time.Duration
	MaxDelay  time.Duration
}

// Default is three attempts starting at 1s.
var Default = Policy{Attempts: 3, BaseDelay: time.Second, MaxDelay: 8 * time.Second}

// BackOff builds the schedule for p: exponential from BaseDelay, capped at
// MaxDelay, stopping after Attempts-1 retries or when ctx ends.
func (p Policy) BackOff(ctx context.Context) backoff.BackOffContext {
	attempts := p.Attempts
	if attempts <= 0 {
		attempts = 1
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.BaseDelay
	if p.MaxDelay > 0 {
		b.MaxInterval = p.MaxDelay
	}
	b.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(attempts-1)), ctx)
}

// Do calls fn until it succeeds, the attempts run out, ctx ends or retryable
// reports the error as permanent. The last error from fn is returned.
func Do(ctx context.Context, p Policy, retryable func(error) bool, fn func(ctx context.Context) error) error {
	var last error
	err := backoff.Retry(func() error {
		last = fn(ctx)
		if last != nil && retryable != nil && !retryable(last) {
			return backoff.Permanent(last)
		}
		return last
	}, p.BackOff(ctx))
	if err == nil {
		return nil
	}
	if last != nil {
		return last
	}
	return err
}
