package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
)

var fast = Policy{Attempts: 3, BaseDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}

func TestDo_RetriesUntilSuccess(t *testing.T) {
	calls := 0
	err := Do(context.Background(), fast, nil, func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("flaky")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected 3 calls, got %d", calls)
	}
}

func TestDo_StopsOnPermanentError(t *testing.T) {
	permanent := errors.New("permission denied")
	calls := 0
	err := Do(context.Background(), fast, func(err error) bool { return !errors.Is(err, permanent) }, func(ctx context.Context) error {
		calls++
		return permanent
	})
	if !errors.Is(err, permanent) {
		t.Fatalf("expected permanent err, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected a single call, got %d", calls)
	}
}

func TestDo_ReturnsLastErrorAfterAttempts(t *testing.T) {
	calls := 0
	err := Do(context.Background(), fast, nil, func(ctx context.Context) error {
		calls++
		return errors.New("down")
	})
	if err == nil || calls != 3 {
		t.Fatalf("expected 3 failing calls, got %d (%v)", calls, err)
	}
}

func TestDo_HonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := Do(ctx, Policy{Attempts: 5, BaseDelay: time.Hour}, nil, func(ctx context.Context) error {
		calls++
		cancel()
		return errors.New("down")
	})
	if err == nil || calls != 1 {
		t.Fatalf("expected to stop after cancel, got %d calls (%v)", calls, err)
	}
}

func TestDo_SingleAttempt(t *testing.T) {
	calls := 0
	err := Do(context.Background(), Policy{}, nil, func(ctx context.Context) error {
		calls++
		return errors.New("down")
	})
	if err == nil || calls != 1 {
		t.Fatalf("expected one failing call, got %d (%v)", calls, err)
	}
}

func TestDo_PermanentIsReturnedUnwrapped(t *testing.T) {
	sentinel := errors.New("bad request")
	err := Do(context.Background(), fast, func(error) bool { return false }, func(ctx context.Context) error {
		return sentinel
	})
	if err != sentinel {
		t.Fatalf("expected the original error, got %#v", err)
	}
}

func TestPolicy_BackOffCapsDelay(t *testing.T) {
	b := Policy{Attempts: 10, BaseDelay: time.Millisecond, MaxDelay: 4 * time.Millisecond}.BackOff(context.Background())
	b.Reset()
	for i := 0; i < 9; i++ {
		d := b.NextBackOff()
		if d == backoff.Stop {
			t.Fatalf("stopped after %d retries", i)
		}
		// Jitter spreads each delay by up to half of the interval.
		if d > 6*time.Millisecond {
			t.Fatalf("delay %s above cap", d)
		}
	}
	if d := b.NextBackOff(); d != backoff.Stop {
		t.Fatalf("expected stop after attempts, got %s", d)
	}
}
