package middleware

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const limiterIdleTTL = 10 * time.Minute

type userLimiter struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// RateLimitMiddleware gives every authenticated user a token bucket. It must
// run after AuthMiddleware.
type RateLimitMiddleware struct {
	rps   rate.Limit
	burst int

	mu        sync.Mutex
	limiters  map[uuid.UUID]*userLimiter
	lastSweep time.Time
	now       func() time.Time
}

func NewRateLimitMiddleware(perSecond float64, burst int) *RateLimitMiddleware {
	if perSecond <= 0 {
		perSecond = 5
	}
	if burst <= 0 {
		burst = 1
	}
	return &RateLimitMiddleware{
		rps:      rate.Limit(perSecond),
		burst:    burst,
		limiters: make(map[uuid.UUID]*userLimiter),
		now:      time.Now,
	}
}

func (m *RateLimitMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		userID, err := UserID(c)
		if err != nil {
			return err
		}
		if !m.allow(userID) {
			return NewAppError(fiber.StatusTooManyRequests, "Too many requests", nil, nil)
		}
		return c.Next()
	}
}

func (m *RateLimitMiddleware) allow(userID uuid.UUID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if now.Sub(m.lastSweep) > limiterIdleTTL {
		for id, l := range m.limiters {
			if now.Sub(l.lastSeen) > limiterIdleTTL {
				delete(m.limiters, id)
			}
		}
		m.lastSweep = now
	}

	l, ok := m.limiters[userID]
	if !ok {
		l = &userLimiter{lim: rate.NewLimiter(m.rps, m.burst)}
		m.limiters[userID] = l
	}
	l.lastSeen = now
	return l.lim.AllowN(now, 1)
}
