package ratelimit

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/time/rate"
)

// KeyedLimiter paces calls per key (a shop domain or a marketplace account)
type KeyedLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

// NewKeyedLimiter allows perSecond calls per key with the given burst.
// A non-positive perSecond disables limiting.
func NewKeyedLimiter(perSecond float64, burst int) *KeyedLimiter {
	limit := rate.Limit(perSecond)
	if perSecond <= 0 {
		limit = rate.Inf
	}
	if burst < 1 {
		burst = 1
	}
	return &KeyedLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    limit,
		burst:    burst,
	}
}

// Wait blocks until a call for key is allowed or ctx is done
func (l *KeyedLimiter) Wait(ctx context.Context, key string) error {
	if l == nil {
		return nil
	}
	if err := l.get(key).Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait for %s: %w", key, err)
	}
	return nil
}

func (l *KeyedLimiter) get(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	lim, ok := l.limiters[key]
	if !ok {
		lim = rate.NewLimiter(l.limit, l.burst)
		l.limiters[key] = lim
	}
	return lim
}
