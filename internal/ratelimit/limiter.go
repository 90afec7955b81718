package ratelimit

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// API represents the different external data providers we interact with
type API string

const (
	// APIEastmoney represents the Eastmoney mobile fund API
	APIEastmoney API = "eastmoney"
)

// Limiter manages rate limits for different provider APIs. Construct with
// New and inject it into provider clients; APIs without a configured limiter
// are never limited.
type Limiter struct {
	limiters map[API]*rate.Limiter
	mu       sync.RWMutex
}

// New creates a limiter with conservative per-provider defaults.
func New() *Limiter {
	l := &Limiter{
		limiters: make(map[API]*rate.Limiter),
	}

	// Eastmoney: 8 requests per second (conservative, the actual limit is
	// undocumented). The refresh engine's concurrency cap keeps real traffic
	// well under this.
	l.limiters[APIEastmoney] = rate.NewLimiter(rate.Limit(8), 3)

	return l
}

// NewUnlimited creates a limiter that never blocks, for tests.
func NewUnlimited() *Limiter {
	l := &Limiter{
		limiters: make(map[API]*rate.Limiter),
	}
	l.limiters[APIEastmoney] = rate.NewLimiter(rate.Inf, 1)
	return l
}

// Set overrides the limit for an API.
func (l *Limiter) Set(api API, limit rate.Limit, burst int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.limiters[api] = rate.NewLimiter(limit, burst)
}

// Wait blocks until the rate limiter permits an event for the given API.
// It returns an error if the context is canceled before the event can proceed.
func (l *Limiter) Wait(ctx context.Context, api API) error {
	l.mu.RLock()
	limiter, exists := l.limiters[api]
	l.mu.RUnlock()

	if !exists {
		return nil
	}

	return limiter.Wait(ctx)
}

// Allow reports whether an event for the given API may happen now.
func (l *Limiter) Allow(api API) bool {
	l.mu.RLock()
	limiter, exists := l.limiters[api]
	l.mu.RUnlock()

	if !exists {
		return true
	}

	return limiter.Allow()
}
