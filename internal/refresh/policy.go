package refresh

import "time"

const (
	defaultMaxAttempts = 3
	defaultBaseDelay   = 500 * time.Millisecond
)

// Policy decides whether a failed fetch is retried and how long to wait
// first. Decisions are pure; the caller owns the actual sleep.
type Policy struct {
	// MaxAttempts is the total number of fetch attempts per work item,
	// including the first one.
	MaxAttempts int

	// BaseDelay is multiplied by the attempt number to produce the backoff
	// before the next attempt. Growth is linear.
	BaseDelay time.Duration

	// MaxDelay caps the backoff when > 0. Zero means uncapped.
	MaxDelay time.Duration
}

// DefaultPolicy matches the tuning used by the holdings refresh flow.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: defaultMaxAttempts,
		BaseDelay:   defaultBaseDelay,
	}
}

// ShouldRetry reports whether another attempt is allowed after the given
// attempt (1-based) came back invalid.
func (p Policy) ShouldRetry(attempt int) bool {
	return attempt < p.MaxAttempts
}

// Backoff returns the delay to wait after the given attempt (1-based) before
// the next one: attempt * BaseDelay, capped at MaxDelay when set.
func (p Policy) Backoff(attempt int) time.Duration {
	d := time.Duration(attempt) * p.BaseDelay
	if p.MaxDelay > 0 && d > p.MaxDelay {
		d = p.MaxDelay
	}
	return d
}
