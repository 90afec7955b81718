package refresh

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"fundrefresh/internal/fund"
)

// FetchFunc retrieves the current data for one fund code. It is the external
// collaborator boundary: implementations may hit the network, and may report
// missing or broken data either as an error or as a snapshot with a
// non-positive NAV. The engine treats both the same way.
type FetchFunc func(ctx context.Context, code string) (*fund.Snapshot, error)

// fetchWithRetry runs one work item to a terminal outcome. It calls fetch at
// most policy.MaxAttempts times, sleeping the policy backoff between
// attempts. An error, a nil snapshot, and a non-positive NAV all count as
// the same invalid result. It never returns an error: every item ends in
// exactly one Outcome.
func fetchWithRetry(ctx context.Context, key string, fetch FetchFunc, policy Policy, logger zerolog.Logger) Outcome {
	for attempt := 1; ; attempt++ {
		snap, err := fetch(ctx, key)
		if err == nil && snap.Valid() {
			if attempt > 1 {
				logger.Debug().
					Str("code", key).
					Int("attempt", attempt).
					Msg("fetch succeeded after retry")
			}
			return Outcome{Key: key, Snapshot: snap}
		}

		if !policy.ShouldRetry(attempt) {
			retryExhaustedTotal.Inc()
			logger.Warn().
				Str("code", key).
				Int("attempts", attempt).
				Err(err).
				Msg("fetch failed, retries exhausted")
			return Outcome{Key: key}
		}

		delay := policy.Backoff(attempt)
		retriesTotal.Inc()
		backoffSeconds.Observe(delay.Seconds())
		logger.Debug().
			Str("code", key).
			Int("attempt", attempt).
			Dur("backoff", delay).
			Err(err).
			Msg("fetch invalid, retrying after backoff")

		select {
		case <-ctx.Done():
			logger.Warn().
				Str("code", key).
				Int("attempt", attempt).
				Msg("context cancelled during retry backoff")
			return Outcome{Key: key}
		case <-time.After(delay):
		}
	}
}
