// Package refresh implements the bounded concurrent refresh engine: it runs
// a fetch for every work item with a fixed cap on in-flight fetches, retries
// invalid results with linear backoff, and aggregates outcomes into a
// per-session summary while streaming progress events to the caller.
package refresh

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"fundrefresh/internal/fund"
)

const defaultMaxConcurrent = 3

// Summary is the terminal state of one refresh session. After Run returns:
// Succeeded + Failed == Total, and every key appears in exactly one of
// Snapshots and FailedKeys.
type Summary struct {
	SessionID  string
	Total      int
	Succeeded  int
	Failed     int
	FailedKeys []string
	Snapshots  map[string]*fund.Snapshot
}

// Completed returns the number of work items that reached a terminal
// outcome.
func (s *Summary) Completed() int {
	return s.Succeeded + s.Failed
}

// Config holds orchestrator tuning. Zero values fall back to safe defaults.
type Config struct {
	// MaxConcurrent is the cap on simultaneously in-flight fetches.
	MaxConcurrent int

	// Policy controls per-item retries.
	Policy Policy

	// Progress receives per-completion events. Nil disables reporting.
	Progress ProgressFunc

	// Logger is the session logger.
	Logger zerolog.Logger
}

// Orchestrator runs refresh sessions. Construct with New; the zero value is
// not usable. An Orchestrator is stateless between sessions and safe to
// reuse, but it does not guard against overlapping Run calls; callers that
// need that guard (a UI disabling its refresh trigger) provide it
// themselves.
type Orchestrator struct {
	maxConcurrent int
	policy        Policy
	fetch         FetchFunc
	progress      ProgressFunc
	logger        zerolog.Logger
}

// New creates an orchestrator around the given fetch collaborator.
func New(fetch FetchFunc, cfg Config) *Orchestrator {
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = defaultMaxConcurrent
	}
	if cfg.Policy.MaxAttempts <= 0 {
		cfg.Policy = DefaultPolicy()
	}
	return &Orchestrator{
		maxConcurrent: cfg.MaxConcurrent,
		policy:        cfg.Policy,
		fetch:         fetch,
		progress:      cfg.Progress,
		logger:        cfg.Logger,
	}
}

// Run fetches every key to a terminal outcome and returns the session
// summary. At most MaxConcurrent fetches are in flight at any moment; a new
// fetch launches only when one completes. Outcomes are aggregated in
// completion order, not submission order, by the Run goroutine alone, so
// session state needs no locking. Run never fails: total provider outage
// surfaces as Failed == Total, not as an error.
func (o *Orchestrator) Run(ctx context.Context, keys []string) *Summary {
	start := time.Now()
	s := &Summary{
		SessionID: uuid.NewString(),
		Total:     len(keys),
		Snapshots: make(map[string]*fund.Snapshot, len(keys)),
	}
	logger := o.logger.With().Str("session_id", s.SessionID).Logger()

	if len(keys) == 0 {
		logger.Info().Msg("refresh session empty, nothing to do")
		return s
	}

	logger.Info().
		Int("total", s.Total).
		Int("max_concurrent", o.maxConcurrent).
		Msg("refresh session started")

	outcomes := make(chan Outcome)
	next := 0
	inFlight := 0

	launch := func(key string) {
		inFlight++
		go func() {
			outcomes <- fetchWithRetry(ctx, key, o.fetch, o.policy, logger)
		}()
	}

	// Fill the initial window.
	for next < len(keys) && inFlight < o.maxConcurrent {
		launch(keys[next])
		next++
	}

	// Drain completions, refilling the window one fetch per completion.
	for inFlight > 0 {
		out := <-outcomes
		inFlight--
		o.record(s, out)
		o.emitProgress(s, out)
		if next < len(keys) {
			launch(keys[next])
			next++
		}
	}

	sessionDuration.Observe(time.Since(start).Seconds())
	logger.Info().
		Int("succeeded", s.Succeeded).
		Int("failed", s.Failed).
		Strs("failed_keys", s.FailedKeys).
		Dur("duration", time.Since(start)).
		Msg("refresh session finished")
	return s
}

// record merges one outcome into the session. Only the Run goroutine calls
// it. Invariant after every call: every recorded key lives in exactly one of
// Snapshots and FailedKeys.
func (o *Orchestrator) record(s *Summary, out Outcome) {
	if out.Succeeded() {
		s.Snapshots[out.Key] = out.Snapshot
		s.Succeeded++
		itemsTotal.WithLabelValues("success").Inc()
		return
	}
	s.FailedKeys = append(s.FailedKeys, out.Key)
	s.Failed++
	itemsTotal.WithLabelValues("failure").Inc()
}

func (o *Orchestrator) emitProgress(s *Summary, out Outcome) {
	if o.progress == nil {
		return
	}
	label := out.Key
	if out.Succeeded() && out.Snapshot.Name != "" {
		label = out.Snapshot.Name
	}
	o.progress(s.Completed(), s.Total, label)
}
