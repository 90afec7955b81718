package refresh

import (
	"context"
	"fmt"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"fundrefresh/internal/fund"
	"fundrefresh/internal/testutil"
)

func codesN(n int) []string {
	codes := make([]string, n)
	for i := range codes {
		codes[i] = fmt.Sprintf("%06d", i+1)
	}
	return codes
}

func TestNew_Defaults(t *testing.T) {
	orch := New(testutil.StaticFetch(nil, nil), Config{})

	if orch.maxConcurrent != 3 {
		t.Errorf("maxConcurrent = %d, want 3", orch.maxConcurrent)
	}
	if orch.policy.MaxAttempts != 3 {
		t.Errorf("policy.MaxAttempts = %d, want 3", orch.policy.MaxAttempts)
	}
}

func TestRun_ConcurrencyBound(t *testing.T) {
	for _, k := range []int{1, 2, 3, 5} {
		t.Run(fmt.Sprintf("k=%d", k), func(t *testing.T) {
			var inFlight, peak int64
			fetch := func(ctx context.Context, code string) (*fund.Snapshot, error) {
				n := atomic.AddInt64(&inFlight, 1)
				for {
					p := atomic.LoadInt64(&peak)
					if n <= p || atomic.CompareAndSwapInt64(&peak, p, n) {
						break
					}
				}
				time.Sleep(5 * time.Millisecond)
				atomic.AddInt64(&inFlight, -1)
				return testutil.Snapshot(code, 1.0), nil
			}

			orch := New(fetch, Config{MaxConcurrent: k, Policy: fastPolicy(1)})
			summary := orch.Run(context.Background(), codesN(20))

			if summary.Succeeded != 20 {
				t.Errorf("Succeeded = %d, want 20", summary.Succeeded)
			}
			if got := atomic.LoadInt64(&peak); got > int64(k) {
				t.Errorf("peak concurrency = %d, exceeds bound %d", got, k)
			}
		})
	}
}

func TestRun_Completeness(t *testing.T) {
	// Even codes succeed, odd codes always fail.
	fetch := func(ctx context.Context, code string) (*fund.Snapshot, error) {
		n, _ := strconv.Atoi(code)
		if n%2 == 1 {
			return nil, nil
		}
		return testutil.Snapshot(code, 1.0), nil
	}

	keys := codesN(11)
	orch := New(fetch, Config{MaxConcurrent: 3, Policy: fastPolicy(2)})
	summary := orch.Run(context.Background(), keys)

	if summary.Total != len(keys) {
		t.Errorf("Total = %d, want %d", summary.Total, len(keys))
	}
	if summary.Succeeded+summary.Failed != summary.Total {
		t.Errorf("Succeeded(%d) + Failed(%d) != Total(%d)", summary.Succeeded, summary.Failed, summary.Total)
	}

	// Every key ends up in exactly one of the snapshot map and the failed list.
	failed := make(map[string]bool)
	for _, key := range summary.FailedKeys {
		if failed[key] {
			t.Errorf("key %q appears twice in FailedKeys", key)
		}
		failed[key] = true
	}
	for _, key := range keys {
		_, ok := summary.Snapshots[key]
		if ok == failed[key] {
			t.Errorf("key %q: in snapshots=%v, in failed=%v; want exactly one", key, ok, failed[key])
		}
	}
}

func TestRun_Scenario_FiveItemsThreeFail(t *testing.T) {
	// Items 1, 3, 5 always return invalid data, items 2 and 4 succeed on the
	// first attempt. With 3 attempts per item that is 2 + 3*3 = 11 fetches.
	fetch := func(ctx context.Context, code string) (*fund.Snapshot, error) {
		n, _ := strconv.Atoi(code)
		if n%2 == 1 {
			return testutil.Snapshot(code, 0), nil
		}
		return testutil.Snapshot(code, 1.0), nil
	}
	counting := testutil.NewCountingFetch(fetch)

	orch := New(counting.Fetch, Config{
		MaxConcurrent: 3,
		Policy:        Policy{MaxAttempts: 3, BaseDelay: time.Millisecond},
	})
	summary := orch.Run(context.Background(), []string{"1", "2", "3", "4", "5"})

	if summary.Succeeded != 2 {
		t.Errorf("Succeeded = %d, want 2", summary.Succeeded)
	}
	if summary.Failed != 3 {
		t.Errorf("Failed = %d, want 3", summary.Failed)
	}
	if counting.Total() != 11 {
		t.Errorf("total fetch invocations = %d, want 11", counting.Total())
	}

	wantFailed := map[string]bool{"1": true, "3": true, "5": true}
	if len(summary.FailedKeys) != len(wantFailed) {
		t.Fatalf("FailedKeys = %v, want keys 1, 3, 5", summary.FailedKeys)
	}
	for _, key := range summary.FailedKeys {
		if !wantFailed[key] {
			t.Errorf("unexpected failed key %q", key)
		}
	}
}

func TestRun_EmptyInput(t *testing.T) {
	counting := testutil.NewCountingFetch(testutil.StaticFetch(nil, nil))
	progressCalls := 0

	orch := New(counting.Fetch, Config{
		Progress: func(completed, total int, label string) { progressCalls++ },
	})
	summary := orch.Run(context.Background(), nil)

	if summary.Total != 0 || summary.Succeeded != 0 || summary.Failed != 0 {
		t.Errorf("summary = %+v, want all zero counts", summary)
	}
	if counting.Total() != 0 {
		t.Errorf("fetch invoked %d times, want 0", counting.Total())
	}
	if progressCalls != 0 {
		t.Errorf("progress invoked %d times, want 0", progressCalls)
	}
}

func TestRun_ProgressEvents(t *testing.T) {
	fetch := func(ctx context.Context, code string) (*fund.Snapshot, error) {
		if code == "000002" {
			return nil, nil
		}
		return testutil.Snapshot(code, 1.0), nil
	}

	type event struct {
		completed, total int
		label            string
	}
	// The engine emits progress from the session goroutine only, so plain
	// appends are safe here.
	var events []event

	orch := New(fetch, Config{
		MaxConcurrent: 2,
		Policy:        fastPolicy(2),
		Progress: func(completed, total int, label string) {
			events = append(events, event{completed, total, label})
		},
	})
	summary := orch.Run(context.Background(), codesN(5))

	if len(events) != summary.Total {
		t.Fatalf("got %d progress events, want %d", len(events), summary.Total)
	}
	for i, ev := range events {
		if ev.completed != i+1 {
			t.Errorf("event %d: completed = %d, want %d", i, ev.completed, i+1)
		}
		if ev.total != summary.Total {
			t.Errorf("event %d: total = %d, want %d", i, ev.total, summary.Total)
		}
		if ev.label == "" {
			t.Errorf("event %d: empty label", i)
		}
	}

	// Failed items are labelled by key, successes by fund name.
	sawFailedKey := false
	for _, ev := range events {
		if ev.label == "000002" {
			sawFailedKey = true
		}
	}
	if !sawFailedKey {
		t.Error("expected a progress event labelled with the failed key 000002")
	}
}

func TestRun_AggregationSerialized(t *testing.T) {
	// Fetches complete from many goroutines at once; the progress callback
	// mutates unsynchronized state, which is only safe if the engine keeps
	// aggregation on a single goroutine. Run under -race.
	fetch := func(ctx context.Context, code string) (*fund.Snapshot, error) {
		return testutil.Snapshot(code, 1.0), nil
	}

	counter := 0
	orch := New(fetch, Config{
		MaxConcurrent: 8,
		Policy:        fastPolicy(1),
		Progress:      func(completed, total int, label string) { counter++ },
	})

	summary := orch.Run(context.Background(), codesN(50))
	if counter != summary.Total {
		t.Errorf("progress counter = %d, want %d", counter, summary.Total)
	}
}
