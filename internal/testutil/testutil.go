// Package testutil provides fetch stubs for refresh engine tests. Helpers
// use unnamed func types so they assign directly to the engine's FetchFunc
// without importing the refresh package.
package testutil

import (
	"context"
	"sync"

	"fundrefresh/internal/fund"
)

// Snapshot builds a valid-looking snapshot for code with the given NAV.
func Snapshot(code string, nav float64) *fund.Snapshot {
	return &fund.Snapshot{
		Code: code,
		Name: "fund " + code,
		NAV:  nav,
	}
}

// StaticFetch returns a fetch that always yields the given snapshot and error.
func StaticFetch(snap *fund.Snapshot, err error) func(ctx context.Context, code string) (*fund.Snapshot, error) {
	return func(ctx context.Context, code string) (*fund.Snapshot, error) {
		return snap, err
	}
}

// CountingFetch wraps a fetch and counts invocations per code.
type CountingFetch struct {
	mu    sync.Mutex
	calls map[string]int
	fn    func(ctx context.Context, code string) (*fund.Snapshot, error)
}

// NewCountingFetch creates a counting wrapper around fn.
func NewCountingFetch(fn func(ctx context.Context, code string) (*fund.Snapshot, error)) *CountingFetch {
	return &CountingFetch{
		calls: make(map[string]int),
		fn:    fn,
	}
}

// Fetch implements the fetch collaborator.
func (c *CountingFetch) Fetch(ctx context.Context, code string) (*fund.Snapshot, error) {
	c.mu.Lock()
	c.calls[code]++
	c.mu.Unlock()
	return c.fn(ctx, code)
}

// Calls returns how many times code was fetched.
func (c *CountingFetch) Calls(code string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[code]
}

// Total returns the total number of fetch invocations across all codes.
func (c *CountingFetch) Total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0
	for _, n := range c.calls {
		total += n
	}
	return total
}
