// Package store persists client holdings as a JSON file and merges refresh
// results back into them. The file is the application's only durable state.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"fundrefresh/internal/fund"
)

// Store reads and writes the holdings file.
type Store struct {
	path string
}

// New creates a store backed by the given file path.
func New(path string) *Store {
	return &Store{path: path}
}

// Load reads all holdings. A missing file means no holdings yet and is not
// an error.
func (s *Store) Load() ([]fund.Holding, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read holdings file: %w", err)
	}

	var holdings []fund.Holding
	if err := json.Unmarshal(data, &holdings); err != nil {
		return nil, fmt.Errorf("failed to decode holdings file: %w", err)
	}
	return holdings, nil
}

// Save writes all holdings. The write goes to a temp file first and is
// renamed into place, so a crash never leaves a half-written holdings file.
func (s *Store) Save(holdings []fund.Holding) error {
	data, err := json.MarshalIndent(holdings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode holdings: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create holdings directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".holdings-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp holdings file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write holdings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp holdings file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace holdings file: %w", err)
	}
	return nil
}

// Merge overwrites the refreshable fields of every holding whose fund code
// has a snapshot, leaving holdings without one untouched, and returns the
// number of holdings updated. The validity flag follows the snapshot's NAV
// alone. Merging the same snapshots a second time changes nothing.
func Merge(holdings []fund.Holding, snapshots map[string]*fund.Snapshot) int {
	updated := 0
	for i := range holdings {
		snap, ok := snapshots[holdings[i].Code]
		if !ok || snap == nil {
			continue
		}
		h := &holdings[i]
		h.Name = snap.Name
		h.NAV = snap.NAV
		h.NAVDate = snap.NAVDate
		h.Valid = snap.Valid()
		h.Returns = snap.Returns
		updated++
	}
	return updated
}
