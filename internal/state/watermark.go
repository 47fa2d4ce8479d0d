// Package state persists the run watermark between incremental batch runs.
package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

const stateFile = "state.json"

// runState is the on-disk shape of the persisted run state.
type runState struct {
	LastRunUtc time.Time `json:"LastRunUtc"`
}

// Store reads and writes the watermark under a state directory.
type Store struct {
	dir string
}

// NewStore creates a watermark store. The directory is created on first write.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Path returns the state file location.
func (s *Store) Path() string {
	return filepath.Join(s.dir, stateFile)
}

// Watermark returns the persisted cutoff in UTC. When no state exists yet,
// it defaults to the start of the current local day converted to UTC, so a
// first run only picks up today's downloads.
func (s *Store) Watermark(now time.Time) (time.Time, error) {
	data, err := os.ReadFile(s.Path())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return startOfDay(now).UTC(), nil
		}
		return time.Time{}, fmt.Errorf("read run state: %w", err)
	}

	var st runState
	if err := json.Unmarshal(data, &st); err != nil {
		return time.Time{}, fmt.Errorf("parse run state: %w", err)
	}
	return st.LastRunUtc.UTC(), nil
}

// Advance overwrites the watermark with the given instant in UTC. Called
// only after a successful live incremental run.
func (s *Store) Advance(now time.Time) error {
	if err := os.MkdirAll(s.dir, 0o750); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	data, err := json.MarshalIndent(runState{LastRunUtc: now.UTC()}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode run state: %w", err)
	}

	if err := os.WriteFile(s.Path(), data, 0o644); err != nil {
		return fmt.Errorf("write run state: %w", err)
	}
	return nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
