// Package watermark persists the collector's "processed up to" cutoff.
// The on-disk form is a single naive local timestamp so it stays readable
// and editable by hand.
package watermark

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Layout is the on-disk timestamp form.
const Layout = "2006-01-02T15:04:05"

// Store reads and writes the watermark file.
type Store struct {
	path     string
	lookback time.Duration
}

// NewStore returns a store over path with the given first-run lookback
// window.
func NewStore(path string, lookback time.Duration) *Store {
	return &Store{path: path, lookback: lookback}
}

// Load returns the persisted cutoff. A missing file means the collector
// has never run: the cutoff defaults to now minus the lookback window.
// Unreadable or malformed content falls back to the same default and
// returns a warning for the caller to log; a corrupt watermark never
// fails a run.
func (s *Store) Load() (cutoff time.Time, warning string) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return time.Now().Add(-s.lookback), ""
	}
	if err != nil {
		return time.Now().Add(-s.lookback), fmt.Sprintf("unreadable watermark file: %v", err)
	}

	raw := strings.TrimSpace(string(data))
	t, err := time.ParseInLocation(Layout, raw, time.Local)
	if err != nil {
		return time.Now().Add(-s.lookback), fmt.Sprintf("invalid watermark content %q, using first-run cutoff", raw)
	}
	return t, ""
}

// Commit overwrites the watermark with t. Called exactly once per
// successful run, after all document writes.
func (s *Store) Commit(t time.Time) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create watermark directory: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(t.Format(Layout)), 0644); err != nil {
		return fmt.Errorf("failed to write watermark file: %w", err)
	}
	return nil
}
