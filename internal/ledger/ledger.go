// Package ledger keeps a SQLite history of collector runs and the
// documents they wrote. Strictly best-effort: callers log ledger errors
// and carry on, so a broken database never changes a run's outcome.
package ledger

import (
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// Schema returns the ledger DDL, for callers that apply it to their own
// database (testutil's in-memory DB).
func Schema() string {
	return schemaSQL
}

// Run outcomes recorded in the runs table.
const (
	OutcomeDone    = "done"
	OutcomeAborted = "aborted"
)

// Open opens the ledger database at path, creating it and applying the
// schema if needed.
func Open(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create ledger directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger database: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply ledger schema: %w", err)
	}
	return db, nil
}

// RecordRunStart inserts the run row at the moment the lock is held.
func RecordRunStart(db *sql.DB, runID string, startedAt time.Time) error {
	_, err := db.Exec(`
		INSERT INTO runs (id, started_at) VALUES (?, ?)
	`, runID, startedAt.Unix())
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// RecordRunFinish closes out the run row with its terminal outcome and
// counts.
func RecordRunFinish(db *sql.DB, runID, outcome string, selected, written, skipped int) error {
	_, err := db.Exec(`
		UPDATE runs
		SET finished_at = ?, outcome = ?, selected = ?, written = ?, skipped = ?
		WHERE id = ?
	`, time.Now().Unix(), outcome, selected, written, skipped, runID)
	if err != nil {
		return fmt.Errorf("update run: %w", err)
	}
	return nil
}

// RecordDocument notes one written inbox document.
func RecordDocument(db *sql.DB, runID, meetingID, filename string) error {
	_, err := db.Exec(`
		INSERT INTO documents (run_id, meeting_id, filename, written_at)
		VALUES (?, ?, ?, ?)
	`, runID, meetingID, filename, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

// Run is one row of run history.
type Run struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time
	Outcome    string
	Selected   int
	Written    int
	Skipped    int
}

// LatestRun returns the most recently started run, or nil if the ledger
// is empty.
func LatestRun(db *sql.DB) (*Run, error) {
	row := db.QueryRow(`
		SELECT id, started_at, COALESCE(finished_at, 0), COALESCE(outcome, ''),
		       selected, written, skipped
		FROM runs
		ORDER BY started_at DESC, id DESC
		LIMIT 1
	`)

	var run Run
	var startedAt, finishedAt int64
	err := row.Scan(&run.ID, &startedAt, &finishedAt, &run.Outcome,
		&run.Selected, &run.Written, &run.Skipped)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query latest run: %w", err)
	}

	run.StartedAt = time.Unix(startedAt, 0)
	if finishedAt > 0 {
		run.FinishedAt = time.Unix(finishedAt, 0)
	}
	return &run, nil
}
