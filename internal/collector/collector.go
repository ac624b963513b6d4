// Package collector runs one incremental ingestion pass: Granola cache in,
// deduplicated inbox documents out, watermark advanced at the end.
package collector

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"paracollect/internal/config"
	"paracollect/internal/granola"
	"paracollect/internal/inbox"
	"paracollect/internal/ledger"
	"paracollect/internal/logging"
	"paracollect/internal/runlock"
	"paracollect/internal/watermark"
)

// Outcome is the terminal state of a run.
type Outcome string

const (
	// OutcomeDone means the pass completed; zero writes is still done.
	OutcomeDone Outcome = "done"
	// OutcomeSkippedBusy means another instance held the lock. Success.
	OutcomeSkippedBusy Outcome = "skipped_busy"
	// OutcomeAborted means a hard failure: unreadable cache or a failed
	// watermark commit. Documents already written stay on disk.
	OutcomeAborted Outcome = "aborted"
)

// Result reports what one run did.
type Result struct {
	Outcome  Outcome
	Selected int
	Written  int
	Skipped  int
	Duration time.Duration
}

// Run executes one collection pass. The returned error is non-nil only
// for OutcomeAborted; busy locks and absent caches are expected
// conditions, logged and reported as success.
func Run(settings config.Settings, log *logging.Logger) (Result, error) {
	start := time.Now()

	lock, ok, err := runlock.Acquire(settings.LockPath)
	if err != nil {
		log.Printf("Error acquiring lock: %v", err)
		return Result{Outcome: OutcomeAborted, Duration: time.Since(start)}, err
	}
	if !ok {
		log.Printf("Another instance is running, skipping")
		return Result{Outcome: OutcomeSkippedBusy, Duration: time.Since(start)}, nil
	}
	defer lock.Release()

	result, err := run(settings, log, start)
	result.Duration = time.Since(start)
	return result, err
}

// run does the work between lock acquire and release.
func run(settings config.Settings, log *logging.Logger, start time.Time) (Result, error) {
	runID := uuid.NewString()

	// Run history is best-effort observability; a broken ledger is logged
	// and ignored everywhere below.
	ledgerDB, err := ledger.Open(settings.LedgerPath())
	if err != nil {
		log.Printf("Warning: ledger unavailable: %v", err)
		ledgerDB = nil
	} else {
		defer ledgerDB.Close()
		if err := ledger.RecordRunStart(ledgerDB, runID, start); err != nil {
			log.Printf("Warning: ledger: %v", err)
		}
	}

	cache, err := granola.LoadCache(settings.CachePath)
	if errors.Is(err, os.ErrNotExist) {
		// Expected on a machine without Granola, or before its first sync.
		log.Printf("Warning: %v", err)
		finishLedger(ledgerDB, log, runID, ledger.OutcomeDone, Result{})
		return Result{Outcome: OutcomeDone}, nil
	}
	if err != nil {
		log.Printf("Error loading Granola cache: %v", err)
		finishLedger(ledgerDB, log, runID, ledger.OutcomeAborted, Result{})
		return Result{Outcome: OutcomeAborted}, err
	}

	store := watermark.NewStore(settings.WatermarkPath(), time.Duration(settings.LookbackDays)*24*time.Hour)
	cutoff, warning := store.Load()
	if warning != "" {
		log.Printf("Warning: %s", warning)
	}
	log.Printf("Run %s: processing meetings updated since %s", runID, cutoff.Format(watermark.Layout))

	inboxDir := settings.InboxDir()
	if err := os.MkdirAll(inboxDir, 0755); err != nil {
		err = fmt.Errorf("failed to create inbox directory: %w", err)
		log.Printf("Error: %v", err)
		finishLedger(ledgerDB, log, runID, ledger.OutcomeAborted, Result{})
		return Result{Outcome: OutcomeAborted}, err
	}

	var result Result
	namer := inbox.NewNamer()

	for _, meeting := range selectMeetings(cache, cutoff) {
		result.Selected++

		date, dated := meeting.Date()
		name := namer.Name(date, dated, meeting.Title(), meeting.ID())
		body := inbox.Format(inbox.Document{
			Title:        meeting.Title(),
			MeetingID:    meeting.ID(),
			Date:         date,
			Dated:        dated,
			Participants: meeting.Participants(),
			Notes:        meeting.Notes(),
			Summary:      meeting.Summary(),
			Transcript:   cache.Transcript(meeting),
		}, settings.TranscriptCap)

		// One failed write skips that meeting, not the run.
		if err := os.WriteFile(filepath.Join(inboxDir, name), []byte(body), 0644); err != nil {
			log.Printf("Error writing %s: %v", name, err)
			result.Skipped++
			continue
		}
		result.Written++

		if ledgerDB != nil {
			if err := ledger.RecordDocument(ledgerDB, runID, meeting.ID(), name); err != nil {
				log.Printf("Warning: ledger: %v", err)
			}
		}
	}

	log.Printf("Wrote %d inbox file(s) (%d selected, %d skipped)", result.Written, result.Selected, result.Skipped)

	// Advance the watermark to the run's own start time, not the newest
	// processed record. The next run re-scans a small overlapping window
	// instead of trusting record clocks.
	if err := store.Commit(start); err != nil {
		log.Printf("Error: %v", err)
		finishLedger(ledgerDB, log, runID, ledger.OutcomeAborted, result)
		result.Outcome = OutcomeAborted
		return result, err
	}

	finishLedger(ledgerDB, log, runID, ledger.OutcomeDone, result)
	result.Outcome = OutcomeDone
	return result, nil
}

// selectMeetings filters the cache to meetings worth ingesting: real
// content, a resolvable update instant, and updated at or after the
// cutoff. Enumeration order follows the cache; no re-sorting.
func selectMeetings(cache *granola.CacheState, cutoff time.Time) []granola.Meeting {
	var selected []granola.Meeting
	for _, m := range cache.Meetings() {
		if !cache.HasContent(m) {
			continue
		}
		updated, ok := m.UpdatedAt()
		if !ok {
			continue
		}
		if updated.Before(cutoff) {
			continue
		}
		selected = append(selected, m)
	}
	return selected
}

func finishLedger(db *sql.DB, log *logging.Logger, runID, outcome string, result Result) {
	if db == nil {
		return
	}
	if err := ledger.RecordRunFinish(db, runID, outcome, result.Selected, result.Written, result.Skipped); err != nil {
		log.Printf("Warning: ledger: %v", err)
	}
}
