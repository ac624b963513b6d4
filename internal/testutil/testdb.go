package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"

	"paracollect/internal/ledger"
)

// OpenTestDB creates an in-memory SQLite DB and applies the ledger schema.
func OpenTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	_, _ = db.Exec("PRAGMA foreign_keys = ON")

	if _, err := db.Exec(ledger.Schema()); err != nil {
		db.Close()
		t.Fatalf("apply schema: %v", err)
	}
	return db
}
