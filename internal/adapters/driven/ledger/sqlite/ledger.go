// Package sqlite provides an embedded-database deduplication ledger.
//
// It keeps the same membership/insert contract as the flat-file ledger
// but stores fingerprints in a SQLite table, which scales better for
// large corpora and survives partial writes without a custom format.
package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/hollowness-inside/rag/internal/core/ports/driven"
)

// Ensure Ledger implements the interface.
var _ driven.Ledger = (*Ledger)(nil)

// Ledger stores fingerprints in a SQLite database.
type Ledger struct {
	db *sql.DB
}

// New opens (or creates) the ledger database at path.
func New(path string) (*Ledger, error) {
	// WAL keeps readers unblocked during inserts.
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open ledger database: %w", err)
	}

	const schema = `CREATE TABLE IF NOT EXISTS fingerprints (fp INTEGER PRIMARY KEY) WITHOUT ROWID`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create fingerprints table: %w", err)
	}

	return &Ledger{db: db}, nil
}

// Contains reports whether the fingerprint has been recorded.
func (l *Ledger) Contains(fingerprint uint64) (bool, error) {
	var exists bool
	err := l.db.QueryRow(
		`SELECT EXISTS(SELECT 1 FROM fingerprints WHERE fp = ?)`,
		int64(fingerprint),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("query fingerprint: %w", err)
	}
	return exists, nil
}

// Insert records the fingerprint. Inserting a known fingerprint is a
// no-op. SQLite flushes the write before Exec returns.
func (l *Ledger) Insert(fingerprint uint64) error {
	_, err := l.db.Exec(
		`INSERT OR IGNORE INTO fingerprints (fp) VALUES (?)`,
		int64(fingerprint),
	)
	if err != nil {
		return fmt.Errorf("insert fingerprint: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (l *Ledger) Close() error {
	return l.db.Close()
}
