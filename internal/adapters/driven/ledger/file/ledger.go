// Package file provides the flat-file deduplication ledger.
//
// The format is a headerless sequence of 8-byte little-endian
// fingerprints, append-only, compatible with ledgers written by earlier
// versions of the pipeline.
package file

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/hollowness-inside/rag/internal/core/domain"
	"github.com/hollowness-inside/rag/internal/core/ports/driven"
)

// recordSize is the byte width of one stored fingerprint.
const recordSize = 8

// Ensure Ledger implements the interface.
var _ driven.Ledger = (*Ledger)(nil)

// Ledger stores fingerprints in an append-only flat file.
//
// The full set is kept in memory; inserts append one record and fsync
// before returning. A mutex guards in-process writers; multi-process
// access to the same file is unsupported.
type Ledger struct {
	mu   sync.Mutex
	f    *os.File
	seen map[uint64]struct{}
}

// New opens the ledger at path, creating the file if absent.
// A file whose size is not a multiple of the record width carries a
// truncated trailing record and is rejected.
func New(path string) (*Ledger, error) {
	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read ledger: %w", err)
	}
	if len(data)%recordSize != 0 {
		return nil, fmt.Errorf("%w: %s holds a partial trailing record (%d bytes)",
			domain.ErrCorruptLedger, path, len(data)%recordSize)
	}

	seen := make(map[uint64]struct{}, len(data)/recordSize)
	for off := 0; off < len(data); off += recordSize {
		seen[binary.LittleEndian.Uint64(data[off:off+recordSize])] = struct{}{}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}

	return &Ledger{f: f, seen: seen}, nil
}

// Contains reports whether the fingerprint has been recorded.
func (l *Ledger) Contains(fingerprint uint64) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	_, ok := l.seen[fingerprint]
	return ok, nil
}

// Insert appends the fingerprint and flushes it to disk before
// returning. Inserting a known fingerprint is a no-op.
func (l *Ledger) Insert(fingerprint uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.seen[fingerprint]; ok {
		return nil
	}

	var record [recordSize]byte
	binary.LittleEndian.PutUint64(record[:], fingerprint)
	if _, err := l.f.Write(record[:]); err != nil {
		return fmt.Errorf("append ledger record: %w", err)
	}
	if err := l.f.Sync(); err != nil {
		return fmt.Errorf("sync ledger: %w", err)
	}

	l.seen[fingerprint] = struct{}{}
	return nil
}

// Close releases the underlying file.
func (l *Ledger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.f.Close()
}
