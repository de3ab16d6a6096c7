package driven

// Ledger records fingerprints of documents that have been fully indexed.
//
// It is append-only: fingerprints are never removed. Membership gates
// re-indexing, which is what makes a second pass over an unchanged
// directory perform zero network calls.
//
// Implementations are safe for concurrent use within a single process.
// Concurrent multi-process writers are unsupported.
type Ledger interface {
	// Contains reports whether the fingerprint has been recorded.
	// An empty or absent backing store yields false, not an error.
	Contains(fingerprint uint64) (bool, error)

	// Insert records the fingerprint durably before returning.
	Insert(fingerprint uint64) error

	// Close releases resources.
	Close() error
}
