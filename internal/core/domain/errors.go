package domain

import "errors"

// Domain errors classify pipeline failures.
// Adapters wrap these sentinels so callers can branch with errors.Is
// without depending on adapter packages.
var (
	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates a file extension no extractor handles.
	// During a directory walk this means "skip", never "abort".
	ErrUnsupportedType = errors.New("unsupported file type")

	// ErrAlreadyIndexed indicates a document whose fingerprint is
	// already in the ledger. Re-indexing skips it entirely.
	ErrAlreadyIndexed = errors.New("document already indexed")

	// ErrExtraction indicates an unreadable or corrupt document.
	// One bad file must not abort the rest of the directory.
	ErrExtraction = errors.New("extraction failed")

	// ErrTransport indicates a network call failed or timed out
	// (embedding service, vector store, or chat service).
	ErrTransport = errors.New("transport failure")

	// ErrMalformedResponse indicates an external response is missing
	// an expected field or carries the wrong type.
	ErrMalformedResponse = errors.New("malformed response")

	// ErrDimensionMismatch indicates a vector whose length disagrees
	// with the configured dimensionality.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")

	// ErrCorruptLedger indicates the ledger file holds a trailing
	// record shorter than a full fingerprint.
	ErrCorruptLedger = errors.New("corrupt ledger")
)
