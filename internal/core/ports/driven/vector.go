package driven

import (
	"context"

	"github.com/hollowness-inside/rag/internal/core/domain"
)

// VectorStore persists chunk embeddings and performs similarity search.
//
// Upsert identity is derived from chunk content (domain.Fingerprint), so
// storing identical text twice overwrites a single point. This keeps
// chunk-level writes idempotent independent of the document ledger.
type VectorStore interface {
	// Upsert stores the vector with a {text, source} payload under a
	// content-derived identifier.
	Upsert(ctx context.Context, text, source string, vector []float32) error

	// Search returns nearest neighbours ranked by similarity,
	// descending, up to the store's configured result limit. Callers
	// apply their own threshold and top-K on top.
	Search(ctx context.Context, vector []float32) ([]domain.RetrievedChunk, error)

	// Close releases resources.
	Close() error
}
