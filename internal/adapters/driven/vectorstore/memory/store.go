// Package memory provides an in-process vector store used for tests
// and offline experimentation.
package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/hollowness-inside/rag/internal/core/domain"
	"github.com/hollowness-inside/rag/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

// DefaultSearchLimit caps search results when no limit is configured.
const DefaultSearchLimit = 10

type point struct {
	text   string
	source string
	vector []float32
}

// Store keeps points in memory, keyed by the fingerprint of their
// text so identical text overwrites in place. Search ranks by cosine
// similarity.
type Store struct {
	mu          sync.RWMutex
	points      map[uint64]point
	vectorSize  int
	searchLimit int
}

// New creates an empty store for vectors of the given dimensionality.
func New(vectorSize, searchLimit int) *Store {
	if searchLimit <= 0 {
		searchLimit = DefaultSearchLimit
	}
	return &Store{
		points:      make(map[uint64]point),
		vectorSize:  vectorSize,
		searchLimit: searchLimit,
	}
}

// Upsert stores the vector, replacing any point with identical text.
func (s *Store) Upsert(_ context.Context, text, source string, vector []float32) error {
	if len(vector) != s.vectorSize {
		return fmt.Errorf("%w: got %d dimensions, store configured for %d",
			domain.ErrDimensionMismatch, len(vector), s.vectorSize)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.points[domain.Fingerprint(text)] = point{
		text:   text,
		source: source,
		vector: append([]float32(nil), vector...),
	}
	return nil
}

// Search returns up to the configured limit of stored chunks ranked by
// cosine similarity, descending.
func (s *Store) Search(_ context.Context, vector []float32) ([]domain.RetrievedChunk, error) {
	if len(vector) != s.vectorSize {
		return nil, fmt.Errorf("%w: got %d dimensions, store configured for %d",
			domain.ErrDimensionMismatch, len(vector), s.vectorSize)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	chunks := make([]domain.RetrievedChunk, 0, len(s.points))
	for _, p := range s.points {
		chunks = append(chunks, domain.RetrievedChunk{
			Content:    p.text,
			Source:     p.source,
			Similarity: cosine(vector, p.vector),
		})
	}

	sort.Slice(chunks, func(i, j int) bool {
		return chunks[i].Similarity > chunks[j].Similarity
	})
	if len(chunks) > s.searchLimit {
		chunks = chunks[:s.searchLimit]
	}
	return chunks, nil
}

// Len reports the number of stored points.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.points)
}

// Close releases resources.
func (s *Store) Close() error {
	return nil
}

func cosine(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
