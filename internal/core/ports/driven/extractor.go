package driven

import (
	"context"

	"github.com/hollowness-inside/rag/internal/core/domain"
)

// Extractor converts files of specific extensions into UTF-8 text.
type Extractor interface {
	// Extensions returns the lower-case file extensions this
	// extractor handles, including the leading dot (e.g. ".pdf").
	Extensions() []string

	// Extract reads the file and returns its textual content.
	// An unreadable or corrupt file yields an error wrapping
	// domain.ErrExtraction.
	Extract(ctx context.Context, path string) (*domain.Document, error)
}
