package extractors

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hollowness-inside/rag/internal/core/domain"
	"github.com/hollowness-inside/rag/internal/core/ports/driven"
)

// stubExtractor claims a fixed extension list.
type stubExtractor struct {
	exts []string
}

func (s *stubExtractor) Extensions() []string { return s.exts }

func (s *stubExtractor) Extract(context.Context, string) (*domain.Document, error) {
	return &domain.Document{}, nil
}

func TestNewDefault(t *testing.T) {
	r := NewDefault()

	for _, ext := range []string{".txt", ".md", ".pdf", ".docx"} {
		_, ok := r.ForPath("/docs/file" + ext)
		assert.True(t, ok, "expected extractor for %s", ext)
	}
}

func TestForPath_CaseInsensitive(t *testing.T) {
	stub := &stubExtractor{exts: []string{".txt"}}
	r := NewRegistry(stub)

	got, ok := r.ForPath("/docs/README.TXT")
	require.True(t, ok)
	assert.Same(t, driven.Extractor(stub), got)
}

func TestForPath_Unknown(t *testing.T) {
	r := NewDefault()

	_, ok := r.ForPath("/docs/archive.tar.gz")
	assert.False(t, ok)

	_, ok = r.ForPath("/docs/Makefile")
	assert.False(t, ok, "extension-less paths are unsupported")
}

func TestNewRegistry_LaterWins(t *testing.T) {
	first := &stubExtractor{exts: []string{".txt"}}
	second := &stubExtractor{exts: []string{".txt"}}
	r := NewRegistry(first, second)

	got, ok := r.ForPath("a.txt")
	require.True(t, ok)
	assert.Same(t, driven.Extractor(second), got)
}
