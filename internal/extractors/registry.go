// Package extractors selects a content extractor by file extension.
//
// Each extractor handles a fixed set of extensions. Files with an
// extension no extractor claims are skipped by the indexer rather than
// failed, so a directory may contain arbitrary file types.
package extractors

import (
	"path/filepath"
	"strings"

	"github.com/hollowness-inside/rag/internal/core/ports/driven"
	"github.com/hollowness-inside/rag/internal/extractors/docx"
	"github.com/hollowness-inside/rag/internal/extractors/html"
	"github.com/hollowness-inside/rag/internal/extractors/pdf"
	"github.com/hollowness-inside/rag/internal/extractors/plaintext"
)

// Registry maps file extensions to extractors.
type Registry struct {
	byExt map[string]driven.Extractor
}

// NewRegistry creates a registry over the given extractors.
// When two extractors claim the same extension, the later one wins.
func NewRegistry(list ...driven.Extractor) *Registry {
	byExt := make(map[string]driven.Extractor)
	for _, e := range list {
		for _, ext := range e.Extensions() {
			byExt[strings.ToLower(ext)] = e
		}
	}
	return &Registry{byExt: byExt}
}

// NewDefault creates a registry with all built-in extractors.
func NewDefault() *Registry {
	return NewRegistry(
		plaintext.New(),
		html.New(),
		pdf.New(),
		docx.New(),
	)
}

// ForPath returns the extractor for the path's extension, if any.
// Matching is case-insensitive.
func (r *Registry) ForPath(path string) (driven.Extractor, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return nil, false
	}
	e, ok := r.byExt[ext]
	return e, ok
}

// Extensions returns every extension the registry handles.
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		exts = append(exts, ext)
	}
	return exts
}
