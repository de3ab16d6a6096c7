package html

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hollowness-inside/rag/internal/core/domain"
)

func writeHTML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "page.html")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestExtensions(t *testing.T) {
	extractor := New()
	exts := extractor.Extensions()

	assert.Contains(t, exts, ".html")
	assert.Contains(t, exts, ".htm")
	assert.Contains(t, exts, ".xhtml")
}

func TestExtract_StripsMarkup(t *testing.T) {
	path := writeHTML(t,
		`<html><head><title>Test Page</title></head><body><p>Hello World</p><p>Second paragraph</p></body></html>`)

	doc, err := New().Extract(context.Background(), path)
	require.NoError(t, err)

	assert.NotEmpty(t, doc.ID)
	assert.Equal(t, "page.html", doc.Source)
	assert.Equal(t, "Hello World\nSecond paragraph", doc.Content)
}

func TestExtract_DropsScriptsAndStyles(t *testing.T) {
	path := writeHTML(t, `<html><body>
<script>alert("evil")</script>
<style>p { color: red }</style>
<p>Visible text</p>
<!-- a comment -->
</body></html>`)

	doc, err := New().Extract(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "Visible text", doc.Content)
	assert.NotContains(t, doc.Content, "evil")
	assert.NotContains(t, doc.Content, "color")
}

func TestExtract_DecodesEntities(t *testing.T) {
	path := writeHTML(t, `<p>Fish &amp; chips &lt;fresh&gt;</p>`)

	doc, err := New().Extract(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "Fish & chips <fresh>", doc.Content)
}

func TestExtract_MissingFile(t *testing.T) {
	_, err := New().Extract(context.Background(), filepath.Join(t.TempDir(), "missing.html"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExtraction)
}
