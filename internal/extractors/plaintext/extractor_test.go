package plaintext

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hollowness-inside/rag/internal/core/domain"
)

func TestExtensions(t *testing.T) {
	exts := New().Extensions()
	assert.Contains(t, exts, ".txt")
	assert.Contains(t, exts, ".md")
}

func TestExtract(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello world\nsecond line"), 0o600))

	doc, err := New().Extract(context.Background(), path)
	require.NoError(t, err)

	assert.NotEmpty(t, doc.ID)
	assert.Equal(t, path, doc.Path)
	assert.Equal(t, "notes.txt", doc.Source)
	assert.Equal(t, "hello world\nsecond line", doc.Content)
}

func TestExtract_MissingFile(t *testing.T) {
	doc, err := New().Extract(context.Background(), filepath.Join(t.TempDir(), "absent.txt"))

	assert.Nil(t, doc)
	assert.ErrorIs(t, err, domain.ErrExtraction)
}

func TestExtract_UniqueIDs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("same"), 0o600))

	first, err := New().Extract(context.Background(), path)
	require.NoError(t, err)
	second, err := New().Extract(context.Background(), path)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
}
