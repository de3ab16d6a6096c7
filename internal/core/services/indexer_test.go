package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hollowness-inside/rag/internal/adapters/driven/vectorstore/memory"
	"github.com/hollowness-inside/rag/internal/chunker"
	"github.com/hollowness-inside/rag/internal/core/domain"
	"github.com/hollowness-inside/rag/internal/extractors"
	"github.com/hollowness-inside/rag/internal/extractors/plaintext"
)

// stubEmbedder returns a fixed-size vector derived from the text
// fingerprint, so identical text embeds identically.
type stubEmbedder struct {
	mu    sync.Mutex
	calls int
	fail  func(text string) error
}

func (e *stubEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	e.mu.Lock()
	e.calls++
	e.mu.Unlock()

	if e.fail != nil {
		if err := e.fail(text); err != nil {
			return nil, err
		}
	}

	fp := domain.Fingerprint(text)
	return []float32{float32(fp % 97), float32(fp % 89), float32(fp % 83)}, nil
}

func (e *stubEmbedder) embedCalls() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.calls
}

func (e *stubEmbedder) Dimensions() int            { return 3 }
func (e *stubEmbedder) ModelName() string          { return "stub" }
func (e *stubEmbedder) Ping(context.Context) error { return nil }
func (e *stubEmbedder) Close() error               { return nil }

// memLedger is an in-memory fingerprint ledger for tests.
type memLedger struct {
	mu   sync.Mutex
	seen map[uint64]struct{}
}

func newMemLedger() *memLedger {
	return &memLedger{seen: make(map[uint64]struct{})}
}

func (l *memLedger) Contains(fp uint64) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.seen[fp]
	return ok, nil
}

func (l *memLedger) Insert(fp uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seen[fp] = struct{}{}
	return nil
}

func (l *memLedger) Close() error { return nil }

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func newTestIndexer(embedder *stubEmbedder, store *memory.Store, ledger *memLedger) *Indexer {
	registry := extractors.NewRegistry(plaintext.New())
	return NewIndexer(registry, chunker.New(64), embedder, store, ledger, 2)
}

func TestIndexDirectory_CountsOutcomes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "alpha document")
	writeFile(t, dir, "b.md", "beta document")
	writeFile(t, dir, "photo.jpg", "not text")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))

	embedder := &stubEmbedder{}
	store := memory.New(3, 10)
	ix := newTestIndexer(embedder, store, newMemLedger())

	stats, err := ix.IndexDirectory(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, IndexStats{Indexed: 2, Skipped: 1}, stats)
	assert.Equal(t, 2, store.Len())
}

func TestIndexDirectory_SecondRunIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "same content both runs")

	embedder := &stubEmbedder{}
	store := memory.New(3, 10)
	ix := newTestIndexer(embedder, store, newMemLedger())

	ctx := context.Background()
	_, err := ix.IndexDirectory(ctx, dir)
	require.NoError(t, err)
	firstRunCalls := embedder.embedCalls()

	stats, err := ix.IndexDirectory(ctx, dir)
	require.NoError(t, err)

	assert.Equal(t, IndexStats{Duplicates: 1}, stats)
	assert.Equal(t, firstRunCalls, embedder.embedCalls(), "no chunk should be re-embedded")
}

func TestIndexDirectory_DuplicateContentAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "identical content")
	writeFile(t, dir, "b.txt", "identical content")

	ix := newTestIndexer(&stubEmbedder{}, memory.New(3, 10), newMemLedger())

	stats, err := ix.IndexDirectory(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Indexed)
	assert.Equal(t, 1, stats.Duplicates)
}

func TestIndexDirectory_FailureIsolatedPerFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bad.txt", "poison pill")
	writeFile(t, dir, "good.txt", "healthy document")

	boom := errors.New("boom")
	embedder := &stubEmbedder{fail: func(text string) error {
		if text == "poison pill" {
			return boom
		}
		return nil
	}}
	ix := newTestIndexer(embedder, memory.New(3, 10), newMemLedger())

	stats, err := ix.IndexDirectory(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Indexed)
	assert.Equal(t, 1, stats.Failed)
}

func TestIndexFile_FailedDocumentRetriesInFull(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "doc.txt", "retried content")

	failing := true
	embedder := &stubEmbedder{fail: func(string) error {
		if failing {
			return errors.New("embedder down")
		}
		return nil
	}}
	ledger := newMemLedger()
	ix := newTestIndexer(embedder, memory.New(3, 10), ledger)

	ctx := context.Background()
	require.Error(t, ix.IndexFile(ctx, path))

	seen, err := ledger.Contains(domain.Fingerprint("retried content"))
	require.NoError(t, err)
	assert.False(t, seen, "fingerprint must not be recorded after a failed run")

	failing = false
	require.NoError(t, ix.IndexFile(ctx, path))
}

func TestIndexFile_UnsupportedExtension(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "data.bin", "binary blob")

	ix := newTestIndexer(&stubEmbedder{}, memory.New(3, 10), newMemLedger())

	err := ix.IndexFile(context.Background(), path)
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}

func TestSearch_EmbedsQueryAndRanks(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "first document")
	writeFile(t, dir, "b.txt", "second document")

	embedder := &stubEmbedder{}
	store := memory.New(3, 10)
	ix := newTestIndexer(embedder, store, newMemLedger())

	ctx := context.Background()
	_, err := ix.IndexDirectory(ctx, dir)
	require.NoError(t, err)

	chunks, err := ix.Search(ctx, "first document")
	require.NoError(t, err)

	require.NotEmpty(t, chunks)
	assert.Equal(t, "first document", chunks[0].Content)
	assert.Equal(t, "a.txt", chunks[0].Source)
}
