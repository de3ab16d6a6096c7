package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/hollowness-inside/rag/internal/chunker"
	"github.com/hollowness-inside/rag/internal/core/domain"
	"github.com/hollowness-inside/rag/internal/core/ports/driven"
	"github.com/hollowness-inside/rag/internal/extractors"
	"github.com/hollowness-inside/rag/internal/logger"
)

// DefaultWorkers is the embedding concurrency used when none is configured.
const DefaultWorkers = 4

// IndexStats summarises one directory indexing run.
type IndexStats struct {
	// Indexed counts documents embedded and stored during this run.
	Indexed int

	// Duplicates counts documents skipped because their content was
	// already indexed.
	Duplicates int

	// Skipped counts files with no extractor for their extension.
	Skipped int

	// Failed counts documents that errored during extraction,
	// embedding, or storage.
	Failed int
}

// Indexer drives the ingestion pipeline: extract, chunk, embed, store.
type Indexer struct {
	extractors *extractors.Registry
	splitter   *chunker.Splitter
	embedder   driven.EmbeddingService
	store      driven.VectorStore
	ledger     driven.Ledger
	workers    int
}

// NewIndexer creates an indexer. Chunks of each document are embedded
// with up to workers concurrent requests.
func NewIndexer(
	registry *extractors.Registry,
	splitter *chunker.Splitter,
	embedder driven.EmbeddingService,
	store driven.VectorStore,
	ledger driven.Ledger,
	workers int,
) *Indexer {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Indexer{
		extractors: registry,
		splitter:   splitter,
		embedder:   embedder,
		store:      store,
		ledger:     ledger,
		workers:    workers,
	}
}

// IndexDirectory indexes every supported file directly under dir.
// Subdirectories are not descended into. A failure on one file is
// counted and logged but does not stop the run.
func (ix *Indexer) IndexDirectory(ctx context.Context, dir string) (IndexStats, error) {
	var stats IndexStats

	entries, err := os.ReadDir(dir)
	if err != nil {
		return stats, fmt.Errorf("read directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if ctx.Err() != nil {
			return stats, ctx.Err()
		}

		path := filepath.Join(dir, entry.Name())
		switch err := ix.IndexFile(ctx, path); {
		case err == nil:
			stats.Indexed++
		case errors.Is(err, domain.ErrUnsupportedType):
			stats.Skipped++
			logger.Debug("Skipping %s: no extractor for this file type", entry.Name())
		case errors.Is(err, domain.ErrAlreadyIndexed):
			stats.Duplicates++
			logger.Debug("Skipping %s: content already indexed", entry.Name())
		default:
			stats.Failed++
			logger.Warn("Failed to index %s: %v", entry.Name(), err)
		}
	}

	return stats, nil
}

// IndexFile indexes a single file. It returns ErrUnsupportedType when no
// extractor handles the extension and ErrAlreadyIndexed when identical
// content was indexed before. The content fingerprint is recorded only
// after every chunk has been embedded and stored, so a partially
// indexed document is retried in full on the next run.
func (ix *Indexer) IndexFile(ctx context.Context, path string) error {
	extractor, ok := ix.extractors.ForPath(path)
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnsupportedType, filepath.Ext(path))
	}

	doc, err := extractor.Extract(ctx, path)
	if err != nil {
		return err
	}

	fp := domain.Fingerprint(doc.Content)
	seen, err := ix.ledger.Contains(fp)
	if err != nil {
		return fmt.Errorf("check ledger: %w", err)
	}
	if seen {
		return fmt.Errorf("%w: %s", domain.ErrAlreadyIndexed, doc.Source)
	}

	chunks := ix.splitter.Split(doc.Content)
	logger.Debug("Indexing %s: %d chunks", doc.Source, len(chunks))

	if err := ix.embedChunks(ctx, doc.Source, chunks); err != nil {
		return err
	}

	if err := ix.ledger.Insert(fp); err != nil {
		return fmt.Errorf("record fingerprint: %w", err)
	}
	return nil
}

// embedChunks embeds and stores chunks with bounded concurrency. The
// first error cancels nothing already in flight but is returned once
// all workers finish.
func (ix *Indexer) embedChunks(ctx context.Context, source string, chunks []string) error {
	sem := make(chan struct{}, ix.workers)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	for _, chunk := range chunks {
		wg.Add(1)
		sem <- struct{}{}

		go func(text string) {
			defer wg.Done()
			defer func() { <-sem }()

			mu.Lock()
			failed := firstErr != nil
			mu.Unlock()
			if failed {
				return
			}

			vector, err := ix.embedder.Embed(ctx, text)
			if err == nil {
				err = ix.store.Upsert(ctx, text, source, vector)
			}
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
		}(chunk)
	}

	wg.Wait()
	return firstErr
}

// Search embeds the query and returns the nearest stored chunks ranked
// by similarity, descending.
func (ix *Indexer) Search(ctx context.Context, query string) ([]domain.RetrievedChunk, error) {
	vector, err := ix.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	return ix.store.Search(ctx, vector)
}
