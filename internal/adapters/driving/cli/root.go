// Package cli implements the rag command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	embeddingollama "github.com/hollowness-inside/rag/internal/adapters/driven/embedding/ollama"
	ledgerfile "github.com/hollowness-inside/rag/internal/adapters/driven/ledger/file"
	ledgersqlite "github.com/hollowness-inside/rag/internal/adapters/driven/ledger/sqlite"
	llmollama "github.com/hollowness-inside/rag/internal/adapters/driven/llm/ollama"
	"github.com/hollowness-inside/rag/internal/adapters/driven/vectorstore/qdrant"
	"github.com/hollowness-inside/rag/internal/chunker"
	"github.com/hollowness-inside/rag/internal/config"
	"github.com/hollowness-inside/rag/internal/core/ports/driven"
	"github.com/hollowness-inside/rag/internal/core/services"
	"github.com/hollowness-inside/rag/internal/extractors"
	"github.com/hollowness-inside/rag/internal/logger"
)

var (
	configPath string
	verbose    bool

	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "rag",
	Short: "Index local documents and ask questions over them",
	Long: `rag indexes directories of documents into a vector store and answers
questions grounded in the retrieved content, using local Ollama models.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger.SetVerbose(verbose)

		path := configPath
		if path == "" {
			var err error
			path, err = config.DefaultPath()
			if err != nil {
				return err
			}
		}

		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default ~/.rag/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// closeAll closes resources in order, keeping the first error.
func closeAll(closers ...io.Closer) error {
	var firstErr error
	for _, c := range closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func newEmbedder() *embeddingollama.EmbeddingService {
	return embeddingollama.NewEmbeddingService(embeddingollama.Config{
		BaseURL:           cfg.Ollama.BaseURL,
		Model:             cfg.Ollama.EmbedModel,
		Timeout:           time.Duration(cfg.Ollama.TimeoutSecs) * time.Second,
		Dimensions:        cfg.Qdrant.VectorSize,
		RequestsPerSecond: cfg.Ollama.EmbedRPS,
	})
}

func newLLM() *llmollama.LLMService {
	return llmollama.NewLLMService(llmollama.Config{
		BaseURL: cfg.Ollama.BaseURL,
		Model:   cfg.Ollama.ChatModel,
		Timeout: time.Duration(cfg.Ollama.ChatTimeoutSecs) * time.Second,
	})
}

func newVectorStore(ctx context.Context) (*qdrant.Store, error) {
	return qdrant.New(ctx, qdrant.Config{
		URL:         cfg.Qdrant.URL,
		APIKey:      cfg.Qdrant.APIKey,
		Collection:  cfg.Qdrant.Collection,
		VectorSize:  cfg.Qdrant.VectorSize,
		Distance:    cfg.Qdrant.Distance,
		Timeout:     time.Duration(cfg.Qdrant.TimeoutSecs) * time.Second,
		SearchLimit: cfg.Qdrant.SearchLimit,
	})
}

// newLedger opens the configured fingerprint ledger backend.
func newLedger() (driven.Ledger, error) {
	path := cfg.Indexer.LedgerPath
	if path == "" {
		base, err := config.DefaultPath()
		if err != nil {
			return nil, err
		}
		name := "hash.db"
		if cfg.Indexer.LedgerBackend == "sqlite" {
			name = "ledger.sqlite"
		}
		path = filepath.Join(filepath.Dir(base), name)
	}

	switch cfg.Indexer.LedgerBackend {
	case "", "file":
		return ledgerfile.New(path)
	case "sqlite":
		return ledgersqlite.New(path)
	default:
		return nil, fmt.Errorf("unknown ledger backend %q", cfg.Indexer.LedgerBackend)
	}
}

// newIndexer wires the full ingestion pipeline. The returned closer
// releases the embedder, store, and ledger.
func newIndexer(ctx context.Context) (*services.Indexer, func() error, error) {
	embedder := newEmbedder()

	store, err := newVectorStore(ctx)
	if err != nil {
		embedder.Close()
		return nil, nil, err
	}

	ledger, err := newLedger()
	if err != nil {
		closeAll(embedder, store)
		return nil, nil, err
	}

	indexer := services.NewIndexer(
		extractors.NewDefault(),
		chunker.New(cfg.Indexer.ChunkSize),
		embedder,
		store,
		ledger,
		cfg.Indexer.Workers,
	)
	closer := func() error {
		return closeAll(embedder, store, ledger)
	}
	return indexer, closer, nil
}
