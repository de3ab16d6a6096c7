// Package config loads and persists the TOML configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// File locations.
const (
	DirName  = ".rag"
	FileName = "config.toml"
)

// Config is the full application configuration.
type Config struct {
	Ollama  OllamaConfig  `toml:"ollama"`
	Qdrant  QdrantConfig  `toml:"qdrant"`
	Indexer IndexerConfig `toml:"indexer"`
	Chain   ChainConfig   `toml:"chain"`
}

// OllamaConfig configures the embedding and chat backends.
type OllamaConfig struct {
	BaseURL          string  `toml:"base_url"`
	EmbedModel       string  `toml:"embed_model"`
	ChatModel        string  `toml:"chat_model"`
	TimeoutSecs      int     `toml:"timeout_secs"`
	ChatTimeoutSecs  int     `toml:"chat_timeout_secs"`
	EmbedRPS         float64 `toml:"embed_rps"`
}

// QdrantConfig configures the vector store.
type QdrantConfig struct {
	URL         string `toml:"url"`
	APIKey      string `toml:"api_key"`
	Collection  string `toml:"collection"`
	Distance    string `toml:"distance"`
	VectorSize  int    `toml:"vector_size"`
	TimeoutSecs int    `toml:"timeout_secs"`
	SearchLimit int    `toml:"search_limit"`
}

// IndexerConfig configures ingestion.
type IndexerConfig struct {
	ChunkSize int `toml:"chunk_size"`

	// LedgerBackend selects the fingerprint ledger implementation:
	// "file" or "sqlite".
	LedgerBackend string `toml:"ledger_backend"`

	// LedgerPath overrides the ledger file location. Empty means a
	// backend-specific file under the config directory.
	LedgerPath string `toml:"ledger_path"`

	Workers int `toml:"workers"`
}

// ChainConfig configures evidence selection.
type ChainConfig struct {
	TopK          int     `toml:"top_k"`
	MinSimilarity float64 `toml:"min_similarity"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Ollama: OllamaConfig{
			BaseURL:         "http://localhost:11434",
			EmbedModel:      "mxbai-embed-large",
			ChatModel:       "qwen3:latest",
			TimeoutSecs:     30,
			ChatTimeoutSecs: 120,
			EmbedRPS:        0,
		},
		Qdrant: QdrantConfig{
			URL:         "http://localhost:6333",
			Collection:  "rag",
			Distance:    "Cosine",
			VectorSize:  1024,
			TimeoutSecs: 15,
			SearchLimit: 10,
		},
		Indexer: IndexerConfig{
			ChunkSize:     1024,
			LedgerBackend: "file",
			Workers:       4,
		},
		Chain: ChainConfig{
			TopK:          5,
			MinSimilarity: 0.4,
		},
	}
}

// DefaultPath returns ~/.rag/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, DirName, FileName), nil
}

// Load reads the configuration at path. A missing file yields the
// defaults; a present file is decoded over the defaults, so omitted
// keys keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration to path, creating parent directories
// as needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}
