// Package qdrant provides a vector store adapter over Qdrant's REST API.
package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hollowness-inside/rag/internal/core/domain"
	"github.com/hollowness-inside/rag/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

// Default configuration values.
const (
	DefaultURL         = "http://localhost:6333"
	DefaultCollection  = "rag"
	DefaultVectorSize  = 1024
	DefaultDistance    = "Cosine"
	DefaultTimeout     = 15 * time.Second
	DefaultSearchLimit = 10
)

// Payload keys stored with every point.
const (
	payloadText   = "text"
	payloadSource = "source"
)

// Config holds configuration for the Qdrant store.
type Config struct {
	// URL is the Qdrant REST endpoint (default: http://localhost:6333).
	URL string

	// APIKey authenticates requests when the server requires it.
	APIKey string

	// Collection is the collection name (default: rag).
	Collection string

	// VectorSize is the configured dimensionality (default: 1024).
	VectorSize int

	// Distance is the metric used at collection creation
	// (Cosine, Euclid, or Dot; default: Cosine).
	Distance string

	// Timeout is the per-request timeout (default: 15s).
	Timeout time.Duration

	// SearchLimit caps server-side search results (default: 10).
	SearchLimit int
}

// Store is a minimal REST client to Qdrant.
type Store struct {
	client      *http.Client
	url         string
	apiKey      string
	collection  string
	vectorSize  int
	distance    string
	searchLimit int
}

// New connects to Qdrant and ensures the collection exists, creating it
// with the configured dimensionality and distance metric when absent.
// An existing collection is reused without validating compatibility; a
// dimensionality mismatch surfaces on the first write or search.
func New(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultCollection
	}
	if cfg.VectorSize <= 0 {
		cfg.VectorSize = DefaultVectorSize
	}
	if cfg.Distance == "" {
		cfg.Distance = DefaultDistance
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.SearchLimit <= 0 {
		cfg.SearchLimit = DefaultSearchLimit
	}

	s := &Store{
		client:      &http.Client{Timeout: cfg.Timeout},
		url:         cfg.URL,
		apiKey:      cfg.APIKey,
		collection:  cfg.Collection,
		vectorSize:  cfg.VectorSize,
		distance:    cfg.Distance,
		searchLimit: cfg.SearchLimit,
	}

	if err := s.ensureCollection(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// ensureCollection creates the collection when the existence check 404s.
func (s *Store) ensureCollection(ctx context.Context) error {
	status, _, err := s.do(ctx, http.MethodGet, s.collectionURL(""), nil)
	if err != nil {
		return err
	}
	switch {
	case status == http.StatusOK:
		return nil
	case status != http.StatusNotFound:
		return fmt.Errorf("%w: collection check returned status %d", domain.ErrTransport, status)
	}

	body := map[string]any{
		"vectors": map[string]any{
			"size":     s.vectorSize,
			"distance": s.distance,
		},
	}
	status, respBody, err := s.do(ctx, http.MethodPut, s.collectionURL(""), body)
	if err != nil {
		return err
	}
	if status >= http.StatusMultipleChoices {
		return fmt.Errorf("%w: create collection returned status %d: %s",
			domain.ErrTransport, status, respBody)
	}
	return nil
}

// Upsert stores the vector under the fingerprint of its text, so
// re-adding identical text overwrites the existing point.
func (s *Store) Upsert(ctx context.Context, text, source string, vector []float32) error {
	if len(vector) != s.vectorSize {
		return fmt.Errorf("%w: got %d dimensions, collection configured for %d",
			domain.ErrDimensionMismatch, len(vector), s.vectorSize)
	}

	body := map[string]any{
		"points": []map[string]any{{
			"id":     domain.Fingerprint(text),
			"vector": vector,
			"payload": map[string]any{
				payloadText:   text,
				payloadSource: source,
			},
		}},
	}

	status, respBody, err := s.do(ctx, http.MethodPut, s.collectionURL("/points?wait=true"), body)
	if err != nil {
		return err
	}
	if status >= http.StatusMultipleChoices {
		return fmt.Errorf("%w: upsert returned status %d: %s",
			domain.ErrTransport, status, respBody)
	}
	return nil
}

// searchResponse is the Qdrant search response format.
type searchResponse struct {
	Result []struct {
		Score   float64        `json:"score"`
		Payload map[string]any `json:"payload"`
	} `json:"result"`
}

// Search returns nearest neighbours ranked by similarity, descending.
func (s *Store) Search(ctx context.Context, vector []float32) ([]domain.RetrievedChunk, error) {
	if len(vector) != s.vectorSize {
		return nil, fmt.Errorf("%w: got %d dimensions, collection configured for %d",
			domain.ErrDimensionMismatch, len(vector), s.vectorSize)
	}

	body := map[string]any{
		"vector":       vector,
		"limit":        s.searchLimit,
		"with_payload": true,
	}

	status, respBody, err := s.do(ctx, http.MethodPost, s.collectionURL("/points/search"), body)
	if err != nil {
		return nil, err
	}
	if status >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: search returned status %d: %s",
			domain.ErrTransport, status, respBody)
	}

	var resp searchResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("%w: decode search response: %w",
			domain.ErrMalformedResponse, err)
	}

	chunks := make([]domain.RetrievedChunk, 0, len(resp.Result))
	for _, r := range resp.Result {
		text, err := payloadString(r.Payload, payloadText)
		if err != nil {
			return nil, err
		}
		source, err := payloadString(r.Payload, payloadSource)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, domain.RetrievedChunk{
			Content:    text,
			Source:     source,
			Similarity: r.Score,
		})
	}
	return chunks, nil
}

// Close releases resources.
func (s *Store) Close() error {
	return nil
}

func payloadString(payload map[string]any, key string) (string, error) {
	v, ok := payload[key]
	if !ok {
		return "", fmt.Errorf("%w: payload missing %q field", domain.ErrMalformedResponse, key)
	}
	str, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: payload %q is not a string", domain.ErrMalformedResponse, key)
	}
	return str, nil
}

func (s *Store) collectionURL(suffix string) string {
	return fmt.Sprintf("%s/collections/%s%s", s.url, s.collection, suffix)
}

// do issues one JSON request and returns the status code and body.
// Network-level failures are transport errors.
func (s *Store) do(ctx context.Context, method, url string, body any) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %s %s: %w", domain.ErrTransport, method, url, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: read response: %w", domain.ErrTransport, err)
	}
	return resp.StatusCode, respBody, nil
}
