package services

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/hollowness-inside/rag/internal/core/domain"
	"github.com/hollowness-inside/rag/internal/core/ports/driven"
	"github.com/hollowness-inside/rag/internal/logger"
)

//go:embed prompt.txt
var systemPrompt string

// Default evidence selection parameters.
const (
	DefaultTopK          = 5
	DefaultMinSimilarity = 0.4
)

// Markers wrapped around each evidence chunk in the chat history.
const (
	chunkStart = "=== DOCUMENT CHUNK START ===\n"
	sourceTag  = "\n[SOURCE] "
	chunkEnd   = "\n=== DOCUMENT CHUNK END ==="
)

// Retriever finds stored chunks relevant to a query.
type Retriever interface {
	Search(ctx context.Context, query string) ([]domain.RetrievedChunk, error)
}

// Chain answers questions by retrieving evidence and prompting an LLM
// with it.
type Chain struct {
	retriever     Retriever
	llm           driven.LLMService
	topK          int
	minSimilarity float64
}

// NewChain creates a chain. Evidence weaker than minSimilarity is
// discarded, and at most topK chunks reach the prompt.
func NewChain(retriever Retriever, llm driven.LLMService, topK int, minSimilarity float64) *Chain {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Chain{
		retriever:     retriever,
		llm:           llm,
		topK:          topK,
		minSimilarity: minSimilarity,
	}
}

// Ask retrieves evidence for the question and returns the model's
// answer. With no evidence above the similarity floor the model still
// answers, from the base prompt alone.
func (c *Chain) Ask(ctx context.Context, question string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", fmt.Errorf("%w: empty question", domain.ErrInvalidInput)
	}

	chunks, err := c.retriever.Search(ctx, question)
	if err != nil {
		return "", fmt.Errorf("retrieve evidence: %w", err)
	}

	evidence := c.filterEvidence(chunks)
	logger.Debug("Retrieved %d chunks, %d passed the similarity floor", len(chunks), len(evidence))

	history := make([]driven.ChatMessage, 0, len(evidence)+2)
	history = append(history, driven.ChatMessage{
		Role:    driven.RoleSystem,
		Content: systemPrompt,
	})
	for _, chunk := range evidence {
		history = append(history, driven.ChatMessage{
			Role:    driven.RoleSystem,
			Content: chunkStart + chunk.Content + sourceTag + chunk.Source + chunkEnd,
		})
	}
	history = append(history, driven.ChatMessage{
		Role:    driven.RoleUser,
		Content: question,
	})

	answer, err := c.llm.Chat(ctx, history)
	if err != nil {
		return "", fmt.Errorf("chat: %w", err)
	}
	return answer, nil
}

// filterEvidence drops chunks below the similarity floor, then caps the
// survivors at topK. Rank order is preserved, so the cap keeps the
// strongest evidence.
func (c *Chain) filterEvidence(chunks []domain.RetrievedChunk) []domain.RetrievedChunk {
	evidence := make([]domain.RetrievedChunk, 0, c.topK)
	for _, chunk := range chunks {
		if chunk.Similarity < c.minSimilarity {
			continue
		}
		evidence = append(evidence, chunk)
		if len(evidence) == c.topK {
			break
		}
	}
	return evidence
}
