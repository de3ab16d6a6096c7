// Package chunker splits document text into bounded-size chunks.
package chunker

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultMaxSize is the default chunk budget in characters.
const DefaultMaxSize = 1024

// Splitter produces ordered, contiguous, non-overlapping chunks whose
// length never exceeds the configured budget (measured in runes).
//
// Boundaries prefer paragraph breaks, then sentence ends, then word
// breaks; only text with no usable boundary is cut mid-word. Splitting
// is deterministic for identical input and budget, and concatenating
// the chunks in order reconstructs the input exactly.
type Splitter struct {
	maxSize int
}

// New creates a splitter with the given chunk budget.
// Non-positive budgets fall back to DefaultMaxSize.
func New(maxSize int) *Splitter {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &Splitter{maxSize: maxSize}
}

// MaxSize returns the configured chunk budget in characters.
func (s *Splitter) MaxSize() int {
	return s.maxSize
}

// Split returns the chunks of text. Empty input yields no chunks, and
// no returned chunk is empty.
func (s *Splitter) Split(text string) []string {
	if text == "" {
		return nil
	}

	segments := s.segments(text, 0)

	// Greedily pack adjacent segments up to the budget.
	chunks := make([]string, 0, len(segments))
	var b strings.Builder
	packed := 0
	for _, seg := range segments {
		n := utf8.RuneCountInString(seg)
		if packed > 0 && packed+n > s.maxSize {
			chunks = append(chunks, b.String())
			b.Reset()
			packed = 0
		}
		b.WriteString(seg)
		packed += n
	}
	if packed > 0 {
		chunks = append(chunks, b.String())
	}
	return chunks
}

// boundary functions, coarsest first. Each keeps separators attached to
// the preceding piece so concatenation is lossless.
var levels = []func(string) []string{
	splitParagraphs,
	splitSentences,
	splitWords,
}

// segments recursively breaks text at ever finer boundaries until every
// piece fits the budget.
func (s *Splitter) segments(text string, level int) []string {
	if text == "" {
		return nil
	}
	if utf8.RuneCountInString(text) <= s.maxSize {
		return []string{text}
	}
	if level == len(levels) {
		return chopRunes(text, s.maxSize)
	}

	var out []string
	for _, part := range levels[level](text) {
		out = append(out, s.segments(part, level+1)...)
	}
	return out
}

func splitParagraphs(text string) []string {
	return strings.SplitAfter(text, "\n\n")
}

// splitSentences cuts after terminal punctuation runs and their trailing
// whitespace.
func splitSentences(text string) []string {
	runes := []rune(text)
	var parts []string
	start := 0
	for i := 0; i < len(runes); i++ {
		if !isTerminator(runes[i]) {
			continue
		}
		j := i + 1
		for j < len(runes) && isTerminator(runes[j]) {
			j++
		}
		for j < len(runes) && unicode.IsSpace(runes[j]) {
			j++
		}
		parts = append(parts, string(runes[start:j]))
		start = j
		i = j - 1
	}
	if start < len(runes) {
		parts = append(parts, string(runes[start:]))
	}
	return parts
}

func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func splitWords(text string) []string {
	return strings.SplitAfter(text, " ")
}

// chopRunes hard-cuts text into pieces of at most max runes.
func chopRunes(text string, max int) []string {
	runes := []rune(text)
	parts := make([]string, 0, (len(runes)+max-1)/max)
	for start := 0; start < len(runes); start += max {
		end := start + max
		if end > len(runes) {
			end = len(runes)
		}
		parts = append(parts, string(runes[start:end]))
	}
	return parts
}
