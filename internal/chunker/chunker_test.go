package chunker

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = "First paragraph with a few sentences. Here is another one! " +
	"And a question? Yes.\n\n" +
	"Second paragraph follows after a blank line. It keeps going with " +
	"more words than the first, to force boundary decisions.\n\n" +
	"Third paragraph. Short."

func TestNew_Defaults(t *testing.T) {
	assert.Equal(t, DefaultMaxSize, New(0).MaxSize())
	assert.Equal(t, DefaultMaxSize, New(-5).MaxSize())
	assert.Equal(t, 64, New(64).MaxSize())
}

func TestSplit_EmptyInput(t *testing.T) {
	assert.Nil(t, New(100).Split(""))
}

func TestSplit_Bound(t *testing.T) {
	inputs := []string{
		sample,
		"singleword",
		strings.Repeat("x", 500),
		strings.Repeat("word ", 200),
		"no terminators here just a very long run of words going on and on",
		"длинный текст на кириллице с несколькими предложениями. Вторая фраза!",
	}

	for _, budget := range []int{1, 2, 8, 16, 100, 1024} {
		s := New(budget)
		for _, input := range inputs {
			for _, chunk := range s.Split(input) {
				assert.NotEmpty(t, chunk)
				assert.LessOrEqual(t, utf8.RuneCountInString(chunk), budget,
					"budget %d violated by chunk %q", budget, chunk)
			}
		}
	}
}

func TestSplit_Reconstruction(t *testing.T) {
	for _, budget := range []int{3, 10, 50, 200} {
		chunks := New(budget).Split(sample)
		assert.Equal(t, sample, strings.Join(chunks, ""),
			"budget %d must not drop content", budget)
	}
}

func TestSplit_Deterministic(t *testing.T) {
	s := New(40)
	first := s.Split(sample)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, s.Split(sample))
	}
}

func TestSplit_FitsInOneChunk(t *testing.T) {
	chunks := New(10_000).Split(sample)
	require.Len(t, chunks, 1)
	assert.Equal(t, sample, chunks[0])
}

func TestSplit_PrefersParagraphBoundaries(t *testing.T) {
	text := "aaa.\n\nbbb.\n\nccc."
	chunks := New(6).Split(text)

	require.Len(t, chunks, 3)
	assert.Equal(t, "aaa.\n\n", chunks[0])
	assert.Equal(t, "bbb.\n\n", chunks[1])
	assert.Equal(t, "ccc.", chunks[2])
}

func TestSplit_MultibyteSafety(t *testing.T) {
	text := strings.Repeat("é", 10)
	for _, chunk := range New(3).Split(text) {
		assert.True(t, utf8.ValidString(chunk))
		assert.LessOrEqual(t, utf8.RuneCountInString(chunk), 3)
	}
}
