package logger

import (
	"bytes"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// capture redirects log output into a buffer for the duration of a test.
func capture(t *testing.T, verbose bool) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(verbose)
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})
	return &buf
}

func TestSetVerbose(t *testing.T) {
	capture(t, false)

	assert.False(t, IsVerbose())
	SetVerbose(true)
	assert.True(t, IsVerbose())
	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestLevels_WhenVerbose(t *testing.T) {
	tests := []struct {
		name string
		log  func()
		want string
	}{
		{"debug", func() { Debug("chunk %d of %d", 2, 5) }, "[DEBUG] chunk 2 of 5\n"},
		{"info", func() { Info("indexed %s", "a.txt") }, "[INFO] indexed a.txt\n"},
		{"warn", func() { Warn("skipping corrupt file") }, "[WARN] skipping corrupt file\n"},
		{"section", func() { Section("Indexing") }, "\n=== Indexing ===\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			buf := capture(t, true)
			tc.log()
			assert.Equal(t, tc.want, buf.String())
		})
	}
}

func TestLevels_WhenNotVerbose(t *testing.T) {
	buf := capture(t, false)

	Debug("hidden")
	Info("hidden")
	Warn("hidden")
	Section("hidden")

	assert.Zero(t, buf.Len())
}

func TestConcurrentAccess(t *testing.T) {
	capture(t, true)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			SetVerbose(true)
			Debug("concurrent %d", 1)
			IsVerbose()
		}()
	}
	wg.Wait()
}
