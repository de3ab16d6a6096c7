package sqlite

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openLedger(t *testing.T, path string) *Ledger {
	t.Helper()
	l, err := New(path)
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })
	return l
}

func TestContains_EmptyLedger(t *testing.T) {
	l := openLedger(t, filepath.Join(t.TempDir(), "ledger.db"))

	ok, err := l.Contains(42)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestInsertAndContains(t *testing.T) {
	l := openLedger(t, filepath.Join(t.TempDir(), "ledger.db"))

	require.NoError(t, l.Insert(99))

	ok, err := l.Contains(99)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = l.Contains(100)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestInsert_Idempotent(t *testing.T) {
	l := openLedger(t, filepath.Join(t.TempDir(), "ledger.db"))

	require.NoError(t, l.Insert(7))
	require.NoError(t, l.Insert(7))

	ok, err := l.Contains(7)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPersistence_AcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")

	l, err := New(path)
	require.NoError(t, err)
	require.NoError(t, l.Insert(123))
	require.NoError(t, l.Close())

	reopened := openLedger(t, path)
	ok, err := reopened.Contains(123)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLargeFingerprints(t *testing.T) {
	// Values above the int64 range must round-trip through the
	// signed storage column unchanged.
	l := openLedger(t, filepath.Join(t.TempDir(), "ledger.db"))

	for _, fp := range []uint64{math.MaxUint64, math.MaxInt64 + 1, 0} {
		require.NoError(t, l.Insert(fp))
		ok, err := l.Contains(fp)
		require.NoError(t, err)
		assert.True(t, ok, "fingerprint %d must survive storage", fp)
	}
}
