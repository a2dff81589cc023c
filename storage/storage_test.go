package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// TestFileStore_RoundTrip verifies a value written to a slot reads back
// byte-identical.
func TestFileStore_RoundTrip(t *testing.T) {
	t.Parallel()

	st, err := NewFileStore(t.TempDir(), zap.NewNop())
	require.NoError(t, err)

	payload := []byte(`[{"id":"P1","cantidad":2}]`)
	require.NoError(t, st.Set(KeyCart, payload))

	got, ok, err := st.Get(KeyCart)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, payload, got)
}

// TestFileStore_MissingKey verifies an absent slot is reported as missing,
// not as an error.
func TestFileStore_MissingKey(t *testing.T) {
	t.Parallel()

	st, err := NewFileStore(t.TempDir(), zap.NewNop())
	require.NoError(t, err)

	got, ok, err := st.Get("no-such-slot")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, got)
}

// TestFileStore_Overwrite verifies Set replaces the previous value whole.
func TestFileStore_Overwrite(t *testing.T) {
	t.Parallel()

	st, err := NewFileStore(t.TempDir(), zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, st.Set(KeyStock, []byte(`{"P1":5}`)))
	require.NoError(t, st.Set(KeyStock, []byte(`{"P1":4}`)))

	got, ok, err := st.Get(KeyStock)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte(`{"P1":4}`), got)
}

// TestFileStore_Delete verifies deletion and that deleting twice is a no-op.
func TestFileStore_Delete(t *testing.T) {
	t.Parallel()

	st, err := NewFileStore(t.TempDir(), zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, st.Set(KeyCart, []byte(`[]`)))
	require.NoError(t, st.Delete(KeyCart))
	require.NoError(t, st.Delete(KeyCart))

	_, ok, err := st.Get(KeyCart)
	require.NoError(t, err)
	assert.False(t, ok)
}

// TestFileStore_LeavesNoTempFiles verifies the rename-based write cleans up
// after itself.
func TestFileStore_LeavesNoTempFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	st, err := NewFileStore(dir, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, st.Set(KeyCart, []byte(`[]`)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, KeyCart+".json", filepath.Base(entries[0].Name()))
}

// TestMemStore_Isolation verifies Get hands out copies, not aliases.
func TestMemStore_Isolation(t *testing.T) {
	t.Parallel()

	st := NewMemStore()
	require.NoError(t, st.Set(KeyCart, []byte(`abc`)))

	got, ok, err := st.Get(KeyCart)
	require.NoError(t, err)
	require.True(t, ok)
	got[0] = 'x'

	again, _, err := st.Get(KeyCart)
	require.NoError(t, err)
	assert.Equal(t, []byte(`abc`), again)
}
