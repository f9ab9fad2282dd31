package platform

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPwriteFull(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	n, err := PwriteFull(f, []byte("hello"), 0)
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)

	// Positioned write does not disturb surrounding data.
	n, err = PwriteFull(f, []byte("XY"), 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "heXYo", string(got))
}

func TestPwriteFull_ClosedFile(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "f"))
	require.NoError(t, err)
	require.NoError(t, f.Close())

	_, err = PwriteFull(f, []byte("data"), 0)
	assert.Error(t, err)
}

func TestSyncData(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "f"))
	require.NoError(t, err)
	defer f.Close()

	_, err = f.Write([]byte("payload"))
	require.NoError(t, err)

	method, err := SyncData(f)
	require.NoError(t, err)
	assert.NotEqual(t, SyncNone, method)
}

func TestSyncDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "f"), []byte("x"), 0600))

	assert.NoError(t, SyncDir(dir))
}

func TestSyncDir_Missing(t *testing.T) {
	err := SyncDir(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestSyncMethod_String(t *testing.T) {
	assert.Equal(t, "none", SyncNone.String())
	assert.Equal(t, "fdatasync", Fdatasync.String())
	assert.Equal(t, "fsync", Fsync.String())
	assert.Equal(t, "full_fsync", FullFsync.String())
	assert.Equal(t, "unknown", SyncMethod(42).String())
}
