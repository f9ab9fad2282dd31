package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runWithArgs(t *testing.T, args ...string) int {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	saved := os.Args
	t.Cleanup(func() { os.Args = saved })
	os.Args = append([]string{"shredder"}, args...)

	return run()
}

func TestRun_SuccessExitsZero(t *testing.T) {
	path := filepath.Join(t.TempDir(), "target")
	require.NoError(t, os.WriteFile(path, []byte("payload"), 0644))

	assert.Equal(t, 0, runWithArgs(t, "-q", "-n", "1", path))

	_, err := os.Lstat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestRun_FailedFileExitsOne(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "already-gone")

	assert.Equal(t, 1, runWithArgs(t, "-q", "-n", "1", missing))
}

func TestRun_PartialFailureExitsOne(t *testing.T) {
	dir := t.TempDir()
	real := filepath.Join(dir, "real")
	require.NoError(t, os.WriteFile(real, []byte("payload"), 0644))
	missing := filepath.Join(dir, "already-gone")

	// One failure among successes still exits 1, not 2.
	assert.Equal(t, 1, runWithArgs(t, "-q", "-n", "1", missing, real))

	_, err := os.Lstat(real)
	assert.True(t, os.IsNotExist(err))
}

func TestRun_UsageErrorExitsTwo(t *testing.T) {
	// No file arguments.
	assert.Equal(t, 2, runWithArgs(t))

	// Flag validation failures are usage errors too.
	assert.Equal(t, 2, runWithArgs(t, "--verify", filepath.Join(t.TempDir(), "f")))
}

func TestRun_VersionFlag(t *testing.T) {
	assert.Equal(t, 0, runWithArgs(t, "--version"))
}
