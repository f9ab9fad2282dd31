package engine

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ruzu28/File-Shredder/internal/event"
	"github.com/Ruzu28/File-Shredder/internal/randsrc"
)

func TestObfuscateAndRemove(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "secret.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	events := make(chan event.Event, 16)
	e := testEngine(Config{Passes: 1, Rand: randsrc.System(), Events: events})

	require.NoError(t, e.obfuscateAndRemove(path))
	close(events)

	var renamed event.Event
	for ev := range events {
		if ev.Type == event.FileRenamed {
			renamed = ev
		}
	}
	require.NotZero(t, renamed.Type, "expected a FileRenamed event")

	// The intermediate name is 32 lowercase hex chars in the same directory.
	assert.Equal(t, dir, filepath.Dir(renamed.NewPath))
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]{32}$`), filepath.Base(renamed.NewPath))

	// Neither the original nor the intermediate path survives.
	_, err := os.Lstat(path)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Lstat(renamed.NewPath)
	assert.True(t, os.IsNotExist(err))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestObfuscateAndRemove_RandomnessFailureFallsBack(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "secret.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	e := testEngine(Config{Passes: 1, Rand: failingSource{}})

	// Without randomness for the new name, the file is unlinked under
	// its original path and no intermediate entry is ever created.
	require.NoError(t, e.obfuscateAndRemove(path))

	_, err := os.Lstat(path)
	assert.True(t, os.IsNotExist(err))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestObfuscateAndRemove_RenameFailureFallsBack(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "secret.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	// A deterministic source makes the generated basename predictable;
	// a non-empty directory squatting on that name forces os.Rename to
	// fail, so removal must fall back to the original path.
	src := &countingSource{pattern: 0xAB}
	taken := filepath.Join(dir, strings.Repeat("ab", nameBytes))
	require.NoError(t, os.Mkdir(taken, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(taken, "occupant"), []byte("y"), 0644))

	events := make(chan event.Event, 16)
	e := testEngine(Config{Passes: 1, Rand: src, Events: events})

	require.NoError(t, e.obfuscateAndRemove(path))
	close(events)

	// Unlinked under its original name; no rename was reported.
	_, err := os.Lstat(path)
	assert.True(t, os.IsNotExist(err))
	for ev := range events {
		assert.NotEqual(t, event.FileRenamed, ev.Type)
	}

	// The squatting directory and its content are untouched.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, filepath.Base(taken), entries[0].Name())
	got, err := os.ReadFile(filepath.Join(taken, "occupant"))
	require.NoError(t, err)
	assert.Equal(t, []byte("y"), got)
}

func TestObfuscateAndRemove_MissingFile(t *testing.T) {
	e := testEngine(Config{Passes: 1, Rand: randsrc.System()})
	err := e.obfuscateAndRemove(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}
