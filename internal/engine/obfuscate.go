package engine

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Ruzu28/File-Shredder/internal/event"
	"github.com/Ruzu28/File-Shredder/internal/platform"
	"github.com/Ruzu28/File-Shredder/internal/randsrc"
)

// nameBytes of randomness per obfuscated basename, rendered as
// 2*nameBytes lowercase hex characters.
const nameBytes = 16

// obfuscateAndRemove renames the file to a random sibling name,
// persists the rename with a directory fsync, then unlinks it. The
// rename hides the original name from directory-entry forensics on
// filesystems that keep deleted entries around; it is best-effort and
// never blocks removal: if the rename (or the randomness behind it)
// fails, the file is unlinked under its original name.
func (e *engine) obfuscateAndRemove(path string) error {
	dir := filepath.Dir(path)

	name, err := randsrc.HexName(e.cfg.Rand, nameBytes)
	if err != nil {
		return e.removeDirect(path)
	}

	newPath := filepath.Join(dir, name)
	if err := os.Rename(path, newPath); err != nil {
		return e.removeDirect(path)
	}
	e.emit(event.Event{Type: event.FileRenamed, Path: path, NewPath: newPath})

	// Persist the rename before removing the entry. Failure here only
	// weakens the crash-ordering guarantee, so warn and keep going.
	if err := platform.SyncDir(dir); err != nil {
		e.cfg.Stats.AddSyncWarnings(1)
		e.emit(event.Event{Type: event.SyncDegraded, Path: newPath, Error: err})
	}

	if err := os.Remove(newPath); err != nil {
		return fmt.Errorf("unlink %s: %w", newPath, err)
	}
	e.emit(event.Event{Type: event.FileRemoved, Path: path, NewPath: newPath})
	return nil
}

func (e *engine) removeDirect(path string) error {
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("unlink %s: %w", path, err)
	}
	e.emit(event.Event{Type: event.FileRemoved, Path: path})
	return nil
}
