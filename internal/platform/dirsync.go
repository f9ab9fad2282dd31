package platform

import (
	"fmt"
	"os"
)

// SyncDir opens the directory at path and fsyncs it, persisting entry
// changes (renames, unlinks) against crash or power loss.
func SyncDir(path string) error {
	d, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open dir %s: %w", path, err)
	}
	defer d.Close()

	if err := d.Sync(); err != nil {
		return fmt.Errorf("sync dir %s: %w", path, err)
	}
	return nil
}
