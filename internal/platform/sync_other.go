//go:build !linux && !darwin

package platform

import "os"

// SyncData requests that previously written file data reach stable
// storage via the portable fsync path.
func SyncData(fd *os.File) (SyncMethod, error) {
	if err := fd.Sync(); err != nil {
		return SyncNone, err
	}
	return Fsync, nil
}
