//go:build darwin

package platform

import (
	"os"

	"golang.org/x/sys/unix"
)

// SyncData requests that previously written file data reach stable
// storage. On Darwin fsync(2) only flushes to the drive cache, so
// F_FULLFSYNC is preferred; fsync(2) stands in where the filesystem
// does not support it.
func SyncData(fd *os.File) (SyncMethod, error) {
	rawFd := int(fd.Fd())

	if _, err := unix.FcntlInt(uintptr(rawFd), unix.F_FULLFSYNC, 0); err == nil {
		return FullFsync, nil
	}

	if err := ignoringEINTR(func() error {
		return unix.Fsync(rawFd)
	}); err != nil {
		return SyncNone, err
	}
	return Fsync, nil
}

func ignoringEINTR(fn func() error) error {
	for {
		err := fn()
		if err != unix.EINTR {
			return err
		}
	}
}
