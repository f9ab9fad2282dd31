//go:build linux

package platform

import (
	"os"

	"golang.org/x/sys/unix"
)

// SyncData requests that previously written file data reach stable
// storage. It tries fdatasync(2) first, falling back to a full fsync(2)
// when the data-only variant is unsupported.
func SyncData(fd *os.File) (SyncMethod, error) {
	rawFd := int(fd.Fd())

	err := ignoringEINTR(func() error {
		return unix.Fdatasync(rawFd)
	})
	if err == nil {
		return Fdatasync, nil
	}
	if err != unix.ENOSYS && err != unix.EINVAL && err != unix.ENOTSUP {
		return SyncNone, err
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
