package platform

import (
	"os"

	"golang.org/x/sys/unix"
)

// PwriteFull writes all of buf to fd at the given offset using
// pwrite(2), retrying interrupted calls and continuing short writes at
// the next offset. Returns the bytes written before any hard error.
func PwriteFull(fd *os.File, buf []byte, offset int64) (int64, error) {
	rawFd := int(fd.Fd())

	var written int64
	for written < int64(len(buf)) {
		n, err := unix.Pwrite(rawFd, buf[written:], offset+written)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return written, err
		}
		written += int64(n)
	}
	return written, nil
}
