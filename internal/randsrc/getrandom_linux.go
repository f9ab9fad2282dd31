//go:build linux

package randsrc

import (
	"golang.org/x/sys/unix"
)

// getrandomSource fills buffers with getrandom(2), retrying on EINTR
// and short fills. A hard error falls through to the device source so a
// restricted environment (e.g. a seccomp filter denying the syscall)
// still gets real randomness.
type getrandomSource struct {
	fallback Source
}

func systemSource() Source {
	return &getrandomSource{fallback: deviceSource{}}
}

func (s *getrandomSource) Fill(p []byte) error {
	rem := p
	for len(rem) > 0 {
		n, err := unix.Getrandom(rem, 0)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			// ENOSYS on pre-3.17 kernels, EPERM under syscall filters.
			return s.fallback.Fill(p)
		}
		rem = rem[n:]
	}
	return nil
}
