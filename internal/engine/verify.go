package engine

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/zeebo/blake3"
)

// verifyZeroFill re-reads the file and compares its BLAKE3 digest
// against the digest of an equal-length zero stream. Run after the
// final zero pass, before removal, to catch storage that lied about
// the overwrite reaching the file's extents.
func (e *engine) verifyZeroFill(path string, size int64) error {
	got, err := hashFile(path)
	if err != nil {
		return fmt.Errorf("verify: %w", err)
	}

	want := zeroDigest(size)
	if got != want {
		return fmt.Errorf("verify %s: content not zero after final pass", path)
	}
	return nil
}

// hashFile computes the BLAKE3 hash of the file at path, returning the
// hex-encoded digest.
func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	h := blake3.New()
	buf := make([]byte, 32*1024)
	if _, err := io.CopyBuffer(h, f, buf); err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}

	digest := h.Sum(nil)
	return hex.EncodeToString(digest), nil
}

// zeroDigest returns the hex BLAKE3 digest of size zero bytes.
func zeroDigest(size int64) string {
	h := blake3.New()
	zeros := make([]byte, 32*1024)
	for size > 0 {
		n := int64(len(zeros))
		if n > size {
			n = size
		}
		h.Write(zeros[:n])
		size -= n
	}
	digest := h.Sum(nil)
	return hex.EncodeToString(digest)
}
