// Package randsrc supplies cryptographically strong random bytes for
// overwrite passes and obfuscated filenames.
//
// The platform source prefers the kernel's getrandom-style interface and
// falls back to the system random device. There is deliberately no
// deterministic PRNG fallback: wipe quality depends on real randomness,
// and a silent downgrade would defeat the point of the tool.
package randsrc

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
)

// Source fills buffers with cryptographically suitable random bytes.
type Source interface {
	// Fill populates all of p or returns an error. Partial fills are
	// never returned to the caller.
	Fill(p []byte) error
}

// System returns the platform random source: getrandom(2) where the
// kernel supports it, with the system random device as fallback.
func System() Source {
	return systemSource()
}

// deviceSource reads from the OS random device via crypto/rand.Reader.
type deviceSource struct{}

func (deviceSource) Fill(p []byte) error {
	if _, err := io.ReadFull(rand.Reader, p); err != nil {
		return fmt.Errorf("read random device: %w", err)
	}
	return nil
}

// HexName renders n random bytes from src as a 2n-character lowercase
// hexadecimal string, suitable for a collision-resistant basename.
func HexName(src Source, n int) (string, error) {
	b := make([]byte, n)
	if err := src.Fill(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
