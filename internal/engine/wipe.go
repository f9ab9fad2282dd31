package engine

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/Ruzu28/File-Shredder/internal/event"
	"github.com/Ruzu28/File-Shredder/internal/platform"
)

// chunkSize is the scratch buffer ceiling for overwrite passes.
const chunkSize = 1 << 20 // 1 MiB

// ErrNotRegular is returned when a path resolves to anything other
// than a regular file. Symlinks are not followed.
var ErrNotRegular = errors.New("not a regular file")

// wipeFile overwrites the file's full extent with cfg.Passes passes of
// random data, plus one zero pass when configured, issuing a durability
// checkpoint after each pass. Returns the file size that was wiped.
//
// Any write or randomness error aborts the remaining passes and leaves
// the file partially overwritten in place; there is nothing to roll
// back to. Checkpoint failures are reported as warnings only.
func (e *engine) wipeFile(ctx context.Context, path string) (int64, error) {
	info, err := os.Lstat(path)
	if err != nil {
		e.cfg.Stats.AddFilesFailed(1)
		e.emit(event.Event{Type: event.FileFailed, Path: path, Error: err})
		return 0, fmt.Errorf("stat: %w", err)
	}
	if !info.Mode().IsRegular() {
		e.cfg.Stats.AddFilesSkipped(1)
		e.emit(event.Event{Type: event.FileSkipped, Path: path, Error: ErrNotRegular})
		return 0, ErrNotRegular
	}

	// Size is read once and treated as fixed for all passes. Concurrent
	// modification of the target is outside the single-accessor
	// assumption this tool operates under.
	size := info.Size()
	e.emit(event.Event{Type: event.WipeStarted, Path: path, Size: size, Passes: e.cfg.Passes})

	if e.cfg.DryRun {
		return size, nil
	}

	fd, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		e.cfg.Stats.AddFilesFailed(1)
		e.emit(event.Event{Type: event.FileFailed, Path: path, Error: err})
		return size, fmt.Errorf("open: %w", err)
	}
	defer fd.Close()

	// One scratch buffer for the whole file, reused across passes.
	// A zero-length file still gets a full-size buffer so the pass loop
	// below stays uniform; it simply writes nothing.
	bufSize := int64(chunkSize)
	if size > 0 && size < bufSize {
		bufSize = size
	}
	buf := make([]byte, bufSize)

	for pass := 1; pass <= e.cfg.Passes; pass++ {
		if err := ctx.Err(); err != nil {
			e.cfg.Stats.AddFilesFailed(1)
			e.emit(event.Event{Type: event.FileFailed, Path: path, Error: err})
			return size, err
		}
		e.emit(event.Event{Type: event.PassStarted, Path: path, Pass: pass, Passes: e.cfg.Passes, Size: size})

		if err := e.writePass(ctx, fd, buf, size, true); err != nil {
			e.cfg.Stats.AddFilesFailed(1)
			e.emit(event.Event{Type: event.FileFailed, Path: path, Error: err})
			return size, fmt.Errorf("pass %d/%d: %w", pass, e.cfg.Passes, err)
		}
		e.checkpoint(fd, path)

		e.cfg.Stats.AddPassesComplete(1)
		e.emit(event.Event{Type: event.PassCompleted, Path: path, Pass: pass, Passes: e.cfg.Passes, Size: size})
	}

	if e.cfg.ZeroFill {
		if err := ctx.Err(); err != nil {
			e.cfg.Stats.AddFilesFailed(1)
			e.emit(event.Event{Type: event.FileFailed, Path: path, Error: err})
			return size, err
		}
		// Pass 0 in events identifies the zero pass.
		e.emit(event.Event{Type: event.PassStarted, Path: path, Pass: 0, Passes: e.cfg.Passes, Size: size})

		clear(buf)
		if err := e.writePass(ctx, fd, buf, size, false); err != nil {
			e.cfg.Stats.AddFilesFailed(1)
			e.emit(event.Event{Type: event.FileFailed, Path: path, Error: err})
			return size, fmt.Errorf("zero pass: %w", err)
		}
		e.checkpoint(fd, path)

		e.cfg.Stats.AddPassesComplete(1)
		e.emit(event.Event{Type: event.PassCompleted, Path: path, Pass: 0, Passes: e.cfg.Passes, Size: size})

		if e.cfg.Verify {
			if err := e.verifyZeroFill(path, size); err != nil {
				e.cfg.Stats.AddFilesFailed(1)
				e.emit(event.Event{Type: event.VerifyFailed, Path: path, Error: err})
				return size, err
			}
			e.emit(event.Event{Type: event.VerifyOK, Path: path, Size: size})
		}
	}

	return size, nil
}

// writePass covers bytes [0, size) with sequential positioned writes
// from buf, refilling buf with fresh randomness per chunk when refill
// is set. The final chunk is clamped to the remaining byte count.
func (e *engine) writePass(ctx context.Context, fd *os.File, buf []byte, size int64, refill bool) error {
	var off int64
	for off < size {
		n := int64(len(buf))
		if n > size-off {
			n = size - off
		}
		chunk := buf[:n]

		if refill {
			if err := e.cfg.Rand.Fill(chunk); err != nil {
				return fmt.Errorf("fill random: %w", err)
			}
		}

		if e.limiter != nil {
			if err := waitN(ctx, e.limiter, int(n)); err != nil {
				return err
			}
		}

		w, err := platform.PwriteFull(fd, chunk, off)
		e.cfg.Stats.AddBytesWritten(w)
		if err != nil {
			return fmt.Errorf("write at %d: %w", off+w, err)
		}
		off += w
	}
	return nil
}

// checkpoint flushes pass data to stable storage. Failure degrades the
// crash-durability guarantee but the data has already reached the OS
// write path, so it is surfaced as a warning and the wipe continues.
func (e *engine) checkpoint(fd *os.File, path string) {
	if _, err := platform.SyncData(fd); err != nil {
		e.cfg.Stats.AddSyncWarnings(1)
		e.emit(event.Event{Type: event.SyncDegraded, Path: path, Error: err})
	}
}
