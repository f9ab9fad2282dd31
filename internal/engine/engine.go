package engine

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/Ruzu28/File-Shredder/internal/audit"
	"github.com/Ruzu28/File-Shredder/internal/event"
	"github.com/Ruzu28/File-Shredder/internal/randsrc"
	"github.com/Ruzu28/File-Shredder/internal/stats"
)

// Config describes a wipe operation.
type Config struct {
	Paths    []string
	Passes   int
	ZeroFill bool
	Verify   bool
	DryRun   bool
	BWLimit  int64 // bytes/sec, 0 = unlimited

	Rand   randsrc.Source
	Events chan<- event.Event
	Stats  *stats.Collector
	Audit  *audit.Journal
}

// Result is the outcome of a wipe operation.
type Result struct {
	Stats stats.Snapshot
	Err   error
}

// Run destroys each configured path in order: overwrite passes, then
// rename-and-unlink. Files are processed strictly sequentially; a
// failure on one file is recorded and processing continues with the
// next. Blocks until all files are handled or ctx is cancelled.
func Run(ctx context.Context, cfg Config) Result {
	if cfg.Passes < 1 {
		cfg.Passes = 1
	}
	if cfg.Rand == nil {
		cfg.Rand = randsrc.System()
	}
	if cfg.Stats == nil {
		cfg.Stats = stats.NewCollector()
	}

	e := &engine{cfg: cfg}
	if cfg.BWLimit > 0 {
		e.limiter = NewBWLimiter(cfg.BWLimit)
	}

	var firstErr error
	var errCount int

	for _, path := range cfg.Paths {
		select {
		case <-ctx.Done():
			if firstErr == nil {
				firstErr = ctx.Err()
				errCount++
			}
			return Result{Stats: cfg.Stats.Snapshot(), Err: joinErrs(firstErr, errCount)}
		default:
		}

		if err := e.destroyFile(ctx, path); err != nil {
			errCount++
			if firstErr == nil {
				firstErr = fmt.Errorf("%s: %w", path, err)
			}
		}
	}

	return Result{Stats: cfg.Stats.Snapshot(), Err: joinErrs(firstErr, errCount)}
}

func joinErrs(first error, count int) error {
	if first == nil {
		return nil
	}
	if count > 1 {
		return fmt.Errorf("%w (and %d more errors)", first, count-1)
	}
	return first
}

type engine struct {
	cfg     Config
	limiter *rate.Limiter
}

// destroyFile runs the full per-file sequence: overwrite, then
// obfuscate-and-remove. The rename/unlink step only runs after a
// successful overwrite.
func (e *engine) destroyFile(ctx context.Context, path string) error {
	size, err := e.wipeFile(ctx, path)
	if err != nil {
		outcome := audit.OutcomeFailed
		if err == ErrNotRegular {
			outcome = audit.OutcomeSkipped
		}
		e.record(path, size, outcome, err)
		return err
	}

	if e.cfg.DryRun {
		e.cfg.Stats.AddFilesWiped(1)
		return nil
	}

	if err := e.obfuscateAndRemove(path); err != nil {
		e.cfg.Stats.AddFilesFailed(1)
		e.emit(event.Event{Type: event.FileFailed, Path: path, Error: err})
		e.record(path, size, audit.OutcomeFailed, err)
		return err
	}

	e.cfg.Stats.AddFilesWiped(1)
	e.emit(event.Event{Type: event.FileWiped, Path: path, Size: size})
	e.record(path, size, audit.OutcomeDestroyed, nil)
	return nil
}

func (e *engine) emit(ev event.Event) {
	if e.cfg.Events == nil {
		return
	}
	ev.Timestamp = time.Now()
	select {
	case e.cfg.Events <- ev:
	default:
	}
}

// record appends an audit entry. The journal is best-effort and must
// never block destruction.
func (e *engine) record(path string, size int64, outcome string, cause error) {
	if e.cfg.Audit == nil {
		return
	}
	_ = e.cfg.Audit.Record(audit.Record{
		Path:     path,
		Size:     size,
		Passes:   e.cfg.Passes,
		ZeroFill: e.cfg.ZeroFill,
		Outcome:  outcome,
		Cause:    cause,
	})
}
