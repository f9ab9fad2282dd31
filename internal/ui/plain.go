package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/Ruzu28/File-Shredder/internal/stats"
)

// plainPresenter outputs one line per destroyed file to stdout and
// warnings to stderr. Verbose mode adds per-pass lines.
type plainPresenter struct {
	w       io.Writer
	errW    io.Writer
	stats   *stats.Collector
	verbose bool
	dryRun  bool
}

func (p *plainPresenter) Run(events <-chan Event) error {
	for ev := range events {
		p.handleEvent(ev)
	}
	return nil
}

func (p *plainPresenter) handleEvent(ev Event) {
	switch ev.Type {
	case WipeStarted:
		if p.dryRun {
			fmt.Fprintf(p.w, "would wipe: %s  %s\n", ev.Path, stats.FormatBytes(ev.Size))
		} else if p.verbose {
			fmt.Fprintf(p.errW, "wiping %s (%s, %d passes)\n", ev.Path, stats.FormatBytes(ev.Size), ev.Passes)
		}
	case PassStarted:
		if p.verbose {
			fmt.Fprintf(p.errW, "%s  %s\n", ev.Path, passLabel(ev))
		}
	case PassCompleted:
		// per-pass completion is implied by the next PassStarted line
	case SyncDegraded:
		fmt.Fprintf(p.errW, "warning: sync failed for %s: %v\n", ev.Path, ev.Error)
	case FileRenamed:
		if p.verbose {
			fmt.Fprintf(p.errW, "renamed %s -> %s\n", ev.Path, ev.NewPath)
		}
	case FileRemoved:
		if p.verbose {
			fmt.Fprintf(p.errW, "unlinked %s\n", ev.Path)
		}
	case FileWiped:
		fmt.Fprintf(p.w, "%s  %s\n", ev.Path, stats.FormatBytes(ev.Size))
	case FileSkipped:
		fmt.Fprintf(p.errW, "skipped %s: %v\n", ev.Path, ev.Error)
	case FileFailed:
		fmt.Fprintf(p.errW, "failed %s: %v\n", ev.Path, ev.Error)
	case VerifyOK:
		if p.verbose {
			fmt.Fprintf(p.errW, "verified zero fill: %s\n", ev.Path)
		}
	case VerifyFailed:
		fmt.Fprintf(p.errW, "VERIFY FAILED: %s: %v\n", ev.Path, ev.Error)
	}
}

func passLabel(ev Event) string {
	if ev.Pass == 0 {
		return "zero pass"
	}
	return fmt.Sprintf("pass %d/%d (random)", ev.Pass, ev.Passes)
}

func (p *plainPresenter) Summary() string {
	snap := p.stats.Snapshot()
	if p.dryRun {
		return fmt.Sprintf("dry run: %d file(s), %d skipped", snap.FilesWiped, snap.FilesSkipped)
	}
	s := fmt.Sprintf("wiped %d file(s), %s written in %s",
		snap.FilesWiped,
		stats.FormatBytes(snap.BytesWritten),
		snap.Elapsed.Round(time.Millisecond),
	)
	if snap.FilesFailed > 0 || snap.FilesSkipped > 0 {
		s += fmt.Sprintf(" (%d failed, %d skipped)", snap.FilesFailed, snap.FilesSkipped)
	}
	if snap.SyncWarnings > 0 {
		s += fmt.Sprintf(", %d sync warning(s)", snap.SyncWarnings)
	}
	return s
}
