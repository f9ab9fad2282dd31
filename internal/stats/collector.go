package stats

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Collector tracks wipe operation statistics using lock-free atomic counters.
type Collector struct {
	filesWiped     atomic.Int64
	filesFailed    atomic.Int64
	filesSkipped   atomic.Int64
	bytesWritten   atomic.Int64
	passesComplete atomic.Int64
	syncWarnings   atomic.Int64
	startTime      time.Time
}

// NewCollector creates a Collector with startTime set to now.
func NewCollector() *Collector {
	return &Collector{startTime: time.Now()}
}

// Snapshot is a point-in-time read of all counters.
type Snapshot struct {
	FilesWiped     int64
	FilesFailed    int64
	FilesSkipped   int64
	BytesWritten   int64
	PassesComplete int64
	SyncWarnings   int64
	Elapsed        time.Duration
}

func (c *Collector) AddFilesWiped(n int64)     { c.filesWiped.Add(n) }
func (c *Collector) AddFilesFailed(n int64)    { c.filesFailed.Add(n) }
func (c *Collector) AddFilesSkipped(n int64)   { c.filesSkipped.Add(n) }
func (c *Collector) AddBytesWritten(n int64)   { c.bytesWritten.Add(n) }
func (c *Collector) AddPassesComplete(n int64) { c.passesComplete.Add(n) }
func (c *Collector) AddSyncWarnings(n int64)   { c.syncWarnings.Add(n) }

// Snapshot returns a consistent point-in-time read of all counters.
func (c *Collector) Snapshot() Snapshot {
	return Snapshot{
		FilesWiped:     c.filesWiped.Load(),
		FilesFailed:    c.filesFailed.Load(),
		FilesSkipped:   c.filesSkipped.Load(),
		BytesWritten:   c.bytesWritten.Load(),
		PassesComplete: c.passesComplete.Load(),
		SyncWarnings:   c.syncWarnings.Load(),
		Elapsed:        c.Elapsed(),
	}
}

// Elapsed returns time since collector creation.
func (c *Collector) Elapsed() time.Duration {
	return time.Since(c.startTime)
}

func (s Snapshot) String() string {
	return fmt.Sprintf(
		"wiped=%d failed=%d skipped=%d bytes=%d passes=%d sync_warnings=%d",
		s.FilesWiped, s.FilesFailed, s.FilesSkipped,
		s.BytesWritten, s.PassesComplete, s.SyncWarnings,
	)
}

// FormatBytes returns a human-readable byte count.
func FormatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
