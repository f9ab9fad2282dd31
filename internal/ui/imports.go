package ui

import "github.com/Ruzu28/File-Shredder/internal/event"

// Event is re-exported for presenter signatures.
type Event = event.Event

// Re-export event types for convenience.
const (
	WipeStarted   = event.WipeStarted
	PassStarted   = event.PassStarted
	PassCompleted = event.PassCompleted
	SyncDegraded  = event.SyncDegraded
	FileWiped     = event.FileWiped
	FileRenamed   = event.FileRenamed
	FileRemoved   = event.FileRemoved
	FileSkipped   = event.FileSkipped
	FileFailed    = event.FileFailed
	VerifyOK      = event.VerifyOK
	VerifyFailed  = event.VerifyFailed
)
