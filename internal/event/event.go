package event

import "time"

// Type identifies the kind of event.
type Type int

const (
	WipeStarted Type = iota + 1
	PassStarted
	PassCompleted
	SyncDegraded
	FileWiped
	FileRenamed
	FileRemoved
	FileSkipped
	FileFailed
	VerifyOK
	VerifyFailed
)

var typeNames = [...]string{
	WipeStarted:   "WipeStarted",
	PassStarted:   "PassStarted",
	PassCompleted: "PassCompleted",
	SyncDegraded:  "SyncDegraded",
	FileWiped:     "FileWiped",
	FileRenamed:   "FileRenamed",
	FileRemoved:   "FileRemoved",
	FileSkipped:   "FileSkipped",
	FileFailed:    "FileFailed",
	VerifyOK:      "VerifyOK",
	VerifyFailed:  "VerifyFailed",
}

func (t Type) String() string {
	if t > 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "Unknown"
}

// Event represents a single progress event from the engine.
type Event struct {
	Type      Type
	Timestamp time.Time
	Path      string // original file path
	NewPath   string // renamed path (FileRenamed)
	Size      int64  // file size in bytes
	Pass      int    // pass number (PassStarted/PassCompleted), 0 for the zero pass
	Passes    int    // total configured passes
	Error     error
}
