package platform

// SyncMethod identifies which syscall satisfied a durability checkpoint.
type SyncMethod int

const (
	SyncNone SyncMethod = iota
	Fdatasync            // Linux fdatasync(2)
	Fsync                // fsync(2) fallback
	FullFsync            // macOS F_FULLFSYNC
)

func (m SyncMethod) String() string {
	switch m {
	case SyncNone:
		return "none"
	case Fdatasync:
		return "fdatasync"
	case Fsync:
		return "fsync"
	case FullFsync:
		return "full_fsync"
	default:
		return "unknown"
	}
}
