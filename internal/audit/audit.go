// Package audit provides a SQLite-backed destruction journal: one row
// per processed file recording what was destroyed, how, and whether it
// succeeded. The journal is evidence for operators, not a control
// surface — writes are batched and best-effort, and journal failures
// never block destruction.
package audit

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Outcome values recorded per file.
const (
	OutcomeDestroyed = "destroyed"
	OutcomeFailed    = "failed"
	OutcomeSkipped   = "skipped"
)

// Record is one journal entry.
type Record struct {
	Path     string
	Size     int64
	Passes   int
	ZeroFill bool
	Outcome  string
	Cause    error
}

// Journal is a per-run destruction log.
type Journal struct {
	db    *sql.DB
	runID string
	path  string

	mu      sync.Mutex
	batch   []Record
	done    chan struct{}
	stopped bool
}

// Open creates (or appends to) the journal database and starts a new
// run. The DB lives at $XDG_STATE_HOME/shredder/audit.db, falling back
// to ~/.local/state/shredder/audit.db.
func Open() (*Journal, error) {
	dbPath, err := journalPath()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("create journal dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open journal db: %w", err)
	}

	j := &Journal{
		db:    db,
		runID: uuid.New().String(),
		path:  dbPath,
		done:  make(chan struct{}),
	}

	if err := j.init(); err != nil {
		db.Close()
		return nil, err
	}

	go j.flushLoop()

	return j, nil
}

func (j *Journal) init() error {
	_, err := j.db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id         TEXT PRIMARY KEY,
			started_at INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS files (
			run_id       TEXT NOT NULL,
			path         TEXT NOT NULL,
			size         INTEGER NOT NULL,
			passes       INTEGER NOT NULL,
			zero_fill    INTEGER NOT NULL,
			outcome      TEXT NOT NULL,
			cause        TEXT,
			completed_at INTEGER NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("create tables: %w", err)
	}

	_, err = j.db.Exec(
		"INSERT INTO runs (id, started_at) VALUES (?, ?)",
		j.runID, time.Now().UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

// RunID returns the identifier of this run.
func (j *Journal) RunID() string {
	return j.runID
}

// Path returns the filesystem path of the journal database.
func (j *Journal) Path() string {
	return j.path
}

// Record appends a journal entry. Writes are batched and flushed
// periodically.
func (j *Journal) Record(rec Record) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.batch = append(j.batch, rec)
	if len(j.batch) >= 100 {
		return j.flushLocked()
	}
	return nil
}

// Flush writes any pending batch entries to the database.
func (j *Journal) Flush() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.flushLocked()
}

func (j *Journal) flushLocked() error {
	if len(j.batch) == 0 {
		return nil
	}

	tx, err := j.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO files (run_id, path, size, passes, zero_fill, outcome, cause, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UnixNano()
	for _, rec := range j.batch {
		var cause any
		if rec.Cause != nil {
			cause = rec.Cause.Error()
		}
		zero := 0
		if rec.ZeroFill {
			zero = 1
		}
		if _, err := stmt.Exec(
			j.runID, rec.Path, rec.Size, rec.Passes, zero, rec.Outcome, cause, now,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert %s: %w", rec.Path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	j.batch = j.batch[:0]
	return nil
}

func (j *Journal) flushLoop() {
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-j.done:
			return
		case <-ticker.C:
			j.mu.Lock()
			_ = j.flushLocked()
			j.mu.Unlock()
		}
	}
}

// Close flushes any pending writes and closes the database.
func (j *Journal) Close() error {
	j.mu.Lock()
	if !j.stopped {
		j.stopped = true
		close(j.done)
	}
	flushErr := j.flushLocked()
	j.mu.Unlock()

	if err := j.db.Close(); err != nil {
		return err
	}
	return flushErr
}

// journalPath returns the filesystem path for the journal DB.
func journalPath() (string, error) {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "shredder", "audit.db"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve state dir: %w", err)
	}
	return filepath.Join(home, ".local", "state", "shredder", "audit.db"), nil
}
