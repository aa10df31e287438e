// Package store persists reviewable items and review history in SQLite.
// It owns the read-modify-write of the three scheduling fields: every
// review is applied in a single transaction together with its log entry,
// so per-item updates never interleave.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store wraps the SQLite connection and provides access to repositories.
type Store struct {
	db *sql.DB
}

// Open creates a new Store connected to the SQLite database at dsn.
// It applies recommended pragmas and creates missing tables.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Questions returns the question repository backed by this store.
func (s *Store) Questions() *QuestionRepo {
	return &QuestionRepo{db: s.db}
}

// Challenges returns the challenge repository backed by this store.
func (s *Store) Challenges() *ChallengeRepo {
	return &ChallengeRepo{db: s.db}
}

// MCQs returns the MCQ repository backed by this store.
func (s *Store) MCQs() *MCQRepo {
	return &MCQRepo{db: s.db}
}

// EventRepo returns the event repository backed by this store.
func (s *Store) EventRepo() EventRepo {
	return &eventRepo{db: s.db}
}

// ResetSchedules restores every item to a fresh schedule and clears the
// review log. Content is untouched.
func (s *Store) ResetSchedules(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin reset: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"questions", "challenges", "mcq_questions"} {
		q := fmt.Sprintf(
			`UPDATE %s SET interval = 1, ease_factor = 2.5, last_reviewed = NULL`, table)
		if _, err := tx.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("reset %s: %w", table, err)
		}
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM review_log`); err != nil {
		return fmt.Errorf("clear review log: %w", err)
	}
	return tx.Commit()
}

// applyPragmas configures SQLite for single-user performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. RETAIN_DB environment variable
// 2. $XDG_DATA_HOME/retain/retain.db
// 3. ~/.local/share/retain/retain.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("RETAIN_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "retain", "retain.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}

// dateFormat is the storage format for the last_reviewed date column.
const dateFormat = "2006-01-02"

// formatDate renders a nullable review date for storage.
func formatDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(dateFormat)
}

// nullDate scans the nullable last_reviewed column. The column is
// declared DATE, so depending on how a row was written the driver may
// surface the value as a time.Time or as the stored text.
type nullDate struct {
	t *time.Time
}

func (d *nullDate) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		d.t = nil
		return nil
	case time.Time:
		t := v
		d.t = &t
		return nil
	case string:
		return d.parseString(v)
	case []byte:
		return d.parseString(string(v))
	default:
		return fmt.Errorf("scan last_reviewed: unsupported type %T", src)
	}
}

func (d *nullDate) parseString(s string) error {
	if s == "" {
		d.t = nil
		return nil
	}
	for _, layout := range []string{dateFormat, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			d.t = &t
			return nil
		}
	}
	return fmt.Errorf("parse last_reviewed %q: unrecognized date", s)
}

// Time returns the scanned date, nil for never-reviewed rows.
func (d nullDate) Time() *time.Time {
	return d.t
}
