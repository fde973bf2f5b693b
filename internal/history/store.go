package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mgpai22/subshift/internal/subtitle"
)

const schema = `CREATE TABLE IF NOT EXISTS delay_history (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    raw_input  TEXT    NOT NULL,
    delay_ms   INTEGER NOT NULL UNIQUE,
    created_at TEXT    NOT NULL
)`

// one delay the user saved with
type Entry struct {
	Raw       string
	Ms        int64
	CreatedAt time.Time
}

// Label renders the delay as "–1500ms".
func (e Entry) Label() string {
	return subtitle.FormatSignedMs(e.Ms)
}

// Human renders the delay as "–1s 500ms", or "" under one second.
func (e Entry) Human() string {
	return subtitle.FormatHuman(e.Ms)
}

// Store keeps the most recent delays, newest first, one row per value.
type Store struct {
	db    *sql.DB
	path  string
	limit int
}

// Open initializes or connects to the history database.
func Open(path string, limit int) (*Store, error) {
	if limit < 1 {
		return nil, fmt.Errorf("history limit must be positive, got %d", limit)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create history table: %w", err)
	}

	return &Store{db: db, path: path, limit: limit}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Add records a delay. A value already present moves to the front with the
// new raw input, and rows beyond the limit are pruned.
func (s *Store) Add(ctx context.Context, raw string, ms int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin history tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM delay_history WHERE delay_ms = ?`, ms); err != nil {
		return fmt.Errorf("remove previous entry: %w", err)
	}
	if _, err := tx.ExecContext(
		ctx,
		`INSERT INTO delay_history (raw_input, delay_ms, created_at) VALUES (?, ?, ?)`,
		raw,
		ms,
		time.Now().UTC().Format(time.RFC3339Nano),
	); err != nil {
		return fmt.Errorf("insert history entry: %w", err)
	}
	if _, err := tx.ExecContext(
		ctx,
		`DELETE FROM delay_history WHERE id NOT IN (
            SELECT id FROM delay_history ORDER BY id DESC LIMIT ?
        )`,
		s.limit,
	); err != nil {
		return fmt.Errorf("prune history: %w", err)
	}
	return tx.Commit()
}

// Recent returns up to the store limit of entries, newest first.
func (s *Store) Recent(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT raw_input, delay_ms, created_at FROM delay_history ORDER BY id DESC LIMIT ?`,
		s.limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e       Entry
			created string
		)
		if err := rows.Scan(&e.Raw, &e.Ms, &created); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		if t, perr := time.Parse(time.RFC3339Nano, created); perr == nil {
			e.CreatedAt = t
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}
	return entries, nil
}

// Clear removes every entry.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM delay_history`); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}
