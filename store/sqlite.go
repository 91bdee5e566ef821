package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// DefaultSlot is the slot used when none is configured.
const DefaultSlot = "default"

const schema = `CREATE TABLE IF NOT EXISTS saves (
	slot     TEXT PRIMARY KEY,
	data     TEXT NOT NULL,
	saved_at TIMESTAMP NOT NULL
);`

// SQLite keeps saves in a SQLite database, one row per slot. A store reads
// and writes a single slot.
type SQLite struct {
	db   *sql.DB
	slot string
}

// OpenSQLite opens, and creates if missing, the database at path.
func OpenSQLite(ctx context.Context, path, slot string) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create saves table: %w", err)
	}
	if slot == "" {
		slot = DefaultSlot
	}
	return &SQLite{db: db, slot: slot}, nil
}

func (s *SQLite) Save(ctx context.Context, data []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO saves (slot, data, saved_at) VALUES (?, ?, ?)
		ON CONFLICT(slot) DO UPDATE SET data = excluded.data, saved_at = excluded.saved_at`,
		s.slot, string(data), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to save slot %q: %w", s.slot, err)
	}
	return nil
}

func (s *SQLite) Load(ctx context.Context) ([]byte, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM saves WHERE slot = ?`, s.slot).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load slot %q: %w", s.slot, err)
	}
	return []byte(data), nil
}

func (s *SQLite) Exists(ctx context.Context) (bool, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM saves WHERE slot = ?`, s.slot).Scan(&n); err != nil {
		return false, fmt.Errorf("failed to check slot %q: %w", s.slot, err)
	}
	return n > 0, nil
}

// SavedAt returns when the slot was last written.
func (s *SQLite) SavedAt(ctx context.Context) (time.Time, error) {
	var at time.Time
	err := s.db.QueryRowContext(ctx, `SELECT saved_at FROM saves WHERE slot = ?`, s.slot).Scan(&at)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, ErrNotFound
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to load slot %q: %w", s.slot, err)
	}
	return at, nil
}

func (s *SQLite) Close() error { return s.db.Close() }
