// Package sqlite provides a SQLite-backed implementation of the
// storage.Slot interface using Go's standard database/sql package.
//
// WHY SQLite?
// ───────────
// SQLite stores everything in a single file on disk. There is no
// network, no separate server process, and no installation beyond the
// driver. A one-table key/payload layout is all a single named slot needs.
//
// The blank import below registers the sqlite3 driver with database/sql.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aanand-mishra/student-records/internal/storage"

	// Blank import: side-effect only (registers the "sqlite3" driver).
	_ "github.com/mattn/go-sqlite3"
)

// SQLite is the concrete implementation of storage.Slot.
// It holds a *sql.DB which is a connection pool managed by database/sql.
type SQLite struct {
	Db *sql.DB
}

var _ storage.Slot = (*SQLite)(nil)

// New opens the SQLite database at path, creating its parent directory and
// the slots table if they do not already exist.
func New(path string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("sqlite.New: create dirs: %w", err)
	}

	// sql.Open does NOT open a real connection yet — it just validates
	// the driver name and data source name (DSN).
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	// CREATE TABLE IF NOT EXISTS is idempotent — safe to run on every
	// startup.
	//
	// Schema:
	//   key     — slot name, one row per slot
	//   payload — the serialised blob, overwritten on every write
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS slots (
			key     TEXT PRIMARY KEY,
			payload BLOB NOT NULL
		)
	`)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite.New: create table: %w", err)
	}

	return &SQLite{Db: db}, nil
}

// Get reads the payload stored under key.
// sql.ErrNoRows is translated to storage.ErrNotFound so the caller does
// not need to know which backend it is talking to.
func (s *SQLite) Get(key string) ([]byte, error) {
	stmt, err := s.Db.Prepare("SELECT payload FROM slots WHERE key = ? LIMIT 1")
	if err != nil {
		return nil, fmt.Errorf("Get: prepare: %w", err)
	}
	defer stmt.Close()

	var payload []byte
	if err := stmt.QueryRow(key).Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("Get: scan: %w", err)
	}

	return payload, nil
}

// Set upserts the payload under key, replacing any prior value.
func (s *SQLite) Set(key string, payload []byte) error {
	stmt, err := s.Db.Prepare(
		"INSERT INTO slots (key, payload) VALUES (?, ?) " +
			"ON CONFLICT(key) DO UPDATE SET payload = excluded.payload",
	)
	if err != nil {
		return fmt.Errorf("Set: prepare: %w", err)
	}
	defer stmt.Close()

	if _, err := stmt.Exec(key, payload); err != nil {
		return fmt.Errorf("Set: exec: %w", err)
	}

	return nil
}

// Close releases the underlying connection pool.
func (s *SQLite) Close() error {
	return s.Db.Close()
}
