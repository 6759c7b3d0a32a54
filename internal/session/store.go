// Package session persists per-file scroll offsets between runs in a
// SQLite database.
package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("session store closed")

// schemaVersion is bumped when the table layout changes. Older databases
// are dropped and recreated; offsets are cheap to lose.
const schemaVersion = 1

const schema = `
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS offsets (
    path       TEXT PRIMARY KEY,
    scroll_x   REAL NOT NULL,
    scroll_y   REAL NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_offsets_updated ON offsets(updated_at);
`

// Offset is a saved scroll position.
type Offset struct {
	X, Y    float64
	Updated time.Time
}

// Store reads and writes scroll offsets.
type Store struct {
	mu     sync.Mutex
	db     *sql.DB
	closed bool
	now    func() time.Time
}

// DefaultPath returns the database location under the user cache dir.
func DefaultPath() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "scrollview", "session.db"), nil
}

// Open opens or creates the database at path. ":memory:" opens a private
// in-memory database.
func Open(path string) (*Store, error) {
	dsn := ":memory:"
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
		dsn = path +
			"?_pragma=journal_mode(WAL)" +
			"&_pragma=synchronous(NORMAL)" +
			"&_pragma=busy_timeout(2000)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Each connection to ":memory:" is its own database.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db, now: time.Now}, nil
}

func migrate(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	var current int
	err := db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&current)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if current == schemaVersion {
		return nil
	}

	stmts := []string{"DELETE FROM offsets", "DELETE FROM schema_version"}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration failed on '%s': %w", stmt, err)
		}
	}
	if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("failed to update schema version: %w", err)
	}
	return nil
}

func (s *Store) conn() (*sql.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}
	return s.db, nil
}

// Get returns the saved offset for path. ok is false when none is saved.
func (s *Store) Get(ctx context.Context, path string) (off Offset, ok bool, err error) {
	db, err := s.conn()
	if err != nil {
		return Offset{}, false, err
	}
	var updated int64
	err = db.QueryRowContext(ctx,
		"SELECT scroll_x, scroll_y, updated_at FROM offsets WHERE path = ?", path,
	).Scan(&off.X, &off.Y, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return Offset{}, false, nil
	}
	if err != nil {
		return Offset{}, false, fmt.Errorf("get offset: %w", err)
	}
	off.Updated = time.Unix(0, updated)
	return off, true, nil
}

// Put saves the offset for path.
func (s *Store) Put(ctx context.Context, path string, x, y float64) error {
	db, err := s.conn()
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `
INSERT INTO offsets (path, scroll_x, scroll_y, updated_at) VALUES (?, ?, ?, ?)
ON CONFLICT(path) DO UPDATE SET
    scroll_x = excluded.scroll_x,
    scroll_y = excluded.scroll_y,
    updated_at = excluded.updated_at`,
		path, x, y, s.now().UnixNano())
	if err != nil {
		return fmt.Errorf("put offset: %w", err)
	}
	return nil
}

// Delete forgets the offset for path.
func (s *Store) Delete(ctx context.Context, path string) error {
	db, err := s.conn()
	if err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx, "DELETE FROM offsets WHERE path = ?", path); err != nil {
		return fmt.Errorf("delete offset: %w", err)
	}
	return nil
}

// Prune removes offsets not updated since before and returns how many
// were removed.
func (s *Store) Prune(ctx context.Context, before time.Time) (int64, error) {
	db, err := s.conn()
	if err != nil {
		return 0, err
	}
	res, err := db.ExecContext(ctx, "DELETE FROM offsets WHERE updated_at < ?", before.UnixNano())
	if err != nil {
		return 0, fmt.Errorf("prune offsets: %w", err)
	}
	return res.RowsAffected()
}

// Close closes the database. It is safe to call more than once.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}
