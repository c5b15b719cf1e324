package pubadmin

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/eringen/pubadmin/datatable"
)

// PrefStore wraps a SQLite database holding per-table preferences: which
// columns are visible and how many rows a page shows.
type PrefStore struct {
	db *sql.DB
}

// NewPrefStore opens (or creates) the SQLite database at path, ensures the
// data directory exists, and runs schema migrations.
func NewPrefStore(path string) (*PrefStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets page renders read while a toggle writes; busy_timeout makes
	// writers wait instead of failing with SQLITE_BUSY.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &PrefStore{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *PrefStore) Close() error {
	return s.db.Close()
}

func (s *PrefStore) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS column_prefs (
    resource TEXT NOT NULL,
    column_key TEXT NOT NULL,
    visible INTEGER NOT NULL,
    PRIMARY KEY (resource, column_key)
);
CREATE TABLE IF NOT EXISTS table_prefs (
    resource TEXT PRIMARY KEY,
    per_page INTEGER NOT NULL
);
`)
	return err
}

// Visibility returns the saved column visibility of a resource table.
// A table that was never customized yields an empty map.
func (s *PrefStore) Visibility(resource string) (map[datatable.ColumnKey]bool, error) {
	rows, err := s.db.Query(`SELECT column_key, visible FROM column_prefs WHERE resource = ?`, resource)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	vis := make(map[datatable.ColumnKey]bool)
	for rows.Next() {
		var key string
		var visible int
		if err := rows.Scan(&key, &visible); err != nil {
			return nil, err
		}
		vis[datatable.ColumnKey(key)] = visible == 1
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return vis, nil
}

// SaveVisibility upserts the visibility of every column in vis.
func (s *PrefStore) SaveVisibility(resource string, vis map[datatable.ColumnKey]bool) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO column_prefs (resource, column_key, visible) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for key, visible := range vis {
		v := 0
		if visible {
			v = 1
		}
		if _, err := stmt.Exec(resource, string(key), v); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// PageSize returns the saved page size of a resource table, or 0 when none
// was saved.
func (s *PrefStore) PageSize(resource string) (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT per_page FROM table_prefs WHERE resource = ?`, resource).Scan(&n)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	return n, err
}

// SavePageSize stores the page size of a resource table.
func (s *PrefStore) SavePageSize(resource string, perPage int) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO table_prefs (resource, per_page) VALUES (?, ?)`, resource, perPage)
	return err
}

// Reset forgets every preference of a resource table.
func (s *PrefStore) Reset(resource string) error {
	if _, err := s.db.Exec(`DELETE FROM column_prefs WHERE resource = ?`, resource); err != nil {
		return err
	}
	_, err := s.db.Exec(`DELETE FROM table_prefs WHERE resource = ?`, resource)
	return err
}
