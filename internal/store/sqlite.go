package store

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists dismissed-discovery keys so manual review decisions
// survive fetch runs that rewrite the discoveries file.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and ensures
// the dismissed table exists.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Verify the connection is alive.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite db: %w", err)
	}

	createTable := `CREATE TABLE IF NOT EXISTS dismissed_discoveries (
		discovery_key TEXT PRIMARY KEY,
		dismissed_at  DATETIME DEFAULT CURRENT_TIMESTAMP
	)`
	if _, err := db.Exec(createTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating dismissed_discoveries table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// IsDismissed returns true if the given discovery key has been dismissed.
func (s *SQLiteStore) IsDismissed(key string) (bool, error) {
	var exists int
	err := s.db.QueryRow("SELECT 1 FROM dismissed_discoveries WHERE discovery_key = ?", key).Scan(&exists)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking dismissed status for %s: %w", key, err)
	}
	return true, nil
}

// Dismiss records a discovery key. If it already exists the call is a no-op.
func (s *SQLiteStore) Dismiss(key string) error {
	_, err := s.db.Exec("INSERT OR IGNORE INTO dismissed_discoveries (discovery_key) VALUES (?)", key)
	if err != nil {
		return fmt.Errorf("dismissing discovery %s: %w", key, err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
