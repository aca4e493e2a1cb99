// Package sqlite implements the RunStore port on a local SQLite database.
package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps the single SQLite connection used for run history. A one-shot
// batch process needs no reader pool; one connection also avoids "database is
// locked" errors entirely.
type DB struct {
	Conn *sql.DB
	path string
}

// NewDB opens the history database with WAL mode, busy timeout, synchronous
// NORMAL and foreign keys enabled.
func NewDB(dbPath string) (*DB, error) {
	dsn := fmt.Sprintf(
		"file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)&_pragma=foreign_keys(ON)",
		dbPath,
	)

	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping history db: %w", err)
	}

	return &DB{Conn: conn, path: dbPath}, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.Conn.Close()
}
