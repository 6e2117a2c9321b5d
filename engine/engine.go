package engine

import (
	"database/sql"

	_ "modernc.org/sqlite" // register pure-Go SQLite driver
)

// Open opens a SQLite database using the modernc.org/sqlite driver. For
// file-based databases pass a path like "./snapshots.sqlite".
func Open(dsn string) (*sql.DB, error) { return sql.Open("sqlite", dsn) }

// OpenMemory opens a private in-memory database. The pool is limited to one
// connection since every SQLite connection to ":memory:" sees its own
// database.
func OpenMemory() (*sql.DB, error) {
	db, err := Open(":memory:")
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}
