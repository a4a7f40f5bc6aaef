// Package storage opens the optional SQLite event database and instruments
// every query made against it.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

// SQLDB is the database interface used by the loaders.
// Both *sql.DB and *TimedDB satisfy this interface.
type SQLDB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Compile-time check that *sql.DB satisfies SQLDB.
var _ SQLDB = (*sql.DB)(nil)

// readOnlyPragmas keep the connection from writing; the database belongs to
// whichever system manages the events.
const readOnlyPragmas = "_pragma=busy_timeout(5000)&_pragma=query_only(1)"

// DSN builds a read-only modernc sqlite DSN for path.
// PRE: path is non-empty
// POST: returned DSN opens path with query_only enabled
func DSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return "file:" + path + sep + "mode=ro&" + readOnlyPragmas
}

// Open opens path read-only and verifies the connection.
// PRE: path names an existing SQLite database
// POST: returned *sql.DB has been pinged; caller closes it
func Open(ctx context.Context, path string) (*sql.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("open sqlite: empty path")
	}
	db, err := sql.Open("sqlite", DSN(path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// Read-only workload: a handful of connections is plenty.
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}
	return db, nil
}
