// Package sqlite implements repository.Store on modernc.org/sqlite, a pure Go
// SQLite driver. A file path gives a persistent database; ":memory:" gives a
// throwaway one for tests.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	// BLANK IMPORT:
	// The sqlite package's init() registers itself with database/sql as a
	// driver named "sqlite". We import it under a name as well (errors.go
	// needs *sqlite.Error), but the registration is what sql.Open relies on.
	_ "modernc.org/sqlite"

	"github.com/sakif/news-api/internal/repository"
)

// compile-time check that *DB implements the whole repository.Store
var _ repository.Store = (*DB)(nil)

// DB wraps a sql.DB connection pool and provides repository methods.
//
// The pool is created here and owned by whoever called New; it is passed
// explicitly to every query through the receiver, never kept in a package
// variable.
type DB struct {
	conn *sql.DB
}

// New opens a SQLite database.
//
// dbPath examples:
//   - "data/news.db"  → file-based database (persistent)
//   - ":memory:"      → in-memory database (great for tests, lost on close)
//
// New does NOT create tables. The schema is (re)built by Seed, which drops
// and recreates everything, exactly like the seed script it replaces.
func New(dbPath string) (*DB, error) {
	if dbPath == "" {
		dbPath = ":memory:"
	}

	conn, err := sql.Open("sqlite", dsn(dbPath))
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// IN-MEMORY DATABASES ARE PER CONNECTION:
	// Every new connection to ":memory:" gets its own empty database. sql.DB is
	// a pool, so a second concurrent query would open a second connection and
	// find no tables. Pinning the pool to one connection keeps a single DB.
	if isMemory(dbPath) {
		conn.SetMaxOpenConns(1)
	}

	// Ping verifies the connection actually works.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL (Write-Ahead Logging) mode allows concurrent reads WHILE a write is
	// happening. In-memory databases can't use it, so only files get it.
	if !isMemory(dbPath) {
		if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
			conn.Close()
			return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
		}
	}

	return &DB{conn: conn}, nil
}

// dsn appends connection parameters understood by modernc.org/sqlite.
//
// _pragma values run on EVERY new connection in the pool. That matters for
// foreign_keys: it is a per-connection setting and OFF by default, and the
// comment endpoints rely on the store rejecting unknown articles and authors.
//
// _time_format=sqlite writes time.Time as "YYYY-MM-DD HH:MM:SS.SSS+00:00",
// which sorts correctly as text for UTC values (ORDER BY created_at).
func dsn(dbPath string) string {
	v := url.Values{}
	v.Add("_pragma", "foreign_keys(1)")
	v.Add("_pragma", "busy_timeout(5000)")
	v.Set("_time_format", "sqlite")
	return dbPath + "?" + v.Encode()
}

func isMemory(dbPath string) bool {
	return dbPath == ":memory:" || strings.Contains(dbPath, "mode=memory")
}

// Ping checks the database is reachable. Used by the /healthz endpoint.
func (db *DB) Ping(ctx context.Context) error {
	if err := db.conn.PingContext(ctx); err != nil {
		return fmt.Errorf("sqlite: ping: %w", err)
	}
	return nil
}

// Close closes the database connection pool.
//
// ALWAYS DEFER CLOSE:
//
//	db, err := sqlite.New("data/news.db")
//	if err != nil { ... }
//	defer db.Close()
func (db *DB) Close() error {
	return db.conn.Close()
}
