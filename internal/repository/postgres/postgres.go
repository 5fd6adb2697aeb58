// Package postgres implements the repository interfaces on PostgreSQL using
// github.com/lib/pq.
//
// The queries mirror the sqlite package. The differences are the placeholder
// style ($1, $2, ... instead of ?) and error translation: Postgres reports a
// SQLSTATE code and the name of the constraint that failed, so there is no
// need for a follow-up query to find out which foreign key was violated.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	// Registers the "postgres" driver with database/sql. The package is also
	// imported by name in errors.go for *pq.Error.
	_ "github.com/lib/pq"

	"github.com/sakif/news-api/internal/repository"
)

var _ repository.Store = (*DB)(nil)

// DB is a Postgres-backed store.
type DB struct {
	conn *sql.DB
}

// New wraps an existing pool. Tests pass a go-sqlmock pool here.
func New(conn *sql.DB) *DB {
	return &DB{conn: conn}
}

// Open connects to dsn (a postgres:// URL or key=value string) and verifies
// the connection.
func Open(ctx context.Context, dsn string) (*DB, error) {
	conn, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: opening database: %w", err)
	}
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("postgres: pinging database: %w", err)
	}
	return &DB{conn: conn}, nil
}

func (db *DB) Ping(ctx context.Context) error {
	if err := db.conn.PingContext(ctx); err != nil {
		return fmt.Errorf("postgres: ping: %w", err)
	}
	return nil
}

func (db *DB) Close() error {
	return db.conn.Close()
}
