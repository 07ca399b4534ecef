// Package database provides database access and management functions for the
// LocaleWatch API. It implements a connection pool, transaction management,
// and common database operations.
package database

import (
	"context"
	"database/sql"
)

// SQLDatabase defines the interface for database operations.
// This interface abstracts the underlying database implementation,
// allowing repositories to run against the real pool in production and a
// sqlmock double in tests.
type SQLDatabase interface {
	// ExecContext executes a query with the provided context without returning any rows.
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)

	// QueryContext executes a query with the provided context that returns rows.
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)

	// QueryRowContext executes a query with the provided context that is expected to return at most one row.
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row

	// BeginTx starts a transaction with the provided context and options.
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)

	// PingContext verifies a connection to the database is still alive using the provided context.
	PingContext(ctx context.Context) error

	// Close closes the database, releasing any open resources.
	Close() error
}
