// Package database defines the adapter contract every backend satisfies.
package database

import (
	"context"
	"database/sql"
)

// Adapter is a thin translator from the client contract to one native
// database handle. Query and Execute are mandatory; batch and transaction
// support are optional capabilities expressed by the Batcher and Beginner
// interfaces, never assumed.
type Adapter interface {
	// Query executes a statement that returns rows.
	Query(ctx context.Context, query string, args ...any) (*sql.Rows, error)

	// Execute executes a statement that returns an affected-row outcome.
	Execute(ctx context.Context, query string, args ...any) (sql.Result, error)

	// Close releases the underlying native connection.
	Close() error

	// Dialect returns the SQL dialect served by this adapter.
	Dialect() Dialect
}

// Beginner is the optional transaction capability.
type Beginner interface {
	// Begin starts a transaction.
	Begin(ctx context.Context) (Transaction, error)
}

// Batcher is the optional native batch capability. Semantics (atomic vs
// best-effort) are adapter-defined and documented on each implementation;
// results preserve statement order.
type Batcher interface {
	Batch(ctx context.Context, stmts []BatchStatement) ([]BatchOutcome, error)
}

// Transaction is a live transaction sharing the adapter calling convention.
type Transaction interface {
	// Commit commits the transaction.
	Commit() error

	// Rollback rolls back the transaction.
	Rollback() error

	// Query executes a query within the transaction.
	Query(ctx context.Context, query string, args ...any) (*sql.Rows, error)

	// Execute executes a statement within the transaction.
	Execute(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// BatchStatement is one statement inside a batch, at the adapter boundary.
type BatchStatement struct {
	Query string
	Args  []any
	// ReturnsRows selects Query vs Execute semantics for this item.
	ReturnsRows bool
}

// BatchOutcome is the per-item result of a batch, in statement order. Rows
// are fully drained inside the adapter: a live *sql.Rows cannot outlive the
// next statement on the same connection.
type BatchOutcome struct {
	Rows   *RowSet
	Result sql.Result
	Err    error
}

// Dialect identifies a SQL backend family.
type Dialect string

const (
	SQLite     Dialect = "sqlite"
	PostgreSQL Dialect = "postgres"
	MySQL      Dialect = "mysql"
)

// HasLastInsertID reports whether the dialect's Exec results carry a usable
// LastInsertId. lib/pq does not implement it.
func (d Dialect) HasLastInsertID() bool {
	return d != PostgreSQL
}
