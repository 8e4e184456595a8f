// Package postgres implements the PostgreSQL adapter. The compiler emits `?`
// placeholders uniformly; this adapter rewrites them to the `$N` style lib/pq
// expects before handing statements to the driver.
//
// PostgreSQL exposes no LastInsertId through lib/pq; callers detect that via
// the dialect. There is no native batch here: batches fall back to the
// client's transactional path.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/edgekit/sqlbridge/internal/adapters/database"
)

// Adapter implements database.Adapter for PostgreSQL.
type Adapter struct {
	db *sql.DB
}

// Open connects to the PostgreSQL database at url and verifies the
// connection.
func Open(ctx context.Context, url string) (*Adapter, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &Adapter{db: db}, nil
}

// FromHandle wraps an already-constructed *sql.DB. The caller keeps
// ownership of the handle.
func FromHandle(db *sql.DB) *Adapter {
	return &Adapter{db: db}
}

// Query executes a statement that returns rows.
func (a *Adapter) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return a.db.QueryContext(ctx, rewritePlaceholders(query), args...)
}

// Execute executes a statement without returning rows.
func (a *Adapter) Execute(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return a.db.ExecContext(ctx, rewritePlaceholders(query), args...)
}

// Begin starts a transaction.
func (a *Adapter) Begin(ctx context.Context) (database.Transaction, error) {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &transaction{tx: tx}, nil
}

// Close closes the database.
func (a *Adapter) Close() error {
	return a.db.Close()
}

// Dialect returns database.PostgreSQL.
func (a *Adapter) Dialect() database.Dialect {
	return database.PostgreSQL
}

type transaction struct {
	tx *sql.Tx
}

func (t *transaction) Commit() error {
	return t.tx.Commit()
}

func (t *transaction) Rollback() error {
	return t.tx.Rollback()
}

func (t *transaction) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return t.tx.QueryContext(ctx, rewritePlaceholders(query), args...)
}

func (t *transaction) Execute(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return t.tx.ExecContext(ctx, rewritePlaceholders(query), args...)
}
