// Package mysql implements the MySQL adapter. The driver already uses `?`
// placeholders, so statements pass through untouched. No native batch:
// batches fall back to the client's transactional path.
package mysql

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql" // MySQL driver

	"github.com/edgekit/sqlbridge/internal/adapters/database"
)

// Adapter implements database.Adapter for MySQL.
type Adapter struct {
	db *sql.DB
}

// Open connects to the MySQL database described by dsn and verifies the
// connection.
func Open(ctx context.Context, dsn string) (*Adapter, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping mysql: %w", err)
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
	return a.db.QueryContext(ctx, query, args...)
}

// Execute executes a statement without returning rows.
func (a *Adapter) Execute(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return a.db.ExecContext(ctx, query, args...)
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

// Dialect returns database.MySQL.
func (a *Adapter) Dialect() database.Dialect {
	return database.MySQL
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
	return t.tx.QueryContext(ctx, query, args...)
}

func (t *transaction) Execute(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return t.tx.ExecContext(ctx, query, args...)
}
