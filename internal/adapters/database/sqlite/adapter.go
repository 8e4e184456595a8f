// Package sqlite implements the SQLite adapter. The concrete driver is
// selected at build time: the cgo github.com/mattn/go-sqlite3 driver with the
// `mattn` build tag, the pure-Go modernc.org/sqlite driver otherwise. Each
// variant owns its DSN syntax since the two drivers spell pragmas differently.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/edgekit/sqlbridge/internal/adapters/database"
)

// MemoryPath is the reserved in-memory database token.
const MemoryPath = ":memory:"

// Adapter implements database.Adapter backed by a single SQLite connection.
// SQLite serializes writers, so the pool is capped at one connection.
type Adapter struct {
	db *sql.DB
}

// Open opens (or creates) the SQLite database at path and verifies the
// connection. Pass MemoryPath for an in-memory database.
func Open(ctx context.Context, path string) (*Adapter, error) {
	pragmas := persistentPragmas
	if path == MemoryPath {
		pragmas = memoryPragmas
	}

	db, err := sql.Open(driverName, buildDSN(path, pragmas))
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite %q: %w", path, err)
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

// Batch runs all statements inside one transaction: the batch is atomic, the
// first failure rolls back every earlier statement. Outcomes preserve
// statement order; on failure the failing item carries the error.
func (a *Adapter) Batch(ctx context.Context, stmts []database.BatchStatement) ([]database.BatchOutcome, error) {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	outcomes := make([]database.BatchOutcome, len(stmts))
	for i, stmt := range stmts {
		if stmt.ReturnsRows {
			rows, err := tx.QueryContext(ctx, stmt.Query, stmt.Args...)
			if err == nil {
				outcomes[i].Rows, err = database.ScanRows(rows)
			}
			if err != nil {
				outcomes[i].Err = err
				tx.Rollback()
				return outcomes, err
			}
		} else {
			result, err := tx.ExecContext(ctx, stmt.Query, stmt.Args...)
			if err != nil {
				outcomes[i].Err = err
				tx.Rollback()
				return outcomes, err
			}
			outcomes[i].Result = result
		}
	}

	if err := tx.Commit(); err != nil {
		return outcomes, err
	}
	return outcomes, nil
}

// Close closes the database.
func (a *Adapter) Close() error {
	return a.db.Close()
}

// Dialect returns database.SQLite.
func (a *Adapter) Dialect() database.Dialect {
	return database.SQLite
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
