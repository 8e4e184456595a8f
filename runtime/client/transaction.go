package client

import (
	"context"

	"github.com/edgekit/sqlbridge/internal/adapters/database"
	"github.com/edgekit/sqlbridge/internal/debug"
	"github.com/edgekit/sqlbridge/query/sqlgen"
)

// Transaction runs fn inside a backend transaction. fn receives a handle
// sharing the Client contract; a nil return commits, an error return (or a
// panic) rolls back. Adapters without transaction support report
// ErrTransactionsUnsupported.
func (db *DB) Transaction(ctx context.Context, fn func(Client) error) error {
	adapter, err := db.resolve(ctx)
	if err != nil {
		return err
	}

	beginner, ok := adapter.(database.Beginner)
	if !ok {
		return ErrTransactionsUnsupported
	}

	tx, err := beginner.Begin(ctx)
	if err != nil {
		return &ExecuteError{Dialect: adapter.Dialect(), SQL: "BEGIN", Err: err}
	}

	debug.Debug("transaction begin", "client", db.id)
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(&txClient{tx: tx, dialect: adapter.Dialect()}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			debug.Warn("rollback failed", "client", db.id, "err", rbErr)
		}
		return err
	}
	return tx.Commit()
}

// txClient adapts a live transaction to the Client contract.
type txClient struct {
	tx      database.Transaction
	dialect database.Dialect
}

func (c *txClient) Query(ctx context.Context, stmt sqlgen.Statement) (*Result, error) {
	rows, err := c.tx.Query(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		return nil, &QueryError{Dialect: c.dialect, SQL: stmt.SQL, Err: err}
	}
	set, err := database.ScanRows(rows)
	if err != nil {
		return nil, &QueryError{Dialect: c.dialect, SQL: stmt.SQL, Err: err}
	}
	return &Result{Columns: set.Columns, Rows: set.Rows}, nil
}

func (c *txClient) Execute(ctx context.Context, stmt sqlgen.Statement) (ExecResult, error) {
	result, err := c.tx.Execute(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		return ExecResult{}, &ExecuteError{Dialect: c.dialect, SQL: stmt.SQL, Err: err}
	}
	return execOutcome(result, c.dialect), nil
}

var _ Client = (*txClient)(nil)
