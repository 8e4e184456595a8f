package client

import (
	"context"

	"github.com/edgekit/sqlbridge/internal/adapters/database"
	"github.com/edgekit/sqlbridge/internal/debug"
	"github.com/edgekit/sqlbridge/query/sqlgen"
)

// BatchStatement is one statement in a batch. ReturnsRows selects query
// semantics for the item; otherwise it executes for an affected outcome.
type BatchStatement struct {
	Statement   sqlgen.Statement
	ReturnsRows bool
}

// BatchResult is the per-item outcome of a batch, in statement order.
// Exactly one of Rows, Exec or Err is set for an attempted item; items never
// attempted (after an aborting failure on an atomic path) are zero.
type BatchResult struct {
	Rows *Result
	Exec *ExecResult
	Err  error
}

// Batch runs the statements in order and returns per-item outcomes.
// Atomicity depends on the resolved backend's capabilities:
//
//   - a native batcher (SQLite) runs the whole batch atomically
//   - otherwise, a backend with transactions runs the batch inside one
//     transaction, also atomically
//   - a backend with neither runs statements sequentially, best-effort: a
//     failing item is recorded and later items still run; nothing already
//     applied is undone.
//
// The returned error is nil only when every item succeeded; otherwise it is
// the first failure, wrapped in a BatchItemError carrying the item index.
func (db *DB) Batch(ctx context.Context, stmts []BatchStatement) ([]BatchResult, error) {
	if len(stmts) == 0 {
		return nil, nil
	}

	adapter, err := db.resolve(ctx)
	if err != nil {
		return nil, err
	}

	if batcher, ok := adapter.(database.Batcher); ok {
		return db.nativeBatch(ctx, batcher, adapter.Dialect(), stmts)
	}
	if _, ok := adapter.(database.Beginner); ok {
		return db.transactionalBatch(ctx, stmts)
	}
	debug.Warn("backend has no batch or transaction support, batch is best-effort", "client", db.id)
	return db.sequentialBatch(ctx, stmts)
}

func (db *DB) nativeBatch(ctx context.Context, batcher database.Batcher, dialect database.Dialect, stmts []BatchStatement) ([]BatchResult, error) {
	native := make([]database.BatchStatement, len(stmts))
	for i, s := range stmts {
		native[i] = database.BatchStatement{
			Query:       s.Statement.SQL,
			Args:        s.Statement.Args,
			ReturnsRows: s.ReturnsRows,
		}
	}

	outcomes, err := batcher.Batch(ctx, native)
	results := make([]BatchResult, len(stmts))
	var firstErr error
	for i := range outcomes {
		switch {
		case outcomes[i].Err != nil:
			results[i].Err = &BatchItemError{Index: i, Err: outcomes[i].Err}
			if firstErr == nil {
				firstErr = results[i].Err
			}
		case outcomes[i].Rows != nil:
			results[i].Rows = &Result{Columns: outcomes[i].Rows.Columns, Rows: outcomes[i].Rows.Rows}
		case outcomes[i].Result != nil:
			out := execOutcome(outcomes[i].Result, dialect)
			results[i].Exec = &out
		}
	}
	if firstErr != nil {
		return results, firstErr
	}
	if err != nil {
		return results, err
	}
	return results, nil
}

func (db *DB) transactionalBatch(ctx context.Context, stmts []BatchStatement) ([]BatchResult, error) {
	results := make([]BatchResult, len(stmts))
	err := db.Transaction(ctx, func(tx Client) error {
		for i, s := range stmts {
			if err := runBatchItem(ctx, tx, s, &results[i]); err != nil {
				results[i].Err = &BatchItemError{Index: i, Err: err}
				return results[i].Err
			}
		}
		return nil
	})
	return results, err
}

func (db *DB) sequentialBatch(ctx context.Context, stmts []BatchStatement) ([]BatchResult, error) {
	results := make([]BatchResult, len(stmts))
	var firstErr error
	for i, s := range stmts {
		if err := runBatchItem(ctx, db, s, &results[i]); err != nil {
			results[i].Err = &BatchItemError{Index: i, Err: err}
			if firstErr == nil {
				firstErr = results[i].Err
			}
		}
	}
	return results, firstErr
}

func runBatchItem(ctx context.Context, c Client, s BatchStatement, out *BatchResult) error {
	if s.ReturnsRows {
		rows, err := c.Query(ctx, s.Statement)
		if err != nil {
			return err
		}
		out.Rows = rows
		return nil
	}
	exec, err := c.Execute(ctx, s.Statement)
	if err != nil {
		return err
	}
	out.Exec = &exec
	return nil
}
