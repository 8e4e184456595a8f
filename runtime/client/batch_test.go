package client

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgekit/sqlbridge/internal/adapters/database"
	"github.com/edgekit/sqlbridge/query/sqlgen"
)

type fakeResult struct{ affected int64 }

func (r fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (r fakeResult) RowsAffected() (int64, error) { return r.affected, nil }

// scriptedExec records every executed statement and fails the one named in
// failOn.
type scriptedExec struct {
	calls   []string
	failOn  string
	failErr error
}

func (s *scriptedExec) exec(query string) (sql.Result, error) {
	s.calls = append(s.calls, query)
	if query == s.failOn {
		return nil, s.failErr
	}
	return fakeResult{affected: 1}, nil
}

// execOnlyAdapter has neither Batcher nor Beginner, forcing the sequential
// best-effort batch path.
type execOnlyAdapter struct {
	fakeAdapter
	script *scriptedExec
}

func (a *execOnlyAdapter) Execute(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return a.script.exec(query)
}

// txAdapter has Beginner but no Batcher, forcing the one-transaction batch
// path.
type txAdapter struct {
	fakeAdapter
	script *scriptedExec
	tx     *fakeTx
}

func (a *txAdapter) Execute(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return a.script.exec(query)
}

func (a *txAdapter) Begin(ctx context.Context) (database.Transaction, error) {
	a.tx = &fakeTx{script: a.script}
	return a.tx, nil
}

type fakeTx struct {
	script    *scriptedExec
	commits   int
	rollbacks int
}

func (t *fakeTx) Commit() error   { t.commits++; return nil }
func (t *fakeTx) Rollback() error { t.rollbacks++; return nil }

func (t *fakeTx) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return nil, errors.New("fake tx: no rows")
}

func (t *fakeTx) Execute(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return t.script.exec(query)
}

func batchOf(sqls ...string) []BatchStatement {
	stmts := make([]BatchStatement, len(sqls))
	for i, s := range sqls {
		stmts[i] = BatchStatement{Statement: sqlgen.Statement{SQL: s}}
	}
	return stmts
}

func openWith(t *testing.T, adapter database.Adapter) *DB {
	t.Helper()
	db := Open(PathDescriptor("/tmp/whatever.db"))
	db.openFn = func(ctx context.Context, desc Descriptor) (database.Adapter, error) {
		return adapter, nil
	}
	return db
}

func TestBatch_TransactionalFallback(t *testing.T) {
	script := &scriptedExec{}
	adapter := &txAdapter{fakeAdapter: fakeAdapter{dialect: database.MySQL}, script: script}
	db := openWith(t, adapter)

	results, err := db.Batch(context.Background(), batchOf("INSERT 1", "INSERT 2"))
	require.NoError(t, err)
	require.Len(t, results, 2)
	for i := range results {
		require.NotNil(t, results[i].Exec)
		assert.EqualValues(t, 1, results[i].Exec.RowsAffected)
	}

	require.NotNil(t, adapter.tx, "the batch must run inside a transaction")
	assert.Equal(t, 1, adapter.tx.commits)
	assert.Equal(t, 0, adapter.tx.rollbacks)
	assert.Equal(t, []string{"INSERT 1", "INSERT 2"}, script.calls)
}

func TestBatch_TransactionalFallback_RollsBackOnFailure(t *testing.T) {
	boom := errors.New("constraint violated")
	script := &scriptedExec{failOn: "INSERT 2", failErr: boom}
	adapter := &txAdapter{fakeAdapter: fakeAdapter{dialect: database.MySQL}, script: script}
	db := openWith(t, adapter)

	results, err := db.Batch(context.Background(), batchOf("INSERT 1", "INSERT 2", "INSERT 3"))

	var itemErr *BatchItemError
	require.ErrorAs(t, err, &itemErr)
	assert.Equal(t, 1, itemErr.Index)
	assert.ErrorIs(t, err, boom)

	require.Len(t, results, 3)
	assert.NotNil(t, results[0].Exec)
	assert.ErrorAs(t, results[1].Err, &itemErr)
	assert.Nil(t, results[2].Exec, "items after the aborting failure never run")
	assert.Nil(t, results[2].Err)

	assert.Equal(t, 0, adapter.tx.commits)
	assert.Equal(t, 1, adapter.tx.rollbacks)
	assert.Equal(t, []string{"INSERT 1", "INSERT 2"}, script.calls)
}

func TestBatch_SequentialBestEffort(t *testing.T) {
	boom := errors.New("constraint violated")
	script := &scriptedExec{failOn: "INSERT 2", failErr: boom}
	db := openWith(t, &execOnlyAdapter{fakeAdapter: fakeAdapter{dialect: database.MySQL}, script: script})

	results, err := db.Batch(context.Background(), batchOf("INSERT 1", "INSERT 2", "INSERT 3"))

	var itemErr *BatchItemError
	require.ErrorAs(t, err, &itemErr)
	assert.Equal(t, 1, itemErr.Index)

	require.Len(t, results, 3)
	assert.NotNil(t, results[0].Exec)
	require.ErrorAs(t, results[1].Err, &itemErr)
	assert.Equal(t, 1, itemErr.Index)
	assert.NotNil(t, results[2].Exec,
		"a best-effort batch keeps running after a failed item")

	assert.Equal(t, []string{"INSERT 1", "INSERT 2", "INSERT 3"}, script.calls,
		"every item must be attempted")
}
