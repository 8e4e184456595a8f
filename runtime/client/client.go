// Package client provides the uniform client contract over interchangeable
// SQL backends and the dispatcher that resolves a connection descriptor to a
// concrete adapter.
//
// A DB is a logical client owning exactly one underlying native connection.
// The connection is opened lazily on first use, memoized for the client's
// lifetime and closed only by Close. Concurrent first calls share a single
// in-flight resolution; a failed resolution is not cached and the next call
// retries.
package client

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/edgekit/sqlbridge/internal/adapters/database"
	"github.com/edgekit/sqlbridge/internal/adapters/database/mysql"
	"github.com/edgekit/sqlbridge/internal/adapters/database/postgres"
	"github.com/edgekit/sqlbridge/internal/adapters/database/sqlite"
	"github.com/edgekit/sqlbridge/internal/config"
	"github.com/edgekit/sqlbridge/internal/debug"
	"github.com/edgekit/sqlbridge/query/sqlgen"
)

// Client is the contract every backend satisfies and the only surface
// higher-level CRUD logic may call. Batch and transaction support are
// optional capabilities of the concrete backend, exposed on DB.
type Client interface {
	// Query runs a row-returning statement and returns the raw tabular
	// result, uninterpreted.
	Query(ctx context.Context, stmt sqlgen.Statement) (*Result, error)

	// Execute runs a non-row statement and returns the affected outcome.
	Execute(ctx context.Context, stmt sqlgen.Statement) (ExecResult, error)
}

// Result is a raw tabular result: column names plus positional rows.
// Deserialization into keyed records is the caller's job.
type Result struct {
	Columns []string
	Rows    [][]any
}

// ExecResult is the outcome of a non-row statement. LastInsertID is only
// meaningful when HasLastInsertID is set; PostgreSQL never reports one.
type ExecResult struct {
	RowsAffected    int64
	LastInsertID    int64
	HasLastInsertID bool
}

// Option configures a DB.
type Option func(*DB)

// WithConnectTimeout bounds the first-use connection attempt.
func WithConnectTimeout(d time.Duration) Option {
	return func(db *DB) {
		db.connectTimeout = d
	}
}

// DB is a logical client. The zero value is not usable; construct with Open,
// OpenURL or OpenFromEnv.
type DB struct {
	desc           Descriptor
	id             string
	connectTimeout time.Duration

	// openFn is the adapter constructor, replaceable in tests.
	openFn func(ctx context.Context, desc Descriptor) (database.Adapter, error)

	flight singleflight.Group

	mu      sync.RWMutex
	adapter database.Adapter
	owned   bool
	closed  bool
}

// Open creates a logical client for the descriptor. No I/O happens here; the
// native connection is opened lazily on first use.
func Open(desc Descriptor, opts ...Option) *DB {
	db := &DB{
		desc:   desc,
		id:     uuid.NewString(),
		openFn: openAdapter,
	}
	for _, opt := range opts {
		opt(db)
	}
	return db
}

// OpenURL parses a connection string and creates a logical client for it.
func OpenURL(raw string, opts ...Option) (*DB, error) {
	desc, err := ParseDescriptor(raw)
	if err != nil {
		return nil, err
	}
	return Open(desc, opts...), nil
}

// OpenFromEnv creates a logical client from the loaded configuration
// (config file, SQLBRIDGE_* env vars, .env, DATABASE_URL).
func OpenFromEnv(opts ...Option) (*DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("%w: no database URL configured", ErrUnresolved)
	}
	db, err := OpenURL(cfg.DatabaseURL, opts...)
	if err != nil {
		return nil, err
	}
	if db.connectTimeout == 0 {
		db.connectTimeout = cfg.ConnectTimeout
	}
	return db, nil
}

// resolve returns the memoized adapter, opening it on first use. All
// concurrent first callers share one in-flight resolution; exactly one native
// connection is ever constructed per logical client. A failed resolution is
// not memoized.
func (db *DB) resolve(ctx context.Context) (database.Adapter, error) {
	db.mu.RLock()
	adapter, closed := db.adapter, db.closed
	db.mu.RUnlock()
	if closed {
		return nil, ErrClosed
	}
	if adapter != nil {
		return adapter, nil
	}

	v, err, _ := db.flight.Do("resolve", func() (any, error) {
		db.mu.RLock()
		adapter, closed := db.adapter, db.closed
		db.mu.RUnlock()
		if closed {
			return nil, ErrClosed
		}
		if adapter != nil {
			return adapter, nil
		}

		openCtx := ctx
		if db.connectTimeout > 0 {
			var cancel context.CancelFunc
			openCtx, cancel = context.WithTimeout(ctx, db.connectTimeout)
			defer cancel()
		}

		debug.Debug("resolving adapter", "client", db.id, "kind", db.desc.Kind, "dialect", db.desc.Dialect)
		opened, err := db.openFn(openCtx, db.desc)
		if err != nil {
			debug.Error("adapter resolution failed", "client", db.id, "err", err)
			return nil, err
		}

		db.mu.Lock()
		if db.closed {
			// Close landed while the open was in flight. The client must
			// stay closed and the fresh connection must not leak.
			db.mu.Unlock()
			if db.desc.Kind != KindHandle {
				if cerr := opened.Close(); cerr != nil {
					debug.Warn("closing adapter opened after client close", "client", db.id, "err", cerr)
				}
			}
			return nil, ErrClosed
		}
		db.adapter = opened
		db.owned = db.desc.Kind != KindHandle
		db.mu.Unlock()
		debug.Debug("adapter resolved", "client", db.id, "dialect", opened.Dialect())
		return opened, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(database.Adapter), nil
}

// openAdapter instantiates exactly one adapter for the descriptor: an
// explicit handle match first, then the dialect the descriptor names, with
// SQLite as the file-path fallback.
func openAdapter(ctx context.Context, desc Descriptor) (database.Adapter, error) {
	switch desc.Kind {
	case KindHandle:
		return adapterForHandle(desc.Handle, desc.Dialect)
	case KindMemory:
		return sqlite.Open(ctx, sqlite.MemoryPath)
	case KindPath:
		switch desc.Dialect {
		case database.PostgreSQL:
			return postgres.Open(ctx, desc.Path)
		case database.MySQL:
			return mysql.Open(ctx, desc.Path)
		case database.SQLite, "":
			return sqlite.Open(ctx, desc.Path)
		}
	}
	return nil, ErrUnresolved
}

func adapterForHandle(handle *sql.DB, dialect database.Dialect) (database.Adapter, error) {
	if handle == nil {
		return nil, ErrUnresolved
	}
	switch dialect {
	case database.SQLite:
		return sqlite.FromHandle(handle), nil
	case database.PostgreSQL:
		return postgres.FromHandle(handle), nil
	case database.MySQL:
		return mysql.FromHandle(handle), nil
	default:
		return nil, ErrUnresolved
	}
}

// Query implements Client.
func (db *DB) Query(ctx context.Context, stmt sqlgen.Statement) (*Result, error) {
	adapter, err := db.resolve(ctx)
	if err != nil {
		return nil, err
	}

	debug.Debug("query", "client", db.id, "sql", stmt.SQL, "args", stmt.Args)
	rows, err := adapter.Query(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		return nil, &QueryError{Dialect: adapter.Dialect(), SQL: stmt.SQL, Err: err}
	}
	set, err := database.ScanRows(rows)
	if err != nil {
		return nil, &QueryError{Dialect: adapter.Dialect(), SQL: stmt.SQL, Err: err}
	}
	return &Result{Columns: set.Columns, Rows: set.Rows}, nil
}

// Execute implements Client.
func (db *DB) Execute(ctx context.Context, stmt sqlgen.Statement) (ExecResult, error) {
	adapter, err := db.resolve(ctx)
	if err != nil {
		return ExecResult{}, err
	}

	debug.Debug("execute", "client", db.id, "sql", stmt.SQL, "args", stmt.Args)
	result, err := adapter.Execute(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		return ExecResult{}, &ExecuteError{Dialect: adapter.Dialect(), SQL: stmt.SQL, Err: err}
	}
	return execOutcome(result, adapter.Dialect()), nil
}

func execOutcome(result sql.Result, dialect database.Dialect) ExecResult {
	out := ExecResult{}
	if n, err := result.RowsAffected(); err == nil {
		out.RowsAffected = n
	}
	if dialect.HasLastInsertID() {
		if id, err := result.LastInsertId(); err == nil {
			out.LastInsertID = id
			out.HasLastInsertID = true
		}
	}
	return out
}

// Dialect reports the resolved backend's dialect, resolving on first use.
func (db *DB) Dialect(ctx context.Context) (database.Dialect, error) {
	adapter, err := db.resolve(ctx)
	if err != nil {
		return "", err
	}
	return adapter.Dialect(), nil
}

// Close releases the underlying native connection if this client opened it.
// A handle supplied by the caller through HandleDescriptor stays open: its
// owner closes it. Close is idempotent.
func (db *DB) Close() error {
	db.mu.Lock()
	adapter, owned, closed := db.adapter, db.owned, db.closed
	db.adapter = nil
	db.closed = true
	db.mu.Unlock()

	if closed || adapter == nil || !owned {
		return nil
	}
	debug.Debug("closing client", "client", db.id)
	return adapter.Close()
}

var _ Client = (*DB)(nil)
