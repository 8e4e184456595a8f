package client

import (
	"errors"
	"fmt"

	"github.com/edgekit/sqlbridge/internal/adapters/database"
)

// Sentinel errors for client operations.
var (
	// ErrUnresolved is returned when no adapter matches the descriptor.
	ErrUnresolved = errors.New("no adapter matches connection descriptor")

	// ErrClosed is returned when the client has been closed.
	ErrClosed = errors.New("client is closed")

	// ErrTransactionsUnsupported is returned by Transaction when the resolved
	// adapter has no transaction capability.
	ErrTransactionsUnsupported = errors.New("backend does not support transactions")
)

// QueryError wraps a native backend failure during a row-returning
// statement. The native message is preserved verbatim through Unwrap.
type QueryError struct {
	Dialect database.Dialect
	SQL     string
	Err     error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("%s query failed: %v", e.Dialect, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// ExecuteError wraps a native backend failure during a non-row statement.
type ExecuteError struct {
	Dialect database.Dialect
	SQL     string
	Err     error
}

func (e *ExecuteError) Error() string {
	return fmt.Sprintf("%s execute failed: %v", e.Dialect, e.Err)
}

func (e *ExecuteError) Unwrap() error {
	return e.Err
}

// BatchItemError reports the failing statement inside a batch by index.
type BatchItemError struct {
	Index int
	Err   error
}

func (e *BatchItemError) Error() string {
	return fmt.Sprintf("batch statement %d failed: %v", e.Index, e.Err)
}

func (e *BatchItemError) Unwrap() error {
	return e.Err
}
