package client

import (
	"database/sql"
	"strings"

	"github.com/mitchellh/go-homedir"

	"github.com/edgekit/sqlbridge/internal/adapters/database"
)

// DescriptorKind tags the supported connection-descriptor kinds. Resolution
// matches on the tag exhaustively; there is no runtime sniffing of handle
// shapes.
type DescriptorKind int

const (
	// KindPath is a file path (SQLite) or server URL/DSN (PostgreSQL, MySQL).
	KindPath DescriptorKind = iota
	// KindMemory is the reserved in-memory database token.
	KindMemory
	// KindHandle is an already-constructed *sql.DB supplied by the caller.
	KindHandle
)

// Descriptor describes how to reach a backend. Build one with
// PathDescriptor, MemoryDescriptor, HandleDescriptor or ParseDescriptor.
type Descriptor struct {
	Kind    DescriptorKind
	Path    string
	Dialect database.Dialect
	Handle  *sql.DB
}

// PathDescriptor describes a file-backed SQLite database.
func PathDescriptor(path string) Descriptor {
	return Descriptor{Kind: KindPath, Path: path, Dialect: database.SQLite}
}

// MemoryDescriptor describes an in-memory SQLite database.
func MemoryDescriptor() Descriptor {
	return Descriptor{Kind: KindMemory, Dialect: database.SQLite}
}

// HandleDescriptor wraps a pre-constructed native handle of a known dialect.
// The caller keeps ownership: Close on the resulting client never closes the
// handle.
func HandleDescriptor(db *sql.DB, dialect database.Dialect) Descriptor {
	return Descriptor{Kind: KindHandle, Handle: db, Dialect: dialect}
}

// ParseDescriptor maps a connection string to a descriptor:
//
//   - the reserved ":memory:" token selects an in-memory SQLite database
//   - postgres:// and postgresql:// URLs select PostgreSQL
//   - mysql:// selects MySQL; the scheme prefix is stripped, the remainder is
//     passed to the driver as its DSN
//   - anything else is a SQLite file path, with a leading ~ expanded
func ParseDescriptor(raw string) (Descriptor, error) {
	switch {
	case raw == ":memory:":
		return MemoryDescriptor(), nil
	case strings.HasPrefix(raw, "postgres://") || strings.HasPrefix(raw, "postgresql://"):
		return Descriptor{Kind: KindPath, Path: raw, Dialect: database.PostgreSQL}, nil
	case strings.HasPrefix(raw, "mysql://"):
		return Descriptor{Kind: KindPath, Path: strings.TrimPrefix(raw, "mysql://"), Dialect: database.MySQL}, nil
	default:
		path, err := homedir.Expand(raw)
		if err != nil {
			return Descriptor{}, err
		}
		return PathDescriptor(path), nil
	}
}
