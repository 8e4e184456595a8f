//go:build mattn

package sqlite

import (
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3" // cgo SQLite driver
)

const driverName = "sqlite3"

// pragma is one SQLite pragma setting applied at open time.
type pragma struct {
	name  string
	value string
}

// memoryPragmas tune in-memory databases.
var memoryPragmas = []pragma{
	{name: "_foreign_keys", value: "1"},
	{name: "_busy_timeout", value: "5000"},
	{name: "_journal_mode", value: "MEMORY"},
	{name: "_synchronous", value: "OFF"},
}

// persistentPragmas tune durable file-backed databases.
var persistentPragmas = []pragma{
	{name: "_foreign_keys", value: "1"},
	{name: "_busy_timeout", value: "5000"},
	{name: "_journal_mode", value: "WAL"},
	{name: "_synchronous", value: "NORMAL"},
}

// buildDSN constructs a DSN for github.com/mattn/go-sqlite3, which spells
// pragmas as query parameters: file:path?_foreign_keys=1&_journal_mode=WAL
func buildDSN(path string, pragmas []pragma) string {
	var sb strings.Builder
	if path == MemoryPath {
		sb.WriteString("file::memory:?cache=shared")
	} else {
		sb.WriteString("file:")
		sb.WriteString(path)
		sb.WriteString("?")
	}
	for i, p := range pragmas {
		if i > 0 || path == MemoryPath {
			sb.WriteString("&")
		}
		fmt.Fprintf(&sb, "%s=%s", p.name, p.value)
	}
	return sb.String()
}
