//go:build !mattn

package sqlite

import (
	"fmt"
	"strings"

	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

const driverName = "sqlite"

// pragma is one SQLite pragma setting applied at open time.
type pragma struct {
	name  string
	value string
}

// memoryPragmas tune in-memory databases.
var memoryPragmas = []pragma{
	{name: "foreign_keys", value: "ON"},
	{name: "busy_timeout", value: "5000"},
	{name: "journal_mode", value: "MEMORY"},
	{name: "synchronous", value: "OFF"},
}

// persistentPragmas tune durable file-backed databases.
var persistentPragmas = []pragma{
	{name: "foreign_keys", value: "ON"},
	{name: "busy_timeout", value: "5000"},
	{name: "journal_mode", value: "WAL"},
	{name: "synchronous", value: "NORMAL"},
}

// buildDSN constructs a DSN for modernc.org/sqlite, which spells pragmas as
// repeated _pragma parameters: file:path?_pragma=name(value)
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
		fmt.Fprintf(&sb, "_pragma=%s(%s)", p.name, p.value)
	}
	return sb.String()
}
