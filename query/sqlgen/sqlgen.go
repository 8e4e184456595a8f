// Package sqlgen compiles declarative filter, sort and pagination
// descriptors into parameterized SQL fragments and statements.
//
// Every identifier is passed through QuoteIdentifier; values are never
// inlined into the SQL text, they are always bound positionally with `?`
// placeholders. Other layers assert the generated text literally, so the
// exact spelling produced here (keyword casing, placeholder spacing) is a
// compatibility surface.
package sqlgen

import "strings"

// Fragment is a SQL snippet paired with its ordered bound arguments.
// The number of `?` placeholders in SQL always equals len(Args), and the
// argument order matches placeholder order left to right.
type Fragment struct {
	SQL  string
	Args []any
}

// Statement is a complete, directly executable SQL text plus its flattened
// argument list. Same shape as Fragment, one level up.
type Statement struct {
	SQL  string
	Args []any
}

// QuoteIdentifier escapes a table or column identifier. Plain word
// identifiers pass through bare so the generated text stays stable for
// callers that assert it literally; anything else is double-quoted with
// embedded quotes doubled.
func QuoteIdentifier(name string) string {
	if isBareIdentifier(name) {
		return name
	}
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func isBareIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
