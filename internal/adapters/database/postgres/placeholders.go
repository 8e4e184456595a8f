package postgres

import (
	"strconv"
	"strings"
)

// rewritePlaceholders converts `?` placeholders to `$1..$N`. The scan skips
// single-quoted literals and double-quoted identifiers so a `?` inside either
// is left alone. Values are always bound, so string literals are rare in
// generated text, but quoted identifiers can legitimately contain one.
func rewritePlaceholders(query string) string {
	if !strings.ContainsRune(query, '?') {
		return query
	}

	var sb strings.Builder
	sb.Grow(len(query) + 8)

	n := 0
	var quote byte
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case quote != 0:
			sb.WriteByte(c)
			if c == quote {
				// Doubled quotes stay inside the quoted region.
				if i+1 < len(query) && query[i+1] == quote {
					sb.WriteByte(query[i+1])
					i++
				} else {
					quote = 0
				}
			}
		case c == '\'' || c == '"':
			quote = c
			sb.WriteByte(c)
		case c == '?':
			n++
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(n))
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}
