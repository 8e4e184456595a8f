package sqlgen

import (
	"fmt"
	"strings"
)

// CompileSort compiles sort descriptors into the body of an ORDER BY clause.
// An empty list compiles to ("", nil-equivalent): no clause at all. Order of
// descriptors is preserved. Directions other than desc compile to ASC.
func CompileSort(sorts []Sort) string {
	if len(sorts) == 0 {
		return ""
	}
	parts := make([]string, len(sorts))
	for i, s := range sorts {
		direction := "ASC"
		if strings.EqualFold(string(s.Direction), string(SortDesc)) {
			direction = "DESC"
		}
		parts[i] = QuoteIdentifier(s.Field) + " " + direction
	}
	return strings.Join(parts, ", ")
}

// CompilePagination compiles a pagination descriptor. Only server mode
// produces a fragment; off and client modes fetch unbounded and return nil.
func CompilePagination(page *Pagination) *Fragment {
	if page == nil || page.Mode != PaginationServer {
		return nil
	}
	current := page.Page
	if current < 1 {
		current = 1
	}
	return &Fragment{
		SQL:  "LIMIT ? OFFSET ?",
		Args: []any{page.PerPage, (current - 1) * page.PerPage},
	}
}

// SelectQuery assembles a full SELECT statement:
//
//	SELECT * FROM <table> [WHERE <filter>] [ORDER BY <sort>] [LIMIT ? OFFSET ?]
func SelectQuery(table string, filter Filter, sorts []Sort, page *Pagination) (*Statement, error) {
	where, err := CompileFilter(filter)
	if err != nil {
		return nil, err
	}

	parts := []string{"SELECT * FROM " + QuoteIdentifier(table)}
	var args []any

	if where != nil {
		parts = append(parts, "WHERE "+where.SQL)
		args = append(args, where.Args...)
	}
	if orderBy := CompileSort(sorts); orderBy != "" {
		parts = append(parts, "ORDER BY "+orderBy)
	}
	if limit := CompilePagination(page); limit != nil {
		parts = append(parts, limit.SQL)
		args = append(args, limit.Args...)
	}

	return &Statement{SQL: strings.Join(parts, " "), Args: args}, nil
}

// CountQuery assembles the COUNT statement paired with SelectQuery. It reuses
// the identical filter compilation, so count and data stay consistent for the
// same descriptors.
func CountQuery(table string, filter Filter) (*Statement, error) {
	where, err := CompileFilter(filter)
	if err != nil {
		return nil, err
	}

	sql := "SELECT COUNT(*) AS count FROM " + QuoteIdentifier(table)
	var args []any
	if where != nil {
		sql += " WHERE " + where.SQL
		args = where.Args
	}
	return &Statement{SQL: sql, Args: args}, nil
}

// InsertQuery assembles an INSERT statement. Arguments are the values in
// column order. When returning is set, ` RETURNING *` is appended; callers
// only ask for it on backends that support the clause.
func InsertQuery(table string, columns []string, values []any, returning bool) (*Statement, error) {
	if len(columns) == 0 {
		return nil, &MalformedValueError{Op: "insert", Reason: "no columns"}
	}
	if len(columns) != len(values) {
		return nil, &MalformedValueError{
			Op:     "insert",
			Reason: fmt.Sprintf("%d columns but %d values", len(columns), len(values)),
		}
	}

	quoted := make([]string, len(columns))
	placeholders := make([]string, len(columns))
	for i, col := range columns {
		quoted[i] = QuoteIdentifier(col)
		placeholders[i] = "?"
	}

	sql := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		QuoteIdentifier(table), strings.Join(quoted, ", "), strings.Join(placeholders, ", "))
	if returning {
		sql += " RETURNING *"
	}

	args := make([]any, len(values))
	copy(args, values)
	return &Statement{SQL: sql, Args: args}, nil
}

// UpdateQuery assembles an UPDATE statement. Set columns and values are
// parallel slices so argument order is deterministic: set values first, then
// filter arguments.
func UpdateQuery(table string, columns []string, values []any, filter Filter) (*Statement, error) {
	if len(columns) == 0 {
		return nil, &MalformedValueError{Op: "update", Reason: "no columns"}
	}
	if len(columns) != len(values) {
		return nil, &MalformedValueError{
			Op:     "update",
			Reason: fmt.Sprintf("%d columns but %d values", len(columns), len(values)),
		}
	}
	where, err := CompileFilter(filter)
	if err != nil {
		return nil, err
	}

	setParts := make([]string, len(columns))
	args := make([]any, 0, len(values))
	for i, col := range columns {
		setParts[i] = QuoteIdentifier(col) + " = ?"
		args = append(args, values[i])
	}

	sql := fmt.Sprintf("UPDATE %s SET %s", QuoteIdentifier(table), strings.Join(setParts, ", "))
	if where != nil {
		sql += " WHERE " + where.SQL
		args = append(args, where.Args...)
	}
	return &Statement{SQL: sql, Args: args}, nil
}

// DeleteQuery assembles a DELETE statement. An empty filter deletes every
// row: the empty-filter-means-no-condition rule applies to every verb, so
// callers wanting a guard pass an explicit filter.
func DeleteQuery(table string, filter Filter) (*Statement, error) {
	where, err := CompileFilter(filter)
	if err != nil {
		return nil, err
	}

	sql := "DELETE FROM " + QuoteIdentifier(table)
	var args []any
	if where != nil {
		sql += " WHERE " + where.SQL
		args = where.Args
	}
	return &Statement{SQL: sql, Args: args}, nil
}
