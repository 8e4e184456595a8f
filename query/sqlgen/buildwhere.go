package sqlgen

import (
	"fmt"
	"reflect"
	"strings"
)

// CompileFilter compiles a filter tree into a single fragment by recursive
// descent. A nil filter or an all-empty tree compiles to (nil, nil), meaning
// "no condition": the caller omits the WHERE clause entirely instead of
// emitting a vacuous one.
func CompileFilter(f Filter) (*Fragment, error) {
	switch node := f.(type) {
	case nil:
		return nil, nil
	case Leaf:
		return compileLeaf(node)
	case *Leaf:
		return compileLeaf(*node)
	case Group:
		return compileGroup(node)
	case *Group:
		if node == nil {
			return nil, nil
		}
		return compileGroup(*node)
	default:
		return nil, fmt.Errorf("unknown filter node %T", f)
	}
}

func compileGroup(g Group) (*Fragment, error) {
	var parts []string
	var args []any

	for _, child := range g.Filters {
		frag, err := CompileFilter(child)
		if err != nil {
			return nil, err
		}
		if frag == nil {
			continue
		}
		parts = append(parts, frag.SQL)
		args = append(args, frag.Args...)
	}

	if len(parts) == 0 {
		return nil, nil
	}
	// A single-child group must not add redundant parentheses.
	if len(parts) == 1 {
		return &Fragment{SQL: parts[0], Args: args}, nil
	}

	join := " AND "
	if g.Op == GroupOr {
		join = " OR "
	}
	return &Fragment{SQL: "(" + strings.Join(parts, join) + ")", Args: args}, nil
}

func compileLeaf(leaf Leaf) (*Fragment, error) {
	col := QuoteIdentifier(leaf.Field)

	switch leaf.Op {
	case OpEqual:
		return &Fragment{SQL: col + " = ?", Args: []any{leaf.Value}}, nil
	case OpNotEqual:
		return &Fragment{SQL: col + " != ?", Args: []any{leaf.Value}}, nil
	case OpLess:
		return &Fragment{SQL: col + " < ?", Args: []any{leaf.Value}}, nil
	case OpLessEqual:
		return &Fragment{SQL: col + " <= ?", Args: []any{leaf.Value}}, nil
	case OpGreater:
		return &Fragment{SQL: col + " > ?", Args: []any{leaf.Value}}, nil
	case OpGreaterEqual:
		return &Fragment{SQL: col + " >= ?", Args: []any{leaf.Value}}, nil

	case OpIn, OpNotIn:
		values, err := listValue(leaf.Op, leaf.Value)
		if err != nil {
			return nil, err
		}
		if len(values) == 0 {
			// Empty allow-list matches nothing; its complement matches
			// everything. See DESIGN.md.
			if leaf.Op == OpIn {
				return &Fragment{SQL: "1=0"}, nil
			}
			return &Fragment{SQL: "1=1"}, nil
		}
		placeholders := make([]string, len(values))
		for i := range values {
			placeholders[i] = "?"
		}
		keyword := "IN"
		if leaf.Op == OpNotIn {
			keyword = "NOT IN"
		}
		sql := fmt.Sprintf("%s %s (%s)", col, keyword, strings.Join(placeholders, ", "))
		return &Fragment{SQL: sql, Args: values}, nil

	case OpContains:
		return likeFragment(col, "LIKE", "%%%v%%", leaf.Value), nil
	case OpNotContains:
		return likeFragment(col, "NOT LIKE", "%%%v%%", leaf.Value), nil
	case OpContainsStrict:
		frag := likeFragment(col, "LIKE", "%%%v%%", leaf.Value)
		frag.SQL += " COLLATE BINARY"
		return frag, nil
	case OpStartsWith:
		return likeFragment(col, "LIKE", "%v%%", leaf.Value), nil
	case OpNotStartsWith:
		return likeFragment(col, "NOT LIKE", "%v%%", leaf.Value), nil
	case OpEndsWith:
		return likeFragment(col, "LIKE", "%%%v", leaf.Value), nil
	case OpNotEndsWith:
		return likeFragment(col, "NOT LIKE", "%%%v", leaf.Value), nil

	case OpNull:
		return &Fragment{SQL: col + " IS NULL"}, nil
	case OpNotNull:
		return &Fragment{SQL: col + " IS NOT NULL"}, nil

	case OpBetween, OpNotBetween:
		values, err := listValue(leaf.Op, leaf.Value)
		if err != nil {
			return nil, err
		}
		if len(values) != 2 {
			return nil, &MalformedValueError{
				Op:     leaf.Op,
				Reason: fmt.Sprintf("expected exactly 2 elements, got %d", len(values)),
			}
		}
		keyword := "BETWEEN"
		if leaf.Op == OpNotBetween {
			keyword = "NOT BETWEEN"
		}
		sql := fmt.Sprintf("%s %s ? AND ?", col, keyword)
		return &Fragment{SQL: sql, Args: values}, nil

	default:
		return nil, &UnsupportedOperatorError{Op: leaf.Op}
	}
}

func likeFragment(col, keyword, pattern string, value any) *Fragment {
	return &Fragment{
		SQL:  fmt.Sprintf("%s %s ?", col, keyword),
		Args: []any{fmt.Sprintf(pattern, value)},
	}
}

// listValue normalizes a slice-shaped leaf value into []any.
func listValue(op Operator, value any) ([]any, error) {
	if value == nil {
		return nil, &MalformedValueError{Op: op, Reason: "expected a list, got nil"}
	}
	if values, ok := value.([]any); ok {
		return values, nil
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, &MalformedValueError{
			Op:     op,
			Reason: fmt.Sprintf("expected a list, got %T", value),
		}
	}
	values := make([]any, rv.Len())
	for i := range values {
		values[i] = rv.Index(i).Interface()
	}
	return values, nil
}
