package sqlgen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileFilter_OperatorTable(t *testing.T) {
	tests := []struct {
		name     string
		leaf     Leaf
		wantSQL  string
		wantArgs []any
	}{
		{"eq", Where("name", OpEqual, "John"), "name = ?", []any{"John"}},
		{"ne", Where("name", OpNotEqual, "John"), "name != ?", []any{"John"}},
		{"lt", Where("age", OpLess, 30), "age < ?", []any{30}},
		{"lte", Where("age", OpLessEqual, 30), "age <= ?", []any{30}},
		{"gt", Where("age", OpGreater, 30), "age > ?", []any{30}},
		{"gte", Where("age", OpGreaterEqual, 30), "age >= ?", []any{30}},
		{"in", Where("status", OpIn, []any{"active", "pending"}), "status IN (?, ?)", []any{"active", "pending"}},
		{"nin", Where("status", OpNotIn, []any{"banned"}), "status NOT IN (?)", []any{"banned"}},
		{"in typed slice", Where("status", OpIn, []string{"a", "b"}), "status IN (?, ?)", []any{"a", "b"}},
		{"contains", Where("email", OpContains, "gmail"), "email LIKE ?", []any{"%gmail%"}},
		{"ncontains", Where("email", OpNotContains, "gmail"), "email NOT LIKE ?", []any{"%gmail%"}},
		{"containss", Where("email", OpContainsStrict, "Gmail"), "email LIKE ? COLLATE BINARY", []any{"%Gmail%"}},
		{"startswith", Where("name", OpStartsWith, "Jo"), "name LIKE ?", []any{"Jo%"}},
		{"nstartswith", Where("name", OpNotStartsWith, "Jo"), "name NOT LIKE ?", []any{"Jo%"}},
		{"endswith", Where("name", OpEndsWith, "hn"), "name LIKE ?", []any{"%hn"}},
		{"nendswith", Where("name", OpNotEndsWith, "hn"), "name NOT LIKE ?", []any{"%hn"}},
		{"null", Where("deleted_at", OpNull, nil), "deleted_at IS NULL", nil},
		{"nnull", Where("deleted_at", OpNotNull, nil), "deleted_at IS NOT NULL", nil},
		{"between", Where("age", OpBetween, []any{18, 65}), "age BETWEEN ? AND ?", []any{18, 65}},
		{"nbetween", Where("age", OpNotBetween, []any{18, 65}), "age NOT BETWEEN ? AND ?", []any{18, 65}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frag, err := CompileFilter(tt.leaf)
			require.NoError(t, err)
			require.NotNil(t, frag)
			assert.Equal(t, tt.wantSQL, frag.SQL)
			assert.Equal(t, tt.wantArgs, frag.Args)
			assert.Equal(t, len(frag.Args), strings.Count(frag.SQL, "?"),
				"placeholder count must equal argument count")
		})
	}
}

func TestCompileFilter_EmptyInList(t *testing.T) {
	frag, err := CompileFilter(Where("status", OpIn, []any{}))
	require.NoError(t, err)
	assert.Equal(t, "1=0", frag.SQL)
	assert.Empty(t, frag.Args)

	frag, err = CompileFilter(Where("status", OpNotIn, []any{}))
	require.NoError(t, err)
	assert.Equal(t, "1=1", frag.SQL)
	assert.Empty(t, frag.Args)
}

func TestCompileFilter_Errors(t *testing.T) {
	t.Run("unsupported operator", func(t *testing.T) {
		_, err := CompileFilter(Where("x", "regex", "a.*"))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnsupportedOperator)
		assert.Contains(t, err.Error(), "regex")
	})

	t.Run("between arity", func(t *testing.T) {
		_, err := CompileFilter(Where("age", OpBetween, []any{1, 2, 3}))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMalformedValue)
	})

	t.Run("in with scalar", func(t *testing.T) {
		_, err := CompileFilter(Where("status", OpIn, "active"))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMalformedValue)
	})
}

func TestCompileFilter_Groups(t *testing.T) {
	t.Run("and joins with AND and parenthesizes", func(t *testing.T) {
		frag, err := CompileFilter(And(
			Where("status", OpEqual, "active"),
			Where("age", OpGreater, 18),
		))
		require.NoError(t, err)
		assert.Equal(t, "(status = ? AND age > ?)", frag.SQL)
		assert.Equal(t, []any{"active", 18}, frag.Args)
	})

	t.Run("or joins with OR", func(t *testing.T) {
		frag, err := CompileFilter(Or(
			Where("role", OpEqual, "admin"),
			Where("role", OpEqual, "owner"),
		))
		require.NoError(t, err)
		assert.Equal(t, "(role = ? OR role = ?)", frag.SQL)
	})

	t.Run("single-child group adds no parentheses", func(t *testing.T) {
		frag, err := CompileFilter(And(Where("name", OpEqual, "John")))
		require.NoError(t, err)
		assert.Equal(t, "name = ?", frag.SQL)
	})

	t.Run("empty group compiles to no condition", func(t *testing.T) {
		frag, err := CompileFilter(And())
		require.NoError(t, err)
		assert.Nil(t, frag)
	})

	t.Run("empty children drop out of composition", func(t *testing.T) {
		frag, err := CompileFilter(And(
			Where("a", OpEqual, 1),
			Or(),
			Where("b", OpEqual, 2),
		))
		require.NoError(t, err)
		assert.Equal(t, "(a = ? AND b = ?)", frag.SQL)
	})

}

func TestCompileFilter_NestedArgOrderAndBalance(t *testing.T) {
	frag, err := CompileFilter(And(
		Where("tenant", OpEqual, "t1"),
		Or(
			Where("status", OpEqual, "active"),
			And(
				Where("status", OpEqual, "pending"),
				Where("age", OpGreaterEqual, 21),
			),
		),
	))
	require.NoError(t, err)
	assert.Equal(t, "(tenant = ? AND (status = ? OR (status = ? AND age >= ?)))", frag.SQL)
	assert.Equal(t, []any{"t1", "active", "pending", 21}, frag.Args)
	assert.Equal(t, len(frag.Args), strings.Count(frag.SQL, "?"))
	assert.Equal(t, strings.Count(frag.SQL, "("), strings.Count(frag.SQL, ")"),
		"parentheses must balance")
}

func TestQuoteIdentifier(t *testing.T) {
	assert.Equal(t, "name", QuoteIdentifier("name"))
	assert.Equal(t, "created_at", QuoteIdentifier("created_at"))
	assert.Equal(t, `"user name"`, QuoteIdentifier("user name"))
	assert.Equal(t, `"a""b"`, QuoteIdentifier(`a"b`))
	assert.Equal(t, `"1abc"`, QuoteIdentifier("1abc"))
	assert.Equal(t, `""`, QuoteIdentifier(""))
}
