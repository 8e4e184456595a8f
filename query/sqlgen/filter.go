package sqlgen

// Operator identifies a leaf filter comparison. The set is closed: compiling
// an operator outside it fails with an UnsupportedOperatorError.
type Operator string

const (
	OpEqual        Operator = "eq"
	OpNotEqual     Operator = "ne"
	OpLess         Operator = "lt"
	OpLessEqual    Operator = "lte"
	OpGreater      Operator = "gt"
	OpGreaterEqual Operator = "gte"
	OpIn           Operator = "in"
	OpNotIn        Operator = "nin"
	OpContains     Operator = "contains"
	OpNotContains  Operator = "ncontains"
	// OpContainsStrict is a case-sensitive contains. It compiles with
	// COLLATE BINARY, which only SQLite accepts; other backends reject the
	// statement at execution time.
	OpContainsStrict Operator = "containss"
	OpStartsWith     Operator = "startswith"
	OpNotStartsWith  Operator = "nstartswith"
	OpEndsWith       Operator = "endswith"
	OpNotEndsWith    Operator = "nendswith"
	OpNull           Operator = "null"
	OpNotNull        Operator = "nnull"
	OpBetween        Operator = "between"
	OpNotBetween     Operator = "nbetween"
)

// GroupOperator joins the children of a logical group.
type GroupOperator string

const (
	GroupAnd GroupOperator = "and"
	GroupOr  GroupOperator = "or"
)

// Filter is a node in a filter tree: either a Leaf condition or a logical
// Group of nested filters. The sum is sealed so compilation can match
// exhaustively.
type Filter interface {
	isFilter()
}

// Leaf is a single field/operator/value condition.
//
// Value conventions per operator:
//   - in, nin: a slice, one bound argument per element. An empty slice
//     compiles to the contradiction `1=0` (in) or the tautology `1=1` (nin):
//     an empty allow-list matches nothing, its complement matches everything.
//   - between, nbetween: a slice of exactly two elements, low then high.
//   - null, nnull: Value is ignored, nothing is bound.
//   - contains and friends: Value is formatted into the LIKE pattern; the
//     pattern itself is still bound, never inlined.
type Leaf struct {
	Field string
	Op    Operator
	Value any
}

func (Leaf) isFilter() {}

// Group is an AND/OR composition of nested filters. Empty groups compile to
// no condition at all.
type Group struct {
	Op      GroupOperator
	Filters []Filter
}

func (Group) isFilter() {}

// And builds an AND group over the given filters.
func And(filters ...Filter) Group {
	return Group{Op: GroupAnd, Filters: filters}
}

// Or builds an OR group over the given filters.
func Or(filters ...Filter) Group {
	return Group{Op: GroupOr, Filters: filters}
}

// Where builds a leaf condition.
func Where(field string, op Operator, value any) Leaf {
	return Leaf{Field: field, Op: op, Value: value}
}

// SortDirection is the direction of one sort descriptor.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Sort orders results by a single field. Lists of Sort are significant in
// order, which is preserved in the ORDER BY clause.
type Sort struct {
	Field     string
	Direction SortDirection
}

// PaginationMode selects who is responsible for windowing results.
type PaginationMode string

const (
	// PaginationOff fetches unbounded.
	PaginationOff PaginationMode = "off"
	// PaginationServer windows on the server with LIMIT/OFFSET.
	PaginationServer PaginationMode = "server"
	// PaginationClient fetches unbounded and leaves windowing to the caller.
	PaginationClient PaginationMode = "client"
)

// Pagination describes a result window. Only server mode contributes
// LIMIT/OFFSET to the statement. Page is 1-based; values below 1 select the
// first page.
type Pagination struct {
	Page    int
	PerPage int
	Mode    PaginationMode
}
