package translate

// SelectKind discriminates the select item variants
type SelectKind int

const (
	// SelectWildcard selects every column of the source tables
	SelectWildcard SelectKind = iota
	// SelectColumn selects a single named column
	SelectColumn
	// SelectAggregation applies an aggregate function to a column (or *)
	SelectAggregation
)

// SelectItem is one entry of a plan's projection list
type SelectItem struct {
	Kind     SelectKind
	Table    string
	Column   string
	Function string // aggregate function name, SelectAggregation only
	Alias    string
}

// Condition is a single WHERE predicate with a bound literal value
type Condition struct {
	Table    string
	Column   string
	Operator string
	Value    string
}

// GroupKey is one GROUP BY column
type GroupKey struct {
	Table  string
	Column string
}

// Sort directions
const (
	DirectionAsc  = "ASC"
	DirectionDesc = "DESC"
)

// OrderKey is one ORDER BY column with its direction
type OrderKey struct {
	Table     string
	Column    string
	Direction string
}

// JoinSpec describes how one table joins onto the tables placed before it.
// When Known is false no relationship metadata was found and the renderer
// falls back to a comma join.
type JoinSpec struct {
	Table       string // table being joined in
	LeftTable   string // previously placed table carrying LeftColumn
	LeftColumn  string
	RightColumn string // column on Table
	Known       bool
}

// QueryPlan is the language-neutral intermediate form between question
// analysis and rendered SQL. It is immutable once assembled; rendering the
// same plan twice yields identical text.
type QueryPlan struct {
	SelectItems     []SelectItem
	Distinct        bool
	FromTables      []string
	Joins           []JoinSpec
	WhereConditions []Condition
	GroupBy         []GroupKey
	OrderBy         []OrderKey
	Limit           int // 0 means no limit
}
