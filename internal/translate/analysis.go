package translate

// Intent is the coarse classification of what a question asks for
type Intent string

const (
	IntentSelect   Intent = "SELECT"
	IntentCount    Intent = "COUNT"
	IntentAverage  Intent = "AVERAGE"
	IntentSum      Intent = "SUM"
	IntentMax      Intent = "MAX"
	IntentMin      Intent = "MIN"
	IntentDistinct Intent = "DISTINCT"
	IntentInsert   Intent = "INSERT"
	IntentUpdate   Intent = "UPDATE"
	IntentDelete   Intent = "DELETE"
)

// IsAggregate reports whether the intent maps to an aggregate function
func (i Intent) IsAggregate() bool {
	switch i {
	case IntentCount, IntentAverage, IntentSum, IntentMax, IntentMin:
		return true
	default:
		return false
	}
}

// AggregateFunction returns the SQL function for an aggregate intent
func (i Intent) AggregateFunction() string {
	switch i {
	case IntentCount:
		return "COUNT"
	case IntentAverage:
		return "AVG"
	case IntentSum:
		return "SUM"
	case IntentMax:
		return "MAX"
	case IntentMin:
		return "MIN"
	default:
		return ""
	}
}

// RequiresNumeric reports whether the aggregate needs a numeric operand.
// COUNT works on any column, the rest do not.
func (i Intent) RequiresNumeric() bool {
	switch i {
	case IntentAverage, IntentSum, IntentMax, IntentMin:
		return true
	default:
		return false
	}
}

// QueryAnalysis is the read-only view of one question: its intent plus the
// orthogonal modifiers detected in the text. Created once per question and
// never mutated afterwards.
type QueryAnalysis struct {
	Intent         Intent
	HasGrouping    bool
	HasOrdering    bool
	OrderDirection string
	HasLimit       bool
	LimitValue     int
	HasConditions  bool
	IsTimeBased    bool
	Original       string
}
