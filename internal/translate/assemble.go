package translate

import (
	"strings"

	"github.com/askdb/askdb/internal/schema"
)

// selectBuilder produces the projection list for one intent
type selectBuilder func(analysis QueryAnalysis, binding Binding) []SelectItem

// selectBuilders maps each translatable intent to its projection strategy.
// Intents absent from the table (the mutation intents) never reach assembly
// because the safety gate rejects them first.
var selectBuilders = map[Intent]selectBuilder{
	IntentSelect:   buildColumnSelect,
	IntentDistinct: buildColumnSelect,
	IntentCount:    buildAggregateSelect,
	IntentAverage:  buildAggregateSelect,
	IntentSum:      buildAggregateSelect,
	IntentMax:      buildAggregateSelect,
	IntentMin:      buildAggregateSelect,
}

// Assemble combines the analysis, binding and extracted conditions into a
// QueryPlan. The plan is fully resolved: rendering requires no further
// schema access.
func Assemble(analysis QueryAnalysis, binding Binding, conditions []Condition, rels schema.Relationships) QueryPlan {
	plan := QueryPlan{
		FromTables:      binding.Tables,
		Joins:           PlanJoins(binding.Tables, rels),
		WhereConditions: conditions,
		Distinct:        analysis.Intent == IntentDistinct,
	}

	builder, ok := selectBuilders[analysis.Intent]
	if !ok {
		builder = buildColumnSelect
	}

	plan.SelectItems = builder(analysis, binding)

	if analysis.HasGrouping {
		plan.GroupBy = groupKeys(binding, plan.SelectItems)
	}

	if analysis.HasOrdering {
		plan.OrderBy = []OrderKey{orderKey(analysis, plan.SelectItems)}
	}

	if analysis.HasLimit {
		plan.Limit = analysis.LimitValue
	}

	return plan
}

// buildColumnSelect projects the bound columns, or the wildcard when the
// question named no columns at all.
func buildColumnSelect(_ QueryAnalysis, binding Binding) []SelectItem {
	if len(binding.Columns) == 0 {
		return []SelectItem{{Kind: SelectWildcard}}
	}

	items := make([]SelectItem, 0, len(binding.Columns))
	for _, col := range binding.Columns {
		items = append(items, SelectItem{
			Kind:   SelectColumn,
			Table:  col.Table,
			Column: col.Column,
		})
	}

	return items
}

// buildAggregateSelect projects a single aggregate over the best operand:
// the first numeric bound column when the function needs one, else the
// first bound column regardless of type. With nothing bound at all it
// degrades to COUNT(*).
func buildAggregateSelect(analysis QueryAnalysis, binding Binding) []SelectItem {
	if len(binding.Columns) == 0 {
		return []SelectItem{{Kind: SelectAggregation, Function: "COUNT", Column: "*"}}
	}

	operand := binding.Columns[0]

	if analysis.Intent.RequiresNumeric() {
		for _, col := range binding.Columns {
			if col.Type.IsNumeric() {
				operand = col
				break
			}
		}
	}

	fn := analysis.Intent.AggregateFunction()

	return []SelectItem{{
		Kind:     SelectAggregation,
		Table:    operand.Table,
		Column:   operand.Column,
		Function: fn,
		Alias:    strings.ToLower(fn) + "_" + operand.Column,
	}}
}

// groupKeys derives GROUP BY keys from the bound columns, excluding any
// column already consumed as an aggregation target.
func groupKeys(binding Binding, items []SelectItem) []GroupKey {
	var keys []GroupKey

	for _, col := range binding.Columns {
		aggregated := false

		for _, item := range items {
			if item.Kind == SelectAggregation && item.Column == col.Column {
				aggregated = true
				break
			}
		}

		if !aggregated {
			keys = append(keys, GroupKey{Table: col.Table, Column: col.Column})
		}
	}

	return keys
}

// orderKey resolves the sort column: an aggregated select item wins, then
// the first select item. A wildcard item yields "*", which the renderer
// substitutes since a wildcard cannot be an order key.
func orderKey(analysis QueryAnalysis, items []SelectItem) OrderKey {
	for _, item := range items {
		if item.Kind == SelectAggregation {
			return OrderKey{Table: item.Table, Column: item.Column, Direction: analysis.OrderDirection}
		}
	}

	if len(items) > 0 && items[0].Kind == SelectColumn {
		return OrderKey{Table: items[0].Table, Column: items[0].Column, Direction: analysis.OrderDirection}
	}

	return OrderKey{Column: "*", Direction: analysis.OrderDirection}
}
