package translate

import (
	"fmt"
	"regexp"
	"strings"
)

// Render turns a QueryPlan into executable SQL. The clause order is fixed,
// so equal plans always render to identical text.
func Render(plan QueryPlan) string {
	var b strings.Builder

	b.WriteString("SELECT ")
	if plan.Distinct {
		b.WriteString("DISTINCT ")
	}
	b.WriteString(renderSelectList(plan.SelectItems))

	b.WriteString(" FROM ")
	b.WriteString(renderFrom(plan))

	if len(plan.WhereConditions) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(renderConditions(plan.WhereConditions))
	}

	if len(plan.GroupBy) > 0 {
		b.WriteString(" GROUP BY ")
		b.WriteString(renderGroupBy(plan.GroupBy))
	}

	if len(plan.OrderBy) > 0 {
		b.WriteString(" ORDER BY ")
		b.WriteString(renderOrderBy(plan.OrderBy, plan.SelectItems))
	}

	if plan.Limit > 0 {
		fmt.Fprintf(&b, " LIMIT %d", plan.Limit)
	}

	b.WriteString(";")

	return b.String()
}

func renderSelectList(items []SelectItem) string {
	if len(items) == 0 {
		return "*"
	}

	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, renderSelectItem(item))
	}

	return strings.Join(parts, ", ")
}

func renderSelectItem(item SelectItem) string {
	switch item.Kind {
	case SelectWildcard:
		return "*"
	case SelectAggregation:
		operand := item.Column
		if operand != "*" && item.Table != "" {
			operand = item.Table + "." + item.Column
		}

		expr := fmt.Sprintf("%s(%s)", item.Function, operand)
		if item.Alias != "" {
			expr += " AS " + item.Alias
		}

		return expr
	default:
		return qualify(item.Table, item.Column)
	}
}

// renderFrom emits the first table, then each join: an explicit JOIN ... ON
// when the relationship is known, a comma join otherwise.
func renderFrom(plan QueryPlan) string {
	if len(plan.FromTables) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(plan.FromTables[0])

	for _, join := range plan.Joins {
		if join.Known {
			fmt.Fprintf(&b, " JOIN %s ON %s.%s = %s.%s",
				join.Table, join.LeftTable, join.LeftColumn, join.Table, join.RightColumn)
		} else {
			b.WriteString(", " + join.Table)
		}
	}

	return b.String()
}

func renderConditions(conditions []Condition) string {
	parts := make([]string, 0, len(conditions))

	for _, cond := range conditions {
		value := cond.Value
		if cond.Operator == "LIKE" && !strings.Contains(value, "%") {
			value = "%" + value + "%"
		}

		parts = append(parts, fmt.Sprintf("%s %s %s",
			qualify(cond.Table, cond.Column), cond.Operator, renderValue(value)))
	}

	return strings.Join(parts, " AND ")
}

var numericLiteral = regexp.MustCompile(`^\d+(?:\.\d+)?$`)

// renderValue quotes anything non-numeric, escaping embedded single quotes
func renderValue(value string) string {
	if numericLiteral.MatchString(value) {
		return value
	}

	return "'" + strings.ReplaceAll(value, "'", "''") + "'"
}

func renderGroupBy(keys []GroupKey) string {
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, qualify(key.Table, key.Column))
	}

	return strings.Join(parts, ", ")
}

// renderOrderBy substitutes a wildcard sort key with the first plain select
// column, or ordinal position 1, since "*" cannot be an order key.
func renderOrderBy(keys []OrderKey, items []SelectItem) string {
	parts := make([]string, 0, len(keys))

	for _, key := range keys {
		expr := qualify(key.Table, key.Column)

		if key.Column == "*" {
			expr = "1"

			for _, item := range items {
				if item.Kind == SelectColumn {
					expr = qualify(item.Table, item.Column)
					break
				}
			}
		}

		parts = append(parts, expr+" "+key.Direction)
	}

	return strings.Join(parts, ", ")
}

// qualify prefixes the column with its table when one is known. Aliases and
// ordinals carry no table and render bare.
func qualify(table, column string) string {
	if table == "" {
		return column
	}

	return table + "." + column
}
