package translate

import (
	"fmt"
	"strings"
)

var operatorText = map[string]string{
	"=":    "equals",
	">":    "is greater than",
	"<":    "is less than",
	">=":   "is greater than or equal to",
	"<=":   "is less than or equal to",
	"!=":   "is not equal to",
	"LIKE": "matches",
}

// Explain produces a one-sentence plain-English description of the plan
func Explain(plan QueryPlan) string {
	tables := strings.Join(plan.FromTables, ", ")

	var b strings.Builder

	first := SelectItem{Kind: SelectWildcard}
	if len(plan.SelectItems) > 0 {
		first = plan.SelectItems[0]
	}

	switch {
	case first.Kind == SelectWildcard:
		fmt.Fprintf(&b, "This query retrieves all columns from the %s table(s)", tables)
	case first.Kind == SelectAggregation && first.Function == "COUNT" && first.Column == "*":
		fmt.Fprintf(&b, "This query counts all rows in the %s table(s)", tables)
	case first.Kind == SelectAggregation:
		fmt.Fprintf(&b, "This query calculates the %s of %s from the %s table(s)",
			strings.ToLower(first.Function), first.Column, tables)
	default:
		names := make([]string, 0, len(plan.SelectItems))
		for _, item := range plan.SelectItems {
			if item.Kind == SelectColumn {
				names = append(names, item.Column)
			}
		}

		fmt.Fprintf(&b, "This query retrieves %s from the %s table(s)", strings.Join(names, ", "), tables)
	}

	if len(plan.WhereConditions) > 0 {
		phrases := make([]string, 0, len(plan.WhereConditions))
		for _, cond := range plan.WhereConditions {
			op := operatorText[cond.Operator]
			if op == "" {
				op = cond.Operator
			}

			phrases = append(phrases, fmt.Sprintf("%s %s %s", cond.Column, op, cond.Value))
		}

		fmt.Fprintf(&b, " where %s", strings.Join(phrases, " and "))
	}

	if len(plan.GroupBy) > 0 {
		names := make([]string, 0, len(plan.GroupBy))
		for _, key := range plan.GroupBy {
			names = append(names, key.Column)
		}

		fmt.Fprintf(&b, ", grouped by %s", strings.Join(names, ", "))
	}

	if len(plan.OrderBy) > 0 {
		fmt.Fprintf(&b, ", ordered by %s in %s order",
			plan.OrderBy[0].Column, directionWord(plan.OrderBy[0].Direction))
	}

	if plan.Limit > 0 {
		fmt.Fprintf(&b, ", limited to %d results", plan.Limit)
	}

	b.WriteString(".")

	return b.String()
}

// Reasoning narrates how the plan was derived from the question, one
// sentence per decision, closing with the standing safety remarks.
func Reasoning(question string, analysis QueryAnalysis, plan QueryPlan) string {
	var parts []string

	parts = append(parts,
		fmt.Sprintf("I analyzed the question %q to understand the user's intent.", question))

	if len(plan.FromTables) > 0 {
		parts = append(parts,
			fmt.Sprintf("I identified %s as the relevant table(s) based on the question context.",
				strings.Join(plan.FromTables, ", ")))
	}

	if analysis.Intent.IsAggregate() {
		parts = append(parts,
			fmt.Sprintf("The question indicates a need for %s aggregation based on keywords used.",
				strings.ToLower(string(analysis.Intent))))
	}

	first := SelectItem{Kind: SelectWildcard}
	if len(plan.SelectItems) > 0 {
		first = plan.SelectItems[0]
	}

	switch {
	case first.Kind == SelectWildcard:
		parts = append(parts,
			"I selected all columns (*) since the question doesn't specify which fields to retrieve.")
	case first.Kind == SelectAggregation && first.Column == "*":
		parts = append(parts,
			"I used COUNT(*) to count all rows since the question asks for a count of entries.")
	case first.Kind == SelectAggregation:
		parts = append(parts,
			fmt.Sprintf("I applied %s to the %s column based on the question's intent.",
				first.Function, first.Column))
	default:
		names := make([]string, 0, len(plan.SelectItems))
		for _, item := range plan.SelectItems {
			if item.Kind == SelectColumn {
				names = append(names, item.Column)
			}
		}

		parts = append(parts,
			fmt.Sprintf("I selected the specific columns %s which are relevant to the question.",
				strings.Join(names, ", ")))
	}

	if n := len(plan.WhereConditions); n > 0 {
		parts = append(parts,
			fmt.Sprintf("I added %d filter condition(s) to match the criteria in the question.", n))
	}

	if len(plan.GroupBy) > 0 {
		names := make([]string, 0, len(plan.GroupBy))
		for _, key := range plan.GroupBy {
			names = append(names, key.Column)
		}

		parts = append(parts,
			fmt.Sprintf("I grouped by %s since the question asks for results organized by these dimensions.",
				strings.Join(names, ", ")))
	}

	if len(plan.OrderBy) > 0 {
		parts = append(parts,
			fmt.Sprintf("I ordered results by %s in %s order as implied by the question.",
				plan.OrderBy[0].Column, directionWord(plan.OrderBy[0].Direction)))
	}

	if plan.Limit > 0 {
		parts = append(parts,
			fmt.Sprintf("I limited results to %d rows based on the question's request for a specific number of results.",
				plan.Limit))
	}

	parts = append(parts,
		"The query is read-only (SELECT) to ensure data safety and prevent any database modifications.",
		"Parameters should be properly escaped when executing this query to prevent SQL injection.")

	return strings.Join(parts, " ")
}

func directionWord(direction string) string {
	if direction == DirectionDesc {
		return "descending"
	}

	return "ascending"
}
