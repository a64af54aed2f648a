package translate

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const timestampLayout = "2006-01-02 15:04:05"

// mailProviders trigger the email shortcut: "users with gmail" becomes a
// LIKE condition on the email column without an explicit value phrase.
var mailProviders = []string{"gmail", "yahoo", "hotmail", "outlook"}

// Extractor pulls WHERE predicates out of question text. The clock is
// injectable so temporal conditions are reproducible in tests.
type Extractor struct {
	now func() time.Time
}

// NewExtractor returns an Extractor using the system clock
func NewExtractor() *Extractor {
	return &Extractor{now: time.Now}
}

// NewExtractorAt returns an Extractor with a fixed clock
func NewExtractorAt(now func() time.Time) *Extractor {
	return &Extractor{now: now}
}

// conditionRule pairs a value-capturing pattern with the operator it
// produces. The pattern is instantiated per column name.
type conditionRule struct {
	template string
	operator string
}

var conditionRules = []conditionRule{
	{`%s\s+(?:is|equals|=)\s+['"]?(\w+)['"]?`, "="},
	{`%s\s+(?:greater than|>|more than)\s+(\d+(?:\.\d+)?)`, ">"},
	{`%s\s+(?:less than|<|fewer than)\s+(\d+(?:\.\d+)?)`, "<"},
	{`%s\s+(?:contains|like|matches|with)\s+['"]?(\w+)['"]?`, "LIKE"},
}

// Extract derives conditions for every bound column. Each matching rule
// appends a condition, so a question can legitimately yield several
// predicates for one column. Results come back in binding order.
func (e *Extractor) Extract(analysis QueryAnalysis, binding Binding) []Condition {
	if !analysis.HasConditions && !analysis.IsTimeBased {
		return nil
	}

	lower := strings.ToLower(analysis.Original)

	var conditions []Condition

	for _, col := range binding.Columns {
		conditions = append(conditions, e.columnConditions(lower, analysis, col)...)
	}

	return conditions
}

func (e *Extractor) columnConditions(lower string, analysis QueryAnalysis, col BoundColumn) []Condition {
	var conditions []Condition

	if col.Column == "email" {
		for _, provider := range mailProviders {
			if strings.Contains(lower, provider) {
				conditions = append(conditions, Condition{
					Table:    col.Table,
					Column:   col.Column,
					Operator: "LIKE",
					Value:    "%" + provider + "%",
				})
			}
		}
	}

	name := regexp.QuoteMeta(col.Column)

	for _, rule := range conditionRules {
		pattern := regexp.MustCompile(fmt.Sprintf(rule.template, name))
		if match := pattern.FindStringSubmatch(lower); match != nil {
			conditions = append(conditions, Condition{
				Table:    col.Table,
				Column:   col.Column,
				Operator: rule.operator,
				Value:    match[1],
			})
		}
	}

	if analysis.IsTimeBased && col.Type.IsTemporal() {
		if cond, ok := e.temporalCondition(lower, col); ok {
			conditions = append(conditions, cond)
		}
	}

	return conditions
}

// temporalCondition anchors "before"/"after"/"since" phrasing to the
// current time. Relative-period arithmetic ("last month") is not attempted;
// those questions fall through without a temporal predicate.
func (e *Extractor) temporalCondition(lower string, col BoundColumn) (Condition, bool) {
	now := e.now().Format(timestampLayout)

	switch {
	case strings.Contains(lower, "after") || strings.Contains(lower, "since"):
		return Condition{Table: col.Table, Column: col.Column, Operator: ">", Value: now}, true
	case strings.Contains(lower, "before"):
		return Condition{Table: col.Table, Column: col.Column, Operator: "<", Value: now}, true
	}

	return Condition{}, false
}
