package translate

import (
	"regexp"
	"strconv"
	"strings"
)

// intentCues pairs an intent with the phrases that signal it. The table is
// probed in order and the first group with any match wins, so COUNT beats
// AVERAGE when a question contains cues for both.
type intentCues struct {
	intent  Intent
	phrases []string
}

var intentTable = []intentCues{
	{IntentCount, []string{"count", "how many", "number of"}},
	{IntentAverage, []string{"average", "avg", "mean"}},
	{IntentSum, []string{"sum", "total"}},
	{IntentMax, []string{"maximum", "max", "highest", "largest"}},
	{IntentMin, []string{"minimum", "min", "lowest", "smallest"}},
	{IntentDistinct, []string{"distinct", "unique", "different"}},
}

var groupingCues = []string{"group by", "for each", "per", "each", "by"}

var orderingCues = []string{
	"order by", "sort by", "order", "sort",
	"top", "bottom", "highest", "lowest", "most", "least",
	"ascending", "descending",
}

var descendingCues = []string{"descending", "highest", "most", "top", "largest"}

var conditionCues = []string{
	"where", "if", "when", "with", "that have", "that has",
	"greater than", "less than", "equal to", "more than", "fewer than",
	"before", "after", "since", "between", "contains", "like", "equals",
}

var timeCues = []string{
	"when", "date", "time", "year", "month", "day", "hour", "minute",
	"week", "quarter", "recent", "last", "this", "previous", "next",
}

var limitPattern = regexp.MustCompile(`(?:top|first|last|limit to|show only|display only)\s+(\d+)`)

// Classify derives a QueryAnalysis from raw question text. Intent resolution
// follows the fixed priority of intentTable; modifier detection is
// independent of the chosen intent.
func Classify(text string) QueryAnalysis {
	lower := strings.ToLower(text)

	analysis := QueryAnalysis{
		Intent:         IntentSelect,
		OrderDirection: DirectionAsc,
		Original:       text,
	}

	for _, group := range intentTable {
		if containsAny(lower, group.phrases) {
			analysis.Intent = group.intent
			break
		}
	}

	analysis.HasGrouping = containsAny(lower, groupingCues)
	analysis.HasOrdering = containsAny(lower, orderingCues)

	if containsAny(lower, descendingCues) {
		analysis.OrderDirection = DirectionDesc
	}

	if match := limitPattern.FindStringSubmatch(lower); match != nil {
		if n, err := strconv.Atoi(match[1]); err == nil && n > 0 {
			analysis.HasLimit = true
			analysis.LimitValue = n
		}
	}

	analysis.HasConditions = containsAny(lower, conditionCues)
	analysis.IsTimeBased = containsAny(lower, timeCues)

	return analysis
}

// containsAny reports whether any of the phrases appears in the text
func containsAny(text string, phrases []string) bool {
	for _, phrase := range phrases {
		if strings.Contains(text, phrase) {
			return true
		}
	}

	return false
}
