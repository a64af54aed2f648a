package translate

import (
	"regexp"
	"strings"
)

// unsafeKeywords are mutating verbs that block translation when they appear
// as a standalone word. Word-boundary matching keeps "created_at" or
// "allotment" from tripping the gate.
var unsafeKeywords = regexp.MustCompile(
	`\b(?:insert|update|delete|drop|truncate|alter|create|modify|remove|destroy|wipe|erase)\b`)

// unsafePhrases are action+scope patterns that suggest data modification
// even when phrased conversationally.
var unsafePhrases = []*regexp.Regexp{
	regexp.MustCompile(`add\s+(?:a\s+)?new`),
	regexp.MustCompile(`delete\s+(?:all|the)`),
	regexp.MustCompile(`remove\s+(?:all|the)`),
	regexp.MustCompile(`update\s+(?:all|the)`),
	regexp.MustCompile(`modify\s+(?:all|the)`),
	regexp.MustCompile(`change\s+(?:all|the)`),
	regexp.MustCompile(`drop\s+(?:all|the)`),
}

// IsUnsafe reports whether the question appears to request data
// modification. Unsafe questions never reach the planning stages.
func IsUnsafe(text string) bool {
	lower := strings.ToLower(text)

	if unsafeKeywords.MatchString(lower) {
		return true
	}

	for _, pattern := range unsafePhrases {
		if pattern.MatchString(lower) {
			return true
		}
	}

	return false
}
