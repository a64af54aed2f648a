package translate

import "strings"

// RiskTier grades how destructive a plan could be. Tiers are ordered;
// comparisons like tier >= RiskHigh decide whether confirmation is needed
// before execution. The tier is advisory metadata on the result; enforcing
// confirmation is the caller's job.
type RiskTier int

const (
	RiskNone RiskTier = iota
	RiskLow
	RiskMedium
	RiskHigh
	RiskCritical
)

var riskNames = map[RiskTier]string{
	RiskNone:     "none",
	RiskLow:      "low",
	RiskMedium:   "medium",
	RiskHigh:     "high",
	RiskCritical: "critical",
}

func (t RiskTier) String() string {
	if name, ok := riskNames[t]; ok {
		return name
	}

	return "critical"
}

// ParseRiskTier maps a tier name back to its value. Unknown names parse as
// critical so a corrupted or hostile label can never downgrade risk.
func ParseRiskTier(name string) RiskTier {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "none":
		return RiskNone
	case "low":
		return RiskLow
	case "medium":
		return RiskMedium
	case "high":
		return RiskHigh
	default:
		return RiskCritical
	}
}

// ClassifyRisk grades a plan by its intent and whether predicates scope it.
// Reads and inserts are low. Unscoped mutations rank one tier above scoped
// ones because they touch every row. Unknown intents are critical.
func ClassifyRisk(intent Intent, hasConditions bool) RiskTier {
	switch intent {
	case IntentSelect, IntentCount, IntentAverage, IntentSum, IntentMax, IntentMin, IntentDistinct:
		return RiskLow
	case IntentInsert:
		return RiskLow
	case IntentUpdate:
		if hasConditions {
			return RiskMedium
		}

		return RiskHigh
	case IntentDelete:
		if hasConditions {
			return RiskHigh
		}

		return RiskCritical
	default:
		return RiskCritical
	}
}
