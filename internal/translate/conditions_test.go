package translate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askdb/askdb/internal/schema"
)

func fixedClock() func() time.Time {
	ts := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	return func() time.Time { return ts }
}

func extractText(t *testing.T, question string, cols ...BoundColumn) []Condition {
	t.Helper()

	analysis := Classify(question)
	binding := Binding{Columns: cols}

	return NewExtractorAt(fixedClock()).Extract(analysis, binding)
}

func TestExtract_Operators(t *testing.T) {
	status := BoundColumn{Table: "users", Column: "status", Type: schema.TypeVarchar}
	amount := BoundColumn{Table: "orders", Column: "amount", Type: schema.TypeDecimal}

	tests := []struct {
		name     string
		question string
		col      BoundColumn
		want     Condition
	}{
		{
			"equality via is",
			"users where status is active",
			status,
			Condition{Table: "users", Column: "status", Operator: "=", Value: "active"},
		},
		{
			"equality via equals",
			"users where status equals banned",
			status,
			Condition{Table: "users", Column: "status", Operator: "=", Value: "banned"},
		},
		{
			"greater than",
			"orders where amount greater than 100",
			amount,
			Condition{Table: "orders", Column: "amount", Operator: ">", Value: "100"},
		},
		{
			"more than",
			"orders with amount more than 42.5",
			amount,
			Condition{Table: "orders", Column: "amount", Operator: ">", Value: "42.5"},
		},
		{
			"less than",
			"orders where amount less than 10",
			amount,
			Condition{Table: "orders", Column: "amount", Operator: "<", Value: "10"},
		},
		{
			"like via contains",
			"users where status contains pend",
			status,
			Condition{Table: "users", Column: "status", Operator: "LIKE", Value: "pend"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conditions := extractText(t, tt.question, tt.col)
			assert.Contains(t, conditions, tt.want)
		})
	}
}

func TestExtract_EmailProviderShortcut(t *testing.T) {
	email := BoundColumn{Table: "users", Column: "email", Type: schema.TypeVarchar}

	conditions := extractText(t, "users with gmail accounts", email)

	require.NotEmpty(t, conditions)
	assert.Equal(t, Condition{
		Table: "users", Column: "email", Operator: "LIKE", Value: "%gmail%",
	}, conditions[0])
}

func TestExtract_Temporal(t *testing.T) {
	created := BoundColumn{Table: "users", Column: "created_at", Type: schema.TypeTimestamp}

	t.Run("after uses greater than now", func(t *testing.T) {
		conditions := extractText(t, "users created after last week", created)
		assert.Contains(t, conditions, Condition{
			Table: "users", Column: "created_at", Operator: ">", Value: "2025-03-14 09:30:00",
		})
	})

	t.Run("before uses less than now", func(t *testing.T) {
		conditions := extractText(t, "users created before this year", created)
		assert.Contains(t, conditions, Condition{
			Table: "users", Column: "created_at", Operator: "<", Value: "2025-03-14 09:30:00",
		})
	})

	t.Run("non temporal column untouched", func(t *testing.T) {
		name := BoundColumn{Table: "users", Column: "name", Type: schema.TypeVarchar}
		conditions := extractText(t, "users created after last week", name)
		assert.Empty(t, conditions)
	})
}

func TestExtract_DuplicateRuleMatchesAppendBoth(t *testing.T) {
	// "with" appears in both the equality-free LIKE rule and the question,
	// while "is" also matches; every matching rule contributes a condition.
	status := BoundColumn{Table: "users", Column: "status", Type: schema.TypeVarchar}

	conditions := extractText(t, "users where status is active and status with active", status)

	assert.Contains(t, conditions, Condition{Table: "users", Column: "status", Operator: "=", Value: "active"})
	assert.Contains(t, conditions, Condition{Table: "users", Column: "status", Operator: "LIKE", Value: "active"})
	assert.Len(t, conditions, 2)
}

func TestExtract_NoConditionCuesYieldsNothing(t *testing.T) {
	status := BoundColumn{Table: "users", Column: "status", Type: schema.TypeVarchar}
	conditions := extractText(t, "show me all statuses", status)
	assert.Empty(t, conditions)
}
