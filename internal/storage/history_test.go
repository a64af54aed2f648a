package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistory_AddAndRetrieve(t *testing.T) {
	h := NewHistory(10)

	id := h.Add(HistoryEntry{
		Question: "how many users?",
		SQL:      "SELECT COUNT(*) FROM users;",
		Risk:     "low",
		Executed: true,
		Rows:     1,
		Elapsed:  12 * time.Millisecond,
	})
	require.NotEmpty(t, id)

	entries := h.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, id, entries[0].ID)
	assert.Equal(t, "how many users?", entries[0].Question)
	assert.Equal(t, "SELECT COUNT(*) FROM users;", entries[0].SQL)
	assert.Equal(t, "low", entries[0].Risk)
	assert.True(t, entries[0].Executed)
	assert.Equal(t, 1, entries[0].Rows)
	assert.Equal(t, 12*time.Millisecond, entries[0].Elapsed)
	assert.False(t, entries[0].CreatedAt.IsZero())
}

func TestHistory_BoundDiscardsOldest(t *testing.T) {
	h := NewHistory(3)

	for _, q := range []string{"q1", "q2", "q3", "q4", "q5"} {
		h.Add(HistoryEntry{Question: q, SQL: "SELECT 1;", Risk: "low"})
	}

	entries := h.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, "q3", entries[0].Question)
	assert.Equal(t, "q5", entries[2].Question)
}

func TestHistory_UniqueIDs(t *testing.T) {
	h := NewHistory(5)

	a := h.Add(HistoryEntry{Question: "q1", SQL: "SELECT 1;", Risk: "low"})
	b := h.Add(HistoryEntry{Question: "q2", SQL: "SELECT 2;", Risk: "low"})

	assert.NotEqual(t, a, b)
}

func TestHistory_DefaultLimit(t *testing.T) {
	h := NewHistory(0)

	for i := 0; i < 60; i++ {
		h.Add(HistoryEntry{Question: "q", SQL: "SELECT 1;", Risk: "low"})
	}

	assert.Equal(t, 50, h.Len())
}
