package storage

import (
	"time"

	"github.com/google/uuid"
)

// HistoryEntry records one translated question within a session. Rows and
// Elapsed are only meaningful when the query was executed.
type HistoryEntry struct {
	ID        string
	Question  string
	SQL       string
	Risk      string
	Executed  bool
	Rows      int
	Elapsed   time.Duration
	CreatedAt time.Time
}

// History is a bounded, in-memory log of translations, newest last. When
// the bound is exceeded the oldest entries are discarded.
type History struct {
	entries []HistoryEntry
	limit   int
	now     func() time.Time
}

// NewHistory creates a history log keeping at most limit entries
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = 50
	}

	return &History{limit: limit, now: time.Now}
}

// Add appends an entry, stamping its ID and timestamp, and returns the ID
func (h *History) Add(entry HistoryEntry) string {
	entry.ID = uuid.New().String()
	entry.CreatedAt = h.now()

	h.entries = append(h.entries, entry)

	if len(h.entries) > h.limit {
		h.entries = h.entries[len(h.entries)-h.limit:]
	}

	return entry.ID
}

// Entries returns the retained entries, oldest first
func (h *History) Entries() []HistoryEntry {
	return h.entries
}

// Len reports how many entries are retained
func (h *History) Len() int {
	return len(h.entries)
}
