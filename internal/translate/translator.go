package translate

import (
	"time"

	"github.com/askdb/askdb/internal/schema"
)

const defaultRecentTables = 5

// Result is everything produced for one question. SQL is empty and Plan nil
// when the question was rejected; Safe reports whether the rejection (if
// any) was a safety rejection rather than a missing-schema one.
type Result struct {
	SQL         string
	Safe        bool
	Risk        RiskTier
	Explanation string
	Reasoning   string
	Plan        *QueryPlan
}

// Translator converts natural-language questions into SQL against one
// schema. It keeps light session state: the tables used by recent
// successful translations, which break ties when a question names no table.
// Not safe for concurrent use.
type Translator struct {
	schema    *schema.Schema
	rels      schema.Relationships
	extractor *Extractor
	recent    []string
	maxRecent int
}

// Option configures a Translator
type Option func(*Translator)

// WithRelationships supplies join metadata
func WithRelationships(rels schema.Relationships) Option {
	return func(t *Translator) { t.rels = rels }
}

// WithClock fixes the extractor's clock, for tests
func WithClock(now func() time.Time) Option {
	return func(t *Translator) { t.extractor = NewExtractorAt(now) }
}

// WithRecentTableLimit bounds the session's recently used table memory
func WithRecentTableLimit(n int) Option {
	return func(t *Translator) {
		if n > 0 {
			t.maxRecent = n
		}
	}
}

// NewTranslator builds a Translator for the given schema. A nil schema is
// allowed; every question then gets the missing-schema response.
func NewTranslator(sch *schema.Schema, opts ...Option) *Translator {
	t := &Translator{
		schema:    sch,
		extractor: NewExtractor(),
		maxRecent: defaultRecentTables,
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// SetSchema swaps the active schema and clears session state, since recent
// tables from another schema would misdirect binding.
func (t *Translator) SetSchema(sch *schema.Schema, rels schema.Relationships) {
	t.schema = sch
	t.rels = rels
	t.recent = nil
}

// Schema returns the active schema
func (t *Translator) Schema() *schema.Schema {
	return t.schema
}

// RecentTables returns the tables used by recent successful translations,
// most recent binding first.
func (t *Translator) RecentTables() []string {
	return t.recent
}

// Translate runs the full pipeline on one question. The gates run first:
// no schema and unsafe text each short-circuit with a fixed response.
// Session state is updated only when translation succeeds.
func (t *Translator) Translate(question string) Result {
	if t.schema.IsEmpty() {
		return Result{
			Safe:        true,
			Risk:        RiskNone,
			Explanation: "I need database schema information to generate SQL queries.",
			Reasoning:   "Without knowing the database structure (tables and columns), I cannot generate an accurate SQL query.",
		}
	}

	if IsUnsafe(question) {
		return Result{
			Safe:        false,
			Risk:        RiskCritical,
			Explanation: "This request appears to involve data modification which is not allowed for safety reasons.",
			Reasoning:   "The request contains terms that suggest data modification (INSERT, UPDATE, DELETE, etc.) which could potentially alter or destroy data.",
		}
	}

	analysis := Classify(question)
	binding := Bind(analysis, t.schema, t.recent)
	conditions := t.extractor.Extract(analysis, binding)
	plan := Assemble(analysis, binding, conditions, t.rels)
	sql := Render(plan)

	t.remember(binding.Tables)

	return Result{
		SQL:         sql,
		Safe:        true,
		Risk:        ClassifyRisk(analysis.Intent, len(conditions) > 0),
		Explanation: Explain(plan),
		Reasoning:   Reasoning(question, analysis, plan),
		Plan:        &plan,
	}
}

func (t *Translator) remember(tables []string) {
	if len(tables) > t.maxRecent {
		tables = tables[:t.maxRecent]
	}

	t.recent = append([]string(nil), tables...)
}
