package translate

import (
	"regexp"
	"strings"

	"github.com/go-openapi/inflect"

	"github.com/askdb/askdb/internal/schema"
)

// BoundColumn is a column the question was judged to reference
type BoundColumn struct {
	Table  string
	Column string
	Type   schema.DataType
}

// Binding is the resolved set of tables and columns for one question.
// Tables are deduplicated in first-discovered order; columns may repeat
// because downstream consumers key on (table, column).
type Binding struct {
	Tables  []string
	Columns []BoundColumn
}

var wordPattern = regexp.MustCompile(`[a-z0-9_]+`)

// stopWords are generic question words excluded from description matching
// so that phrases like "show me the table" do not select every table.
var stopWords = map[string]bool{
	"table": true, "tables": true, "containing": true, "columns": true,
	"column": true, "what": true, "which": true, "show": true, "list": true,
	"have": true, "does": true, "that": true, "this": true, "many": true,
	"much": true, "with": true, "from": true, "their": true, "there": true,
}

// columnSynonyms implements descriptive matching: a question word on the
// left selects any bound-table column whose name appears on the right.
var columnSynonyms = map[string][]string{
	"expensive": {"price", "cost", "amount"},
	"cheap":     {"price", "cost", "amount"},
	"cheapest":  {"price", "cost", "amount"},
	"costly":    {"price", "cost"},
	"newest":    {"created_at", "date"},
	"oldest":    {"created_at", "date"},
	"recent":    {"created_at", "updated_at", "date"},
}

// likeColumns are included whenever the question contains "like", so the
// condition extractor can anchor a LIKE pattern to them.
var likeColumns = map[string]bool{
	"email":       true,
	"name":        true,
	"description": true,
}

// Bind resolves which tables and columns the analyzed question refers to.
// Table matching runs in schema-declaration order; when nothing matches it
// falls back to the recently used tables, then to a column-name scan, then
// to the first declared table, so a non-empty schema always yields at least
// one table.
func Bind(analysis QueryAnalysis, sch *schema.Schema, recent []string) Binding {
	if sch.IsEmpty() {
		return Binding{}
	}

	lower := strings.ToLower(analysis.Original)
	words := wordPattern.FindAllString(lower, -1)

	var tables []string

	for _, tbl := range sch.Tables {
		if matchesTable(tbl, lower, words) {
			tables = append(tables, tbl.Name)
		}
	}

	if len(tables) == 0 {
		for _, name := range recent {
			if _, ok := sch.Table(name); ok {
				tables = append(tables, name)
			}
		}
	}

	if len(tables) == 0 {
		tables = tablesByColumnMention(sch, lower)
	}

	if len(tables) == 0 {
		tables = []string{sch.Tables[0].Name}
	}

	tables = dedupe(tables)

	binding := Binding{Tables: tables}

	for _, name := range tables {
		tbl, ok := sch.Table(name)
		if !ok {
			continue
		}

		for _, col := range tbl.Columns {
			if matchesColumn(col, lower, words) {
				binding.Columns = append(binding.Columns, BoundColumn{
					Table:  tbl.Name,
					Column: col.Name,
					Type:   col.Type,
				})
			}
		}
	}

	return binding
}

// matchesTable applies the table matching rules in order: exact name (or
// singular form), underscore-delimited partial word, then description.
func matchesTable(tbl schema.Table, lower string, words []string) bool {
	if strings.Contains(lower, tbl.Name) {
		return true
	}

	if strings.HasSuffix(tbl.Name, "s") {
		if singular := inflect.Singularize(tbl.Name); singular != tbl.Name &&
			strings.Contains(lower, singular) {
			return true
		}
	}

	for _, part := range strings.Split(tbl.Name, "_") {
		if len(part) > 3 && strings.Contains(lower, part) {
			return true
		}
	}

	description := strings.ToLower(tbl.Describe())
	for _, word := range words {
		if len(word) > 3 && !stopWords[word] && strings.Contains(description, word) {
			return true
		}
	}

	return false
}

// matchesColumn applies the column matching rules: exact substring,
// underscore-delimited partial word, description, synonym, and the LIKE
// special case.
func matchesColumn(col schema.Column, lower string, words []string) bool {
	if strings.Contains(lower, col.Name) {
		return true
	}

	for _, part := range strings.Split(col.Name, "_") {
		if len(part) > 3 && strings.Contains(lower, part) {
			return true
		}
	}

	if col.Description != "" {
		description := strings.ToLower(col.Description)
		for _, word := range words {
			if len(word) > 3 && !stopWords[word] && strings.Contains(description, word) {
				return true
			}
		}
	}

	for _, word := range words {
		for _, hint := range columnSynonyms[word] {
			if col.Name == hint {
				return true
			}
		}
	}

	if likeColumns[col.Name] && containsWord(words, "like") {
		return true
	}

	return false
}

// tablesByColumnMention scans every column name across every table for a
// literal substring match and collects the owning tables.
func tablesByColumnMention(sch *schema.Schema, lower string) []string {
	var tables []string

	for _, tbl := range sch.Tables {
		for _, col := range tbl.Columns {
			if strings.Contains(lower, col.Name) {
				tables = append(tables, tbl.Name)
				break
			}
		}
	}

	return tables
}

func containsWord(words []string, target string) bool {
	for _, word := range words {
		if word == target {
			return true
		}
	}

	return false
}

// dedupe removes duplicates while preserving first-seen order
func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	result := items[:0]

	for _, item := range items {
		if !seen[item] {
			seen[item] = true
			result = append(result, item)
		}
	}

	return result
}
