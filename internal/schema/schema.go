package schema

import (
	"fmt"
	"strings"
)

// DataType classifies a column for aggregation and condition handling.
type DataType string

const (
	TypeInteger   DataType = "integer"
	TypeNumber    DataType = "number"
	TypeFloat     DataType = "float"
	TypeDecimal   DataType = "decimal"
	TypeVarchar   DataType = "varchar"
	TypeTimestamp DataType = "timestamp"
	TypeDate      DataType = "date"
	TypeOther     DataType = "other"
)

// ParseDataType normalizes a raw type name (including common SQL spellings)
// into one of the known data types. Unknown types map to TypeOther.
func ParseDataType(raw string) DataType {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "integer", "int", "bigint", "smallint", "tinyint":
		return TypeInteger
	case "number":
		return TypeNumber
	case "float", "real", "double", "double precision":
		return TypeFloat
	case "decimal", "numeric":
		return TypeDecimal
	case "varchar", "text", "string", "char":
		return TypeVarchar
	case "timestamp", "datetime":
		return TypeTimestamp
	case "date":
		return TypeDate
	default:
		return TypeOther
	}
}

// IsNumeric reports whether the type can be an operand of AVG/SUM/MAX/MIN.
func (d DataType) IsNumeric() bool {
	switch d {
	case TypeInteger, TypeNumber, TypeFloat, TypeDecimal:
		return true
	default:
		return false
	}
}

// IsTemporal reports whether the type represents a point in time.
func (d DataType) IsTemporal() bool {
	return d == TypeTimestamp || d == TypeDate
}

// Column represents a database column
type Column struct {
	Name        string   `json:"name"        yaml:"name"`
	Type        DataType `json:"type"        yaml:"type"`
	Description string   `json:"description" yaml:"description"`
}

// Table represents a database table with its columns in declaration order
type Table struct {
	Name    string   `json:"name"    yaml:"name"`
	Columns []Column `json:"columns" yaml:"columns"`
}

// Describe renders a short description of the table used for fuzzy matching
func (t Table) Describe() string {
	names := make([]string, 0, len(t.Columns))
	for _, col := range t.Columns {
		names = append(names, col.Name)
	}

	return fmt.Sprintf("Table '%s' containing columns: %s", t.Name, strings.Join(names, ", "))
}

// Column looks up a column by name
func (t Table) Column(name string) (Column, bool) {
	for _, col := range t.Columns {
		if col.Name == name {
			return col, true
		}
	}

	return Column{}, false
}

// Schema is an ordered collection of tables. Order matters: the binder
// probes tables in declaration order and falls back to the first one.
type Schema struct {
	Tables []Table `json:"tables" yaml:"tables"`
}

// IsEmpty reports whether the schema has no tables
func (s *Schema) IsEmpty() bool {
	return s == nil || len(s.Tables) == 0
}

// Table looks up a table by name
func (s *Schema) Table(name string) (Table, bool) {
	if s == nil {
		return Table{}, false
	}

	for _, tbl := range s.Tables {
		if tbl.Name == name {
			return tbl, true
		}
	}

	return Table{}, false
}

// TableNames returns the table names in declaration order
func (s *Schema) TableNames() []string {
	if s == nil {
		return nil
	}

	names := make([]string, 0, len(s.Tables))
	for _, tbl := range s.Tables {
		names = append(names, tbl.Name)
	}

	return names
}

// Relationship describes how two tables are typically joined
type Relationship struct {
	FromColumn string `json:"from_column" yaml:"from_column"`
	ToColumn   string `json:"to_column"   yaml:"to_column"`
}

// Relationships maps a directional "tableA_tableB" key to the join columns.
// Absence of both the forward and reverse key means no known relationship.
type Relationships map[string]Relationship

// Between probes both the forward and the reverse key for a pair of tables.
// reversed is true when the hit came from the "b_a" key, meaning the
// relationship's FromColumn belongs to b and ToColumn to a.
func (r Relationships) Between(a, b string) (rel Relationship, reversed, ok bool) {
	if r == nil {
		return Relationship{}, false, false
	}

	if rel, ok := r[a+"_"+b]; ok {
		return rel, false, true
	}

	if rel, ok := r[b+"_"+a]; ok {
		return rel, true, true
	}

	return Relationship{}, false, false
}
