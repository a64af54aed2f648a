package schema

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/askdb/askdb/internal/errors"
)

// Document is the on-disk schema format: an ordered list of tables plus
// optional relationship hints keyed by "tableA_tableB".
type Document struct {
	Tables        []Table       `json:"tables"        yaml:"tables"`
	Relationships Relationships `json:"relationships" yaml:"relationships"`
}

// Load reads a schema document from a YAML or JSON file
func Load(path string) (*Schema, Relationships, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, errors.ErrTypeSchema, "failed to read schema file %s", path)
	}

	var doc Document

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, nil, errors.Wrap(err, errors.ErrTypeSchema, "failed to parse JSON schema file")
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, nil, errors.Wrap(err, errors.ErrTypeSchema, "failed to parse YAML schema file")
		}
	default:
		return nil, nil, errors.Newf(errors.ErrTypeSchema,
			"unsupported schema file extension %q (use .yaml, .yml, or .json)", filepath.Ext(path))
	}

	if err := checkDataTypes(doc.Tables); err != nil {
		return nil, nil, err
	}

	sch := &Schema{Tables: doc.Tables}
	normalize(sch)

	if err := Validate(sch, doc.Relationships); err != nil {
		return nil, nil, err
	}

	return sch, doc.Relationships, nil
}

// checkDataTypes rejects type names ParseDataType cannot place. Run against
// the raw document: after normalization unknown spellings are gone.
func checkDataTypes(tables []Table) error {
	for _, tbl := range tables {
		for _, col := range tbl.Columns {
			raw := strings.ToLower(strings.TrimSpace(string(col.Type)))
			if raw == "" || raw == string(TypeOther) {
				continue
			}

			if ParseDataType(raw) == TypeOther {
				return errors.Newf(errors.ErrTypeSchema,
					"column %s.%s has unknown data type %q", tbl.Name, col.Name, col.Type)
			}
		}
	}

	return nil
}

// normalize lower-cases names and canonicalizes data types so matching and
// rendering never have to worry about case.
func normalize(s *Schema) {
	for ti := range s.Tables {
		s.Tables[ti].Name = strings.ToLower(strings.TrimSpace(s.Tables[ti].Name))
		for ci := range s.Tables[ti].Columns {
			col := &s.Tables[ti].Columns[ci]
			col.Name = strings.ToLower(strings.TrimSpace(col.Name))
			col.Type = ParseDataType(string(col.Type))
		}
	}
}

// Validate checks structural invariants: unique non-empty table names,
// unique column names per table, and relationship endpoints that exist.
func Validate(s *Schema, rels Relationships) error {
	if s.IsEmpty() {
		return errors.NewSchemaError("schema contains no tables")
	}

	seenTables := make(map[string]bool, len(s.Tables))

	for _, tbl := range s.Tables {
		if tbl.Name == "" {
			return errors.New(errors.ErrTypeSchema, "schema contains a table with an empty name")
		}

		if seenTables[tbl.Name] {
			return errors.Newf(errors.ErrTypeSchema, "duplicate table name %q", tbl.Name)
		}

		seenTables[tbl.Name] = true

		if len(tbl.Columns) == 0 {
			return errors.Newf(errors.ErrTypeSchema, "table %q has no columns", tbl.Name)
		}

		seenCols := make(map[string]bool, len(tbl.Columns))
		for _, col := range tbl.Columns {
			if col.Name == "" {
				return errors.Newf(errors.ErrTypeSchema, "table %q has a column with an empty name", tbl.Name)
			}

			if seenCols[col.Name] {
				return errors.Newf(errors.ErrTypeSchema,
					"duplicate column %q in table %q", col.Name, tbl.Name)
			}

			seenCols[col.Name] = true
		}
	}

	for key, rel := range rels {
		from, to, err := splitRelationshipKey(s, key)
		if err != nil {
			return err
		}

		fromTable, _ := s.Table(from)
		toTable, _ := s.Table(to)

		if _, ok := fromTable.Column(rel.FromColumn); !ok {
			return errors.Newf(errors.ErrTypeSchema,
				"relationship %q references unknown column %s.%s", key, from, rel.FromColumn)
		}

		if _, ok := toTable.Column(rel.ToColumn); !ok {
			return errors.Newf(errors.ErrTypeSchema,
				"relationship %q references unknown column %s.%s", key, to, rel.ToColumn)
		}
	}

	return nil
}

// splitRelationshipKey resolves an "a_b" key against possible underscores in
// table names by trying every split point until both halves are known tables.
func splitRelationshipKey(s *Schema, key string) (from, to string, err error) {
	for idx := strings.Index(key, "_"); idx > 0; {
		from, to := key[:idx], key[idx+1:]
		if _, ok := s.Table(from); ok {
			if _, ok := s.Table(to); ok {
				return from, to, nil
			}
		}

		next := strings.Index(key[idx+1:], "_")
		if next < 0 {
			break
		}

		idx += 1 + next
	}

	return "", "", errors.Newf(errors.ErrTypeSchema,
		"relationship key %q does not name two known tables", key)
}
