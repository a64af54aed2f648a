package storage

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/marcboeker/go-duckdb" // DuckDB driver

	"github.com/askdb/askdb/internal/errors"
	"github.com/askdb/askdb/internal/schema"
)

// ResultSet holds one query's output in column order
type ResultSet struct {
	Columns []string
	Rows    [][]string
	Elapsed time.Duration
}

// Executor runs generated statements against a DuckDB database. Only SELECT
// shaped statements are accepted; the translation layer never produces
// anything else, and this guard catches anything that slips through.
type Executor struct {
	db      *sql.DB
	path    string
	maxRows int
}

// NewExecutor opens (or creates) the DuckDB database at path
func NewExecutor(dbPath string, maxRows int) (*Executor, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, errors.ErrTypeDatabase, "failed to create database directory")
	}

	db, err := sql.Open("duckdb", dbPath)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrTypeDatabase, "failed to open database")
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, errors.Wrap(err, errors.ErrTypeDatabase, "failed to ping database")
	}

	if maxRows <= 0 {
		maxRows = 1000
	}

	return &Executor{db: db, path: dbPath, maxRows: maxRows}, nil
}

// Close releases the database connection pool
func (e *Executor) Close() error {
	return e.db.Close()
}

// Path returns the database file path
func (e *Executor) Path() string {
	return e.path
}

// readOnlyPrefixes are the statement verbs the executor will run
var readOnlyPrefixes = []string{"SELECT", "WITH", "SHOW", "DESCRIBE", "EXPLAIN"}

func isReadOnly(query string) bool {
	normalized := strings.ToUpper(strings.TrimSpace(query))

	for _, prefix := range readOnlyPrefixes {
		if strings.HasPrefix(normalized, prefix) {
			return true
		}
	}

	return false
}

// Query executes a read-only statement and materializes up to maxRows rows
// as strings for display. Mutating statements are rejected before reaching
// the database.
func (e *Executor) Query(ctx context.Context, query string) (*ResultSet, error) {
	if !isReadOnly(query) {
		return nil, errors.New(errors.ErrTypeUnsafe,
			"only read-only statements can be executed").
			WithSuggestion("Generated queries are limited to SELECT statements")
	}

	start := time.Now()

	rows, err := e.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrTypeDatabase, "query execution failed")
	}
	defer func() { _ = rows.Close() }()

	columns, err := rows.Columns()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrTypeDatabase, "failed to read result columns")
	}

	result := &ResultSet{Columns: columns}

	values := make([]sql.NullString, len(columns))
	scanArgs := make([]interface{}, len(columns))

	for i := range values {
		scanArgs[i] = &values[i]
	}

	for rows.Next() {
		if len(result.Rows) >= e.maxRows {
			break
		}

		if err := rows.Scan(scanArgs...); err != nil {
			return nil, errors.Wrap(err, errors.ErrTypeDatabase, "failed to scan result row")
		}

		row := make([]string, len(columns))

		for i, v := range values {
			if v.Valid {
				row[i] = v.String
			} else {
				row[i] = "NULL"
			}
		}

		result.Rows = append(result.Rows, row)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrTypeDatabase, "result iteration failed")
	}

	result.Elapsed = time.Since(start)

	return result, nil
}

// Introspect reads table and column definitions from information_schema and
// returns them as a schema the translator can bind against.
func (e *Executor) Introspect(ctx context.Context) (*schema.Schema, error) {
	const introspectSQL = `
	SELECT table_name, column_name, data_type
	FROM information_schema.columns
	WHERE table_schema = 'main'
	ORDER BY table_name, ordinal_position`

	rows, err := e.db.QueryContext(ctx, introspectSQL)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrTypeDatabase, "schema introspection failed")
	}
	defer func() { _ = rows.Close() }()

	sch := &schema.Schema{}
	index := map[string]int{}

	for rows.Next() {
		var table, column, dataType string

		if err := rows.Scan(&table, &column, &dataType); err != nil {
			return nil, errors.Wrap(err, errors.ErrTypeDatabase, "failed to scan column definition")
		}

		table = strings.ToLower(table)

		i, ok := index[table]
		if !ok {
			i = len(sch.Tables)
			index[table] = i
			sch.Tables = append(sch.Tables, schema.Table{Name: table})
		}

		sch.Tables[i].Columns = append(sch.Tables[i].Columns, schema.Column{
			Name: strings.ToLower(column),
			Type: schema.ParseDataType(dataType),
		})
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrTypeDatabase, "schema introspection failed")
	}

	if sch.IsEmpty() {
		return nil, errors.New(errors.ErrTypeSchema, "database contains no tables").
			WithSuggestion("Load data into the database or provide a schema file with --schema")
	}

	return sch, nil
}
