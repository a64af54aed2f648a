package formatter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/askdb/askdb/internal/schema"
	"github.com/askdb/askdb/internal/storage"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatTable OutputFormat = "table"
	FormatCSV   OutputFormat = "csv"
)

// Formatter renders query results and schema listings for the terminal
type Formatter struct{}

// NewFormatter creates a new formatter instance
func NewFormatter() *Formatter {
	return &Formatter{}
}

// WriteResult writes a result set in the requested format
func (f *Formatter) WriteResult(w io.Writer, result *storage.ResultSet, format OutputFormat) error {
	switch format {
	case FormatCSV:
		return f.writeCSV(w, result)
	default:
		return f.writeTable(w, result)
	}
}

// writeTable renders an aligned text table with a header separator
func (f *Formatter) writeTable(w io.Writer, result *storage.ResultSet) error {
	if len(result.Columns) == 0 {
		_, err := fmt.Fprintln(w, "(no results)")
		return err
	}

	widths := make([]int, len(result.Columns))
	for i, col := range result.Columns {
		widths[i] = len(col)
	}

	for _, row := range result.Rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	if err := writeRow(w, result.Columns, widths); err != nil {
		return err
	}

	separators := make([]string, len(result.Columns))
	for i, width := range widths {
		separators[i] = strings.Repeat("-", width)
	}

	if err := writeRow(w, separators, widths); err != nil {
		return err
	}

	for _, row := range result.Rows {
		if err := writeRow(w, row, widths); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "\n%d row(s)\n", len(result.Rows))

	return err
}

func writeRow(w io.Writer, cells []string, widths []int) error {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		parts[i] = fmt.Sprintf("%-*s", widths[i], cell)
	}

	_, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, "  "), " "))

	return err
}

// writeCSV renders the result set as RFC 4180 CSV with a header row
func (f *Formatter) writeCSV(w io.Writer, result *storage.ResultSet) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(result.Columns); err != nil {
		return err
	}

	for _, row := range result.Rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()

	return cw.Error()
}

// WriteSchema renders a schema listing, one table per block
func (f *Formatter) WriteSchema(w io.Writer, sch *schema.Schema) error {
	if sch.IsEmpty() {
		_, err := fmt.Fprintln(w, "(no tables)")
		return err
	}

	for _, tbl := range sch.Tables {
		if err := writeTableBlock(w, tbl); err != nil {
			return err
		}

		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	return nil
}

// WriteTableDetail renders one table's columns followed by the join
// predicates known for it.
func (f *Formatter) WriteTableDetail(w io.Writer, tbl schema.Table, joins []string) error {
	if err := writeTableBlock(w, tbl); err != nil {
		return err
	}

	if len(joins) == 0 {
		return nil
	}

	if _, err := fmt.Fprintln(w, "\nrelationships:"); err != nil {
		return err
	}

	for _, join := range joins {
		if _, err := fmt.Fprintf(w, "  %s\n", join); err != nil {
			return err
		}
	}

	return nil
}

func writeTableBlock(w io.Writer, tbl schema.Table) error {
	if _, err := fmt.Fprintf(w, "%s\n", tbl.Name); err != nil {
		return err
	}

	for _, col := range tbl.Columns {
		line := fmt.Sprintf("  %-20s %s", col.Name, col.Type)
		if col.Description != "" {
			line += "  -- " + col.Description
		}

		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	return nil
}
