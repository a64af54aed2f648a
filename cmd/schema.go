package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/askdb/askdb/internal/errors"
	"github.com/askdb/askdb/internal/formatter"
	"github.com/askdb/askdb/internal/schema"
	"github.com/askdb/askdb/internal/storage"
)

var schemaCmd = &cobra.Command{
	Use:   "schema [table]",
	Short: "Show the active schema",
	Long: `Print the tables and columns the translator binds questions against,
loaded from the schema file (--schema) or introspected from the database
(--db). With a table argument, print just that table along with the join
relationships known for it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSchema,
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}

func runSchema(cmd *cobra.Command, args []string) error {
	cfg := getConfig(cmd)

	var exec *storage.Executor

	if cfg.Database.Path != "" {
		e, err := storage.NewExecutor(cfg.Database.Path, cfg.Database.MaxRows)
		if err != nil {
			return err
		}

		exec = e
		defer func() { _ = exec.Close() }()
	}

	sch, rels, err := resolveSchema(cfg, exec)
	if err != nil {
		return err
	}

	f := formatter.NewFormatter()

	if len(args) == 0 {
		return f.WriteSchema(os.Stdout, sch)
	}

	tbl, ok := sch.Table(args[0])
	if !ok {
		return errors.New(errors.ErrTypeSchema, "unknown table: "+args[0]).
			WithSuggestion("Run 'askdb schema' to list the available tables")
	}

	return f.WriteTableDetail(os.Stdout, tbl, joinsFor(args[0], sch, rels))
}

// joinsFor lists the join predicates known for one table, in schema order.
func joinsFor(name string, sch *schema.Schema, rels schema.Relationships) []string {
	var joins []string

	for _, other := range sch.TableNames() {
		if other == name {
			continue
		}

		rel, reversed, ok := rels.Between(name, other)
		if !ok {
			continue
		}

		if reversed {
			joins = append(joins, fmt.Sprintf("%s.%s = %s.%s", other, rel.FromColumn, name, rel.ToColumn))
		} else {
			joins = append(joins, fmt.Sprintf("%s.%s = %s.%s", name, rel.FromColumn, other, rel.ToColumn))
		}
	}

	return joins
}
