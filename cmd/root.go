package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/askdb/askdb/internal/config"
	"github.com/askdb/askdb/internal/logging"
)

var (
	flagDBPath     string
	flagSchemaPath string
	flagLogLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "askdb",
	Short: "Ask questions about your data in plain English",
	Long: `askdb translates natural language questions into SQL, explains the
generated query, grades how risky it would be to run, and can optionally
execute it against a local DuckDB database.

The schema comes either from a YAML/JSON schema file (--schema) or is
introspected from the database itself (--db). Only read-only statements
are ever generated or executed.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.LoadConfigWithOverrides(map[string]interface{}{
			"db":        flagDBPath,
			"schema":    flagSchemaPath,
			"log-level": flagLogLevel,
		})
		if err != nil {
			return err
		}

		cfg.ExpandAllPaths()

		if err := logging.InitializeLogger(cfg.Logging); err != nil {
			return err
		}

		cmd.SetContext(withConfig(cmd.Context(), cfg))

		return nil
	},
}

type configKey struct{}

func withConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// getConfig returns the configuration loaded by the root command
func getConfig(cmd *cobra.Command) *config.Config {
	if cfg, ok := cmd.Context().Value(configKey{}).(*config.Config); ok {
		return cfg
	}

	cfg, _ := config.LoadConfig()

	return cfg
}

func Execute() error {
	ctx := context.Background()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to a DuckDB database file")
	rootCmd.PersistentFlags().StringVar(&flagSchemaPath, "schema", "", "Path to a YAML or JSON schema file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, or error")
}
