package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/askdb/askdb/internal/config"
)

var configJSON bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Display the active configuration",
	Long: `Show the active configuration after merging the config file,
environment variables, and command-line flags.`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&configJSON, "json", false, "Print the configuration as JSON")

	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, _ []string) error {
	cfg := getConfig(cmd)

	if configJSON {
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return err
		}

		fmt.Println(string(data))

		return nil
	}

	writeConfig(os.Stdout, cfg)

	return nil
}

func writeConfig(w io.Writer, cfg *config.Config) {
	fmt.Fprintln(w, "Active configuration:")

	fmt.Fprintln(w, "\nDatabase:")
	fmt.Fprintf(w, "  Path: %s\n", orUnset(cfg.Database.Path))
	fmt.Fprintf(w, "  Query Timeout: %s\n", cfg.Database.QueryTimeout)
	fmt.Fprintf(w, "  Max Rows: %d\n", cfg.Database.MaxRows)

	fmt.Fprintln(w, "\nSchema:")
	fmt.Fprintf(w, "  Path: %s\n", orUnset(cfg.Schema.Path))

	fmt.Fprintln(w, "\nSession:")
	fmt.Fprintf(w, "  Recent Tables: %d\n", cfg.Session.RecentTables)
	fmt.Fprintf(w, "  History Size: %d\n", cfg.Session.HistorySize)

	fmt.Fprintln(w, "\nSafety:")
	fmt.Fprintf(w, "  Confirm Tier: %s\n", cfg.Safety.ConfirmTier)

	fmt.Fprintln(w, "\nLogging:")
	fmt.Fprintf(w, "  Level: %s\n", cfg.Logging.Level)
	fmt.Fprintf(w, "  Format: %s\n", cfg.Logging.Format)
	fmt.Fprintf(w, "  Output: %s\n", cfg.Logging.Output)

	if cfg.Logging.Output == "file" {
		fmt.Fprintf(w, "  File: %s\n", cfg.Logging.File)
	}
}

func orUnset(value string) string {
	if value == "" {
		return "(not set)"
	}

	return value
}
