package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/askdb/askdb/internal/config"
	"github.com/askdb/askdb/internal/errors"
	"github.com/askdb/askdb/internal/formatter"
	"github.com/askdb/askdb/internal/logging"
	"github.com/askdb/askdb/internal/schema"
	"github.com/askdb/askdb/internal/storage"
	"github.com/askdb/askdb/internal/translate"
)

var (
	askExecute     bool
	askInteractive bool
	askCSV         bool
	askExplain     bool
	askYes         bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Translate a question into SQL and optionally run it",
	Long: `Translate a natural language question into a SQL query against the
active schema. The generated query is printed together with an explanation
and a risk grade; with --execute it is also run against the database.

Examples:
  askdb ask --schema shop.yaml "how many users do we have?"
  askdb ask --db shop.db --execute "top 5 most expensive products"
  askdb ask --db shop.db --interactive`,
	Args: func(_ *cobra.Command, args []string) error {
		if askInteractive || len(args) > 0 {
			return nil
		}

		return errors.New(errors.ErrTypeValidation, "a question is required unless --interactive is set")
	},
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askExecute, "execute", false, "Run the generated query against the database")
	askCmd.Flags().BoolVar(&askInteractive, "interactive", false, "Start an interactive question loop")
	askCmd.Flags().BoolVar(&askCSV, "csv", false, "Print query results as CSV instead of a table")
	askCmd.Flags().BoolVar(&askExplain, "explain", false, "Print the full reasoning behind the generated query")
	askCmd.Flags().BoolVar(&askYes, "yes", false, "Skip the confirmation prompt for risky queries")

	rootCmd.AddCommand(askCmd)
}

// session bundles everything one ask invocation needs
type session struct {
	translator  *translate.Translator
	executor    *storage.Executor
	formatter   *formatter.Formatter
	history     *storage.History
	timeout     time.Duration
	confirmTier translate.RiskTier
}

func newSession(cfg *config.Config) (*session, error) {
	sess := &session{
		formatter:   formatter.NewFormatter(),
		history:     storage.NewHistory(cfg.Session.HistorySize),
		confirmTier: translate.ParseRiskTier(cfg.Safety.ConfirmTier),
	}

	timeout, err := time.ParseDuration(cfg.Database.QueryTimeout)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrTypeConfig, "invalid query timeout")
	}

	sess.timeout = timeout

	if cfg.Database.Path != "" {
		exec, err := storage.NewExecutor(cfg.Database.Path, cfg.Database.MaxRows)
		if err != nil {
			return nil, err
		}

		sess.executor = exec
	}

	sch, rels, err := resolveSchema(cfg, sess.executor)
	if err != nil {
		sess.Close()
		return nil, err
	}

	sess.translator = translate.NewTranslator(sch,
		translate.WithRelationships(rels),
		translate.WithRecentTableLimit(cfg.Session.RecentTables))

	return sess, nil
}

func (s *session) Close() {
	if s.executor != nil {
		_ = s.executor.Close()
	}
}

// resolveSchema prefers an explicit schema file; without one it introspects
// the database when available.
func resolveSchema(cfg *config.Config, exec *storage.Executor) (*schema.Schema, schema.Relationships, error) {
	if cfg.Schema.Path != "" {
		return schema.Load(cfg.Schema.Path)
	}

	if exec != nil {
		sch, err := exec.Introspect(context.Background())
		if err != nil {
			return nil, nil, err
		}

		return sch, nil, nil
	}

	return nil, nil, errors.NewSchemaError("no schema source configured")
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg := getConfig(cmd)
	logger := logging.GetLogger()

	if askExecute && cfg.Database.Path == "" {
		return errors.New(errors.ErrTypeConfig, "--execute requires a database").
			WithSuggestion("Point --db at a DuckDB database file")
	}

	sess, err := newSession(cfg)
	if err != nil {
		return err
	}
	defer sess.Close()

	if askInteractive {
		return sess.runInteractive(cmd.Context())
	}

	question := strings.TrimSpace(strings.Join(args, " "))
	logger.Debugf("Translating question: %s", question)

	return sess.handleQuestion(cmd.Context(), question)
}

var riskIcons = map[translate.RiskTier]string{
	translate.RiskNone:     "  ",
	translate.RiskLow:      "🟢",
	translate.RiskMedium:   "🟡",
	translate.RiskHigh:     "🟠",
	translate.RiskCritical: "🔴",
}

func (s *session) handleQuestion(ctx context.Context, question string) error {
	result := s.translator.Translate(question)

	if !result.Safe || result.SQL == "" {
		fmt.Printf("%s %s\n", riskIcons[result.Risk], result.Explanation)
		fmt.Printf("   %s\n", result.Reasoning)
		s.history.Add(storage.HistoryEntry{Question: question, Risk: result.Risk.String()})

		return nil
	}

	fmt.Println(result.SQL)
	fmt.Printf("\n%s %s (risk: %s)\n", riskIcons[result.Risk], result.Explanation, result.Risk)

	if askExplain {
		fmt.Printf("\n%s\n", result.Reasoning)
	}

	entry := storage.HistoryEntry{Question: question, SQL: result.SQL, Risk: result.Risk.String()}

	if askExecute && s.executor != nil {
		if s.needsConfirmation(result.Risk) && !confirmRisky(result.Risk) {
			fmt.Println("Operation cancelled.")
		} else {
			res, err := s.execute(ctx, result.SQL)
			if err != nil {
				s.history.Add(entry)
				return err
			}

			entry.Executed = true
			entry.Rows = len(res.Rows)
			entry.Elapsed = res.Elapsed
		}
	}

	s.history.Add(entry)

	return nil
}

// needsConfirmation compares a result's risk against the configured
// confirmation threshold; --yes bypasses the prompt entirely.
func (s *session) needsConfirmation(risk translate.RiskTier) bool {
	return !askYes && risk >= s.confirmTier
}

// confirmRisky requires an explicit typed confirmation before a risky
// statement is executed.
func confirmRisky(risk translate.RiskTier) bool {
	fmt.Printf("⚠ This is a %s risk operation. Type 'confirm' to proceed: ", risk)

	reader := bufio.NewReader(os.Stdin)

	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	return strings.EqualFold(strings.TrimSpace(answer), "confirm")
}

func (s *session) execute(ctx context.Context, query string) (*storage.ResultSet, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	sp := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	sp.Suffix = " running query..."
	sp.Start()

	result, err := s.executor.Query(ctx, query)

	sp.Stop()

	if err != nil {
		return nil, err
	}

	format := formatter.FormatTable
	if askCSV {
		format = formatter.FormatCSV
	}

	fmt.Println()

	if err := s.formatter.WriteResult(os.Stdout, result, format); err != nil {
		return nil, err
	}

	logging.GetLogger().Debugf("Query returned %d row(s) in %s", len(result.Rows), result.Elapsed)

	return result, nil
}

func (s *session) runInteractive(ctx context.Context) error {
	fmt.Println("askdb interactive session. Type 'help' for commands, 'exit' to quit.")

	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("\n> ")

		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())

		switch strings.ToLower(line) {
		case "":
			continue
		case "exit", "quit":
			return nil
		case "help":
			printInteractiveHelp()
			continue
		case "history":
			s.printHistory()
			continue
		case "schema":
			if err := s.printSchema(); err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
			}

			continue
		}

		if err := s.handleQuestion(ctx, line); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
	}

	return scanner.Err()
}

func printInteractiveHelp() {
	fmt.Println(`Commands:
  exit      Close the session
  history   Show the questions asked so far
  schema    Show the active schema
  help      Show this help

Anything else is treated as a question about your data, for example:
  how many users do we have?
  top 5 most expensive products
  orders with amount greater than 100`)
}

func (s *session) printHistory() {
	entries := s.history.Entries()
	if len(entries) == 0 {
		fmt.Println("No questions asked yet.")
		return
	}

	for i, entry := range entries {
		status := "translated"
		if entry.Executed {
			status = fmt.Sprintf("executed, %d row(s) in %s", entry.Rows, entry.Elapsed)
		}

		fmt.Printf("%2d. [%s] %s\n", i+1, status, entry.Question)

		if entry.SQL != "" {
			fmt.Printf("    %s\n", entry.SQL)
		}
	}
}

func (s *session) printSchema() error {
	sch := s.translator.Schema()
	return s.formatter.WriteSchema(os.Stdout, sch)
}
