package cmd

import (
	"fmt"

	"github.com/rustyeddy/tradegate/journal"
	"github.com/spf13/cobra"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Query outcomes recorded in a SQLite journal",
	Long: `Query trade outcomes written by "tradegate run" with journal.type: sqlite.

Subcommands:
  outcome   - Show the outcome of one queue entry
  outcomes  - List outcomes in processing order

Examples:
  tradegate journal outcome 01HQZX3Y4V5W6X7Y8Z9ABCDEFG
  tradegate journal outcomes --account user1`,
}

var journalOutcomeCmd = &cobra.Command{
	Use:   "outcome <entry-id>",
	Short: "Show the outcome of one queue entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalOutcome,
}

var journalOutcomesCmd = &cobra.Command{
	Use:   "outcomes",
	Short: "List outcomes in processing order",
	Args:  cobra.NoArgs,
	RunE:  runJournalOutcomes,
}

var (
	journalDBPath  string
	journalAccount string
)

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalOutcomeCmd)
	journalCmd.AddCommand(journalOutcomesCmd)

	journalCmd.PersistentFlags().StringVarP(&journalDBPath, "db", "d", "./tradegate.sqlite", "path to SQLite journal DB")
	journalOutcomesCmd.Flags().StringVarP(&journalAccount, "account", "a", "", "only list this account")
}

func runJournalOutcome(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	rec, err := j.GetOutcome(args[0])
	if err != nil {
		return fmt.Errorf("get outcome: %w", err)
	}

	fmt.Fprint(cmd.OutOrStdout(), journal.FormatOutcomeOrg(rec))
	return nil
}

func runJournalOutcomes(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	recs, err := j.ListOutcomes(journalAccount)
	if err != nil {
		return fmt.Errorf("query outcomes: %w", err)
	}

	fmt.Fprint(cmd.OutOrStdout(), journal.FormatOutcomesOrg(recs))
	return nil
}
