package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tradegate",
	Short: "Risk-gated trade execution simulator",
	Long: `Tradegate simulates order intake for a handful of trading accounts.

Trades are queued, drained one at a time by a single processor and
admitted or rejected against each account's balance, exposure limit and
stop-loss floor.

Subcommands:
  run      - Register accounts and process scripted trades from a config
  config   - Generate or validate configuration files
  journal  - Query outcomes recorded in a SQLite journal
  size     - Largest order an account can take at a price
  version  - Print the version`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}
