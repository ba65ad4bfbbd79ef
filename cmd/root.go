package cmd

import (
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"
)

var Version = "dev"

func init() {
	if Version == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "(devel)" {
			Version = info.Main.Version
		}
	}
	rootCmd.Version = Version
}

var rootCmd = &cobra.Command{
	Use:          "sqlperf",
	SilenceUsage: true,
	Short:        "Analyze SQL script performance",
	Long: `sqlperf executes a SQL script statement by statement, times every
statement, captures execution plans and scores each query from 1 to 10
with concrete optimization suggestions.

Supports PostgreSQL, SQLite and MySQL connections, plus offline
analysis of saved plans (including SQL Server SHOWPLAN text).`,
	Example: `  # Run a script against a database
  sqlperf analyze script.sql --db "postgres://localhost/app" --driver postgres

  # Use a saved profile
  sqlperf analyze script.sql --profile prod

  # Explain why a join returns no rows
  sqlperf diagnose "SELECT * FROM a JOIN b ON a.id = b.a_id" --profile dev

  # Analyze a saved plan offline
  sqlperf analyze --plan explain.json --backend postgres`,
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
