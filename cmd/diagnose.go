package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sqlperf/sqlperf/internal/db"
	"github.com/sqlperf/sqlperf/internal/joindiag"
	"github.com/sqlperf/sqlperf/internal/plan"
	"github.com/sqlperf/sqlperf/internal/profile"
	"github.com/sqlperf/sqlperf/internal/report"
)

var diagnoseCmd = &cobra.Command{
	Use:   "diagnose <query>",
	Short: "Explain why a join query returns zero rows",
	Long: `Run a multi-table SELECT and, when it returns no rows, decompose it:
count each table on its own, rebuild the join one step at a time, then
apply the WHERE clause, reporting the first point where the row count
collapses to zero.`,
	Example: `  sqlperf diagnose "SELECT * FROM orders o JOIN users u ON u.id = o.user_id" --profile dev

  # Query from a file
  sqlperf diagnose "$(cat query.sql)" --db ./app.db --driver sqlite`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := args[0]
		format, _ := cmd.Flags().GetString("format")

		if format != "text" && format != "json" {
			return fmt.Errorf("invalid output format %q: must be \"text\" or \"json\"", format)
		}
		if !joindiag.HasJoins(query) {
			return fmt.Errorf("query has no joins to diagnose")
		}

		dbFlag, _ := cmd.Flags().GetString("db")
		driver, _ := cmd.Flags().GetString("driver")
		profileName, _ := cmd.Flags().GetString("profile")

		prof, err := profile.ResolveConn(dbFlag, driver, profileName)
		if err != nil {
			return err
		}
		if prof.DSN == "" {
			return fmt.Errorf("no database configured: pass --db, --profile, or set a default profile")
		}
		if !plan.ValidBackend(prof.Driver) {
			return fmt.Errorf("unknown driver %q (want postgres, sqlite, mysql or sqlserver)", prof.Driver)
		}
		backend := plan.Backend(prof.Driver)

		ctx := cmd.Context()
		conn, err := db.Open(ctx, backend, prof.DSN)
		if err != nil {
			return err
		}
		defer conn.Close()

		rows, err := conn.Query(ctx, query)
		if err != nil {
			return fmt.Errorf("running query: %w", err)
		}
		if len(rows) > 0 {
			fmt.Printf("Query returned %d rows; nothing to diagnose.\n", len(rows))
			return nil
		}

		d := joindiag.Diagnose(ctx, conn, query)
		if d == nil {
			return fmt.Errorf("query references fewer than two tables")
		}

		if format == "json" {
			return report.RenderJSON(os.Stdout, d)
		}
		return report.RenderDiagnosticText(os.Stdout, d)
	},
}

func init() {
	rootCmd.AddCommand(diagnoseCmd)
	diagnoseCmd.Flags().StringP("db", "d", "", "Database connection string (DSN)")
	diagnoseCmd.Flags().String("driver", "postgres", "Database driver: postgres, sqlite, mysql")
	diagnoseCmd.Flags().StringP("profile", "p", "", "Use named profile from config")
	diagnoseCmd.Flags().StringP("format", "f", "text", "Output format: text, json")
	diagnoseCmd.MarkFlagsMutuallyExclusive("db", "profile")
}
