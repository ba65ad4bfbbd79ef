package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sqlperf/sqlperf/internal/db"
	"github.com/sqlperf/sqlperf/internal/executor"
	"github.com/sqlperf/sqlperf/internal/plan"
	"github.com/sqlperf/sqlperf/internal/profile"
	"github.com/sqlperf/sqlperf/internal/report"
	"github.com/sqlperf/sqlperf/internal/sqlfile"
	"github.com/sqlperf/sqlperf/internal/suggest"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [script.sql]",
	Short: "Execute a SQL script and analyze every statement",
	Long: `Execute a SQL script statement by statement, timing each one,
capturing its execution plan and scoring it from 1 (worst) to 10 (best)
with optimization suggestions.

SELECT statements that return zero rows and contain joins are
automatically decomposed to explain which table or join step filters
everything out.

With --plan, a saved EXPLAIN output is analyzed offline instead; no
database connection is needed.`,
	Example: `  # Run a script
  sqlperf analyze script.sql --db "postgres://localhost/app" --driver postgres

  # SQLite file database, keep going past failures
  sqlperf analyze script.sql --db ./app.db --driver sqlite --continue-on-error

  # Execute statements for real timings and export the report
  sqlperf analyze script.sql --profile prod --analyze --xlsx report.xlsx

  # Analyze a saved plan offline
  sqlperf analyze --plan explain.json --backend postgres`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		slowMs, _ := cmd.Flags().GetFloat64("slow-ms")

		if format != "text" && format != "json" {
			return fmt.Errorf("invalid output format %q: must be \"text\" or \"json\"", format)
		}

		if planFile, _ := cmd.Flags().GetString("plan"); planFile != "" {
			backend, _ := cmd.Flags().GetString("backend")
			return analyzeSavedPlan(planFile, backend, format, slowMs)
		}

		if len(args) == 0 {
			return fmt.Errorf("script file required (or use --plan for offline analysis)")
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

		content, err := sqlfile.Load(args[0])
		if err != nil {
			return err
		}
		stmts := sqlfile.Split(content)
		if len(stmts) == 0 {
			return fmt.Errorf("no statements found in %s", args[0])
		}

		ctx := cmd.Context()
		conn, err := db.Open(ctx, backend, prof.DSN)
		if err != nil {
			return err
		}
		defer conn.Close()

		analyze, _ := cmd.Flags().GetBool("analyze")
		continueOnError, _ := cmd.Flags().GetBool("continue-on-error")
		batch, _ := cmd.Flags().GetBool("batch")

		// Profile-level defaults apply when the flag is not given.
		if !cmd.Flags().Changed("slow-ms") && prof.SlowMs > 0 {
			slowMs = prof.SlowMs
		}
		if !cmd.Flags().Changed("analyze") && prof.Analyze {
			analyze = true
		}

		runner := executor.New(conn, executor.Options{
			Analyze:         analyze,
			SlowThresholdMs: slowMs,
			ContinueOnError: continueOnError,
			Batch:           batch,
		})
		results, runErr := runner.Run(ctx, stmts)
		summary := executor.Summarize(results)

		switch format {
		case "json":
			err = report.RenderJSON(os.Stdout, report.Report{Results: results, Summary: summary})
		case "text":
			err = report.RenderResults(os.Stdout, results, summary)
		}
		if err != nil {
			return err
		}

		if csvPath, _ := cmd.Flags().GetString("csv"); csvPath != "" {
			if err := report.WriteCSV(csvPath, results); err != nil {
				return err
			}
		}
		if xlsxPath, _ := cmd.Flags().GetString("xlsx"); xlsxPath != "" {
			if err := report.WriteXLSX(xlsxPath, results, summary); err != nil {
				return err
			}
		}

		return runErr
	},
}

func analyzeSavedPlan(planFile, backend, format string, slowMs float64) error {
	if !plan.ValidBackend(backend) {
		return fmt.Errorf("unknown backend %q (want postgres, sqlite, mysql or sqlserver)", backend)
	}
	b := plan.Backend(backend)

	data, err := os.ReadFile(planFile)
	if err != nil {
		return fmt.Errorf("reading plan file: %w", err)
	}

	m := plan.Normalize(plan.RawPlan{Text: string(data)}, 0, slowMs, b)
	warnings, suggestions := suggest.Generate("", sqlfile.KindOther, m, slowMs)

	if format == "json" {
		return report.RenderJSON(os.Stdout, struct {
			Metrics     *plan.Metrics `json:"plan_metrics"`
			Warnings    []string      `json:"warnings"`
			Suggestions []string      `json:"suggestions"`
		}{m, warnings, suggestions})
	}
	return report.RenderMetricsText(os.Stdout, m, warnings, suggestions)
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringP("db", "d", "", "Database connection string (DSN)")
	analyzeCmd.Flags().String("driver", "postgres", "Database driver: postgres, sqlite, mysql")
	analyzeCmd.Flags().StringP("profile", "p", "", "Use named profile from config")
	analyzeCmd.Flags().StringP("format", "f", "text", "Output format: text, json")
	analyzeCmd.Flags().Bool("analyze", false, "Execute statements inside EXPLAIN ANALYZE for actual timings")
	analyzeCmd.Flags().Float64("slow-ms", 100, "Mark statements at or above this many milliseconds as slow")
	analyzeCmd.Flags().Bool("continue-on-error", false, "Keep running after a failing statement")
	analyzeCmd.Flags().Bool("batch", false, "Timing-only run: skip plan capture, suggestions and diagnostics")
	analyzeCmd.Flags().String("csv", "", "Also write the report to this CSV file")
	analyzeCmd.Flags().String("xlsx", "", "Also write the report to this XLSX workbook")
	analyzeCmd.Flags().String("plan", "", "Analyze a saved EXPLAIN output file instead of connecting")
	analyzeCmd.Flags().String("backend", "postgres", "Plan format for --plan: postgres, sqlite, mysql, sqlserver")
	analyzeCmd.MarkFlagsMutuallyExclusive("db", "profile")
	analyzeCmd.MarkFlagsMutuallyExclusive("plan", "db")
	analyzeCmd.MarkFlagsMutuallyExclusive("plan", "profile")
}
