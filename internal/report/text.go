// Package report renders execution results as colored terminal text,
// JSON, CSV or XLSX.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/sqlperf/sqlperf/internal/executor"
	"github.com/sqlperf/sqlperf/internal/joindiag"
	"github.com/sqlperf/sqlperf/internal/plan"
	"github.com/sqlperf/sqlperf/internal/sqlfile"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
)

const queryDisplayLimit = 120

type textWriter struct {
	w   io.Writer
	err error
}

func (tw *textWriter) printf(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.w, format, args...)
}

// RenderResults writes the per-statement breakdown followed by the run
// summary.
func RenderResults(w io.Writer, results []executor.Result, summary executor.Summary) error {
	tw := &textWriter{w: w}

	for _, r := range results {
		tw.renderResult(r)
	}
	tw.renderSummary(summary)

	return tw.err
}

func (tw *textWriter) renderResult(r executor.Result) {
	status, statusColor := "OK", colorGreen
	if !r.Success {
		status, statusColor = "FAILED", colorRed
	} else if r.IsSlow {
		status, statusColor = "SLOW", colorYellow
	}

	tw.printf("%s%sQuery %d%s (line %d, %s) %s%s%s\n",
		colorBold, colorCyan, r.Number, colorReset, r.Line, r.Kind, statusColor, status, colorReset)
	tw.printf("  %s%s%s\n", colorDim, sqlfile.Truncate(r.Query, queryDisplayLimit), colorReset)

	if !r.Success {
		tw.printf("  %sError: %s%s\n\n", colorRed, r.ErrorMessage, colorReset)
		return
	}

	tw.printf("  Time: %.2f ms", r.ExecutionTimeMs)
	tw.printf("  Rows: %d", r.RowsAffected)
	if r.Metrics != nil {
		score := r.Metrics.PerformanceScore
		tw.printf("  Score: %s%d/10%s", scoreColor(score), score, colorReset)
	}
	tw.printf("\n")

	for _, warning := range r.Warnings {
		tw.printf("  %s! %s%s\n", colorYellow, warning, colorReset)
	}
	for _, suggestion := range r.Suggestions {
		tw.printf("  %s→ %s%s\n", colorDim, suggestion, colorReset)
	}

	if r.Metrics != nil && r.Metrics.PlanText != "" {
		tw.printf("  %sPlan:%s\n", colorBold, colorReset)
		for _, line := range strings.Split(strings.TrimRight(r.Metrics.PlanText, "\n"), "\n") {
			tw.printf("    %s%s%s\n", colorDim, line, colorReset)
		}
	}

	if r.Diagnostic != nil {
		tw.renderDiagnostic(r.Diagnostic)
	}

	tw.printf("\n")
}

func scoreColor(score int) string {
	switch {
	case score >= 8:
		return colorGreen
	case score >= 5:
		return colorYellow
	default:
		return colorRed
	}
}

// RenderDiagnosticText writes a standalone join diagnostic, used by
// the diagnose command.
func RenderDiagnosticText(w io.Writer, d *joindiag.Diagnostic) error {
	tw := &textWriter{w: w}
	tw.renderDiagnostic(d)
	return tw.err
}

func (tw *textWriter) renderDiagnostic(d *joindiag.Diagnostic) {
	tw.printf("  %s%sWhy 0 rows?%s\n", colorBold, colorCyan, colorReset)

	for _, tc := range d.TableCounts {
		if tc.Err != "" {
			tw.printf("    %-20s %scount failed: %s%s\n", tc.Name, colorRed, tc.Err, colorReset)
			continue
		}
		color := ""
		if tc.RowCount == 0 {
			color = colorRed
		}
		tw.printf("    %-20s %s%d rows%s\n", tc.Name, color, tc.RowCount, colorReset)
	}

	for _, step := range d.JoinSteps {
		label := strings.Join(step.TablesJoined, " + ")
		if step.Err != "" {
			tw.printf("    step %d (%s): %sfailed: %s%s\n", step.Step, label, colorRed, step.Err, colorReset)
			continue
		}
		color := ""
		if step.RowCount == 0 {
			color = colorRed
		}
		tw.printf("    step %d (%s): %s%d rows%s\n", step.Step, label, color, step.RowCount, colorReset)
	}

	tw.printf("    %sVerdict:%s %s", colorBold, colorReset, d.CulpritReason)
	if d.CulpritTable != "" {
		tw.printf(" %s[%s]%s", colorYellow, d.CulpritTable, colorReset)
	}
	tw.printf("\n")
}

func (tw *textWriter) renderSummary(s executor.Summary) {
	tw.printf("%s%sSummary%s\n\n", colorBold, colorCyan, colorReset)
	tw.printf("  Queries:    %d total, %s%d ok%s, ", s.Total, colorGreen, s.Succeeded, colorReset)
	if s.Failed > 0 {
		tw.printf("%s%d failed%s\n", colorRed, s.Failed, colorReset)
	} else {
		tw.printf("0 failed\n")
	}
	tw.printf("  Total Time: %.2f ms\n", s.TotalTimeMs)
	if s.Slow > 0 {
		tw.printf("  Slow:       %s%d%s\n", colorYellow, s.Slow, colorReset)
	}
	if s.AverageScore > 0 {
		tw.printf("  Avg Score:  %.1f/10\n", s.AverageScore)
	}

	if len(s.Slowest) > 0 {
		tw.printf("\n%s%sSlowest Queries%s\n\n", colorBold, colorCyan, colorReset)
		for _, r := range s.Slowest {
			tw.printf("  %.2f ms  %s\n", r.ExecutionTimeMs, sqlfile.Truncate(r.Query, 80))
		}
	}
}

// RenderMetricsText writes a standalone plan analysis, used when a
// saved plan is analyzed without a database connection.
func RenderMetricsText(w io.Writer, m *plan.Metrics, warnings, suggestions []string) error {
	tw := &textWriter{w: w}

	tw.printf("%s%sPlan Analysis%s\n\n", colorBold, colorCyan, colorReset)
	tw.printf("  Score:          %s%d/10%s\n", scoreColor(m.PerformanceScore), m.PerformanceScore, colorReset)
	if m.TotalCost > 0 {
		tw.printf("  Total Cost:     %.2f\n", m.TotalCost)
	}
	if m.ExecutionTimeMs > 0 {
		tw.printf("  Execution Time: %.3f ms\n", m.ExecutionTimeMs)
	}
	if m.EstimatedRows > 0 {
		tw.printf("  Estimated Rows: %d\n", m.EstimatedRows)
	}
	if m.ActualRows > 0 {
		tw.printf("  Actual Rows:    %d\n", m.ActualRows)
	}
	tw.printf("\n")

	if len(warnings) == 0 && len(suggestions) == 0 {
		tw.printf("%s%sNo issues found.%s\n", colorBold, colorGreen, colorReset)
		return tw.err
	}

	for _, warning := range warnings {
		tw.printf("  %s! %s%s\n", colorYellow, warning, colorReset)
	}
	for _, suggestion := range suggestions {
		tw.printf("  %s→ %s%s\n", colorDim, suggestion, colorReset)
	}

	return tw.err
}
