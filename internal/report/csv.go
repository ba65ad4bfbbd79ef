package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sqlperf/sqlperf/internal/executor"
)

var csvHeader = []string{
	"query_number", "line", "query_type", "query",
	"execution_time_ms", "rows_affected", "success", "error_message",
	"performance_score", "is_slow", "warnings", "suggestions",
}

// WriteCSV exports one row per executed statement. Warnings and
// suggestions are joined with "; " so the file stays one row per query.
func WriteCSV(path string, results []executor.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, r := range results {
		score := ""
		if r.Metrics != nil {
			score = strconv.Itoa(r.Metrics.PerformanceScore)
		}
		record := []string{
			strconv.Itoa(r.Number),
			strconv.Itoa(r.Line),
			string(r.Kind),
			r.Query,
			strconv.FormatFloat(r.ExecutionTimeMs, 'f', 2, 64),
			strconv.FormatInt(r.RowsAffected, 10),
			strconv.FormatBool(r.Success),
			r.ErrorMessage,
			score,
			strconv.FormatBool(r.IsSlow),
			strings.Join(r.Warnings, "; "),
			strings.Join(r.Suggestions, "; "),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("writing record %d: %w", r.Number, err)
		}
	}

	w.Flush()
	return w.Error()
}
