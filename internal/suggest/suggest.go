// Package suggest turns normalized plan metrics and query text into
// ordered performance warnings and optimization suggestions.
package suggest

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/sqlperf/sqlperf/internal/plan"
	"github.com/sqlperf/sqlperf/internal/sqlfile"
)

const largeResultRows = 1000

var selectStarRe = regexp.MustCompile(`(?i)SELECT\s+\*`)

// Generate produces (warnings, suggestions) for one analyzed query.
// It is pure: it never fails and never touches the database.
func Generate(query string, kind sqlfile.Kind, m *plan.Metrics, slowThresholdMs float64) ([]string, []string) {
	var warnings, suggestions []string

	if m.ExecutionTimeMs > slowThresholdMs {
		warnings = append(warnings, fmt.Sprintf(
			"SLOW QUERY: Execution time %.2f ms exceeds threshold of %.0f ms",
			m.ExecutionTimeMs, slowThresholdMs))
	}

	switch kind {
	case sqlfile.KindSelect:
		warnings, suggestions = analyzeSelect(query, m, warnings, suggestions)
	case sqlfile.KindInsert, sqlfile.KindUpdate, sqlfile.KindDelete:
		warnings, suggestions = analyzeDML(query, kind, warnings, suggestions)
	}

	warnings, suggestions = analyzePlanMetrics(m, warnings, suggestions)

	return warnings, suggestions
}

func analyzeSelect(query string, m *plan.Metrics, warnings, suggestions []string) ([]string, []string) {
	upper := strings.ToUpper(strings.TrimSpace(query))

	if selectStarRe.MatchString(upper) {
		suggestions = append(suggestions,
			"Avoid SELECT * - specify only the columns you need to reduce I/O")
	}

	if !strings.Contains(upper, "WHERE") && !strings.Contains(upper, "JOIN") {
		suggestions = append(suggestions,
			"No WHERE clause detected - consider adding filters to limit results")
	}

	if !strings.Contains(upper, "LIMIT") && !strings.Contains(upper, "TOP") {
		if m.EstimatedRows > largeResultRows || m.ActualRows > largeResultRows {
			suggestions = append(suggestions,
				"Large result set detected - consider using LIMIT to restrict rows")
		}
	}

	if m.HasSequentialScan {
		for _, table := range m.TablesScanned {
			warnings = append(warnings, fmt.Sprintf("Sequential Scan detected on table '%s'", table))
		}
		for _, col := range WhereColumns(query) {
			suggestions = append(suggestions, fmt.Sprintf("Create index on filtered column: %s", col))
		}
	}

	if m.MissingIndexLikely {
		warnings = append(warnings, "Missing index likely - filter applied during sequential scan")
	}

	if m.TotalCost > 10000 {
		warnings = append(warnings, fmt.Sprintf("High cost query: estimated cost = %.1f", m.TotalCost))
	}

	return warnings, suggestions
}

func analyzeDML(query string, kind sqlfile.Kind, warnings, suggestions []string) ([]string, []string) {
	upper := strings.ToUpper(strings.TrimSpace(query))

	if kind == sqlfile.KindInsert {
		suggestions = append(suggestions,
			"Consider batch INSERT operations for better performance (e.g., multi-row VALUES or COPY)")
	}

	if kind == sqlfile.KindUpdate || kind == sqlfile.KindDelete {
		if !strings.Contains(upper, "WHERE") {
			warnings = append(warnings, fmt.Sprintf(
				"%s without WHERE clause - this affects ALL rows in the table", kind))
		} else {
			for _, col := range WhereColumns(query) {
				suggestions = append(suggestions, fmt.Sprintf("Ensure index exists on WHERE column: %s", col))
			}
		}
	}

	suggestions = append(suggestions,
		"Check for unnecessary triggers that may slow down DML operations",
		"Review foreign key constraints - cascading actions can impact performance")

	return warnings, suggestions
}

func analyzePlanMetrics(m *plan.Metrics, warnings, suggestions []string) ([]string, []string) {
	if m.HasNestedLoop {
		warnings = append(warnings, "Nested Loop Join detected - may be slow on large datasets")
		suggestions = append(suggestions,
			"Verify join conditions have proper indexes to avoid nested loop scans")
	}

	if m.HasHashJoin {
		warnings = append(warnings,
			"Hash Join detected - acceptable for large joins but uses more memory")
	}

	if m.HasLargeSort {
		warnings = append(warnings, "Large sort operation detected (possibly spilling to disk)")
		suggestions = append(suggestions,
			"Add index on ORDER BY / GROUP BY columns to avoid in-memory sorting")
	}

	if m.HasBitmapHeapScan {
		warnings = append(warnings, "Bitmap Heap Scan detected - partial index usage")
		suggestions = append(suggestions,
			"Consider a more selective index or adjust query filters")
	}

	if m.HasTempDiskUsage {
		warnings = append(warnings, "Temporary disk usage detected - work_mem may be too low")
		suggestions = append(suggestions,
			"Increase work_mem setting or optimize query to reduce data volume")
	}

	return warnings, suggestions
}
