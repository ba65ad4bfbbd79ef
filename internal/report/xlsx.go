package report

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/sqlperf/sqlperf/internal/executor"
)

const (
	resultsSheet = "Results"
	summarySheet = "Summary"
)

// WriteXLSX exports the run as a workbook with a results sheet and a
// summary sheet.
func WriteXLSX(path string, results []executor.Result, summary executor.Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", resultsSheet)

	for i, h := range csvHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(resultsSheet, cell, h); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for rowIdx, r := range results {
		score := any(nil)
		if r.Metrics != nil {
			score = r.Metrics.PerformanceScore
		}
		values := []any{
			r.Number, r.Line, string(r.Kind), r.Query,
			r.ExecutionTimeMs, r.RowsAffected, r.Success, r.ErrorMessage,
			score, r.IsSlow,
			strings.Join(r.Warnings, "; "),
			strings.Join(r.Suggestions, "; "),
		}
		for colIdx, v := range values {
			if v == nil {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err := f.SetCellValue(resultsSheet, cell, v); err != nil {
				return fmt.Errorf("writing row %d: %w", r.Number, err)
			}
		}
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("creating summary sheet: %w", err)
	}
	summaryRows := [][2]any{
		{"total_queries", summary.Total},
		{"successful", summary.Succeeded},
		{"failed", summary.Failed},
		{"slow_queries", summary.Slow},
		{"total_execution_time_ms", summary.TotalTimeMs},
		{"average_performance_score", summary.AverageScore},
	}
	for i, row := range summaryRows {
		keyCell, _ := excelize.CoordinatesToCellName(1, i+1)
		valCell, _ := excelize.CoordinatesToCellName(2, i+1)
		if err := f.SetCellValue(summarySheet, keyCell, row[0]); err != nil {
			return fmt.Errorf("writing summary: %w", err)
		}
		if err := f.SetCellValue(summarySheet, valCell, row[1]); err != nil {
			return fmt.Errorf("writing summary: %w", err)
		}
	}

	return f.SaveAs(path)
}
