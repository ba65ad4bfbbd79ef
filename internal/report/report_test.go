package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/sqlperf/sqlperf/internal/executor"
	"github.com/sqlperf/sqlperf/internal/joindiag"
	"github.com/sqlperf/sqlperf/internal/plan"
	"github.com/sqlperf/sqlperf/internal/sqlfile"
)

func sampleResults() []executor.Result {
	return []executor.Result{
		{
			Number: 1, Line: 1, Kind: sqlfile.KindSelect,
			Query:           "SELECT * FROM users WHERE id = 1",
			ExecutionTimeMs: 3.5, RowsAffected: 1, Success: true,
			Metrics:     &plan.Metrics{PerformanceScore: 9, TotalCost: 4.1},
			Suggestions: []string{"Avoid SELECT * - specify only the columns you need to reduce I/O"},
		},
		{
			Number: 2, Line: 2, Kind: sqlfile.KindSelect,
			Query:           "SELECT * FROM orders",
			ExecutionTimeMs: 250, RowsAffected: 50000, Success: true, IsSlow: true,
			Metrics:  &plan.Metrics{PerformanceScore: 4, HasFullTableScan: true},
			Warnings: []string{"SLOW QUERY: Execution time 250.00 ms exceeds threshold of 100 ms"},
		},
		{
			Number: 3, Line: 3, Kind: sqlfile.KindUpdate,
			Query:           "UPDATE broken SET x = 1",
			ExecutionTimeMs: 0.2,
			ErrorMessage:    "no such table: broken",
		},
	}
}

func TestRenderResultsText(t *testing.T) {
	results := sampleResults()
	var buf bytes.Buffer

	err := RenderResults(&buf, results, executor.Summarize(results))
	require.NoError(t, err)
	out := buf.String()

	assert.Contains(t, out, "Query 1")
	assert.Contains(t, out, "Score: ")
	assert.Contains(t, out, "SLOW")
	assert.Contains(t, out, "FAILED")
	assert.Contains(t, out, "no such table: broken")
	assert.Contains(t, out, "Summary")
	assert.Contains(t, out, "Slowest Queries")
}

func TestRenderResultsDiagnostic(t *testing.T) {
	results := []executor.Result{{
		Number: 1, Line: 1, Kind: sqlfile.KindSelect,
		Query: "SELECT * FROM a JOIN b ON a.id = b.a_id", Success: true,
		Diagnostic: &joindiag.Diagnostic{
			TableCounts: []joindiag.TableCount{
				{Name: "a", RowCount: 10},
				{Name: "b", RowCount: 0},
			},
			CulpritTable:  "b",
			CulpritReason: "Table 'b' is empty (0 rows)",
		},
	}}
	var buf bytes.Buffer

	err := RenderResults(&buf, results, executor.Summarize(results))
	require.NoError(t, err)
	out := buf.String()

	assert.Contains(t, out, "Why 0 rows?")
	assert.Contains(t, out, "Table 'b' is empty")
	assert.Contains(t, out, "[b]")
}

func TestRenderJSONShape(t *testing.T) {
	results := sampleResults()
	var buf bytes.Buffer

	err := RenderJSON(&buf, Report{Results: results, Summary: executor.Summarize(results)})
	require.NoError(t, err)

	var decoded Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Len(t, decoded.Results, 3)
	assert.Equal(t, 3, decoded.Summary.Total)
	assert.Equal(t, 1, decoded.Summary.Failed)
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")

	require.NoError(t, WriteCSV(path, sampleResults()))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4, "header plus three rows")
	assert.Equal(t, csvHeader, records[0])
	assert.Equal(t, "1", records[1][0])
	assert.Equal(t, "9", records[1][8], "performance_score column")
	assert.Equal(t, "", records[3][8], "failed statement has no score")
	assert.Equal(t, "no such table: broken", records[3][7])
}

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	results := sampleResults()

	require.NoError(t, WriteXLSX(path, results, executor.Summarize(results)))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{resultsSheet, summarySheet}, f.GetSheetList())

	got, err := f.GetCellValue(resultsSheet, "D2")
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM users WHERE id = 1", got)

	total, err := f.GetCellValue(summarySheet, "B1")
	require.NoError(t, err)
	assert.Equal(t, "3", total)
}
