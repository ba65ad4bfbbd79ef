package plan

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTreeRowsDepthAndSort(t *testing.T) {
	rows := []TreeRow{
		{ID: 1, Parent: 0, Detail: "SCAN users"},
		{ID: 2, Parent: 1, Detail: "USE TEMP B-TREE FOR ORDER BY"},
	}
	m := Normalize(RawPlan{Rows: rows}, 0, 500, BackendSQLite)

	lines := strings.Split(m.PlanText, "\n")
	require.Len(t, lines, 2)

	indent1 := len(lines[0]) - len(strings.TrimLeft(lines[0], " "))
	indent2 := len(lines[1]) - len(strings.TrimLeft(lines[1], " "))
	assert.Equal(t, 2*indent1, indent2, "child renders at twice the parent indentation")

	assert.True(t, m.HasLargeSort)
	assert.True(t, m.HasFullTableScan)
	assert.Equal(t, []string{"users"}, m.TablesScanned)
}

func TestClassifySearchVariants(t *testing.T) {
	tests := []struct {
		detail      string
		wantScan    string
		wantMissing bool
	}{
		{"SEARCH orders USING COVERING INDEX idx_orders_user (user_id=?)", "Covering Index Scan", false},
		{"SEARCH users USING INTEGER PRIMARY KEY (rowid=?)", "Primary Key Lookup", false},
		{"SEARCH items USING AUTOMATIC COVERING INDEX (order_id=?)", "Automatic Index", true},
		{"SEARCH products USING INDEX idx_products_sku (sku=?)", "Index Scan", false},
	}
	for _, tc := range tests {
		m := Normalize(RawPlan{Rows: []TreeRow{{ID: 1, Parent: 0, Detail: tc.detail}}}, 0, 500, BackendSQLite)
		assert.Equal(t, []string{tc.wantScan}, m.ScanTypes, tc.detail)
		assert.Equal(t, tc.wantMissing, m.MissingIndexLikely, tc.detail)
		assert.False(t, m.HasSequentialScan, tc.detail)
	}
}

func TestClassifyAutomaticIndexBeforeCovering(t *testing.T) {
	// AUTOMATIC COVERING INDEX must classify as automatic, not covering.
	m := Normalize(RawPlan{Rows: []TreeRow{
		{ID: 1, Parent: 0, Detail: "SEARCH t USING AUTOMATIC COVERING INDEX (a=?)"},
	}}, 0, 500, BackendSQLite)
	assert.Equal(t, []string{"Automatic Index"}, m.ScanTypes)
}

func TestParseTreeTextFromSavedPlan(t *testing.T) {
	text := "|--SCAN users\n  |--USE TEMP B-TREE FOR GROUP BY\n"
	m := Normalize(RawPlan{Text: text}, 0, 500, BackendSQLite)

	assert.True(t, m.HasFullTableScan)
	assert.True(t, m.HasLargeSort)
	assert.Contains(t, m.ScanTypes, "Temp Sort (GROUP BY)")
}

func TestTreeInformationalNodes(t *testing.T) {
	rows := []TreeRow{
		{ID: 1, Parent: 0, Detail: "COMPOUND SUBQUERIES 1 AND 2 (UNION ALL)"},
		{ID: 2, Parent: 1, Detail: "CO-ROUTINE (subquery-1)"},
		{ID: 3, Parent: 1, Detail: "SUBQUERY 2"},
	}
	m := Normalize(RawPlan{Rows: rows}, 0, 500, BackendSQLite)

	assert.Equal(t, []string{"Compound Subqueries", "Co-Routine", "Subquery"}, m.NodeTypes)
	assert.False(t, m.HasSequentialScan)
	assert.False(t, m.HasLargeSort)
	assert.Equal(t, 10, m.PerformanceScore)
}

func TestTreeDepthParentCycleTerminates(t *testing.T) {
	rows := []TreeRow{
		{ID: 1, Parent: 2, Detail: "SCAN a"},
		{ID: 2, Parent: 1, Detail: "SCAN b"},
	}
	m := Normalize(RawPlan{Rows: rows}, 0, 500, BackendSQLite)
	assert.Equal(t, []string{"a", "b"}, m.TablesScanned)
}
