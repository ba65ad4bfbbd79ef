package plan

import "math"

// Backend selects which parser interprets a raw execution plan.
type Backend string

const (
	BackendPostgres  Backend = "postgres"
	BackendSQLite    Backend = "sqlite"
	BackendMySQL     Backend = "mysql"
	BackendSQLServer Backend = "sqlserver"
)

// ValidBackend reports whether s names a known plan backend.
func ValidBackend(s string) bool {
	switch Backend(s) {
	case BackendPostgres, BackendSQLite, BackendMySQL, BackendSQLServer:
		return true
	}
	return false
}

// TreeRow is one row of an indented-text-tree plan, as returned by
// SQLite's EXPLAIN QUERY PLAN: (id, parent id, detail text).
type TreeRow struct {
	ID     int64
	Parent int64
	Detail string
}

// RawPlan carries a backend's unparsed plan output. Postgres and MySQL
// plans arrive as text; SQLite plans arrive as tree rows. When both are
// set, Rows wins for the sqlite backend.
type RawPlan struct {
	Text string
	Rows []TreeRow
}

// Empty reports whether the raw plan carries no content at all.
func (r RawPlan) Empty() bool {
	return len(r.Rows) == 0 && len(r.Text) == 0
}

// Metrics is the normalized, backend-agnostic summary of one execution
// plan. It is built incrementally by a parser, then frozen: scoring and
// suggestion generation treat it as read-only.
type Metrics struct {
	// Cost estimates in engine cost units.
	StartupCost float64 `json:"startup_cost"`
	TotalCost   float64 `json:"total_cost"`

	// Actual timing, only populated by plans produced with real execution.
	ActualTimeMs float64 `json:"actual_time_ms"`

	// Row counts.
	EstimatedRows int64 `json:"estimated_rows"`
	ActualRows    int64 `json:"actual_rows"`

	// Buffer statistics.
	SharedHitBlocks   int64 `json:"shared_hit_blocks"`
	SharedReadBlocks  int64 `json:"shared_read_blocks"`
	TempReadBlocks    int64 `json:"temp_read_blocks"`
	TempWrittenBlocks int64 `json:"temp_written_blocks"`

	// Planning time from the plan; execution time measured externally.
	PlanningTimeMs  float64 `json:"planning_time_ms"`
	ExecutionTimeMs float64 `json:"execution_time_ms"`

	// Classification lists, in insertion order. Duplicates allowed except
	// in TablesScanned.
	NodeTypes     []string `json:"node_types"`
	ScanTypes     []string `json:"scan_types"`
	JoinTypes     []string `json:"join_types"`
	TablesScanned []string `json:"tables_scanned"`

	// Detected issues.
	HasSequentialScan  bool `json:"has_sequential_scan"`
	HasFullTableScan   bool `json:"has_full_table_scan"`
	HasNestedLoop      bool `json:"has_nested_loop"`
	HasHashJoin        bool `json:"has_hash_join"`
	HasLargeSort       bool `json:"has_large_sort"`
	HasBitmapHeapScan  bool `json:"has_bitmap_heap_scan"`
	HasTempDiskUsage   bool `json:"has_temp_disk_usage"`
	MissingIndexLikely bool `json:"missing_index_likely"`

	// Performance score, 1 (worst) to 10 (best). Populated by Normalize.
	PerformanceScore int `json:"performance_score"`

	// Human-readable rendering of the plan, when the parser produces one
	// (the sqlite backend re-renders its tree rows). Not part of the
	// serialized summary.
	PlanText string `json:"-"`
}

func (m *Metrics) addTable(name string) {
	for _, t := range m.TablesScanned {
		if t == name {
			return
		}
	}
	m.TablesScanned = append(m.TablesScanned, name)
}

// Summary returns the reporting contract: cost/timing/row/buffer values
// plus a nested mapping of the boolean issue flags.
func (m *Metrics) Summary() map[string]any {
	return map[string]any{
		"total_cost":         m.TotalCost,
		"estimated_rows":     m.EstimatedRows,
		"actual_rows":        m.ActualRows,
		"planning_time_ms":   round2(m.PlanningTimeMs),
		"execution_time_ms":  round2(m.ExecutionTimeMs),
		"shared_hit_blocks":  m.SharedHitBlocks,
		"shared_read_blocks": m.SharedReadBlocks,
		"temp_disk_usage":    m.HasTempDiskUsage,
		"node_types":         m.NodeTypes,
		"join_types":         m.JoinTypes,
		"tables_scanned":     m.TablesScanned,
		"performance_score":  m.PerformanceScore,
		"issues": map[string]bool{
			"sequential_scan":  m.HasSequentialScan,
			"full_table_scan":  m.HasFullTableScan,
			"missing_index":    m.MissingIndexLikely,
			"nested_loop":      m.HasNestedLoop,
			"hash_join":        m.HasHashJoin,
			"large_sort":       m.HasLargeSort,
			"bitmap_heap_scan": m.HasBitmapHeapScan,
			"temp_disk_usage":  m.HasTempDiskUsage,
		},
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
