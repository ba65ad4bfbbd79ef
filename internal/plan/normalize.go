// Package plan converts backend-specific execution plans into one
// normalized Metrics record and scores it.
//
// Three parsers exist: a hierarchical JSON-tree parser (PostgreSQL), an
// indented-text-tree parser built from (id, parent, detail) row triples
// (SQLite), and a keyword matcher over free-form plan prose (MySQL
// EXPLAIN FORMAT=TREE, SQL Server SHOWPLAN). All three are best-effort:
// malformed input never fails, it yields whatever was extracted before
// the failure point.
package plan

// Normalize parses a raw execution plan and returns its normalized
// metrics, scored against slowThresholdMs. execTimeMs is the externally
// measured execution time of the statement; it is recorded as-is, never
// derived from the plan.
func Normalize(raw RawPlan, execTimeMs, slowThresholdMs float64, backend Backend) *Metrics {
	m := &Metrics{ExecutionTimeMs: execTimeMs}

	if !raw.Empty() {
		switch backend {
		case BackendSQLite:
			if len(raw.Rows) > 0 {
				parseTreeRows(raw.Rows, m)
			} else {
				parseTreeText(raw.Text, m)
			}
		case BackendPostgres:
			// JSON first, keyword text as fallback.
			if !parsePostgresJSON([]byte(raw.Text), m) {
				parseKeywordText(raw.Text, m)
			}
		default:
			parseKeywordText(raw.Text, m)
		}
	}

	m.PerformanceScore = Score(m, slowThresholdMs)
	return m
}
