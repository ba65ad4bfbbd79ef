// Package joindiag explains why a multi-table SELECT returned zero
// rows. It decomposes the query's join chain and probes the live
// database: first each table's own row count, then the join rebuilt one
// step at a time, and finally the WHERE clause, attributing the first
// point where the row count collapses.
package joindiag

import "context"

// Querier runs one read-only SQL statement and returns its rows. The
// diagnostic engine issues every probe through this single capability,
// strictly sequentially, so implementations may reuse one connection.
type Querier interface {
	Query(ctx context.Context, sql string) ([][]any, error)
}

// WhereClauseCulprit is the marker used in Diagnostic.CulpritTable when
// the WHERE clause, not a table or join, filters out every row.
const WhereClauseCulprit = "WHERE clause"

// TableRef is one table reference extracted from the query.
type TableRef struct {
	Name        string `json:"table_name"`
	Alias       string `json:"alias"`     // equals Name when unaliased
	JoinKind    string `json:"join_type"` // "FROM", "JOIN", "LEFT JOIN", ...
	OnCondition string `json:"on_condition"`
}

// TableCount is the COUNT(*) result for one table.
type TableCount struct {
	Name     string `json:"table_name"`
	Alias    string `json:"alias"`
	RowCount int64  `json:"row_count"`
	Err      string `json:"error,omitempty"`
}

// JoinStep is the row count after incrementally adding one more join.
type JoinStep struct {
	Step         int      `json:"step"` // 1-based
	TablesJoined []string `json:"tables_joined"`
	SQL          string   `json:"join_sql"`
	RowCount     int64    `json:"row_count"`
	Err          string   `json:"error,omitempty"`
}

// Diagnostic is the full breakdown for a query that returned 0 rows.
// All fields are populated fresh per invocation and never mutated after
// return.
type Diagnostic struct {
	OriginalQuery string       `json:"original_query"`
	Tables        []TableRef   `json:"tables"`
	TableCounts   []TableCount `json:"table_counts"`
	JoinSteps     []JoinStep   `json:"join_steps"`
	CulpritTable  string       `json:"culprit_table,omitempty"`
	CulpritReason string       `json:"culprit_reason"`
}
