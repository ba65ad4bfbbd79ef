package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/sqlperf/sqlperf/internal/plan"
)

type sqliteDialect struct{}

func (sqliteDialect) driverName() string { return "sqlite" }

// explainPlan runs EXPLAIN QUERY PLAN and collects the (id, parent,
// detail) node triples. SQLite has no ANALYZE variant of EXPLAIN, so
// the flag is ignored.
func (sqliteDialect) explainPlan(ctx context.Context, conn *sql.DB, query string, _ bool) (plan.RawPlan, error) {
	rows, err := conn.QueryContext(ctx, "EXPLAIN QUERY PLAN "+query)
	if err != nil {
		return plan.RawPlan{}, fmt.Errorf("executing EXPLAIN QUERY PLAN: %w", err)
	}
	defer rows.Close()

	var out []plan.TreeRow
	for rows.Next() {
		var (
			id, parent, notUsed int64
			detail              string
		)
		if err := rows.Scan(&id, &parent, &notUsed, &detail); err != nil {
			return plan.RawPlan{}, fmt.Errorf("scanning plan row: %w", err)
		}
		out = append(out, plan.TreeRow{ID: id, Parent: parent, Detail: detail})
	}
	if err := rows.Err(); err != nil {
		return plan.RawPlan{}, fmt.Errorf("plan rows iteration: %w", err)
	}

	return plan.RawPlan{Rows: out}, nil
}
