package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"

	"github.com/sqlperf/sqlperf/internal/plan"
)

type mysqlDialect struct{}

func (mysqlDialect) driverName() string { return "mysql" }

// explainPlan captures the tree-format plan text. With analyze set the
// statement is executed so the tree carries actual row counts and
// timings.
func (mysqlDialect) explainPlan(ctx context.Context, conn *sql.DB, query string, analyze bool) (plan.RawPlan, error) {
	explain := "EXPLAIN FORMAT=TREE "
	if analyze {
		explain = "EXPLAIN ANALYZE "
	}

	var tree string
	if err := conn.QueryRowContext(ctx, explain+query).Scan(&tree); err != nil {
		return plan.RawPlan{}, fmt.Errorf("executing EXPLAIN: %w", err)
	}

	return plan.RawPlan{Text: tree}, nil
}
