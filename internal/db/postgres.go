package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/sqlperf/sqlperf/internal/plan"
)

type postgresDialect struct{}

func (postgresDialect) driverName() string { return "pgx" }

// explainPlan runs EXPLAIN (FORMAT JSON) inside a transaction that is
// always rolled back, so an ANALYZE of a DML statement leaves no trace.
func (postgresDialect) explainPlan(ctx context.Context, conn *sql.DB, query string, analyze bool) (plan.RawPlan, error) {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return plan.RawPlan{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	explain := "EXPLAIN (FORMAT JSON, BUFFERS) "
	if analyze {
		explain = "EXPLAIN (ANALYZE, FORMAT JSON, BUFFERS) "
	}

	var jsonStr string
	if err := tx.QueryRowContext(ctx, explain+query).Scan(&jsonStr); err != nil {
		return plan.RawPlan{}, fmt.Errorf("executing EXPLAIN: %w", err)
	}

	return plan.RawPlan{Text: jsonStr}, nil
}
