package db

import (
	"context"
	"database/sql"

	"github.com/sqlperf/sqlperf/internal/plan"
)

// dialect encapsulates database-engine-specific behavior: which driver
// to open and how to capture an execution plan for a query.
type dialect interface {
	// driverName returns the database/sql driver name.
	driverName() string

	// explainPlan captures the execution plan for query. With analyze
	// set the statement is actually executed by the engine where the
	// engine supports it.
	explainPlan(ctx context.Context, conn *sql.DB, query string, analyze bool) (plan.RawPlan, error)
}

func dialectFor(backend plan.Backend) (dialect, bool) {
	switch backend {
	case plan.BackendPostgres:
		return postgresDialect{}, true
	case plan.BackendSQLite:
		return sqliteDialect{}, true
	case plan.BackendMySQL:
		return mysqlDialect{}, true
	default:
		return nil, false
	}
}
