// Package db connects to a target database through database/sql and
// captures execution plans in each backend's native EXPLAIN shape.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sqlperf/sqlperf/internal/plan"
)

// Conn wraps a single database connection pool together with the
// backend dialect it speaks.
type Conn struct {
	pool    *sql.DB
	dialect dialect
	backend plan.Backend
}

// Open connects to dsn using the driver for backend and verifies the
// connection with a ping.
func Open(ctx context.Context, backend plan.Backend, dsn string) (*Conn, error) {
	d, ok := dialectFor(backend)
	if !ok {
		return nil, fmt.Errorf("no driver available for backend %q; use --plan to analyze a saved plan", backend)
	}

	pool, err := sql.Open(d.driverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := pool.PingContext(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	return &Conn{pool: pool, dialect: d, backend: backend}, nil
}

// Backend returns the backend this connection speaks.
func (c *Conn) Backend() plan.Backend {
	return c.backend
}

// Close releases the underlying connection pool.
func (c *Conn) Close() error {
	return c.pool.Close()
}

// ExplainPlan captures the execution plan for query in the backend's
// native shape.
func (c *Conn) ExplainPlan(ctx context.Context, query string, analyze bool) (plan.RawPlan, error) {
	return c.dialect.explainPlan(ctx, c.pool, query, analyze)
}

// Exec runs a statement that returns no rows and reports how many rows
// it affected.
func (c *Conn) Exec(ctx context.Context, query string) (int64, error) {
	res, err := c.pool.ExecContext(ctx, query)
	if err != nil {
		return 0, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		// Some drivers cannot report affected rows for every statement.
		return 0, nil
	}
	return affected, nil
}

// Query runs a row-returning statement and scans every row into plain
// Go values. []byte columns are converted to string so callers can
// compare values without caring about the driver's wire types.
func (c *Conn) Query(ctx context.Context, query string) ([][]any, error) {
	rows, err := c.pool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("get columns: %w", err)
	}

	var result [][]any
	for rows.Next() {
		values := make([]any, len(cols))
		targets := make([]any, len(cols))
		for i := range values {
			targets[i] = &values[i]
		}
		if err := rows.Scan(targets...); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		result = append(result, values)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return result, nil
}
