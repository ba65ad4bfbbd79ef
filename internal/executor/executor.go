// Package executor runs the statements of a SQL script sequentially
// against a live connection, timing each one and attaching plan
// metrics, suggestions and join diagnostics to the results.
package executor

import (
	"context"
	"fmt"
	"time"

	"github.com/sqlperf/sqlperf/internal/db"
	"github.com/sqlperf/sqlperf/internal/joindiag"
	"github.com/sqlperf/sqlperf/internal/plan"
	"github.com/sqlperf/sqlperf/internal/sqlfile"
	"github.com/sqlperf/sqlperf/internal/suggest"
)

// Options controls how a script run behaves.
type Options struct {
	// Analyze executes statements inside EXPLAIN ANALYZE where the
	// backend supports it, yielding actual row counts and timings.
	Analyze bool

	// SlowThresholdMs marks statements at or above this wall-clock
	// duration as slow.
	SlowThresholdMs float64

	// ContinueOnError keeps running after a failing statement instead
	// of stopping the script.
	ContinueOnError bool

	// Batch runs the script timing-only: no plan capture, no
	// suggestions, no join diagnostics.
	Batch bool
}

// Result captures everything observed about one executed statement.
type Result struct {
	Number          int                  `json:"query_number"`
	Query           string               `json:"query"`
	Kind            sqlfile.Kind         `json:"query_type"`
	Line            int                  `json:"line"`
	ExecutionTimeMs float64              `json:"execution_time_ms"`
	RowsAffected    int64                `json:"rows_affected"`
	Success         bool                 `json:"success"`
	ErrorMessage    string               `json:"error_message,omitempty"`
	IsSlow          bool                 `json:"is_slow"`
	Metrics         *plan.Metrics        `json:"plan_metrics,omitempty"`
	Warnings        []string             `json:"warnings,omitempty"`
	Suggestions     []string             `json:"suggestions,omitempty"`
	Diagnostic      *joindiag.Diagnostic `json:"join_diagnostic,omitempty"`
}

// Score returns the 1-10 performance score, or 0 when no plan was
// captured for the statement.
func (r *Result) Score() int {
	if r.Metrics == nil {
		return 0
	}
	return r.Metrics.PerformanceScore
}

// Runner executes statements against one connection.
type Runner struct {
	conn *db.Conn
	opts Options
}

func New(conn *db.Conn, opts Options) *Runner {
	return &Runner{conn: conn, opts: opts}
}

// Run executes stmts in order. Without ContinueOnError it stops at the
// first failing statement and returns the results gathered so far,
// the failed one included, alongside the error.
func (r *Runner) Run(ctx context.Context, stmts []sqlfile.Statement) ([]Result, error) {
	results := make([]Result, 0, len(stmts))

	for i, stmt := range stmts {
		res := r.runOne(ctx, i+1, stmt)
		results = append(results, res)

		if !res.Success && !r.opts.ContinueOnError {
			return results, fmt.Errorf("statement %d (line %d) failed: %s", res.Number, res.Line, res.ErrorMessage)
		}
	}

	return results, nil
}

func (r *Runner) runOne(ctx context.Context, number int, stmt sqlfile.Statement) Result {
	res := Result{
		Number: number,
		Query:  stmt.Text,
		Kind:   stmt.Kind,
		Line:   stmt.Line,
	}

	var (
		rows [][]any
		err  error
	)

	start := time.Now()
	switch stmt.Kind {
	case sqlfile.KindSelect, sqlfile.KindExplain:
		rows, err = r.conn.Query(ctx, stmt.Text)
		res.RowsAffected = int64(len(rows))
	default:
		res.RowsAffected, err = r.conn.Exec(ctx, stmt.Text)
	}
	res.ExecutionTimeMs = float64(time.Since(start)) / float64(time.Millisecond)

	if err != nil {
		res.ErrorMessage = err.Error()
		return res
	}
	res.Success = true
	res.IsSlow = res.ExecutionTimeMs >= r.opts.SlowThresholdMs

	if r.opts.Batch {
		return res
	}

	if stmt.Kind == sqlfile.KindSelect {
		if raw, perr := r.conn.ExplainPlan(ctx, stmt.Text, r.opts.Analyze); perr == nil && !raw.Empty() {
			res.Metrics = plan.Normalize(raw, res.ExecutionTimeMs, r.opts.SlowThresholdMs, r.conn.Backend())
		}
	}

	metrics := res.Metrics
	if metrics == nil {
		metrics = &plan.Metrics{ExecutionTimeMs: res.ExecutionTimeMs}
	}
	res.Warnings, res.Suggestions = suggest.Generate(stmt.Text, stmt.Kind, metrics, r.opts.SlowThresholdMs)

	if stmt.Kind == sqlfile.KindSelect && len(rows) == 0 && joindiag.HasJoins(stmt.Text) {
		res.Diagnostic = joindiag.Diagnose(ctx, r.conn, stmt.Text)
	}

	return res
}
