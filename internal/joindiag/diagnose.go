package joindiag

import (
	"context"
	"fmt"
	"strings"
)

// Diagnose explains why query returned zero rows. It returns nil when
// the query references fewer than two tables (nothing to decompose).
//
// Probes run strictly in order: every table count first, then the join
// steps, then the WHERE fallback. That order implements the tie-break
// policy: an empty source table beats a failing join step, which beats
// a filtering WHERE clause. Individual probe failures are recorded and
// skipped over; Diagnose itself never fails.
func Diagnose(ctx context.Context, q Querier, query string) *Diagnostic {
	tables := extractTables(query)
	if len(tables) < 2 {
		return nil
	}

	d := &Diagnostic{
		OriginalQuery: query,
		Tables:        tables,
	}

	for _, t := range tables {
		count, err := countScalar(ctx, q, fmt.Sprintf("SELECT COUNT(*) FROM %s", t.Name))
		tc := TableCount{Name: t.Name, Alias: t.Alias, RowCount: count}
		if err != nil {
			tc.Err = err.Error()
		}
		d.TableCounts = append(d.TableCounts, tc)
	}

	// An empty table is the simplest explanation; report it before any
	// join step runs.
	var emptyNames []string
	for _, tc := range d.TableCounts {
		if tc.RowCount == 0 && tc.Err == "" {
			emptyNames = append(emptyNames, tc.Name)
		}
	}
	if len(emptyNames) > 0 {
		d.CulpritTable = emptyNames[0]
		d.CulpritReason = fmt.Sprintf(
			"Table(s) %s contain 0 rows - any JOIN involving an empty table will always produce 0 results.",
			strings.Join(emptyNames, ", "))
		return d
	}

	prevCount := int64(-1)
	for stepIdx := 1; stepIdx < len(tables); stepIdx++ {
		sql := joinSQL(tables, stepIdx, "")
		count, err := countScalar(ctx, q, sql)

		step := JoinStep{
			Step:     stepIdx,
			SQL:      sql,
			RowCount: count,
		}
		for _, t := range tables[:stepIdx+1] {
			step.TablesJoined = append(step.TablesJoined, t.Name)
		}
		if err != nil {
			step.Err = err.Error()
		}
		d.JoinSteps = append(d.JoinSteps, step)

		if err == nil && count == 0 && prevCount != 0 && d.CulpritTable == "" {
			culprit := tables[stepIdx]
			d.CulpritTable = culprit.Name
			d.CulpritReason = fmt.Sprintf(
				"JOIN with %s (%s ON %s) reduces the result to 0 rows. "+
					"Check that matching records exist in '%s' for the join condition.",
				culprit.Name, culprit.JoinKind, culprit.OnCondition, culprit.Name)
		}
		prevCount = count
	}

	whereClause := extractWhere(query)

	if d.CulpritTable == "" && whereClause != "" {
		var lastNoWhere int64
		if n := len(d.JoinSteps); n > 0 {
			lastNoWhere = d.JoinSteps[n-1].RowCount
		}

		sql := joinSQL(tables, len(tables)-1, whereClause)
		withWhere, err := countScalar(ctx, q, sql)

		switch {
		case err == nil && lastNoWhere > 0 && withWhere == 0:
			d.CulpritTable = WhereClauseCulprit
			d.CulpritReason = fmt.Sprintf(
				"The full JOIN produces %d rows, but the WHERE clause (%s) filters all of them out.",
				lastNoWhere, whereClause)
		case err == nil && lastNoWhere > 0 && withWhere > 0:
			// Contradicts the zero-row observation that triggered us.
			d.CulpritReason = fmt.Sprintf(
				"No cause found: the full query now returns %d rows, contradicting the empty result that "+
					"triggered this diagnosis. The data may have changed between executions.", withWhere)
		}
	}

	if d.CulpritTable == "" && d.CulpritReason == "" {
		if n := len(d.JoinSteps); n > 0 && d.JoinSteps[n-1].RowCount == 0 {
			d.CulpritReason = "The combination of all JOINs produces 0 rows. " +
				"Check that join conditions have matching data across tables."
		}
	}

	return d
}

// joinSQL rebuilds the join chain over tables[0..upTo] as a COUNT(*)
// query, optionally with a WHERE clause.
func joinSQL(tables []TableRef, upTo int, whereClause string) string {
	var sb strings.Builder
	base := tables[0]
	fmt.Fprintf(&sb, "SELECT COUNT(*) FROM %s %s", base.Name, base.Alias)

	for i := 1; i <= upTo; i++ {
		t := tables[i]
		fmt.Fprintf(&sb, " %s %s %s", t.JoinKind, t.Name, t.Alias)
		if t.OnCondition != "" {
			fmt.Fprintf(&sb, " ON %s", t.OnCondition)
		}
	}

	if whereClause != "" {
		fmt.Fprintf(&sb, " WHERE %s", whereClause)
	}
	return sb.String()
}

// countScalar runs a COUNT(*) query and interprets its single cell.
func countScalar(ctx context.Context, q Querier, sql string) (int64, error) {
	rows, err := q.Query(ctx, sql)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return 0, nil
	}
	switch v := rows[0][0].(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case float64:
		return int64(v), nil
	case []byte:
		return parseCount(string(v))
	case string:
		return parseCount(v)
	default:
		return 0, fmt.Errorf("unexpected COUNT(*) result type %T", v)
	}
}

func parseCount(s string) (int64, error) {
	var n int64
	if _, err := fmt.Sscanf(s, "%d", &n); err != nil {
		return 0, fmt.Errorf("unexpected COUNT(*) result %q", s)
	}
	return n, nil
}
