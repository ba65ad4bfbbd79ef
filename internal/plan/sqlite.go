package plan

import (
	"regexp"
	"strings"
)

var (
	sqliteScanRe   = regexp.MustCompile(`(?i)^SCAN\s+(\w+)`)
	sqliteSearchRe = regexp.MustCompile(`(?i)^SEARCH\s+(\w+)\s+USING\s+(.+)`)
)

// parseTreeRows interprets SQLite EXPLAIN QUERY PLAN row triples. Each
// row's depth is the number of parent hops to the root; lines are
// re-rendered with two spaces per level into m.PlanText and classified
// by keyword prefix as they go.
func parseTreeRows(rows []TreeRow, m *Metrics) {
	parent := make(map[int64]int64, len(rows))
	for _, r := range rows {
		parent[r.ID] = r.Parent
	}

	var rendered []string
	for _, r := range rows {
		depth := treeDepth(r.ID, parent, len(rows))
		detail := stripTreeMarkers(r.Detail)
		rendered = append(rendered, strings.Repeat("  ", depth)+detail)
		classifyTreeLine(detail, m)
	}
	m.PlanText = strings.Join(rendered, "\n")
}

// parseTreeText classifies an already-rendered tree plan, line by line.
// Used when the plan arrives as saved text instead of row triples.
func parseTreeText(text string, m *Metrics) {
	for _, raw := range strings.Split(text, "\n") {
		line := stripTreeMarkers(raw)
		if line == "" {
			continue
		}
		classifyTreeLine(line, m)
	}
}

// treeDepth counts hops from id up to the root. The hop count is capped
// at the row count so a malformed parent cycle cannot loop forever.
func treeDepth(id int64, parent map[int64]int64, max int) int {
	depth := 0
	cur := id
	for depth < max {
		p, ok := parent[cur]
		if !ok || p == cur {
			break
		}
		depth++
		cur = p
	}
	return depth
}

func stripTreeMarkers(s string) string {
	return strings.TrimLeft(strings.TrimSpace(s), "|- ")
}

func classifyTreeLine(line string, m *Metrics) {
	lower := strings.ToLower(line)

	if sm := sqliteScanRe.FindStringSubmatch(line); sm != nil {
		m.NodeTypes = append(m.NodeTypes, "SCAN")
		m.ScanTypes = append(m.ScanTypes, "Full Table Scan")
		m.addTable(sm[1])
		m.HasSequentialScan = true
		m.HasFullTableScan = true
		// SQLite only falls back to SCAN when no index applies.
		m.MissingIndexLikely = true
		return
	}

	if sm := sqliteSearchRe.FindStringSubmatch(line); sm != nil {
		m.NodeTypes = append(m.NodeTypes, "SEARCH")
		m.addTable(sm[1])
		using := strings.ToLower(strings.TrimSpace(sm[2]))
		switch {
		// Automatic first: SQLite spells these "AUTOMATIC COVERING INDEX".
		case strings.Contains(using, "automatic"):
			m.ScanTypes = append(m.ScanTypes, "Automatic Index")
			m.MissingIndexLikely = true
		case strings.Contains(using, "covering index"):
			m.ScanTypes = append(m.ScanTypes, "Covering Index Scan")
		case strings.Contains(using, "integer primary key"):
			m.ScanTypes = append(m.ScanTypes, "Primary Key Lookup")
		default:
			m.ScanTypes = append(m.ScanTypes, "Index Scan")
		}
		return
	}

	if strings.Contains(lower, "temporary b-tree") || strings.Contains(lower, "temp b-tree") {
		m.NodeTypes = append(m.NodeTypes, "Temporary B-Tree")
		m.HasLargeSort = true
		switch {
		case strings.Contains(lower, "order by"):
			m.ScanTypes = append(m.ScanTypes, "Temp Sort (ORDER BY)")
		case strings.Contains(lower, "group by"):
			m.ScanTypes = append(m.ScanTypes, "Temp Sort (GROUP BY)")
		case strings.Contains(lower, "distinct"):
			m.ScanTypes = append(m.ScanTypes, "Temp Sort (DISTINCT)")
		default:
			m.ScanTypes = append(m.ScanTypes, "Temp Sort")
		}
		return
	}

	switch {
	case strings.Contains(lower, "compound subqueries"):
		m.NodeTypes = append(m.NodeTypes, "Compound Subqueries")
	case strings.Contains(lower, "co-routine") || strings.Contains(lower, "coroutine"):
		m.NodeTypes = append(m.NodeTypes, "Co-Routine")
	case strings.HasPrefix(lower, "subquery"):
		m.NodeTypes = append(m.NodeTypes, "Subquery")
	default:
		m.NodeTypes = append(m.NodeTypes, line)
	}
}
