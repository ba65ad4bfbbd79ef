package plan

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	textCostRe = regexp.MustCompile(`cost=(\d+\.?\d*)\.\.([\d.]+)`)
	textRowsRe = regexp.MustCompile(`rows=(\d+)`)
)

// parseKeywordText scans free-form plan prose for known operator
// keywords. It covers MySQL EXPLAIN FORMAT=TREE output, SQL Server
// SHOWPLAN text, and PostgreSQL text-format plans alike.
func parseKeywordText(text string, m *Metrics) {
	lower := strings.ToLower(text)

	if strings.Contains(lower, "seq scan") ||
		strings.Contains(lower, "table scan") ||
		strings.Contains(lower, "clustered index scan") {
		m.HasSequentialScan = true
		m.HasFullTableScan = true
	}

	if strings.Contains(lower, "nested loop") || strings.Contains(lower, "nested loops") {
		m.HasNestedLoop = true
		m.JoinTypes = append(m.JoinTypes, "Nested Loop")
	}

	if strings.Contains(lower, "hash join") || strings.Contains(lower, "hash match") {
		m.HasHashJoin = true
		m.JoinTypes = append(m.JoinTypes, "Hash Join")
	}

	if strings.Contains(lower, "bitmap heap scan") {
		m.HasBitmapHeapScan = true
	}

	if strings.Contains(lower, "sort") {
		if strings.Contains(lower, "disk") || strings.Contains(lower, "external") {
			m.HasLargeSort = true
		}
	}

	if sm := textCostRe.FindStringSubmatch(text); sm != nil {
		if v, err := strconv.ParseFloat(sm[1], 64); err == nil {
			m.StartupCost = v
		}
		if v, err := strconv.ParseFloat(sm[2], 64); err == nil {
			m.TotalCost = v
		}
	}

	if sm := textRowsRe.FindStringSubmatch(text); sm != nil {
		if v, err := strconv.ParseInt(sm[1], 10, 64); err == nil {
			m.EstimatedRows = v
		}
	}

	if strings.Contains(lower, "filter:") && strings.Contains(lower, "seq scan") {
		m.MissingIndexLikely = true
	}
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), sub)
}
