package suggest

import (
	"regexp"
	"strings"
)

var (
	whereClauseRe = regexp.MustCompile(`(?is)\bWHERE\b\s+(.*?)(?:\bGROUP\b|\bORDER\b|\bLIMIT\b|\bHAVING\b|$)`)
	whereColRe    = regexp.MustCompile(`(?i)(\b[\w]+(?:\.[\w]+)?)\s*(?:=|!=|<>|>=|<=|>|<|\bIN\b|\bLIKE\b|\bBETWEEN\b|\bIS\b)`)
)

var sqlKeywords = map[string]bool{
	"AND": true, "OR": true, "NOT": true, "NULL": true, "TRUE": true,
	"FALSE": true, "IN": true, "LIKE": true, "BETWEEN": true, "IS": true,
	"EXISTS": true, "ANY": true, "ALL": true, "SOME": true,
}

// WhereColumns extracts column references from a query's WHERE clause.
//
// This is a deliberate heuristic, not a SQL parser: function-wrapped
// predicates (LOWER(col) = ...) are missed, and a bare identifier in
// front of a comparison operator can be a false positive (e.g. a bound
// parameter). Qualified names are kept as written; duplicates are
// dropped, first occurrence wins.
func WhereColumns(query string) []string {
	wm := whereClauseRe.FindStringSubmatch(query)
	if wm == nil {
		return nil
	}

	seen := make(map[string]bool)
	var columns []string
	for _, cm := range whereColRe.FindAllStringSubmatch(wm[1], -1) {
		col := cm[1]
		if sqlKeywords[strings.ToUpper(col)] {
			continue
		}
		if !seen[col] {
			seen[col] = true
			columns = append(columns, col)
		}
	}
	return columns
}
