package joindiag

import (
	"regexp"
	"strings"
)

var (
	joinKeywordRe = regexp.MustCompile(`(?i)\bJOIN\b`)
	fromRe        = regexp.MustCompile(`(?i)\bFROM\s+(\w+)(?:\s+(?:AS\s+)?(\w+))?`)
	joinHeadRe    = regexp.MustCompile(`(?i)\b((?:LEFT|RIGHT|FULL|CROSS|INNER|OUTER)\s+)?JOIN\s+(\w+)`)
	aliasRe       = regexp.MustCompile(`(?i)^\s+(?:AS\s+)?(\w+)`)
	onRe          = regexp.MustCompile(`(?i)^\s+ON\s+`)
	clauseEndRe   = regexp.MustCompile(`(?i)\s+(?:WHERE|GROUP|ORDER|LIMIT|HAVING|UNION)\b|;`)
	whereRe       = regexp.MustCompile(`(?i)\bWHERE\s+(.*?)(?:\s+GROUP\b|\s+ORDER\b|\s+LIMIT\b|\s+HAVING\b|\s+UNION\b|;|$)`)
)

// HasJoins reports whether the query contains at least one JOIN clause.
func HasJoins(query string) bool {
	return joinKeywordRe.MatchString(query)
}

// notAliases are words that can directly follow a table name but never
// name an alias.
var notAliases = map[string]bool{
	"ON": true, "JOIN": true, "LEFT": true, "RIGHT": true, "FULL": true,
	"CROSS": true, "INNER": true, "OUTER": true, "WHERE": true,
	"GROUP": true, "ORDER": true, "LIMIT": true, "HAVING": true,
	"UNION": true, "SET": true, "USING": true,
}

// extractTables pulls the FROM table and every JOINed table out of a
// query, in source order. This is keyword matching, not a SQL parser:
// subqueries in FROM are skipped, exotic join syntax may be missed.
func extractTables(query string) []TableRef {
	normalized := strings.Join(strings.Fields(query), " ")

	var tables []TableRef

	if fm := fromRe.FindStringSubmatchIndex(normalized); fm != nil {
		name := normalized[fm[2]:fm[3]]
		alias := name
		if fm[4] >= 0 {
			cand := normalized[fm[4]:fm[5]]
			if !notAliases[strings.ToUpper(cand)] {
				alias = cand
			}
		}
		// A '(' right before the name means a derived table, skip it.
		if fm[2] == 0 || normalized[fm[2]-1] != '(' {
			tables = append(tables, TableRef{Name: name, Alias: alias, JoinKind: "FROM"})
		}
	}

	heads := joinHeadRe.FindAllStringSubmatchIndex(normalized, -1)
	for i, hm := range heads {
		kind := "JOIN"
		if hm[2] >= 0 {
			kind = strings.ToUpper(strings.TrimSpace(normalized[hm[2]:hm[3]])) + " JOIN"
		}
		name := normalized[hm[4]:hm[5]]
		if notAliases[strings.ToUpper(name)] || strings.EqualFold(name, "SELECT") {
			continue
		}

		rest := normalized[hm[5]:]
		clauseLimit := len(rest)
		if i+1 < len(heads) {
			clauseLimit = heads[i+1][0] - hm[5]
		}
		if em := clauseEndRe.FindStringIndex(rest); em != nil && em[0] < clauseLimit {
			clauseLimit = em[0]
		}
		clause := rest[:clauseLimit]

		alias := name
		if am := aliasRe.FindStringSubmatch(clause); am != nil && !notAliases[strings.ToUpper(am[1])] {
			alias = am[1]
			clause = clause[len(am[0]):]
		}

		onCond := ""
		if om := onRe.FindStringIndex(clause); om != nil {
			onCond = strings.TrimSpace(clause[om[1]:])
		}

		tables = append(tables, TableRef{
			Name:        name,
			Alias:       alias,
			JoinKind:    kind,
			OnCondition: onCond,
		})
	}

	return tables
}

// extractWhere returns the WHERE clause body without the keyword, or ""
// when the query has none.
func extractWhere(query string) string {
	normalized := strings.Join(strings.Fields(query), " ")
	if m := whereRe.FindStringSubmatch(normalized); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}
