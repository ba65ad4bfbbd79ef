// Package sqlfile loads SQL scripts and splits them into executable
// statements with source-line attribution.
package sqlfile

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// Kind classifies a SQL statement by its top-level verb.
type Kind string

const (
	KindSelect      Kind = "SELECT"
	KindInsert      Kind = "INSERT"
	KindUpdate      Kind = "UPDATE"
	KindDelete      Kind = "DELETE"
	KindDDL         Kind = "DDL"
	KindTransaction Kind = "TRANSACTION"
	KindSet         Kind = "SET"
	KindExplain     Kind = "EXPLAIN"
	KindOther       Kind = "OTHER"
)

// Statement is one executable statement from a script. Line is the
// 1-based line in the original file where the statement starts.
type Statement struct {
	Text string
	Line int
	Kind Kind
}

// Load reads a SQL script from disk.
func Load(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading SQL file: %w", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", fmt.Errorf("SQL file is empty: %s", path)
	}
	return string(data), nil
}

// Split breaks a script into statements. Comments are stripped,
// semicolons inside string literals and quoted identifiers are
// ignored, and empty statements are dropped.
func Split(content string) []Statement {
	var stmts []Statement

	var sb strings.Builder
	line := 1
	stmtLine := 0

	flush := func() {
		text := strings.TrimSpace(sb.String())
		text = strings.TrimSuffix(text, ";")
		text = strings.TrimSpace(text)
		if text != "" {
			stmts = append(stmts, Statement{Text: text, Line: stmtLine, Kind: Classify(text)})
		}
		sb.Reset()
		stmtLine = 0
	}

	i := 0
	for i < len(content) {
		c := content[i]

		switch {
		case c == '\n':
			line++
			sb.WriteByte(c)
			i++

		case c == '-' && i+1 < len(content) && content[i+1] == '-':
			// Line comment: skip to end of line, keep the newline.
			for i < len(content) && content[i] != '\n' {
				i++
			}

		case c == '/' && i+1 < len(content) && content[i+1] == '*':
			i += 2
			for i < len(content) {
				if content[i] == '\n' {
					line++
				}
				if content[i] == '*' && i+1 < len(content) && content[i+1] == '/' {
					i += 2
					break
				}
				i++
			}

		case c == '\'' || c == '"' || c == '`':
			quote := c
			if stmtLine == 0 {
				stmtLine = line
			}
			sb.WriteByte(c)
			i++
			for i < len(content) {
				ch := content[i]
				if ch == '\n' {
					line++
				}
				sb.WriteByte(ch)
				i++
				if ch == quote {
					// Doubled quote escapes itself inside the literal.
					if i < len(content) && content[i] == quote {
						sb.WriteByte(content[i])
						i++
						continue
					}
					break
				}
			}

		case c == ';':
			sb.WriteByte(c)
			i++
			flush()

		default:
			if stmtLine == 0 && !isSpace(c) {
				stmtLine = line
			}
			sb.WriteByte(c)
			i++
		}
	}
	flush()

	return stmts
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// Truncate collapses whitespace and shortens a statement for display.
// The cut is rune-aligned so multi-byte characters are never split.
func Truncate(query string, max int) string {
	normalized := strings.TrimSpace(whitespaceRe.ReplaceAllString(query, " "))
	runes := []rune(normalized)
	if len(runes) <= max {
		return normalized
	}
	return string(runes[:max]) + "..."
}
