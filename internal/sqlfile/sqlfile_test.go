package sqlfile

import (
	"os"
	"path/filepath"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitBasic(t *testing.T) {
	stmts := Split("SELECT 1; SELECT 2;")
	require.Len(t, stmts, 2)
	assert.Equal(t, "SELECT 1", stmts[0].Text)
	assert.Equal(t, "SELECT 2", stmts[1].Text)
	assert.Equal(t, KindSelect, stmts[0].Kind)
}

func TestSplitLineAttribution(t *testing.T) {
	script := `CREATE TABLE t (id INTEGER);

-- populate
INSERT INTO t VALUES (1);
SELECT *
FROM t;`

	stmts := Split(script)
	require.Len(t, stmts, 3)
	assert.Equal(t, 1, stmts[0].Line)
	assert.Equal(t, 4, stmts[1].Line, "line comment does not start a statement")
	assert.Equal(t, 5, stmts[2].Line)
}

func TestSplitCommentsStripped(t *testing.T) {
	script := `-- leading comment
SELECT 1; -- trailing comment
/* block
   comment */ SELECT 2;`

	stmts := Split(script)
	require.Len(t, stmts, 2)
	assert.Equal(t, "SELECT 1", stmts[0].Text)
	assert.Equal(t, "SELECT 2", stmts[1].Text)
	assert.Equal(t, 4, stmts[1].Line, "block comment newlines still count")
}

func TestSplitSemicolonInString(t *testing.T) {
	stmts := Split(`INSERT INTO t VALUES ('a;b'); SELECT 'it''s;fine';`)
	require.Len(t, stmts, 2)
	assert.Equal(t, "INSERT INTO t VALUES ('a;b')", stmts[0].Text)
	assert.Equal(t, "SELECT 'it''s;fine'", stmts[1].Text)
}

func TestSplitQuotedIdentifier(t *testing.T) {
	stmts := Split("SELECT \"weird;col\" FROM t; SELECT `x;y` FROM u;")
	require.Len(t, stmts, 2)
}

func TestSplitNoTrailingSemicolon(t *testing.T) {
	stmts := Split("SELECT 1")
	require.Len(t, stmts, 1)
	assert.Equal(t, "SELECT 1", stmts[0].Text)
}

func TestSplitEmptyStatementsDropped(t *testing.T) {
	stmts := Split(";;\n  ;\nSELECT 1;")
	require.Len(t, stmts, 1)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		stmt string
		want Kind
	}{
		{"SELECT * FROM t", KindSelect},
		{"select 1", KindSelect},
		{"WITH cte AS (SELECT 1) SELECT * FROM cte", KindSelect},
		{"SELECT 1 UNION SELECT 2", KindSelect},
		{"INSERT INTO t VALUES (1)", KindInsert},
		{"UPDATE t SET x = 1", KindUpdate},
		{"DELETE FROM t WHERE id = 1", KindDelete},
		{"CREATE TABLE t (id INTEGER)", KindDDL},
		{"DROP TABLE t", KindDDL},
		{"ALTER TABLE t ADD COLUMN y TEXT", KindDDL},
		{"CREATE INDEX idx_t_x ON t (x)", KindDDL},
		{"BEGIN", KindTransaction},
		{"COMMIT", KindTransaction},
		{"ROLLBACK", KindTransaction},
		{"SET search_path = public", KindSet},
		{"EXPLAIN SELECT 1", KindExplain},
		{"VACUUM", KindOther},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, Classify(tc.stmt), tc.stmt)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.sql")
	require.NoError(t, os.WriteFile(path, []byte("SELECT 1;\n"), 0644))

	content, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "SELECT 1;\n", content)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.sql"))
	require.Error(t, err)
}

func TestLoadEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.sql")
	require.NoError(t, os.WriteFile(path, []byte("  \n\t"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "SELECT 1", Truncate("  SELECT   1  ", 80))
	assert.Equal(t, "SELECT * F...", Truncate("SELECT * FROM somewhere", 10))
	assert.Equal(t, "SELECT a, b FROM t", Truncate("SELECT a,\n  b\nFROM t", 80), "collapses newlines")
}

func TestTruncateMultibyte(t *testing.T) {
	got := Truncate("SELECT 'héllo wörld' FROM greetings", 10)
	assert.Equal(t, "SELECT 'hé...", got)
	assert.True(t, utf8.ValidString(got), "cut must not split a rune")
}
