package sqlfile

import (
	"strings"
	"sync"

	"github.com/pingcap/tidb/pkg/parser"
	"github.com/pingcap/tidb/pkg/parser/ast"
	_ "github.com/pingcap/tidb/pkg/parser/test_driver"
)

var parserPool = sync.Pool{
	New: func() any { return parser.New() },
}

// Classify determines a statement's Kind. It parses the statement with
// the TiDB SQL parser and falls back to first-keyword matching for
// dialect constructs the parser rejects.
func Classify(stmt string) Kind {
	p := parserPool.Get().(*parser.Parser)
	defer parserPool.Put(p)

	nodes, _, err := p.Parse(stmt, "", "")
	if err != nil || len(nodes) == 0 {
		return classifyByKeyword(stmt)
	}

	switch node := nodes[0].(type) {
	case *ast.SelectStmt, *ast.SetOprStmt:
		return KindSelect
	case *ast.InsertStmt:
		return KindInsert
	case *ast.UpdateStmt:
		return KindUpdate
	case *ast.DeleteStmt:
		return KindDelete
	case *ast.ExplainStmt:
		return KindExplain
	case *ast.BeginStmt, *ast.CommitStmt, *ast.RollbackStmt:
		return KindTransaction
	case *ast.SetStmt:
		return KindSet
	default:
		if _, ok := node.(ast.DDLNode); ok {
			return KindDDL
		}
		return classifyByKeyword(stmt)
	}
}

var keywordKinds = map[string]Kind{
	"SELECT":   KindSelect,
	"WITH":     KindSelect,
	"INSERT":   KindInsert,
	"UPDATE":   KindUpdate,
	"DELETE":   KindDelete,
	"CREATE":   KindDDL,
	"ALTER":    KindDDL,
	"DROP":     KindDDL,
	"TRUNCATE": KindDDL,
	"BEGIN":    KindTransaction,
	"COMMIT":   KindTransaction,
	"ROLLBACK": KindTransaction,
	"SET":      KindSet,
	"EXPLAIN":  KindExplain,
}

func classifyByKeyword(stmt string) Kind {
	fields := strings.Fields(stmt)
	if len(fields) == 0 {
		return KindOther
	}
	if kind, ok := keywordKinds[strings.ToUpper(fields[0])]; ok {
		return kind
	}
	return KindOther
}
