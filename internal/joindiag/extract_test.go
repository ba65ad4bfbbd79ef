package joindiag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTablesChain(t *testing.T) {
	tables := extractTables(chainQuery)
	require.Len(t, tables, 4)

	assert.Equal(t, TableRef{Name: "orders", Alias: "o", JoinKind: "FROM"}, tables[0])
	assert.Equal(t, TableRef{Name: "users", Alias: "u", JoinKind: "JOIN", OnCondition: "u.id = o.user_id"}, tables[1])
	assert.Equal(t, "order_items", tables[2].Name)
	assert.Equal(t, "p.id = oi.product_id", tables[3].OnCondition)
}

func TestExtractTablesLeftJoinAndAS(t *testing.T) {
	query := "SELECT * FROM users AS u LEFT JOIN orders AS o ON o.user_id = u.id WHERE u.active = 1"
	tables := extractTables(query)
	require.Len(t, tables, 2)

	assert.Equal(t, "users", tables[0].Name)
	assert.Equal(t, "u", tables[0].Alias)
	assert.Equal(t, "LEFT JOIN", tables[1].JoinKind)
	assert.Equal(t, "o", tables[1].Alias)
	assert.Equal(t, "o.user_id = u.id", tables[1].OnCondition)
}

func TestExtractTablesUnaliased(t *testing.T) {
	query := "SELECT * FROM users JOIN orders ON orders.user_id = users.id"
	tables := extractTables(query)
	require.Len(t, tables, 2)

	assert.Equal(t, "users", tables[0].Alias, "alias defaults to table name")
	assert.Equal(t, "orders", tables[1].Alias)
	assert.Equal(t, "orders.user_id = users.id", tables[1].OnCondition)
}

func TestExtractTablesMultilineQuery(t *testing.T) {
	query := `SELECT o.id
	FROM orders o
	  JOIN users u
	    ON u.id = o.user_id
	ORDER BY o.id`
	tables := extractTables(query)
	require.Len(t, tables, 2)
	assert.Equal(t, "u.id = o.user_id", tables[1].OnCondition)
}

func TestExtractWhere(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"SELECT * FROM t WHERE a = 1", "a = 1"},
		{"SELECT * FROM t WHERE a = 1 ORDER BY b", "a = 1"},
		{"SELECT * FROM t WHERE a = 1 AND b < 2 GROUP BY c", "a = 1 AND b < 2"},
		{"SELECT * FROM t", ""},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, extractWhere(tc.query), tc.query)
	}
}

func TestHasJoins(t *testing.T) {
	assert.True(t, HasJoins("SELECT * FROM a JOIN b ON a.id = b.id"))
	assert.True(t, HasJoins("select * from a left join b on a.id = b.id"))
	assert.False(t, HasJoins("SELECT * FROM a WHERE joined = true"))
}
