package plan

import "encoding/json"

// Node types that read a relation directly.
var postgresScanTypes = map[string]bool{
	"Seq Scan":          true,
	"Index Scan":        true,
	"Index Only Scan":   true,
	"Bitmap Index Scan": true,
	"Bitmap Heap Scan":  true,
	"Tid Scan":          true,
}

var postgresJoinTypes = map[string]bool{
	"Nested Loop": true,
	"Hash Join":   true,
	"Merge Join":  true,
}

const largeSortRows = 10000

// parsePostgresJSON interprets data as EXPLAIN (FORMAT JSON) output and
// folds every node into m. Returns false when data is not a JSON plan,
// so the caller can fall back to keyword matching.
func parsePostgresJSON(data []byte, m *Metrics) bool {
	var plans []PostgresExplain
	if err := json.Unmarshal(data, &plans); err != nil || len(plans) == 0 {
		return false
	}

	top := plans[0]
	if top.PlanningTime > 0 {
		m.PlanningTimeMs = top.PlanningTime
	}
	if top.ExecutionTime > 0 {
		m.ActualTimeMs = top.ExecutionTime
	}

	// Depth-first pre-order over the tree. An explicit stack bounds
	// stack usage against arbitrarily deep plans.
	stack := []*PostgresNode{&top.Plan}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		walkPostgresNode(node, m)

		for i := len(node.Plans) - 1; i >= 0; i-- {
			stack = append(stack, &node.Plans[i])
		}
	}
	return true
}

func walkPostgresNode(node *PostgresNode, m *Metrics) {
	m.NodeTypes = append(m.NodeTypes, node.NodeType)

	// The outermost node's cost dominates, but children are inspected
	// too in case the tree arrives partially formed.
	if node.TotalCost > m.TotalCost {
		m.TotalCost = node.TotalCost
		m.StartupCost = node.StartupCost
	}

	m.EstimatedRows += node.PlanRows
	m.ActualRows += node.ActualRows

	m.SharedHitBlocks += node.SharedHitBlocks
	m.SharedReadBlocks += node.SharedReadBlocks
	m.TempReadBlocks += node.TempReadBlocks
	m.TempWrittenBlocks += node.TempWrittenBlocks
	if node.TempReadBlocks > 0 || node.TempWrittenBlocks > 0 {
		m.HasTempDiskUsage = true
	}

	if postgresScanTypes[node.NodeType] {
		m.ScanTypes = append(m.ScanTypes, node.NodeType)
		table := node.RelationName
		if table == "" {
			table = "unknown"
		}
		m.addTable(table)
	}

	switch node.NodeType {
	case "Seq Scan":
		m.HasSequentialScan = true
		m.HasFullTableScan = true
		// A filter applied during a full scan suggests a missing index.
		if node.Filter != "" {
			m.MissingIndexLikely = true
		}
	case "Bitmap Heap Scan":
		m.HasBitmapHeapScan = true
	case "Nested Loop":
		m.HasNestedLoop = true
	case "Hash Join":
		m.HasHashJoin = true
	case "Sort":
		if containsFold(node.SortMethod, "disk") || containsFold(node.SortMethod, "external") {
			m.HasLargeSort = true
		}
		if node.PlanRows > largeSortRows {
			m.HasLargeSort = true
		}
	}

	if postgresJoinTypes[node.NodeType] {
		m.JoinTypes = append(m.JoinTypes, node.NodeType)
	}
}
