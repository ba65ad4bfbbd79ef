package plan

// PostgresNode is one node of a PostgreSQL EXPLAIN (FORMAT JSON) plan
// tree. Only the fields the normalizer reads are declared; unknown keys
// are ignored by encoding/json.
type PostgresNode struct {
	NodeType string `json:"Node Type"`

	StartupCost float64 `json:"Startup Cost"`
	TotalCost   float64 `json:"Total Cost"`
	PlanRows    int64   `json:"Plan Rows"`
	ActualRows  int64   `json:"Actual Rows,omitempty"`

	RelationName string `json:"Relation Name,omitempty"`
	Alias        string `json:"Alias,omitempty"`
	IndexName    string `json:"Index Name,omitempty"`
	Filter       string `json:"Filter,omitempty"`

	SortMethod string `json:"Sort Method,omitempty"`

	SharedHitBlocks   int64 `json:"Shared Hit Blocks,omitempty"`
	SharedReadBlocks  int64 `json:"Shared Read Blocks,omitempty"`
	TempReadBlocks    int64 `json:"Temp Read Blocks,omitempty"`
	TempWrittenBlocks int64 `json:"Temp Written Blocks,omitempty"`

	Plans []PostgresNode `json:"Plans,omitempty"`
}

// PostgresExplain is the top-level element of PostgreSQL EXPLAIN
// (FORMAT JSON) output. Planning and execution times are only present
// when the plan was produced with ANALYZE.
type PostgresExplain struct {
	Plan          PostgresNode `json:"Plan"`
	PlanningTime  float64      `json:"Planning Time,omitempty"`
	ExecutionTime float64      `json:"Execution Time,omitempty"`
}
