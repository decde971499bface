package graph

// Edge is one undirected edge record handed over by the ingestion collaborator.
// Node ids are non-negative integers; a zero Weight means the default weight of 1.
type Edge struct {
	From   uint64
	To     uint64
	Weight uint64
}

// DefaultWeight is applied to edges ingested without an explicit weight.
const DefaultWeight uint64 = 1

// IngestResult summarises a single ingestion call
type IngestResult struct {
	Records    int `json:"records"`
	Inserted   int `json:"inserted"`   // undirected edges that became visible
	Duplicates int `json:"duplicates"` // already present, first write kept
	SelfLoops  int `json:"self_loops"` // dropped, self-loops are not modeled
	NewNodes   int `json:"new_nodes"`
}

// Merge accumulates another result into r.
func (r *IngestResult) Merge(other IngestResult) {
	r.Records += other.Records
	r.Inserted += other.Inserted
	r.Duplicates += other.Duplicates
	r.SelfLoops += other.SelfLoops
	r.NewNodes += other.NewNodes
}

// Statistics describes the current state of a Store
type Statistics struct {
	NodeCount   uint64 `json:"node_count"`
	EdgeCount   uint64 `json:"edge_count"`
	TotalWeight uint64 `json:"total_weight"` // sum of undirected edge weights (m)
	Ingestions  uint64 `json:"ingestions"`
}
