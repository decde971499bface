package algorithms

// DegreeCount is one row of the degree histogram
type DegreeCount struct {
	Degree int `json:"degree"`
	Count  int `json:"count"`
}

// DegreeCoefficient is the mean clustering coefficient of all nodes with a given degree
type DegreeCoefficient struct {
	Degree      int     `json:"degree"`
	Coefficient float64 `json:"coefficient"`
}

// EffectCount is one row of the clustering-effect histogram
type EffectCount struct {
	Effect int `json:"effect"`
	Count  int `json:"count"`
}

// Bucket is one equal-width bin of a value distribution. Bounds are
// inclusive of Lower; the last bucket also includes Upper.
type Bucket struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

// Community is a group of nodes sharing a label. The label is the id of the
// node whose singleton community it started as.
type Community struct {
	ID      uint64   `json:"id"`
	Members []uint64 `json:"members"`
}

// CommunityResult contains the outcome of community detection
type CommunityResult struct {
	Assignment  map[uint64]uint64 `json:"assignment"` // node -> community id
	Communities []Community       `json:"communities"` // sorted by id
	Modularity  float64           `json:"modularity"`
	Passes      int               `json:"passes"`
	Moves       int               `json:"moves"`
}

// CommunityOptions configures DetectCommunities
type CommunityOptions struct {
	// MaxPasses bounds the number of sweeps over the nodes. Zero means DefaultMaxPasses.
	MaxPasses int
	// Initial optionally seeds the assignment. Labels must be node ids present
	// in the graph; nodes without an entry start in the community named by
	// their own id.
	Initial map[uint64]uint64
}

// DefaultMaxPasses is the pass limit used when CommunityOptions.MaxPasses is zero
const DefaultMaxPasses = 100

// InfluenceParams configures one diffusion run
type InfluenceParams struct {
	Seeds       []uint64
	Steps       int
	Probability float64
}

// InfluenceResult is the outcome of one diffusion run
type InfluenceResult struct {
	// History[0] is the seed set, History[k] the cumulative set of nodes that
	// finished propagating by round k. Each set is sorted ascending.
	History [][]uint64
	// Final is the last History entry.
	Final []uint64
	// Influenced is every node ever activated, including the frontier left
	// when the run stopped.
	Influenced []uint64
}
