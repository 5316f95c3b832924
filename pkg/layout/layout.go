package layout

import "github.com/matzehuels/gentree/pkg/lineage"

// NodeKind tells sinks what a diagram node stands for.
type NodeKind int

const (
	KindLeaf NodeKind = iota
	KindDivision
	// KindRoot marks a root drawn above its own chain (IdentityEndpoint only).
	KindRoot
)

func (k NodeKind) String() string {
	switch k {
	case KindDivision:
		return "division"
	case KindRoot:
		return "root"
	}
	return "leaf"
}

// Node is a positioned diagram node. X is the horizontal centre, Y the
// generation times the line step.
type Node struct {
	ID         string
	Label      string
	Color      uint32 // 0xRRGGBB
	X, Y       float64
	Width      float64
	Height     float64
	Generation int
	Kind       NodeKind
}

// Sink consumes draw calls. Close is called exactly once per [Walk].
type Sink interface {
	AddNode(n Node) error
	AddStraightEdge(from, to string) error
	// AddBentEdge draws from → to through a bend at (toX, toY+bendOffsetY);
	// toX and toY are the target node's coordinates.
	AddBentEdge(from, to string, toX, toY, bendOffsetY float64) error
	Close() error
}

// Graph is the read interface the walker needs. [lineage.Forest]
// implements it.
type Graph interface {
	Later(id string) []*lineage.Vertex
	Earlier(id string) []*lineage.Vertex
}

// Stats counts what a walk produced.
type Stats struct {
	Roots         int `json:"roots"`
	Visited       int `json:"visited"`    // vertices traversed, chain interiors included
	Nodes         int `json:"nodes"`      // add node calls
	Edges         int `json:"edges"`      // add edge calls
	Divisions     int `json:"divisions"`  // vertices with two or more eligible later neighbours
	Leaves        int `json:"leaves"`     // vertices with no eligible later neighbour
	Compressed    int `json:"compressed"` // chain vertices left out of the diagram
	MaxGeneration int `json:"max_generation"`
}

// Result summarizes a walk.
type Result struct {
	Stats
	Width  float64  // total width of all successfully laid out roots
	Height float64  // MaxGeneration times the line step
	Failed []string // IDs of roots skipped because of non-forest input
}
