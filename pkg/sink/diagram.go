package sink

import (
	"math"

	"github.com/matzehuels/gentree/pkg/layout"
)

// Node is a diagram node as stored by [Recorder] and written by [RenderJSON].
type Node struct {
	ID         string  `json:"id"`
	Label      string  `json:"label"`
	Color      uint32  `json:"color"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Generation int     `json:"generation"`
	Kind       string  `json:"kind"`
}

// Edge joins two nodes. Bent edges pass through (ToX, ToY+BendOffsetY)
// before reaching the target at (ToX, ToY).
type Edge struct {
	From        string  `json:"from"`
	To          string  `json:"to"`
	Bent        bool    `json:"bent,omitempty"`
	ToX         float64 `json:"to_x,omitempty"`
	ToY         float64 `json:"to_y,omitempty"`
	BendOffsetY float64 `json:"bend_offset_y,omitempty"`
}

// Bend returns the bend point of a bent edge.
func (e Edge) Bend() (x, y float64) {
	return e.ToX, e.ToY + e.BendOffsetY
}

// Diagram is a complete, positioned lineage diagram.
type Diagram struct {
	Nodes  []Node  `json:"nodes"`
	Edges  []Edge  `json:"edges"`
	Width  float64 `json:"width"`  // right-most node extent
	Height float64 `json:"height"` // lowest node extent
}

// Bounds is an axis-aligned box.
type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
}

// Bounds returns the box covering every node and bend point. An empty
// diagram has zero bounds.
func (d Diagram) Bounds() Bounds {
	if len(d.Nodes) == 0 {
		return Bounds{}
	}
	b := Bounds{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
	extend := func(x, y float64) {
		b.MinX, b.MaxX = min(b.MinX, x), max(b.MaxX, x)
		b.MinY, b.MaxY = min(b.MinY, y), max(b.MaxY, y)
	}
	for _, n := range d.Nodes {
		extend(n.X-n.Width/2, n.Y-n.Height/2)
		extend(n.X+n.Width/2, n.Y+n.Height/2)
	}
	for _, e := range d.Edges {
		if e.Bent {
			extend(e.Bend())
		}
	}
	return b
}

// Node returns the node with the given ID.
func (d Diagram) Node(id string) (Node, bool) {
	for _, n := range d.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

func fromLayout(n layout.Node) Node {
	return Node{
		ID:         n.ID,
		Label:      n.Label,
		Color:      n.Color,
		X:          n.X,
		Y:          n.Y,
		Width:      n.Width,
		Height:     n.Height,
		Generation: n.Generation,
		Kind:       n.Kind.String(),
	}
}
