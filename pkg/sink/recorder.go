package sink

import (
	"errors"
	"fmt"

	"github.com/matzehuels/gentree/pkg/layout"
)

var (
	// ErrDuplicateNode is returned when a node ID is added twice. Node
	// positions are write-once.
	ErrDuplicateNode = errors.New("node already added")

	// ErrUnknownNode is returned for an edge whose endpoint was not added.
	ErrUnknownNode = errors.New("edge endpoint not added")

	// ErrClosed is returned for draw calls after Close.
	ErrClosed = errors.New("sink closed")
)

// Recorder is an in-memory [layout.Sink] that collects a [Diagram].
// It is not safe for concurrent use.
type Recorder struct {
	nodes  []Node
	index  map[string]int
	edges  []Edge
	closed bool
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{index: make(map[string]int)}
}

// AddNode implements [layout.Sink].
func (r *Recorder) AddNode(n layout.Node) error {
	if r.closed {
		return ErrClosed
	}
	if _, ok := r.index[n.ID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateNode, n.ID)
	}
	r.index[n.ID] = len(r.nodes)
	r.nodes = append(r.nodes, fromLayout(n))
	return nil
}

// AddStraightEdge implements [layout.Sink].
func (r *Recorder) AddStraightEdge(from, to string) error {
	return r.addEdge(Edge{From: from, To: to})
}

// AddBentEdge implements [layout.Sink].
func (r *Recorder) AddBentEdge(from, to string, toX, toY, bendOffsetY float64) error {
	return r.addEdge(Edge{From: from, To: to, Bent: true, ToX: toX, ToY: toY, BendOffsetY: bendOffsetY})
}

func (r *Recorder) addEdge(e Edge) error {
	if r.closed {
		return ErrClosed
	}
	for _, id := range []string{e.From, e.To} {
		if _, ok := r.index[id]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownNode, id)
		}
	}
	r.edges = append(r.edges, e)
	return nil
}

// Close implements [layout.Sink]. Closing twice is an error.
func (r *Recorder) Close() error {
	if r.closed {
		return ErrClosed
	}
	r.closed = true
	return nil
}

// Closed reports whether Close was called.
func (r *Recorder) Closed() bool { return r.closed }

// Diagram returns what was recorded so far. Width and Height are the
// right-most and lowest node extents.
func (r *Recorder) Diagram() Diagram {
	d := Diagram{
		Nodes: append([]Node(nil), r.nodes...),
		Edges: append([]Edge(nil), r.edges...),
	}
	for _, n := range d.Nodes {
		d.Width = max(d.Width, n.X+n.Width/2)
		d.Height = max(d.Height, n.Y+n.Height/2)
	}
	return d
}
