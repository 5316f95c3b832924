package layout

import (
	"errors"

	gerrors "github.com/matzehuels/gentree/pkg/errors"
	"github.com/matzehuels/gentree/pkg/lineage"
	"github.com/matzehuels/gentree/pkg/ordering"
)

// Walk lays out the lineage trees below roots, left to right, and sends
// the draw calls to sink.
//
// From every root the walker follows chains (vertices with exactly one
// eligible later neighbour) without drawing them, stops at leaves and
// divisions, sorts the daughters of each division with sorter and lays
// them out left to right. A leaf takes one column; a division sits
// halfway between its first and last daughter. A nil eligibility admits
// every vertex and a nil sorter keeps graph order.
//
// A vertex with more than one eligible earlier neighbour aborts its root
// with a NON_FOREST_INPUT error: nothing of that root reaches the sink and
// the remaining roots are still laid out. All such errors are joined and
// the root IDs listed in [Result.Failed]. A sink error aborts the walk
// with SINK_FAILURE. sink.Close is called exactly once, whatever happens.
func Walk(g Graph, roots []*lineage.Vertex, elig lineage.Eligibility, sorter ordering.Sorter, sink Sink, cfg Config) (Result, error) {
	if sink == nil {
		return Result{}, gerrors.New(gerrors.ErrCodeInvalidInput, "nil sink")
	}
	res, err := walk(g, roots, elig, sorter, sink, cfg)
	if cerr := sink.Close(); cerr != nil {
		err = errors.Join(err, gerrors.Wrap(gerrors.ErrCodeSinkFailure, cerr, "close sink"))
	}
	return res, err
}

func walk(g Graph, roots []*lineage.Vertex, elig lineage.Eligibility, sorter ordering.Sorter, sink Sink, cfg Config) (Result, error) {
	var res Result
	if err := cfg.Validate(); err != nil {
		return res, err
	}
	if sorter == nil {
		sorter = ordering.Identity{}
	}
	w := &walker{
		g:       g,
		elig:    elig,
		sorter:  sorter,
		cfg:     cfg,
		visited: make(map[string]bool),
	}

	var errs []error
	cursor := 0.0
	for _, root := range roots {
		p := &plan{}
		top, err := w.place(root, 0, cursor, true, p)
		if err != nil {
			res.Failed = append(res.Failed, root.ID)
			errs = append(errs, gerrors.Wrap(gerrors.ErrCodeNonForestInput, err, "root %s", root.ID))
			continue
		}
		if err := p.flush(sink, cfg); err != nil {
			return res, errors.Join(append(errs, err)...)
		}
		cursor += top.width
		p.stats.Roots = 1
		res.Stats.merge(p.stats)
	}

	res.Width = cursor
	res.Height = float64(res.MaxGeneration) * cfg.LineStep
	return res, errors.Join(errs...)
}

type walker struct {
	g       Graph
	elig    lineage.Eligibility
	sorter  ordering.Sorter
	cfg     Config
	visited map[string]bool
}

// placed is what a subtree reports to its parent.
type placed struct {
	id    string
	x, y  float64
	width float64
}

// place lays out the subtree whose chain starts at head and returns its
// topmost node and width. Daughters are placed at generation+1 starting
// at the left bound, each one right of the previous subtree.
func (w *walker) place(head *lineage.Vertex, gen int, left float64, root bool, p *plan) (placed, error) {
	tail, daughters, steps, err := w.follow(head, p)
	if err != nil {
		return placed{}, err
	}

	// A root heading a chain keeps its own node above the chain's end.
	rootAbove := root && steps > 0 && w.cfg.Identity == IdentityEndpoint
	nodeGen := gen
	if rootAbove {
		nodeGen++
	}

	width := w.cfg.ColumnWidth
	x := left + width/2
	kind := KindLeaf
	var children []placed
	if len(daughters) > 0 {
		kind = KindDivision
		p.stats.Divisions++
		w.sorter.Sort(daughters)
		cursor := left
		for _, d := range daughters {
			c, err := w.place(d, nodeGen+1, cursor, false, p)
			if err != nil {
				return placed{}, err
			}
			children = append(children, c)
			cursor += c.width
		}
		width = cursor - left
		x = (children[0].x + children[len(children)-1].x) / 2
	} else {
		p.stats.Leaves++
	}

	self := tail
	if w.cfg.Identity == IdentityChainHead {
		self = head
	}
	n := w.node(self, x, nodeGen, kind, p)
	p.addNode(n)
	for _, c := range children {
		p.addEdge(n.ID, c)
	}
	top := placed{id: n.ID, x: n.X, y: n.Y, width: width}

	dropped := steps
	if rootAbove {
		r := w.node(head, x, gen, KindRoot, p)
		p.addNode(r)
		p.addEdge(r.ID, top)
		top.id, top.y = r.ID, r.Y
		dropped--
	}
	p.stats.Compressed += dropped
	return top, nil
}

// follow walks the chain starting at head. It returns the chain's last
// vertex, that vertex's eligible later neighbours (none or at least two)
// and the number of steps taken.
func (w *walker) follow(head *lineage.Vertex, p *plan) (*lineage.Vertex, []*lineage.Vertex, int, error) {
	v := head
	for steps := 0; ; steps++ {
		if err := w.visit(v, p); err != nil {
			return nil, nil, 0, err
		}
		later := w.elig.Filter(w.g.Later(v.ID))
		if len(later) != 1 {
			return v, later, steps, nil
		}
		v = later[0]
	}
}

func (w *walker) visit(v *lineage.Vertex, p *plan) error {
	if w.visited[v.ID] {
		return gerrors.Wrap(gerrors.ErrCodeNonForestInput, lineage.ErrNonForest, "vertex %s reached twice", v.ID)
	}
	w.visited[v.ID] = true
	p.stats.Visited++
	if n := len(w.elig.Filter(w.g.Earlier(v.ID))); n > 1 {
		return gerrors.Wrap(gerrors.ErrCodeNonForestInput, lineage.ErrNonForest,
			"vertex %s has %d eligible earlier neighbours", v.ID, n)
	}
	return nil
}

func (w *walker) node(v *lineage.Vertex, x float64, gen int, kind NodeKind, p *plan) Node {
	color := v.Color
	if color == 0 {
		color = w.cfg.NodeColor
	}
	if gen > p.stats.MaxGeneration {
		p.stats.MaxGeneration = gen
	}
	return Node{
		ID:         v.ID,
		Label:      v.Label,
		Color:      color,
		X:          x,
		Y:          float64(gen) * w.cfg.LineStep,
		Width:      w.cfg.NodeWidth,
		Height:     w.cfg.NodeHeight,
		Generation: gen,
		Kind:       kind,
	}
}

func (s *Stats) merge(o Stats) {
	s.Roots += o.Roots
	s.Visited += o.Visited
	s.Nodes += o.Nodes
	s.Edges += o.Edges
	s.Divisions += o.Divisions
	s.Leaves += o.Leaves
	s.Compressed += o.Compressed
	s.MaxGeneration = max(s.MaxGeneration, o.MaxGeneration)
}
