package layout

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"strconv"
	"testing"

	gerrors "github.com/matzehuels/gentree/pkg/errors"
	"github.com/matzehuels/gentree/pkg/lineage"
	"github.com/matzehuels/gentree/pkg/ordering"
)

type edgeCall struct {
	From, To   string
	Bent       bool
	ToX, ToY   float64
	BendOffset float64
}

type recordingSink struct {
	nodes    []Node
	edges    []edgeCall
	closed   int
	failAt   int // fail the n-th AddNode call (1-based); 0 never fails
	addCalls int
}

func (s *recordingSink) AddNode(n Node) error {
	s.addCalls++
	if s.failAt > 0 && s.addCalls == s.failAt {
		return errors.New("disk full")
	}
	s.nodes = append(s.nodes, n)
	return nil
}

func (s *recordingSink) AddStraightEdge(from, to string) error {
	s.edges = append(s.edges, edgeCall{From: from, To: to})
	return nil
}

func (s *recordingSink) AddBentEdge(from, to string, toX, toY, off float64) error {
	s.edges = append(s.edges, edgeCall{From: from, To: to, Bent: true, ToX: toX, ToY: toY, BendOffset: off})
	return nil
}

func (s *recordingSink) Close() error {
	s.closed++
	return nil
}

func (s *recordingSink) node(t *testing.T, id string) Node {
	t.Helper()
	for _, n := range s.nodes {
		if n.ID == id {
			return n
		}
	}
	t.Fatalf("node %s not emitted", id)
	return Node{}
}

// forestBuilder adds vertices whose time is one more than their parent's.
type forestBuilder struct {
	t *testing.T
	f *lineage.Forest
}

func newBuilder(t *testing.T) *forestBuilder {
	return &forestBuilder{t: t, f: lineage.New()}
}

func (b *forestBuilder) root(id string) *forestBuilder {
	b.t.Helper()
	if err := b.f.AddVertex(lineage.Vertex{ID: id, Label: id}); err != nil {
		b.t.Fatal(err)
	}
	return b
}

func (b *forestBuilder) child(parent, id string) *forestBuilder {
	b.t.Helper()
	p, ok := b.f.Vertex(parent)
	if !ok {
		b.t.Fatalf("unknown parent %s", parent)
	}
	if err := b.f.AddVertex(lineage.Vertex{ID: id, Label: id, Time: p.Time + 1}); err != nil {
		b.t.Fatal(err)
	}
	if err := b.f.AddEdge(parent, id); err != nil {
		b.t.Fatal(err)
	}
	return b
}

// chain appends n vertices below parent and returns the last ID.
func (b *forestBuilder) chain(parent, prefix string, n int) string {
	prev := parent
	for i := 0; i < n; i++ {
		id := prefix + strconv.Itoa(i)
		b.child(prev, id)
		prev = id
	}
	return prev
}

func walkAll(t *testing.T, f *lineage.Forest, sorter ordering.Sorter, cfg Config) (*recordingSink, Result) {
	t.Helper()
	sink := &recordingSink{}
	res, err := Walk(f, f.Roots(nil), nil, sorter, sink, cfg)
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if sink.closed != 1 {
		t.Fatalf("Close called %d times, want 1", sink.closed)
	}
	return sink, res
}

func TestWalkCompressesLongChain(t *testing.T) {
	b := newBuilder(t).root("r")
	leaf := b.chain("r", "c", 49)

	sink, res := walkAll(t, b.f, nil, DefaultConfig())

	if len(sink.nodes) != 2 || len(sink.edges) != 1 {
		t.Fatalf("got %d nodes, %d edges; want 2, 1", len(sink.nodes), len(sink.edges))
	}
	r, l := sink.node(t, "r"), sink.node(t, leaf)
	if r.Y != 0 || l.Y != DefaultLineStep {
		t.Errorf("Y = (%g, %g), want (0, %g)", r.Y, l.Y, DefaultLineStep)
	}
	if r.X != 25 || l.X != 25 {
		t.Errorf("X = (%g, %g), want (25, 25)", r.X, l.X)
	}
	if r.Kind != KindRoot || l.Kind != KindLeaf {
		t.Errorf("kinds = (%v, %v), want (root, leaf)", r.Kind, l.Kind)
	}
	if sink.edges[0] != (edgeCall{From: "r", To: leaf}) {
		t.Errorf("edge = %+v, want r->%s", sink.edges[0], leaf)
	}
	if res.Visited != 50 || res.Compressed != 48 || res.Leaves != 1 {
		t.Errorf("stats = %+v", res.Stats)
	}
	if res.Width != DefaultColumnWidth {
		t.Errorf("Width = %g, want %g", res.Width, DefaultColumnWidth)
	}
}

func TestWalkChainHeadIdentity(t *testing.T) {
	b := newBuilder(t).root("r")
	b.chain("r", "c", 49)
	cfg := DefaultConfig()
	cfg.Identity = IdentityChainHead

	sink, res := walkAll(t, b.f, nil, cfg)

	if len(sink.nodes) != 1 || len(sink.edges) != 0 {
		t.Fatalf("got %d nodes, %d edges; want 1, 0", len(sink.nodes), len(sink.edges))
	}
	if n := sink.nodes[0]; n.ID != "r" || n.Y != 0 {
		t.Errorf("node = %+v, want r at y=0", n)
	}
	if res.Compressed != 49 {
		t.Errorf("Compressed = %d, want 49", res.Compressed)
	}
}

// binaryTree builds R -> {Rb, Ra} -> {..b, ..a}, inserting later labels first.
func binaryTree(t *testing.T) *lineage.Forest {
	b := newBuilder(t).root("R")
	for _, d := range []string{"Rb", "Ra"} {
		b.child("R", d)
		b.child(d, d+"b")
		b.child(d, d+"a")
	}
	return b.f
}

func TestWalkBinaryTreeLabelOrder(t *testing.T) {
	f := binaryTree(t)
	sorter := ordering.NewComparatorSorter(ordering.LabelClassifier{})

	sink, res := walkAll(t, f, sorter, DefaultConfig())

	if len(sink.nodes) != 7 || len(sink.edges) != 6 {
		t.Fatalf("got %d nodes, %d edges; want 7, 6", len(sink.nodes), len(sink.edges))
	}
	want := map[string]struct{ x, y float64 }{
		"Raa": {25, 200}, "Rab": {75, 200}, "Rba": {125, 200}, "Rbb": {175, 200},
		"Ra": {50, 100}, "Rb": {150, 100},
		"R": {100, 0},
	}
	for id, pos := range want {
		n := sink.node(t, id)
		if n.X != pos.x || n.Y != pos.y {
			t.Errorf("%s at (%g, %g), want (%g, %g)", id, n.X, n.Y, pos.x, pos.y)
		}
	}

	// Left to right order follows alphabetical labels at every division.
	for _, sibs := range [][]string{{"Ra", "Rb"}, {"Raa", "Rab"}, {"Rba", "Rbb"}} {
		if sink.node(t, sibs[0]).X >= sink.node(t, sibs[1]).X {
			t.Errorf("%s not left of %s", sibs[0], sibs[1])
		}
	}
	if res.Divisions != 3 || res.Leaves != 4 || res.MaxGeneration != 2 {
		t.Errorf("stats = %+v", res.Stats)
	}
	if res.Width != 200 || res.Height != 200 {
		t.Errorf("size = %gx%g, want 200x200", res.Width, res.Height)
	}
}

func TestWalkIdentityKeepsGraphOrder(t *testing.T) {
	sink, _ := walkAll(t, binaryTree(t), ordering.Identity{}, DefaultConfig())
	if sink.node(t, "Rb").X >= sink.node(t, "Ra").X {
		t.Error("identity sorter should keep Rb (inserted first) on the left")
	}
}

func TestWalkDivisionUsesOutermostDaughters(t *testing.T) {
	// D has three daughters; the middle one has a wide subtree.
	b := newBuilder(t).root("D")
	b.child("D", "a").child("D", "b").child("D", "c")
	b.child("b", "b1").child("b", "b2").child("b", "b3")

	sink, _ := walkAll(t, b.f, nil, DefaultConfig())

	// a: 25, b: 50..200 (centre 125), c: 225. D sits between a and c.
	if got := sink.node(t, "D").X; got != 125 {
		t.Errorf("D.X = %g, want 125", got)
	}
	if got := sink.node(t, "c").X; got != 225 {
		t.Errorf("c.X = %g, want 225", got)
	}
}

func TestWalkChainCompressionIdempotent(t *testing.T) {
	build := func(pad int) *lineage.Forest {
		b := newBuilder(t).root("D")
		b.child("D", "left")
		end := b.chain("D", "pad", pad)
		b.child(end, "right")
		return b.f
	}

	base, _ := walkAll(t, build(0), nil, DefaultConfig())
	for _, pad := range []int{1, 5, 40} {
		got, _ := walkAll(t, build(pad), nil, DefaultConfig())
		if !slices.Equal(got.nodes, base.nodes) {
			t.Errorf("pad %d: nodes %+v, want %+v", pad, got.nodes, base.nodes)
		}
		if !slices.Equal(got.edges, base.edges) {
			t.Errorf("pad %d: edges %+v, want %+v", pad, got.edges, base.edges)
		}
	}
}

func randomForest(rng *rand.Rand, roots, size int) *lineage.Forest {
	f := lineage.New()
	var open []*lineage.Vertex
	for i := 0; i < roots; i++ {
		v := lineage.Vertex{ID: fmt.Sprintf("r%d", i), Label: fmt.Sprintf("r%d", i), Time: rng.Intn(3)}
		_ = f.AddVertex(v)
		vx, _ := f.Vertex(v.ID)
		open = append(open, vx)
	}
	for f.VertexCount() < size && len(open) > 0 {
		k := rng.Intn(len(open))
		p := open[k]
		open = slices.Delete(open, k, k+1)
		kids := []int{1, 1, 1, 2, 2, 3, 0}[rng.Intn(7)]
		for j := 0; j < kids; j++ {
			id := fmt.Sprintf("%s.%d", p.ID, j)
			_ = f.AddVertex(lineage.Vertex{ID: id, Label: id, Time: p.Time + 1 + rng.Intn(2)})
			_ = f.AddEdge(p.ID, id)
			c, _ := f.Vertex(id)
			open = append(open, c)
		}
	}
	return f
}

func TestWalkForestCompletenessAndNonOverlap(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	sorter := ordering.NewComparatorSorter(ordering.LabelClassifier{})
	for trial := 0; trial < 25; trial++ {
		f := randomForest(rng, 1+rng.Intn(4), 40+rng.Intn(200))
		sink, res := walkAll(t, f, sorter, DefaultConfig())

		if res.Visited != f.VertexCount() {
			t.Fatalf("trial %d: visited %d of %d vertices", trial, res.Visited, f.VertexCount())
		}
		if res.Nodes+res.Compressed != f.VertexCount() {
			t.Fatalf("trial %d: %d nodes + %d compressed != %d vertices", trial, res.Nodes, res.Compressed, f.VertexCount())
		}
		seen := map[string]bool{}
		for _, n := range sink.nodes {
			if seen[n.ID] {
				t.Fatalf("trial %d: node %s emitted twice", trial, n.ID)
			}
			seen[n.ID] = true
		}

		// Leaves occupy distinct columns; with daughters laid out left to
		// right, sibling subtrees cannot overlap.
		cols := map[float64]string{}
		for _, n := range sink.nodes {
			if n.Kind != KindLeaf {
				continue
			}
			if other, ok := cols[n.X]; ok {
				t.Fatalf("trial %d: leaves %s and %s share x=%g", trial, other, n.ID, n.X)
			}
			cols[n.X] = n.ID
		}
		if len(cols) != res.Leaves || res.Width != float64(res.Leaves)*DefaultColumnWidth {
			t.Fatalf("trial %d: %d leaf columns, width %g", trial, len(cols), res.Width)
		}

		byID := map[string]Node{}
		for _, n := range sink.nodes {
			byID[n.ID] = n
		}
		lastX := map[string]float64{}
		for _, e := range sink.edges {
			x := byID[e.To].X
			if prev, ok := lastX[e.From]; ok && x <= prev {
				t.Fatalf("trial %d: daughters of %s not left to right", trial, e.From)
			}
			lastX[e.From] = x
		}
	}
}

func TestWalkNonForestSkipsRoot(t *testing.T) {
	b := newBuilder(t).root("r1").root("r2").root("r3")
	b.child("r1", "m")
	if err := b.f.AddEdge("r2", "m"); err != nil {
		t.Fatal(err)
	}
	b.child("r3", "x").child("r3", "y")

	sink := &recordingSink{}
	res, err := Walk(b.f, b.f.Roots(nil), nil, nil, sink, DefaultConfig())

	if !gerrors.Is(err, gerrors.ErrCodeNonForestInput) || !errors.Is(err, lineage.ErrNonForest) {
		t.Fatalf("err = %v, want NON_FOREST_INPUT", err)
	}
	if !slices.Equal(res.Failed, []string{"r1", "r2"}) {
		t.Errorf("Failed = %v, want [r1 r2]", res.Failed)
	}
	if sink.closed != 1 {
		t.Errorf("Close called %d times, want 1", sink.closed)
	}
	if len(sink.nodes) != 3 {
		t.Fatalf("got %d nodes, want only r3's three", len(sink.nodes))
	}
	if x := sink.node(t, "x").X; x != 25 {
		t.Errorf("x.X = %g, want 25 (failed roots take no width)", x)
	}
	if res.Roots != 1 {
		t.Errorf("Roots = %d, want 1", res.Roots)
	}
}

func TestWalkSinkFailureAborts(t *testing.T) {
	b := newBuilder(t).root("a").root("b").root("c")
	sink := &recordingSink{failAt: 2}

	res, err := Walk(b.f, b.f.Roots(nil), nil, nil, sink, DefaultConfig())

	if !gerrors.Is(err, gerrors.ErrCodeSinkFailure) {
		t.Fatalf("err = %v, want SINK_FAILURE", err)
	}
	if sink.addCalls != 2 {
		t.Errorf("AddNode called %d times, want 2", sink.addCalls)
	}
	if sink.closed != 1 {
		t.Errorf("Close called %d times, want 1", sink.closed)
	}
	if res.Roots != 1 {
		t.Errorf("Roots = %d, want 1", res.Roots)
	}
}

func TestWalkEdgeModes(t *testing.T) {
	tests := []struct {
		mode   EdgeMode
		bent   bool
		offset float64
	}{
		{EdgeStraight, false, 0},
		{EdgeRectangular, true, -DefaultLineStep},
		{EdgeBent, true, DefaultBendOffsetY},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			b := newBuilder(t).root("D")
			b.child("D", "a").child("D", "b")
			cfg := DefaultConfig()
			cfg.EdgeMode = tt.mode

			sink, _ := walkAll(t, b.f, nil, cfg)

			if len(sink.edges) != 2 {
				t.Fatalf("got %d edges, want 2", len(sink.edges))
			}
			e := sink.edges[1]
			if e.Bent != tt.bent || e.BendOffset != tt.offset {
				t.Errorf("edge = %+v, want bent=%v offset=%g", e, tt.bent, tt.offset)
			}
			if tt.bent && (e.ToX != 75 || e.ToY != DefaultLineStep) {
				t.Errorf("bend target = (%g, %g), want (75, %g)", e.ToX, e.ToY, DefaultLineStep)
			}
		})
	}
}

func TestWalkEligibility(t *testing.T) {
	b := newBuilder(t).root("D")
	b.child("D", "a").child("D", "b")

	sink := &recordingSink{}
	res, err := Walk(b.f, b.f.Roots(nil), lineage.Selection("D", "a"), nil, sink, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	// Without b, D is no longer a division but the head of a chain to a.
	if len(sink.nodes) != 2 || res.Divisions != 0 {
		t.Fatalf("nodes = %+v, divisions = %d", sink.nodes, res.Divisions)
	}
	if sink.node(t, "D").Kind != KindRoot {
		t.Error("D should be drawn as a root above its chain")
	}
}

func TestWalkColours(t *testing.T) {
	f := lineage.New()
	_ = f.AddVertex(lineage.Vertex{ID: "a", Color: 0xFF0000})
	_ = f.AddVertex(lineage.Vertex{ID: "b"})

	sink, _ := walkAll(t, f, nil, DefaultConfig())

	if c := sink.node(t, "a").Color; c != 0xFF0000 {
		t.Errorf("a colour = %#x, want 0xff0000", c)
	}
	if c := sink.node(t, "b").Color; c != DefaultNodeColor {
		t.Errorf("b colour = %#x, want default", c)
	}
	if n := sink.node(t, "b"); n.Width != DefaultNodeWidth || n.Height != DefaultNodeHeight {
		t.Errorf("b size = %gx%g", n.Width, n.Height)
	}
}

func TestWalkInvalidConfigStillCloses(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ColumnWidth = 0
	sink := &recordingSink{}

	_, err := Walk(lineage.New(), nil, nil, nil, sink, cfg)

	if !gerrors.Is(err, gerrors.ErrCodeInvalidConfig) {
		t.Errorf("err = %v, want INVALID_CONFIG", err)
	}
	if sink.closed != 1 {
		t.Errorf("Close called %d times, want 1", sink.closed)
	}
}

func TestWalkNilSink(t *testing.T) {
	_, err := Walk(lineage.New(), nil, nil, nil, nil, DefaultConfig())
	if !gerrors.Is(err, gerrors.ErrCodeInvalidInput) {
		t.Errorf("err = %v, want INVALID_INPUT", err)
	}
}
