package lineage

import (
	"errors"
	"fmt"
	"slices"

	"gonum.org/v1/gonum/spatial/r3"
)

var (
	// ErrInvalidVertexID is returned by [Forest.AddVertex] when the vertex ID
	// is empty.
	ErrInvalidVertexID = errors.New("vertex ID must not be empty")

	// ErrDuplicateVertexID is returned by [Forest.AddVertex] when a vertex
	// with the same ID already exists in the forest.
	ErrDuplicateVertexID = errors.New("duplicate vertex ID")

	// ErrUnknownVertex is returned by [Forest.AddEdge] and
	// [Forest.SetLaterOrder] when an ID does not name a vertex of the forest.
	ErrUnknownVertex = errors.New("unknown vertex")

	// ErrSameTimepoint is returned by [Forest.AddEdge] when both endpoints
	// have the same time index. Edges are interpreted as earlier → later by
	// time, so such an edge has no direction.
	ErrSameTimepoint = errors.New("edge endpoints share a time point")

	// ErrNonForest is returned by [Forest.Validate] when a vertex has more
	// than one earlier-time neighbour (a merge).
	ErrNonForest = errors.New("vertex has more than one earlier neighbour")
)

// Vertex is one tracked object at one time point.
//
// The layout core only reads vertices; it never mutates them.
type Vertex struct {
	ID    string // Stable unique identifier
	Label string // Display label, also used for label ordering and anchor lookup
	Time  int    // Discrete time index
	Pos   r3.Vec // Position in space
	Color uint32 // Pre-computed 0xRRGGBB colour; 0 selects the layout default
}

// Edge links two vertices at different time points. Storage is undirected:
// A and B are kept in insertion order and carry no earlier/later meaning.
type Edge struct {
	A string
	B string
}

// Forest is a tracking graph: vertices linked across time points.
//
// Edges are stored undirected and classified into earlier and later
// neighbours by comparing [Vertex.Time]. In a well-formed lineage every
// vertex has at most one earlier neighbour; [Forest.Validate] checks that.
//
// The zero value is not usable - use [New].
// Forest is safe for concurrent reads once fully built.
type Forest struct {
	vertices map[string]*Vertex
	order    []*Vertex      // insertion order
	index    map[string]int // id -> insertion position
	adj      map[string][]string
	edges    []Edge
}

// New creates an empty forest.
func New() *Forest {
	return &Forest{
		vertices: make(map[string]*Vertex),
		index:    make(map[string]int),
		adj:      make(map[string][]string),
	}
}

// AddVertex adds a vertex. Returns [ErrInvalidVertexID] for an empty ID or
// [ErrDuplicateVertexID] if the ID is already used.
func (f *Forest) AddVertex(v Vertex) error {
	if v.ID == "" {
		return ErrInvalidVertexID
	}
	if _, exists := f.vertices[v.ID]; exists {
		return ErrDuplicateVertexID
	}
	vx := &v
	f.vertices[v.ID] = vx
	f.index[v.ID] = len(f.order)
	f.order = append(f.order, vx)
	return nil
}

// AddEdge links two existing vertices. Returns [ErrUnknownVertex] if either
// endpoint is missing and [ErrSameTimepoint] if both share a time index.
//
// AddEdge does not check the forest invariant; use [Forest.Validate].
func (f *Forest) AddEdge(a, b string) error {
	va, ok := f.vertices[a]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownVertex, a)
	}
	vb, ok := f.vertices[b]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownVertex, b)
	}
	if va.Time == vb.Time {
		return ErrSameTimepoint
	}
	f.edges = append(f.edges, Edge{A: a, B: b})
	f.adj[a] = append(f.adj[a], b)
	f.adj[b] = append(f.adj[b], a)
	return nil
}

// RemoveEdge removes the first edge between a and b, in either direction.
// No error is returned if there is no such edge.
func (f *Forest) RemoveEdge(a, b string) {
	i := slices.IndexFunc(f.edges, func(e Edge) bool {
		return (e.A == a && e.B == b) || (e.A == b && e.B == a)
	})
	if i < 0 {
		return
	}
	f.edges = slices.Delete(f.edges, i, i+1)
	f.adj[a] = removeFirst(f.adj[a], b)
	f.adj[b] = removeFirst(f.adj[b], a)
}

// RemoveVertex removes a vertex and every edge touching it. Returns
// [ErrUnknownVertex] if id is not in the forest.
func (f *Forest) RemoveVertex(id string) error {
	if _, ok := f.vertices[id]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownVertex, id)
	}
	for _, n := range slices.Clone(f.adj[id]) {
		f.RemoveEdge(id, n)
	}
	delete(f.adj, id)
	delete(f.vertices, id)
	i := f.index[id]
	f.order = slices.Delete(f.order, i, i+1)
	delete(f.index, id)
	for j := i; j < len(f.order); j++ {
		f.index[f.order[j].ID] = j
	}
	return nil
}

func removeFirst(s []string, v string) []string {
	if i := slices.Index(s, v); i >= 0 {
		return slices.Delete(s, i, i+1)
	}
	return s
}

// Vertex returns the vertex with the given ID.
func (f *Forest) Vertex(id string) (*Vertex, bool) {
	v, ok := f.vertices[id]
	return v, ok
}

// Vertices returns all vertices in insertion order.
func (f *Forest) Vertices() []*Vertex { return slices.Clone(f.order) }

// Edges returns a copy of all edges in insertion order.
func (f *Forest) Edges() []Edge { return slices.Clone(f.edges) }

// VertexCount returns the number of vertices.
func (f *Forest) VertexCount() int { return len(f.order) }

// EdgeCount returns the number of edges.
func (f *Forest) EdgeCount() int { return len(f.edges) }

// Neighbours returns all vertices linked to id, in edge insertion order.
func (f *Forest) Neighbours(id string) []*Vertex {
	return f.neighbours(id, func(*Vertex, *Vertex) bool { return true })
}

// Later returns the neighbours of id with a greater time index, in edge
// insertion order. Returns nil for an unknown ID.
func (f *Forest) Later(id string) []*Vertex {
	return f.neighbours(id, func(self, n *Vertex) bool { return n.Time > self.Time })
}

// Earlier returns the neighbours of id with a smaller time index, in edge
// insertion order. Returns nil for an unknown ID.
func (f *Forest) Earlier(id string) []*Vertex {
	return f.neighbours(id, func(self, n *Vertex) bool { return n.Time < self.Time })
}

func (f *Forest) neighbours(id string, keep func(self, n *Vertex) bool) []*Vertex {
	self, ok := f.vertices[id]
	if !ok {
		return nil
	}
	var out []*Vertex
	for _, nid := range f.adj[id] {
		if n := f.vertices[nid]; keep(self, n) {
			out = append(out, n)
		}
	}
	return out
}

// Roots returns the eligible vertices that have no eligible earlier
// neighbour, ordered by time and then by insertion order.
// A nil eligibility admits every vertex.
func (f *Forest) Roots(elig Eligibility) []*Vertex {
	var roots []*Vertex
	for _, v := range f.order {
		if !elig.Allows(v) {
			continue
		}
		if !slices.ContainsFunc(f.Earlier(v.ID), elig.Allows) {
			roots = append(roots, v)
		}
	}
	slices.SortStableFunc(roots, func(a, b *Vertex) int { return a.Time - b.Time })
	return roots
}

// FindByLabel returns the first vertex, in insertion order, carrying label.
func (f *Forest) FindByLabel(label string) (*Vertex, bool) {
	for _, v := range f.order {
		if v.Label == label {
			return v, true
		}
	}
	return nil, false
}

// TimeRange returns the smallest and largest time index in the forest.
// Both are 0 for an empty forest.
func (f *Forest) TimeRange() (lo, hi int) {
	for i, v := range f.order {
		if i == 0 || v.Time < lo {
			lo = v.Time
		}
		if i == 0 || v.Time > hi {
			hi = v.Time
		}
	}
	return lo, hi
}

// SetLaterOrder reorders the later neighbours of id so that they are
// reported by [Forest.Later] in the order given by ids. Neighbours not
// listed keep their relative order after the listed ones.
func (f *Forest) SetLaterOrder(id string, ids []string) error {
	self, ok := f.vertices[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownVertex, id)
	}
	rank := make(map[string]int, len(ids))
	for i, d := range ids {
		n, ok := f.vertices[d]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownVertex, d)
		}
		if n.Time <= self.Time || !slices.Contains(f.adj[id], d) {
			return fmt.Errorf("%s is not a later neighbour of %s", d, id)
		}
		rank[d] = i
	}

	var earlier, later []string
	for _, nid := range f.adj[id] {
		if f.vertices[nid].Time < self.Time {
			earlier = append(earlier, nid)
		} else {
			later = append(later, nid)
		}
	}
	slices.SortStableFunc(later, func(a, b string) int {
		ra, oka := rank[a]
		rb, okb := rank[b]
		switch {
		case oka && okb:
			return ra - rb
		case oka:
			return -1
		case okb:
			return 1
		}
		return 0
	})
	f.adj[id] = append(earlier, later...)
	return nil
}

// Clone returns a deep copy of the forest. Vertex structs are copied, so
// the clone can be modified without affecting f.
func (f *Forest) Clone() *Forest {
	c := New()
	for _, v := range f.order {
		_ = c.AddVertex(*v)
	}
	c.edges = slices.Clone(f.edges)
	for id, ns := range f.adj {
		c.adj[id] = slices.Clone(ns)
	}
	return c
}

// Validate reports [ErrNonForest] for every vertex with more than one
// earlier neighbour, joined into one error. Returns nil for a valid forest.
func (f *Forest) Validate() error {
	var errs []error
	for _, v := range f.order {
		if n := len(f.Earlier(v.ID)); n > 1 {
			errs = append(errs, fmt.Errorf("%w: %s has %d", ErrNonForest, v.ID, n))
		}
	}
	return errors.Join(errs...)
}
