// Package lineage models a cell-lineage tracking graph: objects observed at
// discrete time points, linked across time, branching at divisions.
//
// # Overview
//
// A [Forest] holds [Vertex] values (one tracked object at one time point)
// and undirected [Edge] links between vertices at different time points.
// The direction of an edge is never taken from storage: a neighbour with a
// greater [Vertex.Time] is "later", one with a smaller time is "earlier".
//
//	f := lineage.New()
//	f.AddVertex(lineage.Vertex{ID: "1", Label: "AB", Time: 0})
//	f.AddVertex(lineage.Vertex{ID: "2", Label: "ABa", Time: 1})
//	f.AddEdge("2", "1")
//	f.Later("1") // [ABa]
//
// # Forest Invariant
//
// Every vertex has at most one earlier neighbour, so descending through
// later neighbours never revisits a vertex. [Forest.Validate] reports
// [ErrNonForest] for merges. Layout code also detects merges on the fly.
//
// Terms used across gentree:
//
//   - Root: an eligible vertex without eligible earlier neighbours ([Forest.Roots])
//   - Division: a vertex with two or more later neighbours
//   - Leaf: a vertex without later neighbours
//   - Chain: a run of vertices with exactly one later neighbour each
//
// # Eligibility
//
// An [Eligibility] predicate restricts a run to a subset of vertices, such as
// a user selection ([Selection]). A nil predicate and [All] admit every vertex.
//
// # Serialization
//
// [ReadForest] and [WriteForest] use a small JSON document with "vertices"
// and "edges" arrays. It is the input format of the gentree CLI.
package lineage
