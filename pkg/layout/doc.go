// Package layout turns a lineage forest into a positioned 2-D diagram.
//
// # Overview
//
// The vertical axis of the diagram is generation depth, not time: [Walk]
// follows each root down its chain of single-daughter vertices without
// drawing them and only stops at divisions and leaves. At a division the
// daughters are ordered by an [ordering.Sorter] and laid out left to right.
//
// Widths are computed bottom-up while the recursion returns:
//
//   - a leaf is one column wide ([Config.ColumnWidth]) and sits in the middle
//     of its column
//   - a division is as wide as all its daughter subtrees together and sits
//     halfway between its first and last daughter
//
// y is the generation times [Config.LineStep].
//
// # Sinks
//
// The walker emits draw calls to a [Sink]: one AddNode per surviving vertex
// and one edge per surviving parent/daughter pair. Whether edges are straight
// or bent is chosen by [Config.EdgeMode]; the walker only supplies the
// endpoints and the bend offset. Sink implementations live in package sink.
//
// # Node identity
//
// With [IdentityEndpoint] (the default) every chain keeps its endpoints, so a
// lone chain of fifty vertices becomes two nodes joined by one edge. With
// [IdentityChainHead] each chain collapses into a single node named after its
// first vertex.
//
// # Errors
//
// Merges (a vertex with two eligible earlier neighbours) abort only the
// affected root, with a NON_FOREST_INPUT error. Sink errors abort the walk.
package layout
