// Package pkg provides the core libraries for gentree lineage diagrams.
//
// # Overview
//
// gentree turns a cell tracking graph (cells at discrete time points, linked
// to their predecessors) into a 2-D genealogy diagram: one node per
// division, leaf and root, laid out generation by generation, with the
// daughters of every division ordered by a configurable strategy.
//
// # Architecture
//
// The typical data flow:
//
//	forest.json
//	     ↓
//	[lineage] (tracking graph, eligibility, roots)
//	     ↓
//	[ordering] (daughter sorters: trackscheme, alphanumeric, poles, slices, triangle)
//	     ↓
//	[layout] (chain-compressing walk, draw calls to a Sink)
//	     ↓
//	[sink] (Recorder → Diagram → SVG, JSON, DOT, GraphML, PDF, PNG)
//
// # Quick Start
//
//	f, _ := lineage.ReadForestFile("forest.json")
//	sorter, _ := ordering.Resolve(ordering.Poles{North: "N", South: "S", Centre: "C"}, f.FindByLabel)
//
//	rec := sink.NewRecorder()
//	_, err := layout.Walk(f, f.Roots(nil), nil, sorter, rec, layout.DefaultConfig())
//	svg := sink.RenderSVG(rec.Diagram())
//
// # Main Packages
//
// [lineage] - The tracking graph. Edges are stored undirected and split into
// earlier and later neighbours by time index. [lineage/transform] prunes
// isolated vertices, persists a daughter order and adds anchor markers.
//
// [ordering] - Strategies and classifiers for ordering the daughters of a
// division, including the geometric poles, slices and triangle classifiers.
//
// [layout] - The traversal that assigns coordinates and emits draw calls.
//
// [sink] - Draw-call consumers and the output formats built on them.
//
// [pipeline] - Load → layout → render with caching, used by the CLI.
//
// [cache] - File and null caches with content-addressed keys.
//
// [observability] - Pipeline and cache hooks; [observability/prom] exports
// them as Prometheus metrics.
//
// [errors] - Coded errors shared by every package.
//
// [render] - SVG to PDF/PNG conversion through rsvg-convert.
//
// [lineage]: https://pkg.go.dev/github.com/matzehuels/gentree/pkg/lineage
// [lineage/transform]: https://pkg.go.dev/github.com/matzehuels/gentree/pkg/lineage/transform
// [ordering]: https://pkg.go.dev/github.com/matzehuels/gentree/pkg/ordering
// [layout]: https://pkg.go.dev/github.com/matzehuels/gentree/pkg/layout
// [sink]: https://pkg.go.dev/github.com/matzehuels/gentree/pkg/sink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/gentree/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/gentree/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/gentree/pkg/observability
// [observability/prom]: https://pkg.go.dev/github.com/matzehuels/gentree/pkg/observability/prom
// [errors]: https://pkg.go.dev/github.com/matzehuels/gentree/pkg/errors
// [render]: https://pkg.go.dev/github.com/matzehuels/gentree/pkg/render
package pkg
