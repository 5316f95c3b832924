// Package sink provides the output side of a lineage layout.
//
// [layout.Walk] emits draw calls into a [layout.Sink]. This package offers
// the sinks used by gentree itself:
//
//   - [Recorder] collects the calls into a [Diagram], the interchange form
//     every renderer works from
//   - [Tee] fans calls out to several sinks
//   - [Logging] traces calls through a charmbracelet logger
//
// A Diagram can be written as JSON ([RenderJSON], read back with
// [ReadDiagram]), SVG ([RenderSVG]), Graphviz DOT ([ToDOT],
// [RenderGraphviz]), yEd GraphML ([RenderGraphML]), or converted to PDF and
// PNG through rsvg-convert ([RenderPDF], [RenderPNG]).
//
// # Coordinates
//
// Diagram coordinates grow right and down: X is the node centre, Y the
// generation times the line step. Bent edges carry the target position and
// the bend offset; the bend point is (ToX, ToY+BendOffsetY).
package sink
