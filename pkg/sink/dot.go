package sink

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	gerrors "github.com/matzehuels/gentree/pkg/errors"
)

// points per inch, the unit Graphviz uses for node sizes.
const pointsPerInch = 72.0

// ToDOT converts a diagram to Graphviz DOT with every node pinned to its
// layout position (pos="x,y!", y flipped since Graphviz grows upward).
// Bent edges are routed through an invisible point node at the bend.
// Render the result with neato, or use [RenderGraphviz].
func ToDOT(d Diagram) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  inputscale=72;\n")
	buf.WriteString("  splines=line;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fixedsize=true, fontsize=10, fontname=\"Helvetica\"];\n")
	buf.WriteString("  edge [arrowhead=none];\n")
	buf.WriteString("\n")

	for _, n := range d.Nodes {
		attrs := []string{
			fmt.Sprintf("label=%q", n.Label),
			fmt.Sprintf("pos=\"%s!\"", dotPos(n.X, n.Y)),
			fmt.Sprintf("fillcolor=%q", hexColor(n.Color)),
			fmt.Sprintf("width=%.3f", n.Width/pointsPerInch),
			fmt.Sprintf("height=%.3f", n.Height/pointsPerInch),
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for i, e := range d.Edges {
		if !e.Bent {
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
			continue
		}
		bend := fmt.Sprintf("bend%d", i)
		bx, by := e.Bend()
		fmt.Fprintf(&buf, "  %q [shape=point, width=0, height=0, label=\"\", pos=\"%s!\"];\n", bend, dotPos(bx, by))
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, bend)
		fmt.Fprintf(&buf, "  %q -> %q;\n", bend, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func dotPos(x, y float64) string {
	return fmt.Sprintf("%.2f,%.2f", x, 0-y)
}

// RenderGraphviz renders the diagram with Graphviz's neato engine, which
// keeps the pinned positions of [ToDOT]. Format is "svg" or "png".
func RenderGraphviz(ctx context.Context, d Diagram, format string) ([]byte, error) {
	var gf graphviz.Format
	switch format {
	case "svg":
		gf = graphviz.SVG
	case "png":
		gf = graphviz.PNG
	default:
		return nil, gerrors.New(gerrors.ErrCodeUnsupported, "graphviz format %q (want svg or png)", format)
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, gerrors.Wrap(gerrors.ErrCodeRendererUnavailable, err, "init graphviz")
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(ToDOT(d)))
	if err != nil {
		return nil, gerrors.Wrap(gerrors.ErrCodeInternal, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, gf, &buf); err != nil {
		return nil, gerrors.Wrap(gerrors.ErrCodeSinkFailure, err, "render %s", format)
	}
	return buf.Bytes(), nil
}
