package sink

import (
	"bytes"
	"fmt"
)

// DefaultMargin is the padding around the diagram in SVG output.
const DefaultMargin = 20.0

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style  Style
	labels bool
	margin float64
}

func WithStyle(s Style) SVGOption    { return func(r *svgRenderer) { r.style = s } }
func WithLabels(show bool) SVGOption { return func(r *svgRenderer) { r.labels = show } }
func WithMargin(m float64) SVGOption { return func(r *svgRenderer) { r.margin = max(0, m) } }

// RenderSVG draws the diagram. Edges are drawn below nodes and labels on
// top. The view box covers every node and bend point plus the margin.
func RenderSVG(d Diagram, opts ...SVGOption) []byte {
	r := svgRenderer{style: Simple{}, labels: true, margin: DefaultMargin}
	for _, opt := range opts {
		opt(&r)
	}

	b := d.Bounds()
	minX, minY := b.MinX-r.margin, b.MinY-r.margin
	w, h := b.MaxX-b.MinX+2*r.margin, b.MaxY-b.MinY+2*r.margin

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.2f %.2f %.2f %.2f" width="%.0f" height="%.0f">`+"\n",
		minX, minY, w, h, w, h)
	r.style.RenderDefs(&buf)

	pos := make(map[string]Node, len(d.Nodes))
	for _, n := range d.Nodes {
		pos[n.ID] = n
	}
	for _, e := range d.Edges {
		from, okF := pos[e.From]
		to, okT := pos[e.To]
		if !okF || !okT {
			continue
		}
		r.style.RenderEdge(&buf, e, edgePoints(e, from, to))
	}
	for _, n := range d.Nodes {
		r.style.RenderNode(&buf, n)
	}
	if r.labels {
		for _, n := range d.Nodes {
			r.style.RenderText(&buf, n)
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// edgePoints returns the polyline of an edge: source, bend if any, target.
func edgePoints(e Edge, from, to Node) [][2]float64 {
	if !e.Bent {
		return [][2]float64{{from.X, from.Y}, {to.X, to.Y}}
	}
	bx, by := e.Bend()
	return [][2]float64{{from.X, from.Y}, {bx, by}, {to.X, to.Y}}
}
