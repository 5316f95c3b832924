package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
)

// Style defines how diagram elements are drawn in SVG.
type Style interface {
	// RenderDefs writes SVG <defs> content.
	RenderDefs(buf *bytes.Buffer)
	RenderNode(buf *bytes.Buffer, n Node)
	// RenderEdge writes one edge; points holds the polyline from the
	// source centre to the target centre, bend included.
	RenderEdge(buf *bytes.Buffer, e Edge, points [][2]float64)
	RenderText(buf *bytes.Buffer, n Node)
}

// Simple draws filled circles in the vertex colour with dark outlines.
type Simple struct{}

func (Simple) RenderDefs(buf *bytes.Buffer) {}

func (Simple) RenderNode(buf *bytes.Buffer, n Node) {
	fmt.Fprintf(buf, `  <ellipse id="node-%s" class="node %s" cx="%.2f" cy="%.2f" rx="%.2f" ry="%.2f" fill="%s" stroke="#333333" stroke-width="1.5"/>`+"\n",
		escapeXML(n.ID), n.Kind, n.X, n.Y, n.Width/2, n.Height/2, hexColor(n.Color))
}

func (Simple) RenderEdge(buf *bytes.Buffer, e Edge, points [][2]float64) {
	fmt.Fprintf(buf, `  <polyline class="edge" points="%s" fill="none" stroke="#555555" stroke-width="1.5"/>`+"\n", polyline(points))
}

func (Simple) RenderText(buf *bytes.Buffer, n Node) {
	renderLabel(buf, n, "#000000")
}

// Mono draws hollow black-and-white boxes, suitable for print.
type Mono struct{}

func (Mono) RenderDefs(buf *bytes.Buffer) {}

func (Mono) RenderNode(buf *bytes.Buffer, n Node) {
	fmt.Fprintf(buf, `  <rect id="node-%s" class="node %s" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="#ffffff" stroke="#000000" stroke-width="1"/>`+"\n",
		escapeXML(n.ID), n.Kind, n.X-n.Width/2, n.Y-n.Height/2, n.Width, n.Height)
}

func (Mono) RenderEdge(buf *bytes.Buffer, e Edge, points [][2]float64) {
	fmt.Fprintf(buf, `  <polyline class="edge" points="%s" fill="none" stroke="#000000" stroke-width="1"/>`+"\n", polyline(points))
}

func (Mono) RenderText(buf *bytes.Buffer, n Node) {
	renderLabel(buf, n, "#000000")
}

// StyleByName returns "simple" or "mono".
func StyleByName(name string) (Style, bool) {
	switch name {
	case "", "simple":
		return Simple{}, true
	case "mono":
		return Mono{}, true
	}
	return nil, false
}

const (
	fontSizeMin = 8.0
	fontSizeMax = 14.0
)

func renderLabel(buf *bytes.Buffer, n Node, fill string) {
	size := max(fontSizeMin, min(fontSizeMax, n.Height*0.4))
	fmt.Fprintf(buf, `  <text class="label" x="%.2f" y="%.2f" font-family="Helvetica, Arial, sans-serif" font-size="%.1f" text-anchor="middle" dominant-baseline="central" fill="%s">%s</text>`+"\n",
		n.X, n.Y, size, fill, escapeXML(n.Label))
}

func polyline(points [][2]float64) string {
	var buf bytes.Buffer
	for i, p := range points {
		if i > 0 {
			buf.WriteByte(' ')
		}
		fmt.Fprintf(&buf, "%.2f,%.2f", p[0], p[1])
	}
	return buf.String()
}

func hexColor(c uint32) string {
	return fmt.Sprintf("#%06x", c&0xFFFFFF)
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
