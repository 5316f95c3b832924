package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
)

// GraphML follows the yEd dialect: node geometry and fill colour live in
// y:ShapeNode, edge bends in y:PolyLineEdge.
const (
	graphmlNS = "http://graphml.graphdrawing.org/xmlns"
	yNS       = "http://www.yworks.com/xml/graphml"
)

type gmlDoc struct {
	XMLName xml.Name `xml:"graphml"`
	NS      string   `xml:"xmlns,attr"`
	Y       string   `xml:"xmlns:y,attr"`
	Keys    []gmlKey `xml:"key"`
	Graph   gmlGraph `xml:"graph"`
}

type gmlKey struct {
	ID    string `xml:"id,attr"`
	For   string `xml:"for,attr"`
	Type  string `xml:"yfiles.type,attr,omitempty"`
	Name  string `xml:"attr.name,attr,omitempty"`
	AType string `xml:"attr.type,attr,omitempty"`
}

type gmlGraph struct {
	ID          string    `xml:"id,attr"`
	EdgeDefault string    `xml:"edgedefault,attr"`
	Nodes       []gmlNode `xml:"node"`
	Edges       []gmlEdge `xml:"edge"`
}

type gmlNode struct {
	ID   string    `xml:"id,attr"`
	Data []gmlData `xml:"data"`
}

type gmlEdge struct {
	ID     string    `xml:"id,attr"`
	Source string    `xml:"source,attr"`
	Target string    `xml:"target,attr"`
	Data   []gmlData `xml:"data"`
}

type gmlData struct {
	Key      string        `xml:"key,attr"`
	Text     string        `xml:",chardata"`
	Shape    *gmlShapeNode `xml:"y:ShapeNode,omitempty"`
	PolyLine *gmlPolyLine  `xml:"y:PolyLineEdge,omitempty"`
}

type gmlShapeNode struct {
	Geometry gmlGeometry `xml:"y:Geometry"`
	Fill     gmlFill     `xml:"y:Fill"`
	Label    string      `xml:"y:NodeLabel"`
	Shape    gmlShape    `xml:"y:Shape"`
}

type gmlGeometry struct {
	X      string `xml:"x,attr"`
	Y      string `xml:"y,attr"`
	Width  string `xml:"width,attr"`
	Height string `xml:"height,attr"`
}

type gmlFill struct {
	Color string `xml:"color,attr"`
}

type gmlShape struct {
	Type string `xml:"type,attr"`
}

type gmlPolyLine struct {
	Path gmlPath `xml:"y:Path"`
}

type gmlPath struct {
	SX     string     `xml:"sx,attr"`
	SY     string     `xml:"sy,attr"`
	TX     string     `xml:"tx,attr"`
	TY     string     `xml:"ty,attr"`
	Points []gmlPoint `xml:"y:Point"`
}

type gmlPoint struct {
	X string `xml:"x,attr"`
	Y string `xml:"y,attr"`
}

func num(f float64) string { return fmt.Sprintf("%.2f", f) }

// RenderGraphML writes the diagram as yEd GraphML. Node geometry is the
// top-left corner and size; bends become polyline points.
func RenderGraphML(d Diagram) ([]byte, error) {
	doc := gmlDoc{
		NS: graphmlNS,
		Y:  yNS,
		Keys: []gmlKey{
			{ID: "d0", For: "node", Type: "nodegraphics"},
			{ID: "d1", For: "node", Name: "label", AType: "string"},
			{ID: "d2", For: "node", Name: "generation", AType: "int"},
			{ID: "d3", For: "edge", Type: "edgegraphics"},
		},
		Graph: gmlGraph{ID: "G", EdgeDefault: "directed"},
	}

	for _, n := range d.Nodes {
		doc.Graph.Nodes = append(doc.Graph.Nodes, gmlNode{
			ID: n.ID,
			Data: []gmlData{
				{Key: "d0", Shape: &gmlShapeNode{
					Geometry: gmlGeometry{
						X:      num(n.X - n.Width/2),
						Y:      num(n.Y - n.Height/2),
						Width:  num(n.Width),
						Height: num(n.Height),
					},
					Fill:  gmlFill{Color: hexColor(n.Color)},
					Label: n.Label,
					Shape: gmlShape{Type: "ellipse"},
				}},
				{Key: "d1", Text: n.Label},
				{Key: "d2", Text: fmt.Sprint(n.Generation)},
			},
		})
	}

	for i, e := range d.Edges {
		ge := gmlEdge{ID: fmt.Sprintf("e%d", i), Source: e.From, Target: e.To}
		if e.Bent {
			bx, by := e.Bend()
			ge.Data = []gmlData{{Key: "d3", PolyLine: &gmlPolyLine{Path: gmlPath{
				SX: "0", SY: "0", TX: "0", TY: "0",
				Points: []gmlPoint{{X: num(bx), Y: num(by)}},
			}}}}
		}
		doc.Graph.Edges = append(doc.Graph.Edges, ge)
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode graphml: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
