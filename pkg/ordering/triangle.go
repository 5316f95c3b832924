package ordering

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/matzehuels/gentree/pkg/lineage"
)

type namedAxis struct {
	name string
	dir  r3.Vec
}

// TriangleClassifier generalizes [PolesClassifier] to three axes: A and B
// point from the centre to two user-chosen vertices, C is their cross
// product. After the layering stage the triangle normal is matched with
// whichever axis it is most parallel or anti-parallel to, and the sign of
// that alignment decides the order.
type TriangleClassifier struct {
	centre, a, b r3.Vec
	axes         []namedAxis // scanned in order C, B, A
	th           Thresholds
	degenerate   bool
}

// NewTriangleClassifier builds a classifier from a centre and two axis
// points. Axis points on top of the centre, or collinear with it, leave the
// axes undefined; the classifier then orders by label.
func NewTriangleClassifier(centre, a, b r3.Vec, th Thresholds) *TriangleClassifier {
	t := &TriangleClassifier{centre: centre, a: a, b: b, th: th.OrDefault()}
	axisA, okA := unit(r3.Sub(a, centre))
	axisB, okB := unit(r3.Sub(b, centre))
	if !okA || !okB {
		t.degenerate = true
		return t
	}
	axisC, okC := unit(r3.Cross(axisA, axisB))
	if !okC {
		t.degenerate = true
		return t
	}
	t.axes = []namedAxis{{"C", axisC}, {"B", axisB}, {"A", axisA}}
	return t
}

// Degenerate reports whether the axes could not be built.
func (t *TriangleClassifier) Degenerate() bool { return t.degenerate }

// Compare implements [Classifier]. Layering is decided from both daughters;
// axis alignment sees the pair in ID order.
func (t *TriangleClassifier) Compare(a, b *lineage.Vertex) Decision {
	if sameVertex(a, b) {
		return Decision{Reason: ReasonIdentical}
	}
	if t.degenerate {
		return degenerate(a, b)
	}
	return layered(a, b, t.centre, t.th, t.tangential)
}

func (t *TriangleClassifier) tangential(a, b *lineage.Vertex) Decision {
	d12, d1c, layerAngle, ok := layering(a.Pos, b.Pos, t.centre)
	if !ok {
		return degenerate(a, b)
	}

	normal, ok := unit(r3.Cross(d12, d1c))
	if !ok {
		return degenerate(a, b)
	}

	best := 90.0
	positive := true
	bestAxis := ""
	bestAngle := 90.0
	for _, ax := range t.axes {
		angle := angleDeg(normal, ax.dir)
		switch {
		case angle < best:
			best, positive, bestAxis, bestAngle = angle, true, ax.name, angle
		case angle > 180-best:
			best, positive, bestAxis, bestAngle = 180-angle, false, ax.name, angle
		}
	}

	d := Decision{Reason: ReasonAxis, LayerAngle: layerAngle, AxisAngle: bestAngle, Axis: bestAxis}
	if positive {
		d.Order = -1
	} else {
		d.Order = 1
	}
	return d
}

// Markers implements [Marker].
func (t *TriangleClassifier) Markers() []MarkerPoint {
	return []MarkerPoint{
		{Name: "centre", Pos: t.centre},
		{Name: "A", Pos: t.a},
		{Name: "B", Pos: t.b},
	}
}
