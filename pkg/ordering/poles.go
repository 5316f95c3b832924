package ordering

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/matzehuels/gentree/pkg/lineage"
)

// PolesClassifier orders daughters relative to a centre and a south→north
// axis.
//
// Daughters roughly in line with the centre are layered (inner first).
// Otherwise the normal of the triangle daughter1, daughter2, centre is
// compared with the up axis: near-parallel means left/right, near-opposite
// means right/left, and anything in between falls back to up/down along the
// axis.
type PolesClassifier struct {
	centre, south, north r3.Vec
	up                   r3.Vec
	th                   Thresholds
	degenerate           bool
}

// NewPolesClassifier builds a classifier from a centre and two poles.
// Coinciding poles leave no up axis; the classifier then orders by label
// and reports [ReasonDegenerate].
func NewPolesClassifier(centre, south, north r3.Vec, th Thresholds) *PolesClassifier {
	up, ok := unit(r3.Sub(north, south))
	return &PolesClassifier{
		centre:     centre,
		south:      south,
		north:      north,
		up:         up,
		th:         th.OrDefault(),
		degenerate: !ok,
	}
}

// NewSlicesClassifier is [NewPolesClassifier] with the centre placed
// halfway between the poles.
func NewSlicesClassifier(south, north r3.Vec, th Thresholds) *PolesClassifier {
	return NewPolesClassifier(midpoint(south, north), south, north, th)
}

// Degenerate reports whether the poles coincide.
func (p *PolesClassifier) Degenerate() bool { return p.degenerate }

// Compare implements [Classifier]. Layering is decided from both daughters;
// the remaining stages see the pair in ID order, so swapping the arguments
// always flips the order.
func (p *PolesClassifier) Compare(a, b *lineage.Vertex) Decision {
	if sameVertex(a, b) {
		return Decision{Reason: ReasonIdentical}
	}
	if p.degenerate {
		return degenerate(a, b)
	}
	return layered(a, b, p.centre, p.th, p.tangential)
}

// tangential orders a pair that is not layered.
func (p *PolesClassifier) tangential(a, b *lineage.Vertex) Decision {
	d12, d1c, layerAngle, ok := layering(a.Pos, b.Pos, p.centre)
	if !ok {
		return degenerate(a, b)
	}

	normal, ok := unit(r3.Cross(d12, d1c))
	if !ok {
		return degenerate(a, b)
	}
	axisAngle := angleDeg(normal, p.up)
	d := Decision{LayerAngle: layerAngle, AxisAngle: axisAngle, Axis: "up"}
	lr := p.th.LeftRightToUpDownCutoffDeg
	switch {
	case axisAngle < lr:
		d.Order, d.Reason = -1, ReasonLeftRight
	case axisAngle > 180-lr:
		d.Order, d.Reason = 1, ReasonRightLeft
	default:
		d.Reason = ReasonUpDown
		if r3.Dot(d12, p.up) > 0 {
			d.Order = -1
		} else {
			d.Order = 1
		}
	}
	return d
}

// Markers implements [Marker].
func (p *PolesClassifier) Markers() []MarkerPoint {
	return []MarkerPoint{
		{Name: "centre", Pos: p.centre},
		{Name: "south", Pos: p.south},
		{Name: "north", Pos: p.north},
	}
}
