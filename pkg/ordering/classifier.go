package ordering

import (
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/matzehuels/gentree/pkg/lineage"
)

// Reasons reported in [Decision.Reason].
const (
	ReasonIdentical  = "identical"
	ReasonLabel      = "label"
	ReasonDegenerate = "degenerate geometry"
	ReasonInnerLayer = "inner layer"
	ReasonOuterLayer = "outer layer"
	ReasonLeftRight  = "left/right"
	ReasonRightLeft  = "right/left"
	ReasonUpDown     = "up/down"
	ReasonAxis       = "axis alignment"
)

// Decision is the outcome of comparing two daughters.
//
// Order is -1 when the first daughter sorts first, +1 when the second does
// and 0 when they are tied. The angle fields are in degrees and are only
// set by the stage that produced the decision.
type Decision struct {
	Order      int     `json:"order"`
	Reason     string  `json:"reason"`
	LayerAngle float64 `json:"layer_angle,omitempty"`
	AxisAngle  float64 `json:"axis_angle,omitempty"`
	Axis       string  `json:"axis,omitempty"`
}

// Classifier orders two daughters of the same division.
type Classifier interface {
	Compare(a, b *lineage.Vertex) Decision
}

// LabelClassifier orders daughters by label. It needs no anchors and is
// the fallback of the geometric classifiers.
type LabelClassifier struct{}

// Compare implements [Classifier].
func (LabelClassifier) Compare(a, b *lineage.Vertex) Decision {
	if a == b {
		return Decision{Reason: ReasonIdentical}
	}
	return Decision{Order: strings.Compare(a.Label, b.Label), Reason: ReasonLabel}
}

func degenerate(a, b *lineage.Vertex) Decision {
	d := LabelClassifier{}.Compare(a, b)
	d.Reason = ReasonDegenerate
	return d
}

func sameVertex(a, b *lineage.Vertex) bool {
	return a == b || a.ID == b.ID
}

// canonical evaluates f with the pair in ID order and mirrors the result,
// so Compare(b, a) always reverses Compare(a, b).
func canonical(a, b *lineage.Vertex, f func(a, b *lineage.Vertex) Decision) Decision {
	if a.ID <= b.ID {
		return f(a, b)
	}
	d := f(b, a)
	d.Order = -d.Order
	return d
}

// layered runs the layering stage from both daughters before handing the
// pair to tangential. A verdict from either side wins, mirrored when it
// came from b. When the two sides disagree, which needs both interior
// angles under the inner cutoff, the daughter nearer the centre sorts
// first. Only pairs that no side layers, or that are equally far from the
// centre, reach tangential, and they reach it in ID order.
func layered(a, b *lineage.Vertex, centre r3.Vec, th Thresholds, tangential func(a, b *lineage.Vertex) Decision) Decision {
	_, _, angleA, okA := layering(a.Pos, b.Pos, centre)
	_, _, angleB, okB := layering(b.Pos, a.Pos, centre)
	if !okA || !okB {
		return degenerate(a, b)
	}
	fromA, layA := th.layer(angleA)
	fromB, layB := th.layer(angleB)
	fromB.Order = -fromB.Order

	switch {
	case layA && layB && fromA.Order != fromB.Order:
		da := r3.Norm(r3.Sub(a.Pos, centre))
		db := r3.Norm(r3.Sub(b.Pos, centre))
		switch {
		case da < db:
			return Decision{Order: -1, Reason: ReasonInnerLayer, LayerAngle: angleB}
		case db < da:
			return Decision{Order: 1, Reason: ReasonInnerLayer, LayerAngle: angleA}
		}
	case layA:
		return fromA
	case layB:
		return fromB
	}
	return canonical(a, b, tangential)
}
