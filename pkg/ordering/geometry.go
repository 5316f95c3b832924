package ordering

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	gerrors "github.com/matzehuels/gentree/pkg/errors"
)

// epsilon is the smallest vector length treated as non-zero.
const epsilon = 1e-12

// Thresholds are the angle cutoffs, in degrees, of the geometric classifiers.
//
// The zero value means "use [DefaultThresholds]".
type Thresholds struct {
	// InnerLayerCutoffDeg: a layering angle at or below it puts the second
	// daughter first (it lies between the first daughter and the centre).
	InnerLayerCutoffDeg float64 `json:"inner_layer_cutoff_deg" toml:"inner_layer_cutoff_deg" yaml:"inner_layer_cutoff_deg"`

	// OuterLayerCutoffDeg: a layering angle at or above it puts the first
	// daughter first.
	OuterLayerCutoffDeg float64 `json:"outer_layer_cutoff_deg" toml:"outer_layer_cutoff_deg" yaml:"outer_layer_cutoff_deg"`

	// LeftRightToUpDownCutoffDeg: a triangle normal within this angle of the
	// up axis (or of its opposite) yields a left/right decision, otherwise
	// the daughters are ordered up/down.
	LeftRightToUpDownCutoffDeg float64 `json:"left_right_cutoff_deg" toml:"left_right_cutoff_deg" yaml:"left_right_cutoff_deg"`
}

// Default cutoffs.
const (
	DefaultInnerLayerCutoffDeg        = 30.0
	DefaultOuterLayerCutoffDeg        = 150.0
	DefaultLeftRightToUpDownCutoffDeg = 60.0
)

// DefaultThresholds returns 30°, 150° and 60°.
func DefaultThresholds() Thresholds {
	return Thresholds{
		InnerLayerCutoffDeg:        DefaultInnerLayerCutoffDeg,
		OuterLayerCutoffDeg:        DefaultOuterLayerCutoffDeg,
		LeftRightToUpDownCutoffDeg: DefaultLeftRightToUpDownCutoffDeg,
	}
}

// OrDefault returns t with every zero cutoff replaced by its default, so a
// caller may set one cutoff and leave the others alone. A cutoff of exactly
// 0° is therefore not expressible; use a tiny positive value instead.
func (t Thresholds) OrDefault() Thresholds {
	if t.InnerLayerCutoffDeg == 0 {
		t.InnerLayerCutoffDeg = DefaultInnerLayerCutoffDeg
	}
	if t.OuterLayerCutoffDeg == 0 {
		t.OuterLayerCutoffDeg = DefaultOuterLayerCutoffDeg
	}
	if t.LeftRightToUpDownCutoffDeg == 0 {
		t.LeftRightToUpDownCutoffDeg = DefaultLeftRightToUpDownCutoffDeg
	}
	return t
}

// Validate checks 0 ≤ inner ≤ 90 ≤ outer ≤ 180 and 0 ≤ left/right ≤ 91.
func (t Thresholds) Validate() error {
	switch {
	case t.InnerLayerCutoffDeg < 0 || t.InnerLayerCutoffDeg > 90:
		return gerrors.New(gerrors.ErrCodeInvalidConfig, "inner layer cutoff %.1f° outside [0, 90]", t.InnerLayerCutoffDeg)
	case t.OuterLayerCutoffDeg < 90 || t.OuterLayerCutoffDeg > 180:
		return gerrors.New(gerrors.ErrCodeInvalidConfig, "outer layer cutoff %.1f° outside [90, 180]", t.OuterLayerCutoffDeg)
	case t.LeftRightToUpDownCutoffDeg < 0 || t.LeftRightToUpDownCutoffDeg > 91:
		return gerrors.New(gerrors.ErrCodeInvalidConfig, "left/right cutoff %.1f° outside [0, 91]", t.LeftRightToUpDownCutoffDeg)
	}
	return nil
}

// layer applies the layering stage shared by the geometric classifiers.
func (t Thresholds) layer(angle float64) (Decision, bool) {
	switch {
	case angle <= t.InnerLayerCutoffDeg:
		return Decision{Order: 1, Reason: ReasonInnerLayer, LayerAngle: angle}, true
	case angle >= t.OuterLayerCutoffDeg:
		return Decision{Order: -1, Reason: ReasonOuterLayer, LayerAngle: angle}, true
	}
	return Decision{}, false
}

// unit normalizes v. It reports false for vectors too short to normalize.
func unit(v r3.Vec) (r3.Vec, bool) {
	n := r3.Norm(v)
	if n <= epsilon || math.IsNaN(n) || math.IsInf(n, 0) {
		return r3.Vec{}, false
	}
	return r3.Scale(1/n, v), true
}

// angleDeg returns the angle between unit vectors a and b in degrees.
func angleDeg(a, b r3.Vec) float64 {
	d := math.Max(-1, math.Min(1, r3.Dot(a, b)))
	return math.Acos(d) * 180 / math.Pi
}

// midpoint returns the point halfway between a and b.
func midpoint(a, b r3.Vec) r3.Vec {
	return r3.Scale(0.5, r3.Add(a, b))
}

// layering computes the unit vectors d1→d2 and d1→centre and the angle
// between them. ok is false when either vector has zero length.
func layering(d1, d2, centre r3.Vec) (d12, d1c r3.Vec, angle float64, ok bool) {
	d12, ok12 := unit(r3.Sub(d2, d1))
	d1c, ok1c := unit(r3.Sub(centre, d1))
	if !ok12 || !ok1c {
		return r3.Vec{}, r3.Vec{}, 0, false
	}
	return d12, d1c, angleDeg(d12, d1c), true
}
