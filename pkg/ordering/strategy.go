package ordering

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	gerrors "github.com/matzehuels/gentree/pkg/errors"
	"github.com/matzehuels/gentree/pkg/lineage"
)

// Kind names a sibling-ordering strategy.
type Kind int

const (
	KindTrackScheme Kind = iota
	KindAlphanumeric
	KindPoles
	KindSlices
	KindTriangle
)

var kindNames = []string{
	KindTrackScheme:  "trackscheme",
	KindAlphanumeric: "alphanumeric",
	KindPoles:        "poles",
	KindSlices:       "slices",
	KindTriangle:     "triangle",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Kinds returns every strategy kind.
func Kinds() []Kind {
	return []Kind{KindTrackScheme, KindAlphanumeric, KindPoles, KindSlices, KindTriangle}
}

// ParseKind parses a strategy name, ignoring case.
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return 0, gerrors.New(gerrors.ErrCodeInvalidStrategy,
		"unknown ordering strategy %q (want one of %s)", s, strings.Join(kindNames, ", "))
}

// Strategy is one of [TrackScheme], [Alphanumeric], [Poles], [Slices] or
// [Triangle], each carrying its own anchors and thresholds. Anchors are
// vertex labels resolved by [Resolve] before traversal.
type Strategy interface {
	Kind() Kind
	isStrategy()
}

// TrackScheme keeps daughters in graph order.
type TrackScheme struct{}

// Alphanumeric orders daughters by label.
type Alphanumeric struct{}

// Poles orders daughters around a centre with a south→north up axis.
type Poles struct {
	North  string
	South  string
	Centre string
	Thresholds
}

// Slices is [Poles] with the centre halfway between the poles.
type Slices struct {
	North string
	South string
	Thresholds
}

// Triangle orders daughters along the best of three axes built from a
// centre and two axis vertices.
type Triangle struct {
	Centre string
	AxisA  string
	AxisB  string
	Thresholds
}

func (TrackScheme) Kind() Kind  { return KindTrackScheme }
func (Alphanumeric) Kind() Kind { return KindAlphanumeric }
func (Poles) Kind() Kind        { return KindPoles }
func (Slices) Kind() Kind       { return KindSlices }
func (Triangle) Kind() Kind     { return KindTriangle }

func (TrackScheme) isStrategy()  {}
func (Alphanumeric) isStrategy() {}
func (Poles) isStrategy()        {}
func (Slices) isStrategy()       {}
func (Triangle) isStrategy()     {}

// AnchorLookup finds the vertex carrying a label.
// [lineage.Forest.FindByLabel] satisfies it.
type AnchorLookup func(label string) (*lineage.Vertex, bool)

// Marker is implemented by sorters and classifiers that can report their
// reference points, for debugging a geometric ordering.
type Marker interface {
	Markers() []MarkerPoint
}

// MarkerPoint is a named reference point.
type MarkerPoint struct {
	Name string
	Pos  r3.Vec
}

// Resolve turns a strategy into a [Sorter], looking up every anchor once.
// An unknown anchor label yields an ANCHOR_NOT_FOUND error; invalid
// thresholds yield INVALID_CONFIG. Options apply to comparator sorters.
//
// A strategy whose anchors coincide still resolves: its classifier orders
// by label and reports the degeneracy in each decision.
func Resolve(s Strategy, lookup AnchorLookup, opts ...Option) (Sorter, error) {
	switch v := s.(type) {
	case nil, TrackScheme:
		return Identity{}, nil

	case Alphanumeric:
		return NewComparatorSorter(LabelClassifier{}, opts...), nil

	case Poles:
		th, err := checkThresholds(v.Thresholds)
		if err != nil {
			return nil, err
		}
		pos, err := anchors(lookup, "north", v.North, "south", v.South, "centre", v.Centre)
		if err != nil {
			return nil, err
		}
		return NewComparatorSorter(NewPolesClassifier(pos[2], pos[1], pos[0], th), opts...), nil

	case Slices:
		th, err := checkThresholds(v.Thresholds)
		if err != nil {
			return nil, err
		}
		pos, err := anchors(lookup, "north", v.North, "south", v.South)
		if err != nil {
			return nil, err
		}
		return NewComparatorSorter(NewSlicesClassifier(pos[1], pos[0], th), opts...), nil

	case Triangle:
		th, err := checkThresholds(v.Thresholds)
		if err != nil {
			return nil, err
		}
		pos, err := anchors(lookup, "centre", v.Centre, "axis A", v.AxisA, "axis B", v.AxisB)
		if err != nil {
			return nil, err
		}
		return NewComparatorSorter(NewTriangleClassifier(pos[0], pos[1], pos[2], th), opts...), nil
	}
	return nil, gerrors.New(gerrors.ErrCodeUnsupported, "unsupported ordering strategy %T", s)
}

func checkThresholds(t Thresholds) (Thresholds, error) {
	t = t.OrDefault()
	return t, t.Validate()
}

// anchors resolves (role, label) pairs to positions, in argument order.
func anchors(lookup AnchorLookup, roleLabels ...string) ([]r3.Vec, error) {
	out := make([]r3.Vec, 0, len(roleLabels)/2)
	for i := 0; i+1 < len(roleLabels); i += 2 {
		role, label := roleLabels[i], roleLabels[i+1]
		if err := gerrors.ValidateAnchorLabel(role, label); err != nil {
			return nil, gerrors.Wrap(gerrors.ErrCodeAnchorNotFound, err, "%s anchor not set", role)
		}
		v, ok := lookup(label)
		if !ok {
			return nil, gerrors.New(gerrors.ErrCodeAnchorNotFound, "no vertex labelled %q for the %s anchor", label, role)
		}
		out = append(out, v.Pos)
	}
	return out, nil
}

// Degenerate reports whether a sorter's geometric classifier could not
// build its axes and falls back to label ordering.
func Degenerate(s Sorter) bool {
	cs, ok := s.(*ComparatorSorter)
	if !ok {
		return false
	}
	d, ok := cs.classifier.(interface{ Degenerate() bool })
	return ok && d.Degenerate()
}

// GeometryError returns a DEGENERATE_GEOMETRY error if s is [Degenerate],
// otherwise nil. s remains usable; the error is a warning.
func GeometryError(s Sorter) error {
	if !Degenerate(s) {
		return nil
	}
	return gerrors.New(gerrors.ErrCodeDegenerateGeometry,
		"anchors do not span usable axes, daughters are ordered by label")
}
