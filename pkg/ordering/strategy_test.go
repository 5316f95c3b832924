package ordering

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	gerrors "github.com/matzehuels/gentree/pkg/errors"
	"github.com/matzehuels/gentree/pkg/lineage"
)

func anchorForest(t *testing.T) *lineage.Forest {
	t.Helper()
	f := lineage.New()
	for _, v := range []lineage.Vertex{
		{ID: "1", Label: "EMS", Pos: r3.Vec{}},
		{ID: "2", Label: "P1", Pos: r3.Vec{Z: -10}},
		{ID: "3", Label: "P2", Pos: r3.Vec{Z: 10}},
		{ID: "4", Label: "AB", Pos: r3.Vec{X: 4}},
	} {
		require.NoError(t, f.AddVertex(v))
	}
	return f
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds() {
		got, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}

	got, err := ParseKind("  Poles ")
	require.NoError(t, err)
	assert.Equal(t, KindPoles, got)

	_, err = ParseKind("deluxe")
	assert.True(t, gerrors.Is(err, gerrors.ErrCodeInvalidStrategy))
	assert.Equal(t, "Kind(42)", Kind(42).String())
}

func TestResolve(t *testing.T) {
	f := anchorForest(t)

	tests := []struct {
		name     string
		strategy Strategy
		want     Kind
		check    func(t *testing.T, s Sorter)
	}{
		{
			name:     "nil",
			strategy: nil,
			check: func(t *testing.T, s Sorter) {
				assert.IsType(t, Identity{}, s)
			},
		},
		{
			name:     "trackscheme",
			strategy: TrackScheme{},
			check: func(t *testing.T, s Sorter) {
				assert.IsType(t, Identity{}, s)
			},
		},
		{
			name:     "alphanumeric",
			strategy: Alphanumeric{},
			check: func(t *testing.T, s Sorter) {
				assert.IsType(t, LabelClassifier{}, s.(*ComparatorSorter).Classifier())
			},
		},
		{
			name:     "poles",
			strategy: Poles{North: "P2", South: "P1", Centre: "EMS"},
			check: func(t *testing.T, s Sorter) {
				p := s.(*ComparatorSorter).Classifier().(*PolesClassifier)
				assert.Equal(t, r3.Vec{Z: 1}, p.up)
				assert.Equal(t, DefaultThresholds(), p.th)
			},
		},
		{
			name:     "slices",
			strategy: Slices{North: "P2", South: "P1", Thresholds: Thresholds{20, 160, 45}},
			check: func(t *testing.T, s Sorter) {
				p := s.(*ComparatorSorter).Classifier().(*PolesClassifier)
				assert.Equal(t, r3.Vec{}, p.centre)
				assert.Equal(t, 45.0, p.th.LeftRightToUpDownCutoffDeg)
			},
		},
		{
			name:     "triangle",
			strategy: Triangle{Centre: "EMS", AxisA: "AB", AxisB: "P2"},
			check: func(t *testing.T, s Sorter) {
				tri := s.(*ComparatorSorter).Classifier().(*TriangleClassifier)
				require.False(t, tri.Degenerate())
				assert.Equal(t, "C", tri.axes[0].name)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Resolve(tt.strategy, f.FindByLabel)
			require.NoError(t, err)
			tt.check(t, s)
		})
	}
}

func TestResolveErrors(t *testing.T) {
	f := anchorForest(t)

	tests := []struct {
		name     string
		strategy Strategy
		code     gerrors.Code
	}{
		{"unknown north", Poles{North: "nope", South: "P1", Centre: "EMS"}, gerrors.ErrCodeAnchorNotFound},
		{"missing centre", Poles{North: "P2", South: "P1"}, gerrors.ErrCodeAnchorNotFound},
		{"unknown triangle axis", Triangle{Centre: "EMS", AxisA: "AB", AxisB: "X"}, gerrors.ErrCodeAnchorNotFound},
		{"bad thresholds", Slices{North: "P2", South: "P1", Thresholds: Thresholds{40, 50, 60}}, gerrors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Resolve(tt.strategy, f.FindByLabel)
			assert.Nil(t, s)
			assert.True(t, gerrors.Is(err, tt.code), "error %v, want %s", err, tt.code)
		})
	}
}

func TestResolveCoincidentPoles(t *testing.T) {
	f := anchorForest(t)
	s, err := Resolve(Poles{North: "P1", South: "P1", Centre: "EMS"}, f.FindByLabel)
	require.NoError(t, err)
	assert.True(t, Degenerate(s))
	assert.False(t, Degenerate(Identity{}))

	assert.True(t, gerrors.Is(GeometryError(s), gerrors.ErrCodeDegenerateGeometry))
	assert.NoError(t, GeometryError(Identity{}))
}

func TestStrategyKinds(t *testing.T) {
	assert.Equal(t, KindTrackScheme, TrackScheme{}.Kind())
	assert.Equal(t, KindAlphanumeric, Alphanumeric{}.Kind())
	assert.Equal(t, KindPoles, Poles{}.Kind())
	assert.Equal(t, KindSlices, Slices{}.Kind())
	assert.Equal(t, KindTriangle, Triangle{}.Kind())
}
