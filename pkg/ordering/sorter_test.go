package ordering

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/gentree/pkg/lineage"
)

func labelled(names ...string) []*lineage.Vertex {
	out := make([]*lineage.Vertex, len(names))
	for i, l := range names {
		out[i] = &lineage.Vertex{ID: "id-" + l, Label: l}
	}
	return out
}

// cyclic prefers a over b, b over c and c over a.
type cyclic struct{}

func (cyclic) Compare(a, b *lineage.Vertex) Decision {
	wins := map[string]string{"a": "b", "b": "c", "c": "a"}
	switch {
	case a == b:
		return Decision{}
	case wins[a.Label] == b.Label:
		return Decision{Order: -1}
	default:
		return Decision{Order: 1}
	}
}

func TestIdentityKeepsOrder(t *testing.T) {
	vs := labelled("c", "a", "b")
	Identity{}.Sort(vs)
	assert.Equal(t, []string{"c", "a", "b"}, labels(vs))
}

func TestComparatorSorterLabels(t *testing.T) {
	vs := labelled("ABp", "ABa", "ABl", "ABr")
	NewComparatorSorter(LabelClassifier{}).Sort(vs)
	assert.Equal(t, []string{"ABa", "ABl", "ABp", "ABr"}, labels(vs))
}

func TestComparatorSorterShortInput(t *testing.T) {
	s := NewComparatorSorter(cyclic{})
	s.Sort(nil)
	one := labelled("z")
	s.Sort(one)
	assert.Equal(t, []string{"z"}, labels(one))
}

func TestComparatorSorterNonTransitive(t *testing.T) {
	s := NewComparatorSorter(cyclic{})
	perms := [][]string{
		{"a", "b", "c"}, {"a", "c", "b"}, {"b", "a", "c"},
		{"b", "c", "a"}, {"c", "a", "b"}, {"c", "b", "a"},
	}
	for _, p := range perms {
		vs := labelled(p...)
		s.Sort(vs)
		// Every daughter wins once; the tie is broken by label.
		assert.Equal(t, []string{"a", "b", "c"}, labels(vs), "input %v", p)
	}
}

func TestComparatorSorterDeterministic(t *testing.T) {
	p := NewPolesClassifier(origin, south, north, DefaultThresholds())
	s := NewComparatorSorter(p)
	base := []*lineage.Vertex{
		vtx("d1", 5, -1, 0),
		vtx("d2", 5, 1, 0.5),
		vtx("d3", 4, 0, -3),
		vtx("d4", 6, 2, 2),
	}

	first := append([]*lineage.Vertex(nil), base...)
	s.Sort(first)
	for i := 0; i < 20; i++ {
		again := []*lineage.Vertex{base[3], base[1], base[0], base[2]}
		s.Sort(again)
		require.Equal(t, labels(first), labels(again))
	}
}

func TestComparatorSorterVerbose(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	s := NewComparatorSorter(LabelClassifier{}, WithLogger(logger))
	s.Sort(labelled("b", "a"))

	out := buf.String()
	assert.Contains(t, out, "sorting daughters")
	assert.Contains(t, out, "compared")
	assert.Contains(t, out, "reason=label")
	assert.Contains(t, out, "sorted daughters")
}

func TestExplain(t *testing.T) {
	s := NewComparatorSorter(LabelClassifier{})
	vs := labelled("b", "a", "c")

	got := s.Explain(vs)
	require.Len(t, got, 3)
	assert.Equal(t, "b", got[0].First.Label)
	assert.Equal(t, "a", got[0].Second.Label)
	assert.Equal(t, 1, got[0].Decision.Order)
	assert.Equal(t, []string{"b", "a", "c"}, labels(vs), "Explain must not reorder")
}

func TestSorterMarkers(t *testing.T) {
	assert.Nil(t, NewComparatorSorter(LabelClassifier{}).Markers())

	tri := NewComparatorSorter(NewTriangleClassifier(origin, north, south, DefaultThresholds()))
	names := []string{}
	for _, m := range tri.Markers() {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"centre", "A", "B"}, names)
}
