package ordering

import (
	"cmp"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gentree/pkg/lineage"
)

// Sorter orders the daughters of one division in place.
// It is invoked once per division, never on the whole forest.
type Sorter interface {
	Sort(daughters []*lineage.Vertex)
}

// Identity keeps daughters in the order the graph reports them.
type Identity struct{}

// Sort implements [Sorter].
func (Identity) Sort([]*lineage.Vertex) {}

// Comparison records one pairwise decision taken while sorting.
type Comparison struct {
	First    *lineage.Vertex
	Second   *lineage.Vertex
	Decision Decision
}

// ComparatorSorter sorts daughters with a [Classifier].
//
// Pairwise geometric decisions are not guaranteed to be transitive, so the
// order is a ranking: every daughter scores one point for each daughter it
// precedes and daughters are sorted by descending score, then by label,
// then by ID. When the classifier is transitive on the daughters this is
// exactly the classifier's order; otherwise it is still total and
// deterministic.
type ComparatorSorter struct {
	classifier Classifier
	logger     *log.Logger
}

// Option configures a [ComparatorSorter].
type Option func(*ComparatorSorter)

// WithLogger enables verbose mode: each comparison and the order before
// and after sorting are logged at debug level.
func WithLogger(logger *log.Logger) Option {
	return func(s *ComparatorSorter) { s.logger = logger }
}

// NewComparatorSorter wraps a classifier.
func NewComparatorSorter(c Classifier, opts ...Option) *ComparatorSorter {
	s := &ComparatorSorter{classifier: c}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Classifier returns the wrapped classifier.
func (s *ComparatorSorter) Classifier() Classifier { return s.classifier }

// Sort implements [Sorter]. Fewer than two daughters are left untouched.
func (s *ComparatorSorter) Sort(daughters []*lineage.Vertex) {
	if len(daughters) < 2 {
		return
	}
	if s.logger != nil {
		s.logger.Debug("sorting daughters", "before", labels(daughters))
	}

	score := make(map[*lineage.Vertex]int, len(daughters))
	for _, c := range s.Explain(daughters) {
		if s.logger != nil {
			d := c.Decision
			s.logger.Debug("compared",
				"first", c.First.Label, "second", c.Second.Label,
				"order", d.Order, "reason", d.Reason,
				"layer_angle", d.LayerAngle, "axis_angle", d.AxisAngle, "axis", d.Axis)
		}
		switch {
		case c.Decision.Order < 0:
			score[c.First]++
		case c.Decision.Order > 0:
			score[c.Second]++
		}
	}

	slices.SortStableFunc(daughters, func(a, b *lineage.Vertex) int {
		return cmp.Or(
			cmp.Compare(score[b], score[a]),
			cmp.Compare(a.Label, b.Label),
			cmp.Compare(a.ID, b.ID),
		)
	})

	if s.logger != nil {
		s.logger.Debug("sorted daughters", "after", labels(daughters))
	}
}

// Explain returns the decision for every unordered pair of daughters, in
// input order. It does not reorder anything.
func (s *ComparatorSorter) Explain(daughters []*lineage.Vertex) []Comparison {
	var out []Comparison
	for i := 0; i < len(daughters); i++ {
		for j := i + 1; j < len(daughters); j++ {
			out = append(out, Comparison{
				First:    daughters[i],
				Second:   daughters[j],
				Decision: s.classifier.Compare(daughters[i], daughters[j]),
			})
		}
	}
	return out
}

// Markers implements [Marker] when the classifier does.
func (s *ComparatorSorter) Markers() []MarkerPoint {
	if m, ok := s.classifier.(Marker); ok {
		return m.Markers()
	}
	return nil
}

func labels(vs []*lineage.Vertex) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.Label
	}
	return out
}
