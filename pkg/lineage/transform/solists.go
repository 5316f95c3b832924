package transform

import (
	"unicode"

	"github.com/matzehuels/gentree/pkg/lineage"
)

// SolistOptions narrows down which isolated vertices are removed.
type SolistOptions struct {
	// LastTimepointOnly removes only solists at the forest's last time index.
	LastTimepointOnly bool `json:"last_timepoint_only" toml:"last_timepoint_only" yaml:"last_timepoint_only"`
	// NumericLabelsOnly removes only solists whose label is made of digits,
	// the labels tracking tools assign automatically.
	NumericLabelsOnly bool `json:"numeric_labels_only" toml:"numeric_labels_only" yaml:"numeric_labels_only"`
}

// DefaultSolistOptions enables both filters.
func DefaultSolistOptions() SolistOptions {
	return SolistOptions{LastTimepointOnly: true, NumericLabelsOnly: true}
}

// PruneSolists returns a copy of f without solists, vertices with neither
// earlier nor later neighbours, that pass the filters in opts. It also
// returns the removed IDs in insertion order.
func PruneSolists(f *lineage.Forest, opts SolistOptions) (*lineage.Forest, []string) {
	_, last := f.TimeRange()

	var removed []string
	for _, v := range f.Vertices() {
		if len(f.Neighbours(v.ID)) > 0 {
			continue
		}
		if opts.LastTimepointOnly && v.Time != last {
			continue
		}
		if opts.NumericLabelsOnly && !numeric(v.Label) {
			continue
		}
		removed = append(removed, v.ID)
	}
	out := f.Clone()
	for _, id := range removed {
		_ = out.RemoveVertex(id)
	}
	return out, removed
}

func numeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
