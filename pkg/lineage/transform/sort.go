package transform

import (
	"fmt"
	"slices"

	"github.com/matzehuels/gentree/pkg/lineage"
	"github.com/matzehuels/gentree/pkg/ordering"
)

// SortDaughters sorts the eligible later neighbours of every eligible
// division with sorter and stores that order in f. Afterwards
// [lineage.Forest.Later] reports the daughters in sorted order, so a layout
// using [ordering.Identity] reproduces the sorter's result.
//
// It returns the number of divisions whose order changed. f is modified in
// place.
func SortDaughters(f *lineage.Forest, elig lineage.Eligibility, sorter ordering.Sorter) (int, error) {
	if sorter == nil {
		return 0, nil
	}
	changed := 0
	for _, v := range f.Vertices() {
		if !elig.Allows(v) {
			continue
		}
		daughters := elig.Filter(f.Later(v.ID))
		if len(daughters) < 2 {
			continue
		}
		before := ids(daughters)
		sorter.Sort(daughters)
		after := ids(daughters)
		if slices.Equal(before, after) {
			continue
		}
		if err := f.SetLaterOrder(v.ID, after); err != nil {
			return changed, fmt.Errorf("reorder %s: %w", v.ID, err)
		}
		changed++
	}
	return changed, nil
}

func ids(vs []*lineage.Vertex) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.ID
	}
	return out
}
