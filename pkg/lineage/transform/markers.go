package transform

import (
	"fmt"

	"github.com/matzehuels/gentree/pkg/lineage"
	"github.com/matzehuels/gentree/pkg/ordering"
)

// MarkerPrefix starts the ID of every vertex added by [AddMarkers].
const MarkerPrefix = "marker:"

// MarkerColor is the colour of marker vertices.
const MarkerColor = uint32(0xFF00FF)

// AddMarkers returns a copy of f with one isolated vertex per marker,
// placed at the marker position and at the forest's first time index.
// IDs are MarkerPrefix followed by the marker name.
func AddMarkers(f *lineage.Forest, markers []ordering.MarkerPoint) (*lineage.Forest, error) {
	out := f.Clone()
	first, _ := f.TimeRange()
	for _, m := range markers {
		v := lineage.Vertex{
			ID:    MarkerPrefix + m.Name,
			Label: m.Name,
			Time:  first,
			Pos:   m.Pos,
			Color: MarkerColor,
		}
		if err := out.AddVertex(v); err != nil {
			return nil, fmt.Errorf("add marker %s: %w", m.Name, err)
		}
	}
	return out, nil
}
