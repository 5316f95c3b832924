package sink_test

import (
	"fmt"

	"github.com/matzehuels/gentree/pkg/layout"
	"github.com/matzehuels/gentree/pkg/lineage"
	"github.com/matzehuels/gentree/pkg/sink"
)

func ExampleRecorder() {
	f := lineage.New()
	_ = f.AddVertex(lineage.Vertex{ID: "mother", Time: 0})
	_ = f.AddVertex(lineage.Vertex{ID: "left", Time: 1})
	_ = f.AddVertex(lineage.Vertex{ID: "right", Time: 1})
	_ = f.AddEdge("mother", "left")
	_ = f.AddEdge("mother", "right")

	rec := sink.NewRecorder()
	if _, err := layout.Walk(f, f.Roots(nil), nil, nil, rec, layout.DefaultConfig()); err != nil {
		fmt.Println(err)
		return
	}
	for _, n := range rec.Diagram().Nodes {
		fmt.Printf("%s %s (%g,%g)\n", n.Kind, n.ID, n.X, n.Y)
	}
	// Output:
	// leaf left (25,100)
	// leaf right (75,100)
	// division mother (50,0)
}
