package sink

import (
	"encoding/json"
	"io"

	gerrors "github.com/matzehuels/gentree/pkg/errors"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	strategy string
	indent   bool
}

// WithJSONStrategy records the ordering strategy name in the output.
func WithJSONStrategy(name string) JSONOption { return func(r *jsonRenderer) { r.strategy = name } }

// WithJSONCompact disables indentation.
func WithJSONCompact() JSONOption { return func(r *jsonRenderer) { r.indent = false } }

type jsonOutput struct {
	Strategy string `json:"strategy,omitempty"`
	Diagram
}

// RenderJSON serializes a diagram for later rendering with [ReadDiagram].
func RenderJSON(d Diagram, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{indent: true}
	for _, opt := range opts {
		opt(&r)
	}
	out := jsonOutput{Strategy: r.strategy, Diagram: d}
	if out.Nodes == nil {
		out.Nodes = []Node{}
	}
	if out.Edges == nil {
		out.Edges = []Edge{}
	}
	if r.indent {
		return json.MarshalIndent(out, "", "  ")
	}
	return json.Marshal(out)
}

// ReadDiagram parses a diagram written by [RenderJSON]. It checks that
// every edge joins known nodes.
func ReadDiagram(r io.Reader) (Diagram, error) {
	var in jsonOutput
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return Diagram{}, gerrors.Wrap(gerrors.ErrCodeInvalidFormat, err, "decode diagram")
	}
	d := in.Diagram
	ids := make(map[string]bool, len(d.Nodes))
	for _, n := range d.Nodes {
		if ids[n.ID] {
			return Diagram{}, gerrors.New(gerrors.ErrCodeInvalidFormat, "duplicate node %q", n.ID)
		}
		ids[n.ID] = true
	}
	for _, e := range d.Edges {
		if !ids[e.From] || !ids[e.To] {
			return Diagram{}, gerrors.New(gerrors.ErrCodeInvalidFormat, "edge %s->%s references an unknown node", e.From, e.To)
		}
	}
	return d, nil
}
