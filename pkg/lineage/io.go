package lineage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gonum.org/v1/gonum/spatial/r3"

	gerrors "github.com/matzehuels/gentree/pkg/errors"
)

type document struct {
	Vertices []vertexJSON `json:"vertices"`
	Edges    []edgeJSON   `json:"edges"`
}

type vertexJSON struct {
	ID    string     `json:"id"`
	Label string     `json:"label,omitempty"`
	Time  int        `json:"time"`
	Pos   [3]float64 `json:"pos"`
	Color uint32     `json:"color,omitempty"`
}

type edgeJSON struct {
	A string `json:"a"`
	B string `json:"b"`
}

// ReadForest decodes a JSON tracking graph from r.
//
// The input must be a JSON object with "vertices" and "edges" arrays:
//
//	{
//	  "vertices": [
//	    {"id": "1", "label": "AB", "time": 0, "pos": [0, 0, 0]},
//	    {"id": "2", "label": "ABa", "time": 1, "pos": [1, 0, 0], "color": 16711680}
//	  ],
//	  "edges": [{"a": "1", "b": "2"}]
//	}
//
// A missing label defaults to the vertex ID. Edge endpoints are unordered;
// direction comes from the time indices.
//
// ReadForest returns an error for malformed JSON, invalid or duplicate
// vertex IDs, unknown edge endpoints and edges within one time point. It
// does not check the forest invariant; call [Forest.Validate] for that.
// ReadForest does not close r.
func ReadForest(r io.Reader) (*Forest, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, gerrors.Wrap(gerrors.ErrCodeInvalidFormat, err, "decode forest")
	}

	f := New()
	for _, v := range doc.Vertices {
		if err := gerrors.ValidateVertexID(v.ID); err != nil {
			return nil, err
		}
		label := v.Label
		if label == "" {
			label = v.ID
		}
		vx := Vertex{
			ID:    v.ID,
			Label: label,
			Time:  v.Time,
			Pos:   r3.Vec{X: v.Pos[0], Y: v.Pos[1], Z: v.Pos[2]},
			Color: v.Color,
		}
		if err := f.AddVertex(vx); err != nil {
			return nil, gerrors.Wrap(gerrors.ErrCodeInvalidInput, err, "vertex %s", v.ID)
		}
	}
	for _, e := range doc.Edges {
		if err := f.AddEdge(e.A, e.B); err != nil {
			return nil, gerrors.Wrap(gerrors.ErrCodeInvalidInput, err, "edge %s-%s", e.A, e.B)
		}
	}
	return f, nil
}

// ReadForestFile reads a JSON tracking graph from the file at path.
func ReadForestFile(path string) (*Forest, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, gerrors.Wrap(gerrors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()
	return ReadForest(file)
}

// WriteForest encodes f as indented JSON. Vertices and edges are written in
// insertion order, so the output can be re-read with [ReadForest] and
// yields an identical forest.
func WriteForest(w io.Writer, f *Forest) error {
	doc := document{
		Vertices: make([]vertexJSON, 0, f.VertexCount()),
		Edges:    make([]edgeJSON, 0, f.EdgeCount()),
	}
	for _, v := range f.order {
		vj := vertexJSON{
			ID:    v.ID,
			Time:  v.Time,
			Pos:   [3]float64{v.Pos.X, v.Pos.Y, v.Pos.Z},
			Color: v.Color,
		}
		if v.Label != v.ID {
			vj.Label = v.Label
		}
		doc.Vertices = append(doc.Vertices, vj)
	}
	for _, e := range f.edges {
		doc.Edges = append(doc.Edges, edgeJSON{A: e.A, B: e.B})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// MarshalForest returns the JSON encoding written by [WriteForest].
func MarshalForest(f *Forest) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteForest(&buf, f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteForestFile writes f to a JSON file at path.
func WriteForestFile(path string, f *Forest) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteForest(file, f); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
