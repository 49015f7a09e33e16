package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"github.com/matzehuels/dagdraw/pkg/geom"
	"github.com/matzehuels/dagdraw/pkg/graph"
	"github.com/matzehuels/dagdraw/pkg/layout"
)

// object is a JSON object whose leading keys keep their order; the rest
// follow sorted.
type object struct {
	lead []string
	vals map[string]any
}

func (o object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	keys := slices.Clone(o.lead)
	for _, k := range slices.Sorted(maps.Keys(o.vals)) {
		if !slices.Contains(o.lead, k) {
			keys = append(keys, k)
		}
	}
	first := true
	for _, k := range keys {
		v, ok := o.vals[k]
		if !ok {
			continue
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		kb, _ := json.Marshal(k)
		vb, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("attribute %s: %w", k, err)
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

type outDocument struct {
	Graph map[string]any `json:"graph,omitempty"`
	Nodes []object       `json:"nodes"`
	Edges []object       `json:"edges"`
}

// WriteJSON encodes g in the format [ReadJSON] accepts.
func WriteJSON(g *graph.Graph, w io.Writer) error {
	return WriteLayoutJSON(g, nil, w)
}

// WriteLayoutJSON encodes g with the geometry of res merged in: x, y,
// width and height on nodes, points on edges, and the label box on labeled
// edges. A nil res writes the attributes as they are.
func WriteLayoutJSON(g *graph.Graph, res *layout.Result, w io.Writer) error {
	doc := outDocument{
		Graph: maps.Clone(g.Attrs()),
		Nodes: []object{},
		Edges: []object{},
	}

	for _, id := range g.Nodes() {
		n, _ := g.Node(id)
		vals := maps.Clone(n)
		if vals == nil {
			vals = map[string]any{}
		}
		delete(vals, graph.AttrPrevWidth)
		delete(vals, graph.AttrPrevHeight)
		vals["id"] = id
		if p := g.Parent(id); p != "" {
			vals["parent"] = p
		}
		if res != nil {
			if b, ok := res.Nodes[id]; ok {
				putBox(vals, b)
			}
		}
		doc.Nodes = append(doc.Nodes, object{lead: []string{"id", "parent"}, vals: vals})
	}

	for _, k := range g.Edges() {
		e, _ := g.Edge(k)
		vals := maps.Clone(e)
		if vals == nil {
			vals = map[string]any{}
		}
		delete(vals, graph.AttrPrevWidth)
		delete(vals, graph.AttrPrevHeight)
		vals["v"], vals["w"] = k.V, k.W
		if k.Name != "" {
			vals["name"] = k.Name
		}
		if res != nil {
			if route, ok := res.Edge(k); ok {
				vals[graph.AttrPoints] = append([]geom.Point(nil), route.Points...)
				if route.Label != nil {
					putBox(vals, *route.Label)
				}
			}
		}
		doc.Edges = append(doc.Edges, object{lead: []string{"v", "w", "name"}, vals: vals})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func putBox(vals map[string]any, b layout.Box) {
	vals[graph.AttrX] = b.X
	vals[graph.AttrY] = b.Y
	vals[graph.AttrWidth] = b.Width
	vals[graph.AttrHeight] = b.Height
}

// ExportJSON writes g to the file at path.
func ExportJSON(g *graph.Graph, path string) error {
	return ExportLayoutJSON(g, nil, path)
}

// ExportLayoutJSON writes g and its layout to the file at path.
func ExportLayoutJSON(g *graph.Graph, res *layout.Result, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteLayoutJSON(g, res, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
