package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/matzehuels/dagdraw/pkg/errors"
	"github.com/matzehuels/dagdraw/pkg/graph"
)

// Format names an input document format.
type Format string

const (
	FormatJSON Format = "json"
	FormatDOT  Format = "dot"
)

// FormatFromPath infers the input format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".dot", ".gv":
		return FormatDOT, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "cannot infer graph format from %q (want .json, .dot or .gv)", path)
}

// Import reads the graph file at path, choosing the reader by extension.
func Import(path string) (*graph.Graph, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	switch f {
	case FormatDOT:
		return ImportDOT(path)
	default:
		return ImportJSON(path)
	}
}

// Read decodes a graph document of the given format from r.
func Read(r io.Reader, f Format) (*graph.Graph, error) {
	switch f {
	case FormatJSON:
		return ReadJSON(r)
	case FormatDOT:
		return ReadDOT(r)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown input format %q", f)
}

type document struct {
	Graph map[string]any   `json:"graph"`
	Nodes []map[string]any `json:"nodes"`
	Edges []map[string]any `json:"edges"`
}

// ReadJSON decodes a JSON graph from r.
//
// Nodes are added in document order and parents are assigned once every
// node exists, so a node may name a parent declared after it. ReadJSON
// returns an INVALID_INPUT error for malformed JSON, missing or duplicate
// IDs, edges to unknown nodes and unknown parents. Cycles in the parent
// relation are left for the layout stage to report.
//
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*graph.Graph, error) {
	var doc document
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode graph JSON")
	}

	g := graph.New()
	for k, v := range doc.Graph {
		if err := errors.ValidateAttrName(k); err != nil {
			return nil, err
		}
		g.Attrs()[k] = v
	}

	parents := map[string]string{}
	for i, raw := range doc.Nodes {
		id, ok := raw["id"].(string)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidInput, "nodes[%d]: missing string id", i)
		}
		if err := errors.ValidateNodeID(id); err != nil {
			return nil, err
		}
		attrs, err := attrsOf(raw, "id", "parent")
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "node %q", id)
		}
		if err := g.AddNode(id, attrs); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "nodes[%d]", i)
		}
		if p, ok := raw["parent"].(string); ok && p != "" {
			parents[id] = p
		}
	}
	for _, id := range g.Nodes() {
		p, ok := parents[id]
		if !ok {
			continue
		}
		if err := g.SetParent(id, p); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parent of %q", id)
		}
	}

	for i, raw := range doc.Edges {
		v, _ := firstString(raw, "v", "from")
		w, _ := firstString(raw, "w", "to")
		name, _ := raw["name"].(string)
		if v == "" || w == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "edges[%d]: missing v or w", i)
		}
		attrs, err := attrsOf(raw, "v", "w", "from", "to", "name")
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "edges[%d]", i)
		}
		if err := g.AddEdge(graph.EdgeKey{V: v, W: w, Name: name}, attrs); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "edges[%d]", i)
		}
	}
	return g, nil
}

// ImportJSON reads a JSON graph file.
func ImportJSON(path string) (*graph.Graph, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadJSON(f)
}

func open(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}

// attrsOf copies raw minus the reserved keys.
func attrsOf(raw map[string]any, reserved ...string) (graph.Attrs, error) {
	attrs := graph.Attrs{}
	for k, v := range raw {
		if slices.Contains(reserved, k) {
			continue
		}
		if err := errors.ValidateAttrName(k); err != nil {
			return nil, err
		}
		attrs[k] = v
	}
	return attrs, nil
}

func firstString(raw map[string]any, keys ...string) (string, bool) {
	for _, k := range keys {
		if s, ok := raw[k].(string); ok {
			return s, true
		}
	}
	return "", false
}
