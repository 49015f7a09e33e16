package io

import (
	"io"
	"maps"
	"strconv"
	"strings"

	"github.com/teleivo/dot"
	"github.com/teleivo/dot/ast"

	"github.com/matzehuels/dagdraw/pkg/errors"
	"github.com/matzehuels/dagdraw/pkg/graph"
	"github.com/matzehuels/dagdraw/pkg/layout"
)

const pointsPerInch = 72.0

// dotShapes maps Graphviz shape names onto the built-in shapes. Other names
// are kept and fail at render time unless a custom shape is registered.
var dotShapes = map[string]string{
	"box":       "rect",
	"rect":      "rect",
	"rectangle": "rect",
	"square":    "rect",
	"oval":      "ellipse",
	"ellipse":   "ellipse",
	"circle":    "circle",
	"diamond":   "diamond",
}

// inchAttrs are Graphviz attributes measured in inches; they are converted
// to pixels on import.
var inchAttrs = map[string]bool{
	graph.AttrWidth:   true,
	graph.AttrHeight:  true,
	graph.AttrNodeSep: true,
	graph.AttrRankSep: true,
}

// ReadDOT parses a DOT document from r. Only the first graph of the
// document is read. Syntax errors are reported as INVALID_INPUT.
func ReadDOT(r io.Reader) (*graph.Graph, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read DOT")
	}
	p := dot.NewParser(src)
	tree := p.Parse()
	if errs := p.Errors(); len(errs) > 0 {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, errs[0], "parse DOT")
	}
	graphs := ast.NewGraph(tree)
	if len(graphs) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "parse DOT: no graph")
	}

	d := &dotReader{g: graph.New(), serial: map[[2]string]int{}}
	root := dotScope{node: graph.Attrs{}, edge: graph.Attrs{}}
	if !graphs[0].Directed() {
		root.edge[graph.AttrArrowhead] = "undirected"
	}
	if _, err := d.stmts(root, graphs[0].Stmts(), d.g.Attrs()); err != nil {
		return nil, err
	}
	return d.g, nil
}

// ImportDOT reads a DOT file.
func ImportDOT(path string) (*graph.Graph, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadDOT(f)
}

type dotReader struct {
	g      *graph.Graph
	serial map[[2]string]int
}

// dotScope is the state a (sub)graph body sees: its enclosing cluster and
// the node and edge defaults in effect.
type dotScope struct {
	cluster string
	node    graph.Attrs
	edge    graph.Attrs
}

func (s dotScope) child(cluster string) dotScope {
	return dotScope{cluster: cluster, node: maps.Clone(s.node), edge: maps.Clone(s.edge)}
}

// stmts processes a statement list. Graph attributes go to target. It
// returns the nodes mentioned, for subgraphs used as edge operands.
func (d *dotReader) stmts(sc dotScope, stmts []ast.Stmt, target graph.Attrs) ([]string, error) {
	var seen []string
	for _, s := range stmts {
		switch s := s.(type) {
		case ast.AttrStmt:
			attrs, err := attrList(s.AttrList())
			if err != nil {
				return nil, err
			}
			switch strings.ToLower(s.Target().Literal()) {
			case "graph":
				maps.Copy(target, attrs)
			case "node":
				maps.Copy(sc.node, attrs)
			case "edge":
				maps.Copy(sc.edge, attrs)
			}
		case ast.Attribute:
			name, value := layout.UnquoteID(s.Name().Literal()), layout.UnquoteID(s.Value().Literal())
			if err := errors.ValidateAttrName(name); err != nil {
				return nil, err
			}
			target[name] = convertValue(name, value)
		case ast.NodeStmt:
			id := layout.UnquoteID(s.NodeID().ID().Literal())
			attrs, err := attrList(s.AttrList())
			if err != nil {
				return nil, err
			}
			if err := d.node(sc, id, attrs); err != nil {
				return nil, err
			}
			seen = append(seen, id)
		case ast.EdgeStmt:
			ids, err := d.edge(sc, s)
			if err != nil {
				return nil, err
			}
			seen = append(seen, ids...)
		case ast.Subgraph:
			ids, err := d.subgraph(sc, s)
			if err != nil {
				return nil, err
			}
			seen = append(seen, ids...)
		}
	}
	return seen, nil
}

// node declares id in scope sc, or adds attrs to an existing node. A node
// first seen at the root moves into the first cluster that mentions it.
func (d *dotReader) node(sc dotScope, id string, attrs graph.Attrs) error {
	if err := errors.ValidateNodeID(id); err != nil {
		return err
	}
	n, ok := d.g.Node(id)
	if !ok {
		n = maps.Clone(sc.node)
		if err := d.g.AddNode(id, n); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "node %q", id)
		}
	}
	maps.Copy(n, attrs)
	if sc.cluster != "" && sc.cluster != id && d.g.Parent(id) == "" {
		if err := d.g.SetParent(id, sc.cluster); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "node %q", id)
		}
	}
	return nil
}

// edge adds the edges of a chain: every node of each operand is joined to
// every node of the next one.
func (d *dotReader) edge(sc dotScope, s ast.EdgeStmt) ([]string, error) {
	attrs, err := attrList(s.AttrList())
	if err != nil {
		return nil, err
	}
	var groups [][]string
	var seen []string
	for _, op := range s.Operands() {
		var ids []string
		switch op := op.(type) {
		case ast.NodeID:
			id := layout.UnquoteID(op.ID().Literal())
			if err := d.node(sc, id, nil); err != nil {
				return nil, err
			}
			ids = []string{id}
		case ast.Subgraph:
			ids, err = d.subgraph(sc, op)
			if err != nil {
				return nil, err
			}
		}
		groups = append(groups, ids)
		seen = append(seen, ids...)
	}

	for i := 1; i < len(groups); i++ {
		for _, v := range groups[i-1] {
			for _, w := range groups[i] {
				if err := d.addEdge(sc, v, w, attrs); err != nil {
					return nil, err
				}
			}
		}
	}
	return seen, nil
}

func (d *dotReader) addEdge(sc dotScope, v, w string, attrs graph.Attrs) error {
	a := maps.Clone(sc.edge)
	maps.Copy(a, attrs)
	name, _ := a["key"].(string)
	delete(a, "key")
	if a[graph.AttrArrowhead] == "none" || a["dir"] == "none" {
		a[graph.AttrArrowhead] = "undirected"
	}
	delete(a, "dir")

	k := graph.EdgeKey{V: v, W: w, Name: name}
	if _, exists := d.g.Edge(k); exists && name == "" {
		pair := [2]string{v, w}
		for {
			d.serial[pair]++
			k.Name = strconv.Itoa(d.serial[pair])
			if _, taken := d.g.Edge(k); !taken {
				break
			}
		}
	}
	if err := d.g.AddEdge(k, a); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "edge %s", k)
	}
	return nil
}

// subgraph processes a subgraph body. Cluster subgraphs become nodes that
// hold their graph attributes; others only scope defaults.
func (d *dotReader) subgraph(sc dotScope, s ast.Subgraph) ([]string, error) {
	var name string
	if id := s.ID(); id != nil {
		name = layout.UnquoteID(id.Literal())
	}
	if !strings.HasPrefix(name, "cluster") {
		return d.stmts(sc.child(sc.cluster), s.Stmts(), graph.Attrs{})
	}

	if err := d.node(sc, name, nil); err != nil {
		return nil, err
	}
	n, _ := d.g.Node(name)
	// Cluster nodes do not inherit node defaults.
	for k := range sc.node {
		if v, ok := n[k]; ok && v == sc.node[k] {
			delete(n, k)
		}
	}
	return d.stmts(sc.child(name), s.Stmts(), n)
}

func attrList(list ast.AttrList) (graph.Attrs, error) {
	attrs := graph.Attrs{}
	for _, group := range list.Lists() {
		for _, a := range group {
			name := layout.UnquoteID(a.Name().Literal())
			if err := errors.ValidateAttrName(name); err != nil {
				return nil, err
			}
			attrs[name] = convertValue(name, layout.UnquoteID(a.Value().Literal()))
		}
	}
	return attrs, nil
}

// convertValue maps Graphviz units and shape names onto dagdraw's.
func convertValue(name, value string) any {
	if inchAttrs[name] {
		if f, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
			return f * pointsPerInch
		}
	}
	if name == graph.AttrShape {
		if s, ok := dotShapes[strings.ToLower(value)]; ok {
			return s
		}
	}
	return value
}
