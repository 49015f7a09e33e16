package io

import (
	"strings"
	"testing"

	"github.com/matzehuels/dagdraw/pkg/errors"
	"github.com/matzehuels/dagdraw/pkg/graph"
)

func readDOT(t *testing.T, src string) *graph.Graph {
	t.Helper()
	g, err := ReadDOT(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ReadDOT: %v", err)
	}
	return g
}

func TestReadDOTBasics(t *testing.T) {
	g := readDOT(t, `digraph G {
		rankdir=LR
		graph [nodesep=0.5]
		a [label="Alpha", shape=box]
		"quoted id" -> a [label="x"]
	}`)

	if got := g.Attrs().StringOr(graph.AttrRankDir, ""); got != "LR" {
		t.Errorf("rankdir = %q, want LR", got)
	}
	if got := g.Attrs()[graph.AttrNodeSep]; got != 36.0 {
		t.Errorf("nodesep = %v, want 36 (inches to pixels)", got)
	}
	a, _ := g.Node("a")
	if a.StringOr(graph.AttrLabel, "") != "Alpha" {
		t.Errorf("a.label = %v, want Alpha", a[graph.AttrLabel])
	}
	if a.StringOr(graph.AttrShape, "") != "rect" {
		t.Errorf("a.shape = %v, want rect", a[graph.AttrShape])
	}
	if !g.HasNode("quoted id") {
		t.Errorf("nodes = %v, want implicit \"quoted id\"", g.Nodes())
	}
	e, ok := g.Edge(graph.EdgeKey{V: "quoted id", W: "a"})
	if !ok {
		t.Fatal("edge missing")
	}
	if e.StringOr(graph.AttrLabel, "") != "x" {
		t.Errorf("edge label = %v, want x", e[graph.AttrLabel])
	}
}

func TestReadDOTChains(t *testing.T) {
	g := readDOT(t, `digraph { a -> b -> c; d -> {e f} }`)
	want := []graph.EdgeKey{
		{V: "a", W: "b"},
		{V: "b", W: "c"},
		{V: "d", W: "e"},
		{V: "d", W: "f"},
	}
	if g.EdgeCount() != len(want) {
		t.Fatalf("edges = %v, want %v", g.Edges(), want)
	}
	for _, k := range want {
		if _, ok := g.Edge(k); !ok {
			t.Errorf("missing edge %s", k)
		}
	}
}

func TestReadDOTDefaults(t *testing.T) {
	g := readDOT(t, `digraph {
		node [shape=circle]
		edge [curve=linear]
		a
		subgraph {
			node [shape=diamond]
			b
		}
		c
		a -> c
	}`)
	for id, want := range map[string]string{"a": "circle", "b": "diamond", "c": "circle"} {
		n, _ := g.Node(id)
		if got := n.StringOr(graph.AttrShape, ""); got != want {
			t.Errorf("%s.shape = %q, want %q", id, got, want)
		}
	}
	e, _ := g.Edge(graph.EdgeKey{V: "a", W: "c"})
	if got := e.StringOr(graph.AttrCurve, ""); got != "linear" {
		t.Errorf("edge curve = %q, want linear", got)
	}
	if g.Parent("b") != "" {
		t.Errorf("plain subgraph should not nest: Parent(b) = %q", g.Parent("b"))
	}
}

func TestReadDOTClusters(t *testing.T) {
	g := readDOT(t, `digraph {
		node [shape=circle]
		subgraph cluster_outer {
			label="Outer"
			subgraph cluster_inner {
				graph [style="fill: #eee"]
				x
			}
			y
		}
		x -> z
	}`)

	if got := g.Parent("cluster_inner"); got != "cluster_outer" {
		t.Errorf("Parent(cluster_inner) = %q, want cluster_outer", got)
	}
	if got := g.Parent("x"); got != "cluster_inner" {
		t.Errorf("Parent(x) = %q, want cluster_inner", got)
	}
	if got := g.Parent("y"); got != "cluster_outer" {
		t.Errorf("Parent(y) = %q, want cluster_outer", got)
	}
	if got := g.Parent("z"); got != "" {
		t.Errorf("Parent(z) = %q, want root", got)
	}

	outer, _ := g.Node("cluster_outer")
	if outer.StringOr(graph.AttrLabel, "") != "Outer" {
		t.Errorf("outer label = %v, want Outer", outer[graph.AttrLabel])
	}
	if _, ok := outer[graph.AttrShape]; ok {
		t.Errorf("cluster inherited node default shape: %v", outer)
	}
	inner, _ := g.Node("cluster_inner")
	if inner.StringOr(graph.AttrStyle, "") != "fill: #eee" {
		t.Errorf("inner style = %v, want fill: #eee", inner[graph.AttrStyle])
	}
	if g.Attrs()[graph.AttrLabel] != nil {
		t.Error("cluster label leaked into graph attributes")
	}
}

func TestReadDOTMultiEdges(t *testing.T) {
	g := readDOT(t, `digraph {
		a -> b
		a -> b
		a -> b [key=main]
		a -> b [dir=none]
	}`)
	for _, k := range []graph.EdgeKey{
		{V: "a", W: "b"},
		{V: "a", W: "b", Name: "1"},
		{V: "a", W: "b", Name: "main"},
		{V: "a", W: "b", Name: "2"},
	} {
		if _, ok := g.Edge(k); !ok {
			t.Errorf("missing edge %s in %v", k, g.Edges())
		}
	}
	main, _ := g.Edge(graph.EdgeKey{V: "a", W: "b", Name: "main"})
	if _, ok := main["key"]; ok {
		t.Error("key should become the edge name, not an attribute")
	}
	undirected, _ := g.Edge(graph.EdgeKey{V: "a", W: "b", Name: "2"})
	if got := undirected.StringOr(graph.AttrArrowhead, ""); got != "undirected" {
		t.Errorf("dir=none arrowhead = %q, want undirected", got)
	}
}

func TestReadDOTUndirected(t *testing.T) {
	g := readDOT(t, `graph { a -- b }`)
	e, ok := g.Edge(graph.EdgeKey{V: "a", W: "b"})
	if !ok {
		t.Fatal("edge missing")
	}
	if got := e.StringOr(graph.AttrArrowhead, ""); got != "undirected" {
		t.Errorf("arrowhead = %q, want undirected", got)
	}
}

func TestReadDOTErrors(t *testing.T) {
	for _, src := range []string{
		`digraph { a -> }`,
		``,
		`digraph { a ["bad name"=1] }`,
	} {
		if _, err := ReadDOT(strings.NewReader(src)); !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("ReadDOT(%q) error = %v, want INVALID_INPUT", src, err)
		}
	}
}
