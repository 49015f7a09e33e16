package graph

import (
	"errors"
	"slices"
	"testing"

	"github.com/matzehuels/dagdraw/pkg/geom"
)

func TestAddNode(t *testing.T) {
	g := New()
	if err := g.AddNode("a", nil); err != nil {
		t.Fatalf("AddNode: %v", err)
	}
	if err := g.AddNode("", nil); !errors.Is(err, ErrInvalidNodeID) {
		t.Errorf("AddNode(\"\") = %v, want %v", err, ErrInvalidNodeID)
	}
	if err := g.AddNode("a", nil); !errors.Is(err, ErrDuplicateNode) {
		t.Errorf("duplicate AddNode = %v, want %v", err, ErrDuplicateNode)
	}

	attrs, ok := g.Node("a")
	if !ok || attrs == nil {
		t.Fatal("Node(a) missing or nil attrs")
	}
	attrs[AttrLabel] = "changed"
	if got, _ := g.Node("a"); got[AttrLabel] != "changed" {
		t.Error("attribute map is not shared with the graph")
	}
}

func TestAddEdge(t *testing.T) {
	g := New()
	g.AddNode("a", nil)
	g.AddNode("b", nil)

	tests := []struct {
		name string
		key  EdgeKey
		want error
	}{
		{"plain", EdgeKey{V: "a", W: "b"}, nil},
		{"parallel named", EdgeKey{V: "a", W: "b", Name: "second"}, nil},
		{"self loop", EdgeKey{V: "a", W: "a"}, nil},
		{"duplicate", EdgeKey{V: "a", W: "b"}, ErrDuplicateEdge},
		{"unknown source", EdgeKey{V: "x", W: "b"}, ErrUnknownSourceNode},
		{"unknown target", EdgeKey{V: "a", W: "x"}, ErrUnknownTargetNode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := g.AddEdge(tt.key, nil)
			if !errors.Is(err, tt.want) {
				t.Errorf("AddEdge(%v) = %v, want %v", tt.key, err, tt.want)
			}
		})
	}

	if g.EdgeCount() != 3 {
		t.Errorf("EdgeCount = %d, want 3", g.EdgeCount())
	}
	want := []EdgeKey{{V: "a", W: "b"}, {V: "a", W: "b", Name: "second"}, {V: "a", W: "a"}}
	if got := g.Edges(); !slices.Equal(got, want) {
		t.Errorf("Edges = %v, want %v", got, want)
	}
	if got := g.OutEdges("a"); len(got) != 3 {
		t.Errorf("OutEdges(a) = %v, want 3 edges", got)
	}
	if got := g.InEdges("b"); len(got) != 2 {
		t.Errorf("InEdges(b) = %v, want 2 edges", got)
	}
}

func TestSetParent(t *testing.T) {
	g := New()
	for _, id := range []string{"outer", "inner", "a", "b"} {
		g.AddNode(id, nil)
	}
	g.SetParent("inner", "outer")
	g.SetParent("a", "inner")
	g.SetParent("b", "outer")

	if got := g.Parent("a"); got != "inner" {
		t.Errorf("Parent(a) = %q, want inner", got)
	}
	if got := g.Children("outer"); !slices.Equal(got, []string{"inner", "b"}) {
		t.Errorf("Children(outer) = %v", got)
	}
	if got := g.Children(""); !slices.Equal(got, []string{"outer"}) {
		t.Errorf("root children = %v, want [outer]", got)
	}
	if got := g.Ancestors("a"); !slices.Equal(got, []string{"inner", "outer"}) {
		t.Errorf("Ancestors(a) = %v", got)
	}
	if g.Depth("a") != 2 || g.Depth("outer") != 0 {
		t.Errorf("Depth(a)=%d Depth(outer)=%d, want 2 and 0", g.Depth("a"), g.Depth("outer"))
	}
	if !g.IsCluster("outer") || !g.IsCluster("inner") || g.IsCluster("a") {
		t.Error("IsCluster mismatch")
	}

	// move back to root
	g.SetParent("b", "")
	if g.Parent("b") != "" {
		t.Errorf("Parent(b) = %q after reset", g.Parent("b"))
	}
	if got := g.Children("outer"); !slices.Equal(got, []string{"inner"}) {
		t.Errorf("Children(outer) after move = %v", got)
	}

	if err := g.SetParent("a", "missing"); !errors.Is(err, ErrUnknownNode) {
		t.Errorf("SetParent unknown parent = %v", err)
	}
	if err := g.SetParent("missing", "a"); !errors.Is(err, ErrUnknownNode) {
		t.Errorf("SetParent unknown child = %v", err)
	}
}

func TestCheckHierarchy(t *testing.T) {
	g := New()
	for _, id := range []string{"a", "b", "c"} {
		g.AddNode(id, nil)
	}
	g.SetParent("b", "a")
	g.SetParent("c", "b")
	if err := g.CheckHierarchy(); err != nil {
		t.Fatalf("CheckHierarchy on tree = %v", err)
	}

	g.SetParent("a", "c")
	if err := g.CheckHierarchy(); !errors.Is(err, ErrParentCycle) {
		t.Errorf("CheckHierarchy on cycle = %v, want %v", err, ErrParentCycle)
	}
	// walkers terminate on the cycle
	if got := g.Ancestors("a"); len(got) != 2 {
		t.Errorf("Ancestors on cycle = %v, want 2 entries", got)
	}
}

func TestClone(t *testing.T) {
	g := New()
	g.AddNode("p", Attrs{AttrLabel: "P"})
	g.AddNode("a", nil)
	g.SetParent("a", "p")
	g.AddNode("b", nil)
	g.AddEdge(EdgeKey{V: "a", W: "b"}, Attrs{AttrLabel: "x"})
	g.Attrs()[AttrRankDir] = "LR"

	c := g.Clone()
	if c.NodeCount() != 3 || c.EdgeCount() != 1 || c.Parent("a") != "p" {
		t.Fatalf("clone topology mismatch")
	}
	ea, _ := c.Edge(EdgeKey{V: "a", W: "b"})
	ea[AttrLabel] = "changed"
	if orig, _ := g.Edge(EdgeKey{V: "a", W: "b"}); orig[AttrLabel] != "x" {
		t.Error("clone shares edge attrs with original")
	}
	if c.Attrs()[AttrRankDir] != "LR" {
		t.Error("graph attrs not cloned")
	}
}

func TestAttrsAccessors(t *testing.T) {
	a := Attrs{
		"f":    3.5,
		"i":    7,
		"s":    " 12 ",
		"bad":  "wide",
		"txt":  "hello",
		"num":  42.0,
		"nil":  nil,
		"pts":  []geom.Point{{X: 1, Y: 2}},
		"json": []any{map[string]any{"x": 1.0, "y": "2"}},
	}

	floats := []struct {
		key  string
		want float64
		ok   bool
	}{
		{"f", 3.5, true},
		{"i", 7, true},
		{"s", 12, true},
		{"bad", 0, false},
		{"missing", 0, false},
	}
	for _, tt := range floats {
		got, ok := a.Float(tt.key)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Float(%q) = %v, %v, want %v, %v", tt.key, got, ok, tt.want, tt.ok)
		}
	}
	if got := a.FloatOr("bad", 10); got != 10 {
		t.Errorf("FloatOr(bad) = %v, want 10", got)
	}

	if s, ok := a.String("txt"); !ok || s != "hello" {
		t.Errorf("String(txt) = %q, %v", s, ok)
	}
	if s, ok := a.String("num"); !ok || s != "42" {
		t.Errorf("String(num) = %q, %v", s, ok)
	}
	if _, ok := a.String("nil"); ok {
		t.Error("String(nil) reported set")
	}
	if got := a.StringOr("missing", "def"); got != "def" {
		t.Errorf("StringOr = %q", got)
	}

	if pts, ok := a.Points("pts"); !ok || len(pts) != 1 || pts[0] != geom.Pt(1, 2) {
		t.Errorf("Points(pts) = %v, %v", pts, ok)
	}
	if pts, ok := a.Points("json"); !ok || pts[0] != geom.Pt(1, 2) {
		t.Errorf("Points(json) = %v, %v", pts, ok)
	}
}
