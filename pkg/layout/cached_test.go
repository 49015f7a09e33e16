package layout

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/dagdraw/pkg/cache"
	"github.com/matzehuels/dagdraw/pkg/geom"
	"github.com/matzehuels/dagdraw/pkg/graph"
)

// countingEngine stacks nodes vertically and counts its invocations.
type countingEngine struct {
	calls int
}

func (e *countingEngine) Name() string { return "counting" }

func (e *countingEngine) Layout(_ context.Context, g *graph.Graph) (*Result, error) {
	e.calls++
	res := NewResult()
	y := 0.0
	for _, id := range g.Nodes() {
		n, _ := g.Node(id)
		w, h := n.FloatOr(graph.AttrWidth, 0), n.FloatOr(graph.AttrHeight, 0)
		res.Nodes[id] = Box{X: w / 2, Y: y + h/2, Width: w, Height: h}
		y += h + 50
	}
	for _, k := range g.Edges() {
		v, w := res.Nodes[k.V], res.Nodes[k.W]
		res.Edges = append(res.Edges, EdgeRoute{Edge: k, Points: []geom.Point{v.Center(), w.Center()}})
	}
	return res, nil
}

func TestCachedLayout(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	inner := &countingEngine{}
	eng := NewCached(inner, fc, nil)
	ctx := context.Background()

	g := chain(t, "")
	first, err := eng.Layout(ctx, g)
	if err != nil {
		t.Fatalf("first Layout: %v", err)
	}
	second, err := eng.Layout(ctx, g)
	if err != nil {
		t.Fatalf("second Layout: %v", err)
	}
	if inner.calls != 1 {
		t.Errorf("inner calls = %d, want 1", inner.calls)
	}
	if first.Nodes["b"] != second.Nodes["b"] {
		t.Errorf("cached b = %+v, want %+v", second.Nodes["b"], first.Nodes["b"])
	}

	// Styles do not affect the key; sizes do.
	n, _ := g.Node("a")
	n[graph.AttrStyle] = "fill: red"
	if _, err := eng.Layout(ctx, g); err != nil {
		t.Fatal(err)
	}
	if inner.calls != 1 {
		t.Errorf("inner calls after style change = %d, want 1", inner.calls)
	}
	n[graph.AttrWidth] = 80
	if _, err := eng.Layout(ctx, g); err != nil {
		t.Fatal(err)
	}
	if inner.calls != 2 {
		t.Errorf("inner calls after resize = %d, want 2", inner.calls)
	}
}

func TestCachedKey(t *testing.T) {
	eng := NewCached(&countingEngine{}, nil, nil)
	g := chain(t, "")
	k1, err := eng.Key(g)
	if err != nil {
		t.Fatal(err)
	}
	g.Attrs()[graph.AttrRankDir] = "LR"
	k2, err := eng.Key(g)
	if err != nil {
		t.Fatal(err)
	}
	if k1 == k2 {
		t.Error("rankdir should change the layout key")
	}
	if eng.Name() != "counting" {
		t.Errorf("Name() = %q, want %q", eng.Name(), "counting")
	}
}

func TestCachedNullCache(t *testing.T) {
	inner := &countingEngine{}
	eng := NewCached(inner, nil, nil)
	g := chain(t, "")
	for range 2 {
		if _, err := eng.Layout(context.Background(), g); err != nil {
			t.Fatal(err)
		}
	}
	if inner.calls != 2 {
		t.Errorf("inner calls = %d, want 2", inner.calls)
	}
}

func TestToDOT(t *testing.T) {
	g := graph.New()
	g.Attrs()[graph.AttrRankDir] = "lr"
	for _, id := range []string{"a", `say "hi"`, "group"} {
		if err := g.AddNode(id, nil); err != nil {
			t.Fatal(err)
		}
	}
	n, _ := g.Node("group")
	n[graph.AttrLabel] = "Group"
	if err := g.SetParent("a", "group"); err != nil {
		t.Fatal(err)
	}
	if err := g.AddEdge(graph.EdgeKey{V: "a", W: `say "hi"`, Name: "k"}, graph.Attrs{graph.AttrLabel: "x", graph.AttrArrowhead: "undirected"}); err != nil {
		t.Fatal(err)
	}

	got := ToDOT(g)
	for _, want := range []string{
		"rankdir=LR;",
		`subgraph "cluster_0" {`,
		`label="Group";`,
		`"say \"hi\"";`,
		`"a" -> "say \"hi\"" [label="x", key="k", dir=none];`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("ToDOT missing %q:\n%s", want, got)
		}
	}
}

func TestRenderDOT(t *testing.T) {
	out, err := RenderDOT(context.Background(), chain(t, ""))
	if err != nil {
		t.Fatalf("RenderDOT: %v", err)
	}
	if !strings.Contains(string(out), "pos=") {
		t.Errorf("RenderDOT output has no positions:\n%s", out)
	}
}
