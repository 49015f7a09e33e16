package render

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/matzehuels/dagdraw/pkg/geom"
	"github.com/matzehuels/dagdraw/pkg/graph"
	"github.com/matzehuels/dagdraw/pkg/label"
	"github.com/matzehuels/dagdraw/pkg/layout"
	"github.com/matzehuels/dagdraw/pkg/scene"
)

// testMeasurer makes a one-character label 10×20.
var testMeasurer = label.FixedMeasurer{CharWidth: 10, LineHeight: 20}

// stackEngine stacks leaves in a column at x=0, 50 units apart, wraps each
// cluster around its children plus padding, and routes every edge through
// the midpoint of its end centers. Labeled edges get their label box at
// that midpoint. calls, when non-nil, counts invocations.
func stackEngine(calls *int) layout.EngineFunc {
	return func(_ context.Context, g *graph.Graph) (*layout.Result, error) {
		if calls != nil {
			*calls++
		}
		res := layout.NewResult()
		y := 0.0
		var clusters []string
		for _, id := range g.Nodes() {
			if g.IsCluster(id) {
				clusters = append(clusters, id)
				continue
			}
			n, _ := g.Node(id)
			w, h := n.FloatOr(graph.AttrWidth, 0), n.FloatOr(graph.AttrHeight, 0)
			res.Nodes[id] = layout.Box{X: 0, Y: y + h/2, Width: w, Height: h}
			y += h + 50
		}

		slices.SortStableFunc(clusters, func(a, b string) int {
			return cmp.Compare(g.Depth(b), g.Depth(a))
		})
		for _, id := range clusters {
			n, _ := g.Node(id)
			r := geom.EmptyRect()
			for _, c := range g.Children(id) {
				r = r.Union(res.Nodes[c].Rect())
			}
			r.MinX -= n.FloatOr(graph.AttrPaddingLeft, 10)
			r.MaxX += n.FloatOr(graph.AttrPaddingRight, 10)
			r.MinY -= n.FloatOr(graph.AttrPaddingTop, 10)
			r.MaxY += n.FloatOr(graph.AttrPaddingBottom, 10)
			c := r.Center()
			res.Nodes[id] = layout.Box{X: c.X, Y: c.Y, Width: r.Width(), Height: r.Height()}
		}

		for _, k := range g.Edges() {
			a, b := res.Nodes[k.V].Center(), res.Nodes[k.W].Center()
			mid := geom.Pt((a.X+b.X)/2, (a.Y+b.Y)/2)
			route := layout.EdgeRoute{Edge: k, Points: []geom.Point{a, mid, b}}
			e, _ := g.Edge(k)
			if e.StringOr(graph.AttrLabel, "") != "" {
				route.Label = &layout.Box{
					X:      mid.X,
					Y:      mid.Y,
					Width:  e.FloatOr(graph.AttrWidth, 0),
					Height: e.FloatOr(graph.AttrHeight, 0),
				}
			}
			res.Edges = append(res.Edges, route)
		}
		return res, nil
	}
}

func newTestRenderer(engine layout.Engine, opts ...Option) *Renderer {
	base := []Option{WithEngine(engine), WithMeasurer(testMeasurer)}
	return New(NewConfig(append(base, opts...)...))
}

func mustNode(g *graph.Graph, id string, attrs graph.Attrs) {
	if err := g.AddNode(id, attrs); err != nil {
		panic(err)
	}
}

func mustEdge(g *graph.Graph, v, w string, attrs graph.Attrs) graph.EdgeKey {
	k := graph.EdgeKey{V: v, W: w}
	if err := g.AddEdge(k, attrs); err != nil {
		panic(err)
	}
	return k
}

func mustParent(g *graph.Graph, child, parent string) {
	if err := g.SetParent(child, parent); err != nil {
		panic(err)
	}
}

// group returns the named group under the output group.
func group(surface *scene.Element, name string) *scene.Element {
	out := surface.Select("g", ClassOutput)
	if out == nil {
		return nil
	}
	return out.Select("g", name)
}

// recordingHooks captures render events.
type recordingHooks struct {
	started   int
	stages    []string
	completed int
	err       error
}

func (h *recordingHooks) OnRenderStart(context.Context, int, int) { h.started++ }

func (h *recordingHooks) OnStage(_ context.Context, stage string, _ time.Duration) {
	h.stages = append(h.stages, stage)
}

func (h *recordingHooks) OnRenderComplete(_ context.Context, _ time.Duration, err error) {
	h.completed++
	h.err = err
}
