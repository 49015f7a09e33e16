package layout

import (
	"context"
	"math"

	"github.com/matzehuels/dagdraw/pkg/errors"
	"github.com/matzehuels/dagdraw/pkg/geom"
	"github.com/matzehuels/dagdraw/pkg/graph"
)

// Engine computes a layout for g. Implementations must not modify g.
type Engine interface {
	Layout(ctx context.Context, g *graph.Graph) (*Result, error)
}

// Named is implemented by engines that can identify themselves. The name
// is part of layout cache keys.
type Named interface {
	Name() string
}

// EngineFunc adapts a function into an [Engine].
type EngineFunc func(ctx context.Context, g *graph.Graph) (*Result, error)

// Layout implements [Engine].
func (f EngineFunc) Layout(ctx context.Context, g *graph.Graph) (*Result, error) {
	return f(ctx, g)
}

// Box is an axis-aligned box given by its center and size.
type Box struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Rect converts b to min/max form.
func (b Box) Rect() geom.Rect {
	return geom.RectFromCenter(b.X, b.Y, b.Width, b.Height)
}

// Center returns the box center.
func (b Box) Center() geom.Point { return geom.Pt(b.X, b.Y) }

func (b Box) finite() bool {
	for _, v := range []float64{b.X, b.Y, b.Width, b.Height} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return b.Width >= 0 && b.Height >= 0
}

// EdgeRoute is the geometry of one edge: the polyline from tail to head
// and, for labeled edges, the label box.
type EdgeRoute struct {
	Edge   graph.EdgeKey `json:"edge"`
	Points []geom.Point  `json:"points"`
	Label  *Box          `json:"label,omitempty"`
}

// Result is the output of an [Engine].
type Result struct {
	Nodes map[string]Box `json:"nodes"`
	Edges []EdgeRoute    `json:"edges"`
}

// NewResult returns an empty result.
func NewResult() *Result {
	return &Result{Nodes: map[string]Box{}}
}

// Edge returns the route of k.
func (r *Result) Edge(k graph.EdgeKey) (EdgeRoute, bool) {
	for _, e := range r.Edges {
		if e.Edge == k {
			return e, true
		}
	}
	return EdgeRoute{}, false
}

// Validate checks that r covers g: every node has a finite box and every
// edge has a route of at least two finite points. Violations are reported
// as LAYOUT_FAILED.
func (r *Result) Validate(g *graph.Graph) error {
	if r == nil {
		return errors.New(errors.ErrCodeLayoutFailed, "engine returned no result")
	}
	for _, id := range g.Nodes() {
		b, ok := r.Nodes[id]
		if !ok {
			return errors.New(errors.ErrCodeLayoutFailed, "no position for node %q", id)
		}
		if !b.finite() {
			return errors.New(errors.ErrCodeLayoutFailed, "invalid box for node %q: %+v", id, b)
		}
	}

	routes := make(map[graph.EdgeKey]EdgeRoute, len(r.Edges))
	for _, e := range r.Edges {
		routes[e.Edge] = e
	}
	for _, k := range g.Edges() {
		e, ok := routes[k]
		if !ok {
			return errors.New(errors.ErrCodeLayoutFailed, "no route for edge %s", k)
		}
		if len(e.Points) < 2 {
			return errors.New(errors.ErrCodeLayoutFailed, "edge %s has %d points, want at least 2", k, len(e.Points))
		}
		for _, p := range e.Points {
			if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
				return errors.New(errors.ErrCodeLayoutFailed, "edge %s has a non-finite point", k)
			}
		}
		if e.Label != nil && !e.Label.finite() {
			return errors.New(errors.ErrCodeLayoutFailed, "invalid label box for edge %s", k)
		}
	}
	return nil
}

// Apply writes the result into g's attribute maps: x, y, width and height
// on nodes, points on edges, and x, y, width and height on labeled edges.
// Entries for nodes or edges that g does not have are ignored.
func (r *Result) Apply(g *graph.Graph) {
	for id, b := range r.Nodes {
		n, ok := g.Node(id)
		if !ok {
			continue
		}
		n[graph.AttrX] = b.X
		n[graph.AttrY] = b.Y
		n[graph.AttrWidth] = b.Width
		n[graph.AttrHeight] = b.Height
	}
	for _, e := range r.Edges {
		a, ok := g.Edge(e.Edge)
		if !ok {
			continue
		}
		a[graph.AttrPoints] = append([]geom.Point(nil), e.Points...)
		if e.Label != nil {
			a[graph.AttrX] = e.Label.X
			a[graph.AttrY] = e.Label.Y
			a[graph.AttrWidth] = e.Label.Width
			a[graph.AttrHeight] = e.Label.Height
		}
	}
}

// EngineName returns e's name if it implements [Named], or "custom".
func EngineName(e Engine) string {
	if n, ok := e.(Named); ok {
		return n.Name()
	}
	return "custom"
}
