package render

import (
	"github.com/matzehuels/dagdraw/pkg/geom"
	"github.com/matzehuels/dagdraw/pkg/graph"
	"github.com/matzehuels/dagdraw/pkg/layout"
)

// computeBBox returns the extent of everything the layout placed: node and
// cluster boxes, edge label boxes and the interior points of edge routes.
// Route end points are left out; edges are trimmed to node outlines, which
// lie inside the node boxes. An empty graph yields an empty rect.
func computeBBox(res *layout.Result, g *graph.Graph) geom.Rect {
	bb := geom.EmptyRect()
	for _, id := range g.Nodes() {
		if b, ok := res.Nodes[id]; ok {
			bb = bb.Union(b.Rect())
		}
	}
	for _, route := range res.Edges {
		if route.Label != nil {
			bb = bb.Union(route.Label.Rect())
		}
		if n := len(route.Points); n > 2 {
			for _, p := range route.Points[1 : n-1] {
				bb = bb.Extend(p)
			}
		}
	}
	return bb
}

// recordBBox stores bb on the graph's attributes, or removes a stale box
// when bb is empty.
func recordBBox(g *graph.Graph, bb geom.Rect) {
	a := g.Attrs()
	if bb.Empty() {
		for _, k := range []string{graph.AttrMinX, graph.AttrMinY, graph.AttrMaxX, graph.AttrMaxY} {
			delete(a, k)
		}
		return
	}
	a[graph.AttrMinX] = bb.MinX
	a[graph.AttrMinY] = bb.MinY
	a[graph.AttrMaxX] = bb.MaxX
	a[graph.AttrMaxY] = bb.MaxY
}
