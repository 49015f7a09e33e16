package render

import (
	"strconv"

	"github.com/matzehuels/dagdraw/pkg/geom"
	"github.com/matzehuels/dagdraw/pkg/graph"
	"github.com/matzehuels/dagdraw/pkg/layout"
	"github.com/matzehuels/dagdraw/pkg/shapes"
)

// markerID names the arrowhead of the i-th edge in graph order.
func markerID(i int) string { return "arrowhead" + strconv.Itoa(i) }

// createEdgePaths draws one edgePath group per edge: the path trimmed to the
// end nodes' outlines plus a <defs> holding the edge's arrowhead marker.
func createEdgePaths(c *canvas, p *plan, res *layout.Result, g *graph.Graph) {
	for i, k := range g.Edges() {
		e, _ := g.Edge(k)
		route, _ := res.Edge(k)

		el := c.edgePaths.Keyed("g", "edgePath", edgeKeyID(k))
		el.AddClass(e.StringOr(graph.AttrClass, ""))
		el.SetIf("id", e.StringOr(graph.AttrID, ""))

		pts := trimRoute(route.Points,
			endpoint(p, res, k.V),
			endpoint(p, res, k.W))

		style := "fill: none"
		if s := e.StringOr(graph.AttrStyle, ""); s != "" {
			style += "; " + s
		}
		id := markerID(i)
		el.Append("path").
			Set("class", "path").
			Set("d", p.curves[k](pts)).
			Set("marker-end", "url(#"+id+")").
			Set("style", style)

		p.arrows[k].Attach(el.Append("defs"), id, e)
	}
}

// nodeOutline is a laid-out node together with the shape that clips edges
// at its border.
type nodeOutline struct {
	box   layout.Box
	shape shapes.Shape
}

func (o nodeOutline) intersect(towards geom.Point) geom.Point {
	return o.shape.Intersect(o.box.Center(), o.box.Width, o.box.Height, towards)
}

// endpoint returns the outline of node id. Clusters, which have no drawn
// shape of their own, clip as rectangles.
func endpoint(p *plan, res *layout.Result, id string) nodeOutline {
	s, ok := p.shapes[id]
	if !ok {
		s = shapes.Rect{}
	}
	return nodeOutline{box: res.Nodes[id], shape: s}
}

// trimRoute replaces the first and last route points with the crossings of
// the end node outlines. Each end aims at its nearest interior point, or at
// the other node's center when there is none.
func trimRoute(points []geom.Point, tail, head nodeOutline) []geom.Point {
	var interior []geom.Point
	if len(points) > 2 {
		interior = points[1 : len(points)-1]
	}

	first, last := head.box.Center(), tail.box.Center()
	if len(interior) > 0 {
		first, last = interior[0], interior[len(interior)-1]
	}

	out := make([]geom.Point, 0, len(interior)+2)
	out = append(out, tail.intersect(first))
	out = append(out, interior...)
	return append(out, head.intersect(last))
}
