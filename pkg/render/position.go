package render

import (
	"github.com/matzehuels/dagdraw/pkg/graph"
	"github.com/matzehuels/dagdraw/pkg/layout"
	"github.com/matzehuels/dagdraw/pkg/scene"
)

func positionNodes(c *canvas, res *layout.Result, g *graph.Graph) {
	for _, id := range g.Nodes() {
		el := c.nodes.Lookup(id)
		if el == nil {
			continue
		}
		b := res.Nodes[id]
		el.Set("transform", scene.Translate(b.X, b.Y))
	}
}

func positionEdgeLabels(c *canvas, res *layout.Result) {
	for _, route := range res.Edges {
		el := c.edgeLabels.Lookup(edgeKeyID(route.Edge))
		if el == nil || route.Label == nil {
			continue
		}
		el.Set("transform", scene.Translate(route.Label.X, route.Label.Y))
	}
}

// positionClusters moves each cluster group to its box center, sizes its
// rect and centers the label inside the top padding band.
func positionClusters(c *canvas, res *layout.Result, g *graph.Graph) {
	for _, id := range g.Nodes() {
		el := c.clusters.Lookup(id)
		if el == nil {
			continue
		}
		b := res.Nodes[id]
		el.Set("transform", scene.Translate(b.X, b.Y))
		if rect := el.Select("rect", ""); rect != nil {
			rect.Set("x", -b.Width/2).
				Set("y", -b.Height/2).
				Set("width", b.Width).
				Set("height", b.Height)
		}
		if lg := el.Select("g", "label"); lg != nil {
			n, _ := g.Node(id)
			band := max(n.FloatOr(graph.AttrPaddingTop, DefaultPadding), c.clusterLabels[id].Height)
			lg.Set("transform", scene.Translate(0, -b.Height/2+band/2))
		}
	}
}
