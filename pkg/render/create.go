package render

import (
	"cmp"
	"slices"
	"strconv"

	"github.com/matzehuels/dagdraw/pkg/arrows"
	"github.com/matzehuels/dagdraw/pkg/curve"
	"github.com/matzehuels/dagdraw/pkg/errors"
	"github.com/matzehuels/dagdraw/pkg/graph"
	"github.com/matzehuels/dagdraw/pkg/label"
	"github.com/matzehuels/dagdraw/pkg/scene"
	"github.com/matzehuels/dagdraw/pkg/shapes"
)

// Group class names under the output group, in paint order.
const (
	ClassOutput     = "output"
	ClassClusters   = "clusters"
	ClassEdgePaths  = "edgePaths"
	ClassEdgeLabels = "edgeLabels"
	ClassNodes      = "nodes"
)

// plan holds the strategies resolved for every entity before anything is
// drawn.
type plan struct {
	shapes map[string]shapes.Shape
	arrows map[graph.EdgeKey]arrows.Arrow
	curves map[graph.EdgeKey]curve.Curve
}

// resolve looks up every shape, arrowhead and curve the graph names. The
// first unknown name fails the render.
func (r *Renderer) resolve(g *graph.Graph) (*plan, error) {
	p := &plan{
		shapes: map[string]shapes.Shape{},
		arrows: map[graph.EdgeKey]arrows.Arrow{},
		curves: map[graph.EdgeKey]curve.Curve{},
	}
	for _, id := range g.Nodes() {
		if g.IsCluster(id) {
			continue
		}
		n, _ := g.Node(id)
		s, err := r.cfg.Shapes.Lookup(n.StringOr(graph.AttrShape, shapes.Default))
		if err != nil {
			return nil, errors.New(errors.ErrCodeInvalidShape, "node %q: %s", id, errors.UserMessage(err))
		}
		p.shapes[id] = s
	}
	for _, k := range g.Edges() {
		e, _ := g.Edge(k)
		a, err := r.cfg.Arrows.Lookup(e.StringOr(graph.AttrArrowhead, arrows.Default))
		if err != nil {
			return nil, errors.New(errors.ErrCodeInvalidArrowhead, "edge %s: %s", k, errors.UserMessage(err))
		}
		c, err := curve.Lookup(e.StringOr(graph.AttrCurve, curve.Default))
		if err != nil {
			return nil, errors.New(errors.ErrCodeInvalidCurve, "edge %s: %s", k, errors.UserMessage(err))
		}
		p.arrows[k] = a
		p.curves[k] = c
	}
	return p, nil
}

// canvas is the element skeleton of one render.
type canvas struct {
	output     *scene.Element
	clusters   *scene.Element
	edgePaths  *scene.Element
	edgeLabels *scene.Element
	nodes      *scene.Element

	// clusterLabels remembers label sizes; cluster labels are placed once
	// the cluster's box is known.
	clusterLabels map[string]label.Size
}

// newCanvas clears surface and recreates the output groups.
func newCanvas(surface *scene.Element) *canvas {
	surface.Clear()
	out := surface.Group(ClassOutput)
	return &canvas{
		output:        out,
		clusters:      out.Group(ClassClusters),
		edgePaths:     out.Group(ClassEdgePaths),
		edgeLabels:    out.Group(ClassEdgeLabels),
		nodes:         out.Group(ClassNodes),
		clusterLabels: map[string]label.Size{},
	}
}

// edgeKeyID identifies an edge among its siblings. Each part is quoted so
// ids containing "->" or brackets cannot make two keys collide.
func edgeKeyID(k graph.EdgeKey) string {
	return strconv.Quote(k.V) + "->" + strconv.Quote(k.W) + "[" + strconv.Quote(k.Name) + "]"
}

// createNodes draws every leaf and records its outline size as the node's
// width and height.
func (r *Renderer) createNodes(c *canvas, p *plan, g *graph.Graph) {
	for _, id := range g.Nodes() {
		if g.IsCluster(id) {
			continue
		}
		n, _ := g.Node(id)
		el := c.nodes.Keyed("g", "node", id)
		el.AddClass(n.StringOr(graph.AttrClass, ""))
		el.SetIf("id", n.StringOr(graph.AttrID, ""))

		labelGroup := el.Append("g").Set("class", "label")
		labelGroup.SetIf("id", n.StringOr(graph.AttrLabelID, ""))
		size := label.Draw(labelGroup, n.StringOr(graph.AttrLabel, ""), r.cfg.Measurer, n.StringOr(graph.AttrLabelStyle, ""))

		w, h := size.Width, size.Height
		if v, ok := n.Float(graph.AttrWidth); ok {
			w = v
		}
		if v, ok := n.Float(graph.AttrHeight); ok {
			h = v
		}
		pl, pr := n.FloatOr(graph.AttrPaddingLeft, 0), n.FloatOr(graph.AttrPaddingRight, 0)
		pt, pb := n.FloatOr(graph.AttrPaddingTop, 0), n.FloatOr(graph.AttrPaddingBottom, 0)
		w += pl + pr
		h += pt + pb
		labelGroup.Set("transform", scene.Translate((pl-pr)/2, (pt-pb)/2))

		outline, ow, oh := p.shapes[id].Draw(el, max(w, 0), max(h, 0), n)
		outline.AddClass("label-container")
		outline.SetIf("style", n.StringOr(graph.AttrStyle, ""))

		n[graph.AttrWidth] = ow
		n[graph.AttrHeight] = oh
	}
}

// createClusters draws a rect and label per cluster, outermost first so
// that nested clusters paint on top of their parents.
func (r *Renderer) createClusters(c *canvas, g *graph.Graph) {
	var ids []string
	for _, id := range g.Nodes() {
		if g.IsCluster(id) {
			ids = append(ids, id)
		}
	}
	slices.SortStableFunc(ids, func(a, b string) int {
		return cmp.Compare(g.Depth(a), g.Depth(b))
	})

	for _, id := range ids {
		n, _ := g.Node(id)
		el := c.clusters.Keyed("g", "cluster", id)
		el.AddClass(n.StringOr(graph.AttrClass, ""))
		el.SetIf("id", n.StringOr(graph.AttrID, ""))

		rect := el.Append("rect")
		rect.SetIf("style", n.StringOr(graph.AttrStyle, ""))

		labelGroup := el.Append("g").Set("class", "label")
		labelGroup.SetIf("id", n.StringOr(graph.AttrLabelID, ""))
		c.clusterLabels[id] = label.Draw(labelGroup, n.StringOr(graph.AttrLabel, ""), r.cfg.Measurer, n.StringOr(graph.AttrLabelStyle, ""))
	}
}

// createEdgeLabels draws the label of every edge whose label is non-empty.
// Its size is recorded on the edge unless the caller set one.
func (r *Renderer) createEdgeLabels(c *canvas, g *graph.Graph) {
	for _, k := range g.Edges() {
		e, _ := g.Edge(k)
		text := e.StringOr(graph.AttrLabel, "")
		if text == "" {
			continue
		}
		el := c.edgeLabels.Keyed("g", "edgeLabel", edgeKeyID(k))
		labelGroup := el.Append("g").Set("class", "label")
		labelGroup.SetIf("id", e.StringOr(graph.AttrLabelID, ""))
		size := label.Draw(labelGroup, text, r.cfg.Measurer, e.StringOr(graph.AttrLabelStyle, ""))

		if !e.Has(graph.AttrWidth) {
			e[graph.AttrWidth] = size.Width
		}
		if !e.Has(graph.AttrHeight) {
			e[graph.AttrHeight] = size.Height
		}
	}
}
