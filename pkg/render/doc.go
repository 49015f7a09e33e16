// Package render turns a graph into a positioned SVG scene.
//
// # Overview
//
// A render runs a fixed sequence of stages over a [graph.Graph] and a
// [scene.Element] surface:
//
//  1. Normalize: default labels, paddings, shapes, arrowheads and curves,
//     and remember caller-supplied sizes.
//  2. Create: validate every shape, arrowhead and curve, then draw one
//     group per node, cluster and edge label and record their sizes.
//  3. Lay out: hand the sized graph to a [layout.Engine] and validate its
//     [layout.Result].
//  4. Bound: compute the drawing's bounding box.
//  5. Position: translate nodes, edge labels and clusters into place.
//  6. Finalize: draw edge paths trimmed to node outlines with arrowheads,
//     then restore the caller's sizes.
//
// Everything is written under a single "output" group holding, in paint
// order, the "clusters", "edgePaths", "edgeLabels" and "nodes" groups.
// Rendering the same graph twice into the same surface produces the same
// tree.
//
// # Usage
//
//	r := render.New(render.NewConfig(
//	    render.WithLogger(logger),
//	))
//	svg := scene.New("svg")
//	out, err := r.RenderOutput(ctx, svg, g)
//	if err != nil {
//	    return err
//	}
//	scene.WriteSVG(w, svg, out.BBox, scene.WithMargin(20))
//
// # Configuration
//
// [Config] is immutable once built by [NewConfig]. Shapes and arrowheads are
// looked up in registries ([shapes.Registry], [arrows.Registry]); unknown
// names fail the render before layout runs with INVALID_SHAPE,
// INVALID_ARROWHEAD or INVALID_CURVE.
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert a finished SVG with the external rsvg-convert
// tool (from librsvg).
package render
