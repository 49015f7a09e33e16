// Package layout assigns positions to a graph's nodes, clusters and edges.
//
// # Overview
//
// An [Engine] reads a graph whose leaves already carry their final sizes
// (width/height attributes written by the renderer) and returns a [Result]:
// a center-based box for every node and cluster, a polyline for every edge,
// and a box for every edge label. The result is an explicit value; the
// graph is not modified until the caller runs [Result.Apply].
//
// [Graphviz] is the shipped engine. It drives Graphviz's dot algorithm
// in-process through github.com/goccy/go-graphviz and reads the positioned
// output back with github.com/teleivo/dot. [Cached] wraps any engine with a
// [cache.Cache].
//
// # Usage
//
//	eng := layout.NewCached(layout.NewGraphviz(), c, nil)
//	res, err := eng.Layout(ctx, g)
//	if err != nil {
//	    return err
//	}
//	if err := res.Validate(g); err != nil {
//	    return err
//	}
//	res.Apply(g)
//
// # Coordinates
//
// Coordinates are in SVG user units with y growing downwards. Boxes are
// described by their center.
package layout
