// Package graph provides the compound directed multigraph that dagdraw renders.
//
// # Overview
//
// A [Graph] holds nodes keyed by string IDs and edges keyed by [EdgeKey]
// (source, target and an optional name that tells parallel edges apart).
// Any node may be nested inside another through [Graph.SetParent]; a node that
// ends up with children is a cluster and is drawn as a box around them.
//
// Every node, every edge and the graph itself carry an [Attrs] map. The
// renderer reads visual attributes from these maps (label, shape, padding,
// arrowhead, curve) and writes layout results back into them (x, y, width,
// height, points). Topology (node and edge identity, the parent relation) is
// never changed by rendering.
//
// # Basic Usage
//
//	g := graph.New()
//	g.AddNode("a", graph.Attrs{graph.AttrLabel: "Alpha"})
//	g.AddNode("b", nil)
//	g.AddEdge(graph.EdgeKey{V: "a", W: "b"}, graph.Attrs{graph.AttrLabel: "uses"})
//
//	g.AddNode("group", nil)
//	g.SetParent("a", "group")
//	g.SetParent("b", "group")
//
// Iteration order of [Graph.Nodes] and [Graph.Edges] is insertion order, so
// everything derived from a graph (SVG output, layout input, cache keys) is
// deterministic.
//
// # Parent Relation
//
// [Graph.SetParent] only checks that both nodes exist. A cycle in the parent
// relation is reported by [Graph.CheckHierarchy], which layout engines call
// before doing any work. Walkers such as [Graph.Ancestors] and [Graph.Depth]
// stop at the first repeated node, so a malformed hierarchy never hangs them.
//
// # Concurrency
//
// Graph is not safe for concurrent use without external synchronization.
package graph
