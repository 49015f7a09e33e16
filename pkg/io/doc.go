// Package io reads graphs from JSON and DOT documents and writes them back
// out, optionally with their computed layout.
//
// # Overview
//
// The JSON format is the native interchange format of dagdraw. DOT files are
// accepted as input so existing Graphviz graphs can be rendered directly.
// [Import] picks the reader from the file extension (.json, .dot, .gv).
//
// # JSON Format
//
// Attributes sit inline next to the identifying fields:
//
//	{
//	  "graph": {"rankdir": "LR", "nodesep": 40},
//	  "nodes": [
//	    {"id": "backend", "label": "Backend"},
//	    {"id": "api", "parent": "backend", "shape": "ellipse"},
//	    {"id": "db", "parent": "backend"},
//	    {"id": "web"}
//	  ],
//	  "edges": [
//	    {"v": "web", "w": "api", "label": "HTTP"},
//	    {"v": "api", "w": "db"},
//	    {"v": "api", "w": "db", "name": "replica", "style": "stroke-dasharray: 4"}
//	  ]
//	}
//
// Node fields:
//   - id: unique identifier, required
//   - parent: ID of the enclosing cluster; any node with children is drawn
//     as a cluster
//
// Edge fields:
//   - v, w: tail and head node IDs, required ("from"/"to" are accepted too)
//   - name: distinguishes parallel edges between the same nodes
//
// Every other field becomes an attribute. See package graph for the keys
// the renderer understands.
//
// # DOT Input
//
// [ReadDOT] maps DOT statements onto the same model: node and edge
// statements with their attribute lists, "node [...]" and "edge [...]"
// defaults, graph attributes, edge chains (a -> b -> c) and subgraph edge
// operands. Subgraphs whose name starts with "cluster" become cluster nodes
// carrying the subgraph's graph attributes; other subgraphs only scope
// defaults. A "key" edge attribute names a parallel edge; repeated edges
// without one are numbered.
//
// # Export
//
// [WriteJSON] writes a graph in the import format. [WriteLayoutJSON] also
// merges a [layout.Result] into the attributes (node boxes, edge points and
// label boxes), so a rendered graph can be handed to other tools and
// re-imported unchanged.
package io
