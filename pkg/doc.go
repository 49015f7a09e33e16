// Package pkg provides the libraries behind dagdraw, a renderer that turns a
// directed graph with layout hints into an SVG drawing.
//
// # Overview
//
// The pkg directory is organized by stage:
//
//  1. [graph], [geom] - the attributed multigraph and the geometry it is measured in
//  2. [io] - reading JSON and DOT graphs, writing laid-out JSON
//  3. [layout] - the layout engine seam, backed by Graphviz
//  4. [render] - the render state machine that builds the scene
//  5. [scene], [shapes], [arrows], [curve], [label], [fonts] - SVG elements and their parts
//  6. [pipeline] - orchestration (import → render → export) with caching
//  7. [cache], [observability], [errors], [buildinfo] - supporting infrastructure
//
// # Architecture
//
//	JSON / DOT file
//	      ↓
//	[io] package (build the graph)
//	      ↓
//	[layout] package (assign positions and edge routes)
//	      ↓
//	[render] package (create, position and draw scene elements)
//	      ↓
//	SVG / PNG / PDF / laid-out JSON / DOT
//
// # Quick Start
//
//	import (
//	    "context"
//	    "os"
//
//	    pkgio "github.com/matzehuels/dagdraw/pkg/io"
//	    "github.com/matzehuels/dagdraw/pkg/render"
//	    "github.com/matzehuels/dagdraw/pkg/scene"
//	)
//
//	g, _ := pkgio.Import("deps.json")
//	root := scene.New("svg")
//	out, _ := render.New(render.NewConfig()).RenderOutput(context.Background(), root, g)
//	scene.WriteSVG(os.Stdout, root, out.BBox, scene.WithMargin(20))
//
// The [pipeline] package wraps these steps with artifact caching and is
// what the dagdraw CLI and HTTP service use.
package pkg
