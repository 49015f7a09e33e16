// Package scene is the rendering surface dagdraw draws into: a small retained
// tree of SVG elements with create-or-select, attribute and removal operations,
// plus a serializer that turns the tree into an SVG document.
//
// # Overview
//
// The renderer never writes markup directly. It asks a container for a named
// group ([Element.Group]) or for a child keyed by entity identity
// ([Element.Keyed]), sets attributes on it ([Element.Set]) and clears
// containers ([Element.Clear]) at the start of every render. Because the tree
// is retained, rendering the same graph twice into the same surface produces
// the same tree, which [WriteSVG] turns into byte-identical output.
//
// # Usage
//
//	svg := scene.New("svg")
//	out := svg.Group("output")
//	out.Keyed("g", "node", "a").Set("transform", scene.Translate(10, 20))
//
//	var buf bytes.Buffer
//	scene.WriteSVG(&buf, svg, geom.Rect{MaxX: 100, MaxY: 50})
package scene
