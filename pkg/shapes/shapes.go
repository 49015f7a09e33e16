// Package shapes provides the node shapes dagdraw can draw and the registry
// that maps a node's "shape" attribute to one of them.
//
// A [Shape] is a strategy with two operations: Draw appends SVG geometry that
// encloses a content box (label plus padding) and reports the total size, and
// Intersect tells the edge renderer where a ray from the node's center leaves
// the outline, so edges end on the node boundary instead of its center.
package shapes

import (
	"maps"
	"math"
	"slices"

	"github.com/matzehuels/dagdraw/pkg/errors"
	"github.com/matzehuels/dagdraw/pkg/geom"
	"github.com/matzehuels/dagdraw/pkg/graph"
	"github.com/matzehuels/dagdraw/pkg/scene"
)

// Default is the shape used when a node has no "shape" attribute.
const Default = "rect"

// Shape draws a node outline and intersects rays with it.
type Shape interface {
	// Draw inserts the outline under parent, sized to enclose a w×h content
	// box centered on the origin, and returns the element and the outline's
	// total width and height.
	Draw(parent *scene.Element, w, h float64, attrs graph.Attrs) (*scene.Element, float64, float64)

	// Intersect returns where the ray from center towards p crosses the
	// outline of a node of the given total size.
	Intersect(center geom.Point, width, height float64, p geom.Point) geom.Point
}

// Registry maps shape names to shapes. Registries are treated as immutable;
// [Registry.With] returns a modified copy.
type Registry map[string]Shape

// DefaultRegistry returns the built-in shapes: rect, ellipse, circle and
// diamond.
func DefaultRegistry() Registry {
	return Registry{
		"rect":    Rect{},
		"ellipse": Ellipse{},
		"circle":  Circle{},
		"diamond": Diamond{},
	}
}

// With returns a copy of r with name bound to s.
func (r Registry) With(name string, s Shape) Registry {
	c := maps.Clone(r)
	if c == nil {
		c = Registry{}
	}
	c[name] = s
	return c
}

// Lookup returns the shape registered under name, or an INVALID_SHAPE error.
func (r Registry) Lookup(name string) (Shape, error) {
	if s, ok := r[name]; ok && s != nil {
		return s, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidShape, "unknown shape %q (known: %v)", name, r.Names())
}

// Names returns the registered names in sorted order.
func (r Registry) Names() []string {
	return slices.Sorted(maps.Keys(r))
}

// Rect is a rectangle with optional rounded corners taken from the node's
// rx and ry attributes.
type Rect struct{}

// Draw implements [Shape].
func (Rect) Draw(parent *scene.Element, w, h float64, attrs graph.Attrs) (*scene.Element, float64, float64) {
	el := parent.Insert("rect").
		Set("rx", attrs.FloatOr(graph.AttrRX, 0)).
		Set("ry", attrs.FloatOr(graph.AttrRY, 0)).
		Set("x", -w/2).
		Set("y", -h/2).
		Set("width", w).
		Set("height", h)
	return el, w, h
}

// Intersect implements [Shape].
func (Rect) Intersect(c geom.Point, width, height float64, p geom.Point) geom.Point {
	return geom.IntersectRect(c, width, height, p)
}

// Ellipse is an axis-aligned ellipse whose radii are half the content box.
type Ellipse struct{}

// Draw implements [Shape].
func (Ellipse) Draw(parent *scene.Element, w, h float64, _ graph.Attrs) (*scene.Element, float64, float64) {
	el := parent.Insert("ellipse").
		Set("x", -w/2).
		Set("y", -h/2).
		Set("rx", w/2).
		Set("ry", h/2)
	return el, w, h
}

// Intersect implements [Shape].
func (Ellipse) Intersect(c geom.Point, width, height float64, p geom.Point) geom.Point {
	return geom.IntersectEllipse(c, width/2, height/2, p)
}

// Circle is a circle whose diameter is the larger side of the content box.
type Circle struct{}

// Draw implements [Shape].
func (Circle) Draw(parent *scene.Element, w, h float64, _ graph.Attrs) (*scene.Element, float64, float64) {
	r := math.Max(w, h) / 2
	el := parent.Insert("circle").
		Set("x", -w/2).
		Set("y", -h/2).
		Set("r", r)
	return el, 2 * r, 2 * r
}

// Intersect implements [Shape].
func (Circle) Intersect(c geom.Point, width, _ float64, p geom.Point) geom.Point {
	return geom.IntersectCircle(c, width/2, p)
}

// Diamond is a rhombus that encloses the content box's corners.
type Diamond struct{}

// Draw implements [Shape].
func (Diamond) Draw(parent *scene.Element, w, h float64, _ graph.Attrs) (*scene.Element, float64, float64) {
	hw := w * math.Sqrt2 / 2
	hh := h * math.Sqrt2 / 2
	pts := diamondPoints(hw, hh)
	el := parent.Insert("polygon").Set("points", formatPoints(pts))
	return el, 2 * hw, 2 * hh
}

// Intersect implements [Shape].
func (Diamond) Intersect(c geom.Point, width, height float64, p geom.Point) geom.Point {
	return geom.IntersectPolygon(c, diamondPoints(width/2, height/2), p)
}

func diamondPoints(hw, hh float64) []geom.Point {
	return []geom.Point{{X: 0, Y: -hh}, {X: -hw, Y: 0}, {X: 0, Y: hh}, {X: hw, Y: 0}}
}

func formatPoints(pts []geom.Point) string {
	var s string
	for i, p := range pts {
		if i > 0 {
			s += " "
		}
		s += scene.Num(p.X) + "," + scene.Num(p.Y)
	}
	return s
}
