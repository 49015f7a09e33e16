// Package arrows provides the arrowhead markers drawn at the end of edges.
//
// Each [Arrow] appends an SVG <marker> with a caller-chosen id to a <defs>
// element. Edge paths then reference the marker through
// marker-end="url(#id)". Markers share one geometry frame: a 10×10 viewBox
// with the reference point at (9,5), scaled by the stroke width.
package arrows

import (
	"maps"
	"slices"

	"github.com/matzehuels/dagdraw/pkg/errors"
	"github.com/matzehuels/dagdraw/pkg/graph"
	"github.com/matzehuels/dagdraw/pkg/scene"
)

// Default is the arrowhead used when an edge has no "arrowhead" attribute.
const Default = "normal"

// AttrArrowheadClass is an optional CSS class for the marker's path.
const AttrArrowheadClass = "arrowheadClass"

// Arrow appends an arrowhead marker definition.
type Arrow interface {
	// Attach appends a <marker id=id> to defs, styled from the edge's
	// arrowheadStyle and arrowheadClass attributes, and returns it.
	Attach(defs *scene.Element, id string, edge graph.Attrs) *scene.Element
}

// Func adapts a path definition into an [Arrow].
type Func string

// Attach implements [Arrow]. The receiver is the SVG path data of the head.
func (f Func) Attach(defs *scene.Element, id string, edge graph.Attrs) *scene.Element {
	m := marker(defs, id)
	path := m.Append("path").
		Set("d", string(f)).
		Set("style", "stroke-width: 1; stroke-dasharray: 1,0")
	if s, ok := edge.String(graph.AttrArrowheadStyle); ok && s != "" {
		path.Set("style", s)
	}
	if c, ok := edge.String(AttrArrowheadClass); ok && c != "" {
		path.Set("class", c)
	}
	return m
}

// Built-in arrowheads.
const (
	Normal     Func = "M 0 0 L 10 5 L 0 10 z"
	Vee        Func = "M 0 0 L 10 5 L 0 10 L 4 5 z"
	Undirected Func = "M 0 5 L 10 5"
)

func marker(defs *scene.Element, id string) *scene.Element {
	return defs.Append("marker").
		Set("id", id).
		Set("viewBox", "0 0 10 10").
		Set("refX", 9).
		Set("refY", 5).
		Set("markerUnits", "strokeWidth").
		Set("markerWidth", 8).
		Set("markerHeight", 6).
		Set("orient", "auto")
}

// Registry maps arrowhead names to arrows. Registries are treated as
// immutable; [Registry.With] returns a modified copy.
type Registry map[string]Arrow

// DefaultRegistry returns normal, vee and undirected.
func DefaultRegistry() Registry {
	return Registry{
		"normal":     Normal,
		"vee":        Vee,
		"undirected": Undirected,
	}
}

// With returns a copy of r with name bound to a.
func (r Registry) With(name string, a Arrow) Registry {
	c := maps.Clone(r)
	if c == nil {
		c = Registry{}
	}
	c[name] = a
	return c
}

// Lookup returns the arrow registered under name, or an INVALID_ARROWHEAD
// error.
func (r Registry) Lookup(name string) (Arrow, error) {
	if a, ok := r[name]; ok && a != nil {
		return a, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidArrowhead, "unknown arrowhead %q (known: %v)", name, r.Names())
}

// Names returns the registered names in sorted order.
func (r Registry) Names() []string {
	return slices.Sorted(maps.Keys(r))
}
