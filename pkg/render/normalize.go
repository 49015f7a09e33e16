package render

import (
	"math"

	"github.com/matzehuels/dagdraw/pkg/arrows"
	"github.com/matzehuels/dagdraw/pkg/curve"
	"github.com/matzehuels/dagdraw/pkg/errors"
	"github.com/matzehuels/dagdraw/pkg/graph"
	"github.com/matzehuels/dagdraw/pkg/shapes"
)

// DefaultPadding is the space between a node's label and its outline on
// each side.
const DefaultPadding = 10.0

var paddingSides = []struct {
	side, axis string
}{
	{graph.AttrPaddingLeft, graph.AttrPaddingX},
	{graph.AttrPaddingRight, graph.AttrPaddingX},
	{graph.AttrPaddingTop, graph.AttrPaddingY},
	{graph.AttrPaddingBottom, graph.AttrPaddingY},
}

// normalize fills in the defaults every later stage relies on. It only
// writes attribute maps; topology is untouched.
func normalize(g *graph.Graph) error {
	for _, id := range g.Nodes() {
		n, _ := g.Node(id)
		clearSideFields(n)

		if !n.Has(graph.AttrLabel) && len(g.Children(id)) == 0 {
			n[graph.AttrLabel] = id
		}

		for _, p := range paddingSides {
			v, err := resolvePadding(n, p.side, p.axis)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidInput, err, "node %q", id)
			}
			n[p.side] = v
		}
		for _, k := range []string{graph.AttrRX, graph.AttrRY} {
			v, err := numberOr(n, k, 0)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidInput, err, "node %q", id)
			}
			n[k] = v
		}
		if !n.Has(graph.AttrShape) {
			n[graph.AttrShape] = shapes.Default
		}
		saveSize(n)
	}

	for _, k := range g.Edges() {
		e, _ := g.Edge(k)
		clearSideFields(e)
		if !e.Has(graph.AttrLabel) {
			e[graph.AttrLabel] = ""
		}
		if !e.Has(graph.AttrArrowhead) {
			e[graph.AttrArrowhead] = arrows.Default
		}
		if !e.Has(graph.AttrCurve) {
			e[graph.AttrCurve] = curve.Default
		}
		saveSize(e)
	}
	return nil
}

// resolvePadding applies the precedence side > axis > padding > default.
func resolvePadding(n graph.Attrs, side, axis string) (float64, error) {
	for _, k := range []string{side, axis, graph.AttrPadding} {
		if n.Has(k) {
			return number(n, k)
		}
	}
	return DefaultPadding, nil
}

func number(a graph.Attrs, key string) (float64, error) {
	v, ok := a.Float(key)
	if !ok || math.IsNaN(v) {
		return 0, errors.New(errors.ErrCodeInvalidInput, "%s: %v is not a number", key, a[key])
	}
	return v, nil
}

func numberOr(a graph.Attrs, key string, def float64) (float64, error) {
	if !a.Has(key) {
		return def, nil
	}
	return number(a, key)
}

// clearSideFields drops bookkeeping left behind by a render that failed
// before restore ran. The saved value is the caller's, so it wins over
// whatever size the failed render recorded.
func clearSideFields(a graph.Attrs) {
	if v, ok := a[graph.AttrPrevWidth]; ok {
		a[graph.AttrWidth] = v
		delete(a, graph.AttrPrevWidth)
	}
	if v, ok := a[graph.AttrPrevHeight]; ok {
		a[graph.AttrHeight] = v
		delete(a, graph.AttrPrevHeight)
	}
}

func saveSize(a graph.Attrs) {
	if v, ok := a[graph.AttrWidth]; ok {
		a[graph.AttrPrevWidth] = v
	}
	if v, ok := a[graph.AttrHeight]; ok {
		a[graph.AttrPrevHeight] = v
	}
}

// restore puts caller-supplied sizes back and removes the ones the render
// computed. Layout positions (x, y, points) stay.
func restore(g *graph.Graph) {
	for _, id := range g.Nodes() {
		n, _ := g.Node(id)
		restoreSize(n)
	}
	for _, k := range g.Edges() {
		e, _ := g.Edge(k)
		restoreSize(e)
	}
}

func restoreSize(a graph.Attrs) {
	if v, ok := a[graph.AttrPrevWidth]; ok {
		a[graph.AttrWidth] = v
	} else {
		delete(a, graph.AttrWidth)
	}
	if v, ok := a[graph.AttrPrevHeight]; ok {
		a[graph.AttrHeight] = v
	} else {
		delete(a, graph.AttrHeight)
	}
	delete(a, graph.AttrPrevWidth)
	delete(a, graph.AttrPrevHeight)
}
