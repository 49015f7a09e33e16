package layout

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/teleivo/dot"
	"github.com/teleivo/dot/ast"

	"github.com/matzehuels/dagdraw/pkg/geom"
)

// positioned is the geometry Graphviz reports, in its own coordinate system
// (points, y growing upwards).
type positioned struct {
	bb       geom.Rect
	nodes    map[string]geom.Point
	clusters map[string]geom.Rect
	edges    map[string][]geom.Point
}

// parsePositioned reads Graphviz "dot"/"xdot" output.
func parsePositioned(src []byte) (*positioned, error) {
	p := dot.NewParser(src)
	tree := p.Parse()
	if errs := p.Errors(); len(errs) > 0 {
		return nil, fmt.Errorf("parse graphviz output: %w", errs[0])
	}
	graphs := ast.NewGraph(tree)
	if len(graphs) == 0 {
		return nil, fmt.Errorf("parse graphviz output: no graph")
	}

	out := &positioned{
		bb:       geom.EmptyRect(),
		nodes:    map[string]geom.Point{},
		clusters: map[string]geom.Rect{},
		edges:    map[string][]geom.Point{},
	}
	if err := out.walk("", graphs[0].Stmts()); err != nil {
		return nil, err
	}
	return out, nil
}

// walk collects positions from stmts. scope is the enclosing cluster name,
// or "" for the root graph.
func (o *positioned) walk(scope string, stmts []ast.Stmt) error {
	for _, s := range stmts {
		switch s := s.(type) {
		case ast.AttrStmt:
			if s.Target().Literal() != "graph" {
				continue
			}
			if v, ok := lookup(s.AttrList(), "bb"); ok {
				if err := o.setBB(scope, v); err != nil {
					return err
				}
			}
		case ast.Attribute:
			if UnquoteID(s.Name().Literal()) == "bb" {
				if err := o.setBB(scope, UnquoteID(s.Value().Literal())); err != nil {
					return err
				}
			}
		case ast.NodeStmt:
			id := UnquoteID(s.NodeID().ID().Literal())
			if v, ok := lookup(s.AttrList(), "pos"); ok {
				pt, err := parsePoint(v)
				if err != nil {
					return fmt.Errorf("node %s: %w", id, err)
				}
				o.nodes[id] = pt
			}
		case ast.EdgeStmt:
			id, ok := lookup(s.AttrList(), "id")
			if !ok {
				continue
			}
			v, ok := lookup(s.AttrList(), "pos")
			if !ok {
				continue
			}
			pts, err := parseSpline(v)
			if err != nil {
				return fmt.Errorf("edge %s: %w", id, err)
			}
			o.edges[id] = pts
		case ast.Subgraph:
			inner := scope
			if id := s.ID(); id != nil {
				if name := UnquoteID(id.Literal()); strings.HasPrefix(name, "cluster") {
					inner = name
				}
			}
			if err := o.walk(inner, s.Stmts()); err != nil {
				return err
			}
		}
	}
	return nil
}

func (o *positioned) setBB(scope, v string) error {
	r, err := parseRect(v)
	if err != nil {
		return fmt.Errorf("bb of %q: %w", scope, err)
	}
	if scope == "" {
		o.bb = r
	} else {
		o.clusters[scope] = r
	}
	return nil
}

// lookup returns the last value of name in an attribute list, unquoted.
func lookup(list ast.AttrList, name string) (string, bool) {
	var val string
	var found bool
	for _, group := range list.Lists() {
		for _, a := range group {
			if UnquoteID(a.Name().Literal()) == name {
				val, found = UnquoteID(a.Value().Literal()), true
			}
		}
	}
	return val, found
}

// UnquoteID turns a raw DOT ID literal into its value. Quoted strings lose
// their quotes, escaped quotes and line continuations.
func UnquoteID(lit string) string {
	if len(lit) < 2 || lit[0] != '"' || lit[len(lit)-1] != '"' {
		return lit
	}
	s := lit[1 : len(lit)-1]
	s = strings.ReplaceAll(s, "\\\r\n", "")
	s = strings.ReplaceAll(s, "\\\n", "")
	return strings.ReplaceAll(s, `\"`, `"`)
}

func parsePoint(s string) (geom.Point, error) {
	xs, ys, ok := strings.Cut(strings.TrimSpace(s), ",")
	if !ok {
		return geom.Point{}, fmt.Errorf("invalid point %q", s)
	}
	x, err := strconv.ParseFloat(xs, 64)
	if err != nil {
		return geom.Point{}, fmt.Errorf("invalid point %q: %w", s, err)
	}
	// A trailing ",z" or "!" may follow in some outputs.
	ys, _, _ = strings.Cut(strings.TrimSuffix(ys, "!"), ",")
	y, err := strconv.ParseFloat(ys, 64)
	if err != nil {
		return geom.Point{}, fmt.Errorf("invalid point %q: %w", s, err)
	}
	return geom.Pt(x, y), nil
}

func parseRect(s string) (geom.Rect, error) {
	f := strings.Split(s, ",")
	if len(f) != 4 {
		return geom.Rect{}, fmt.Errorf("invalid box %q", s)
	}
	var v [4]float64
	for i, p := range f {
		n, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return geom.Rect{}, fmt.Errorf("invalid box %q: %w", s, err)
		}
		v[i] = n
	}
	return geom.Rect{MinX: v[0], MinY: v[1], MaxX: v[2], MaxY: v[3]}, nil
}

// parseSpline parses an edge "pos" and returns the polyline vertices: the
// B-spline end points at indices 0, 3, 6, ... plus the midpoint of every
// segment that bends, so curved routes such as self-loops keep their
// shape. Arrow end points ("s," and "e,") are dropped; only the first
// spline of a ';' list is used.
func parseSpline(s string) ([]geom.Point, error) {
	first, _, _ := strings.Cut(s, ";")
	var ctrl []geom.Point
	for _, f := range strings.Fields(first) {
		if strings.HasPrefix(f, "s,") || strings.HasPrefix(f, "e,") {
			continue
		}
		p, err := parsePoint(f)
		if err != nil {
			return nil, err
		}
		ctrl = append(ctrl, p)
	}
	if len(ctrl) == 0 {
		return nil, fmt.Errorf("empty spline %q", s)
	}
	out := []geom.Point{ctrl[0]}
	for i := 0; i+3 < len(ctrl); i += 3 {
		p0, c1, c2, p3 := ctrl[i], ctrl[i+1], ctrl[i+2], ctrl[i+3]
		if bends(p0, c1, c2, p3) {
			out = append(out, bezierMid(p0, c1, c2, p3))
		}
		out = append(out, p3)
	}
	if last := ctrl[len(ctrl)-1]; out[len(out)-1] != last {
		out = append(out, last)
	}
	return out, nil
}

// splineTolerance is how far, in points, a control point may stray from
// its segment's chord before the segment counts as bent.
const splineTolerance = 0.5

// bends reports whether the cubic segment p0 c1 c2 p3 leaves its chord.
func bends(p0, c1, c2, p3 geom.Point) bool {
	return chordDist(p0, p3, c1) > splineTolerance || chordDist(p0, p3, c2) > splineTolerance
}

// chordDist is the distance from p to the line through a and b, or to a
// when the two coincide.
func chordDist(a, b, p geom.Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	l := math.Hypot(dx, dy)
	if l == 0 {
		return p.Dist(a)
	}
	return math.Abs(dy*(p.X-a.X)-dx*(p.Y-a.Y)) / l
}

// bezierMid evaluates the cubic Bézier p0 c1 c2 p3 at t = 0.5.
func bezierMid(p0, c1, c2, p3 geom.Point) geom.Point {
	return geom.Pt(
		(p0.X+3*c1.X+3*c2.X+p3.X)/8,
		(p0.Y+3*c1.Y+3*c2.Y+p3.Y)/8,
	)
}
