// Package curve turns an edge's polyline into SVG path data.
//
// Each interpolator receives the full list of edge points (tail intersection,
// interior control points, head intersection) and returns a "d" attribute.
// The names match the edge "curve" attribute: linear, basis, step,
// stepBefore, stepAfter, cardinal and monotoneX.
package curve

import (
	"maps"
	"math"
	"slices"
	"strings"

	"github.com/matzehuels/dagdraw/pkg/errors"
	"github.com/matzehuels/dagdraw/pkg/geom"
	"github.com/matzehuels/dagdraw/pkg/scene"
)

// Default is the interpolator used when an edge has no "curve" attribute.
const Default = "linear"

// Curve builds path data through pts.
type Curve func(pts []geom.Point) string

var curves = map[string]Curve{
	"linear":     Linear,
	"basis":      Basis,
	"step":       Step,
	"stepBefore": StepBefore,
	"stepAfter":  StepAfter,
	"cardinal":   Cardinal,
	"monotoneX":  MonotoneX,
}

// Lookup returns the named interpolator, or an INVALID_CURVE error.
func Lookup(name string) (Curve, error) {
	if c, ok := curves[name]; ok {
		return c, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidCurve, "unknown curve %q (known: %v)", name, Names())
}

// Names lists the built-in interpolators in sorted order.
func Names() []string {
	return slices.Sorted(maps.Keys(curves))
}

// path accumulates SVG path commands.
type path struct{ b strings.Builder }

func (p *path) moveTo(q geom.Point) { p.cmd("M", q) }
func (p *path) lineTo(q geom.Point) { p.cmd("L", q) }

func (p *path) cubicTo(c1, c2, q geom.Point) {
	p.cmd("C", c1, c2, q)
}

func (p *path) cmd(op string, pts ...geom.Point) {
	if p.b.Len() > 0 {
		p.b.WriteByte(' ')
	}
	p.b.WriteString(op)
	for _, q := range pts {
		p.b.WriteByte(' ')
		p.b.WriteString(scene.Num(q.X))
		p.b.WriteByte(',')
		p.b.WriteString(scene.Num(q.Y))
	}
}

func (p *path) String() string { return p.b.String() }

// Linear joins the points with straight segments.
func Linear(pts []geom.Point) string {
	var p path
	for i, q := range pts {
		if i == 0 {
			p.moveTo(q)
		} else {
			p.lineTo(q)
		}
	}
	return p.String()
}

// Step alternates horizontal and vertical segments, changing y halfway
// between consecutive points.
func Step(pts []geom.Point) string { return step(pts, 0.5) }

// StepBefore changes y at the start of each segment.
func StepBefore(pts []geom.Point) string { return step(pts, 0) }

// StepAfter changes y at the end of each segment.
func StepAfter(pts []geom.Point) string { return step(pts, 1) }

func step(pts []geom.Point, t float64) string {
	var p path
	for i, q := range pts {
		if i == 0 {
			p.moveTo(q)
			continue
		}
		prev := pts[i-1]
		switch t {
		case 0:
			p.lineTo(geom.Pt(prev.X, q.Y))
		case 1:
			p.lineTo(geom.Pt(q.X, prev.Y))
		default:
			x := prev.X*(1-t) + q.X*t
			p.lineTo(geom.Pt(x, prev.Y))
			p.lineTo(geom.Pt(x, q.Y))
		}
		p.lineTo(q)
	}
	return p.String()
}

// Basis draws a uniform cubic B-spline that starts and ends on the first and
// last points and is pulled towards the interior ones.
func Basis(pts []geom.Point) string {
	var p path
	switch len(pts) {
	case 0:
		return ""
	case 1:
		p.moveTo(pts[0])
		return p.String()
	case 2:
		p.moveTo(pts[0])
		p.lineTo(pts[1])
		return p.String()
	}

	seg := func(p0, p1, p2 geom.Point) {
		p.cubicTo(
			geom.Pt((2*p0.X+p1.X)/3, (2*p0.Y+p1.Y)/3),
			geom.Pt((p0.X+2*p1.X)/3, (p0.Y+2*p1.Y)/3),
			geom.Pt((p0.X+4*p1.X+p2.X)/6, (p0.Y+4*p1.Y+p2.Y)/6),
		)
	}

	p.moveTo(pts[0])
	p.lineTo(geom.Pt((5*pts[0].X+pts[1].X)/6, (5*pts[0].Y+pts[1].Y)/6))
	for i := 2; i < len(pts); i++ {
		seg(pts[i-2], pts[i-1], pts[i])
	}
	last := pts[len(pts)-1]
	seg(pts[len(pts)-2], last, last)
	p.lineTo(last)
	return p.String()
}

// Cardinal draws a cardinal spline with zero tension through every point.
func Cardinal(pts []geom.Point) string {
	const k = 1.0 / 6
	var p path
	switch len(pts) {
	case 0:
		return ""
	case 1, 2:
		return Linear(pts)
	}

	p.moveTo(pts[0])
	n := len(pts)
	for i := 1; i < n; i++ {
		a, b := pts[i-1], pts[i]
		prev := b
		if i >= 2 {
			prev = pts[i-2]
		}
		next := a
		if i+1 < n {
			next = pts[i+1]
		}
		p.cubicTo(
			geom.Pt(a.X+k*(b.X-prev.X), a.Y+k*(b.Y-prev.Y)),
			geom.Pt(b.X+k*(a.X-next.X), b.Y+k*(a.Y-next.Y)),
			b,
		)
	}
	return p.String()
}

// MonotoneX draws a cubic spline that preserves monotonicity in y, assuming
// the points are ordered by x. Coincident consecutive points are skipped.
func MonotoneX(in []geom.Point) string {
	pts := make([]geom.Point, 0, len(in))
	for i, q := range in {
		if i > 0 && q == pts[len(pts)-1] {
			continue
		}
		pts = append(pts, q)
	}

	var p path
	switch len(pts) {
	case 0:
		return ""
	case 1, 2:
		return Linear(pts)
	}

	seg := func(a, b geom.Point, t0, t1 float64) {
		dx := (b.X - a.X) / 3
		p.cubicTo(geom.Pt(a.X+dx, a.Y+dx*t0), geom.Pt(b.X-dx, b.Y-dx*t1), b)
	}

	p.moveTo(pts[0])
	// t0 is the tangent at the start of the segment being drawn.
	var t0 float64
	for i := 2; i < len(pts); i++ {
		a, b, c := pts[i-2], pts[i-1], pts[i]
		t1 := slope3(a, b, c)
		if i == 2 {
			t0 = slope2(a, b, t1)
		}
		seg(a, b, t0, t1)
		t0 = t1
	}
	a, b := pts[len(pts)-2], pts[len(pts)-1]
	seg(a, b, t0, slope2(a, b, t0))
	return p.String()
}

// slope3 is the Steffen tangent at b given its neighbours.
func slope3(a, b, c geom.Point) float64 {
	h0 := b.X - a.X
	h1 := c.X - b.X
	s0 := (b.Y - a.Y) / signedZero(h0, h1)
	s1 := (c.Y - b.Y) / signedZero(h1, h0)
	p := (s0*h1 + s1*h0) / (h0 + h1)
	v := (sign(s0) + sign(s1)) * math.Min(math.Min(math.Abs(s0), math.Abs(s1)), 0.5*math.Abs(p))
	if math.IsNaN(v) {
		return 0
	}
	return v
}

// slope2 is the one-sided tangent at an end point.
func slope2(a, b geom.Point, t float64) float64 {
	h := b.X - a.X
	if h == 0 {
		return t
	}
	return (3*(b.Y-a.Y)/h - t) / 2
}

// signedZero returns h, or a zero carrying the sign of other when h is zero.
func signedZero(h, other float64) float64 {
	if h != 0 {
		return h
	}
	if other < 0 {
		return math.Copysign(0, -1)
	}
	return 0
}

func sign(x float64) float64 {
	if x < 0 {
		return -1
	}
	return 1
}
