package geom

import (
	"math"
	"sort"
)

// IntersectRect returns where the ray from the center of the w×h box at c
// towards p leaves the box.
func IntersectRect(c Point, w, h float64, p Point) Point {
	dx := p.X - c.X
	dy := p.Y - c.Y
	hw := w / 2
	hh := h / 2

	var sx, sy float64
	if math.Abs(dy)*hw > math.Abs(dx)*hh {
		// top or bottom side
		if dy < 0 {
			hh = -hh
		}
		if dy != 0 {
			sx = hh * dx / dy
		}
		sy = hh
	} else {
		if dx < 0 {
			hw = -hw
		}
		sx = hw
		if dx != 0 {
			sy = hw * dy / dx
		}
	}
	return Point{c.X + sx, c.Y + sy}
}

// IntersectEllipse returns where the ray from c towards p crosses the ellipse
// with radii rx, ry centered on c. If p coincides with c, c is returned.
func IntersectEllipse(c Point, rx, ry float64, p Point) Point {
	px := c.X - p.X
	py := c.Y - p.Y

	det := math.Sqrt(rx*rx*py*py + ry*ry*px*px)
	if det == 0 {
		return c
	}

	dx := math.Abs(rx * ry * px / det)
	if p.X < c.X {
		dx = -dx
	}
	dy := math.Abs(rx * ry * py / det)
	if p.Y < c.Y {
		dy = -dy
	}
	return Point{c.X + dx, c.Y + dy}
}

// IntersectCircle is IntersectEllipse with equal radii.
func IntersectCircle(c Point, r float64, p Point) Point {
	return IntersectEllipse(c, r, r, p)
}

// IntersectPolygon returns where the segment from c towards p crosses the
// polygon whose vertices are given relative to c. When several sides are
// crossed the crossing closest to p wins. When none is crossed (p lies inside
// the polygon) c is returned.
func IntersectPolygon(c Point, poly []Point, p Point) Point {
	var hits []Point
	for i := range poly {
		q1 := c.Add(poly[i])
		q2 := c.Add(poly[(i+1)%len(poly)])
		if hit, ok := IntersectSegments(c, p, q1, q2); ok {
			hits = append(hits, hit)
		}
	}
	if len(hits) == 0 {
		return c
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Dist(p) < hits[j].Dist(p)
	})
	return hits[0]
}

// IntersectSegments returns the intersection of segments p1p2 and q1q2.
// Parallel or disjoint segments report false.
func IntersectSegments(p1, p2, q1, q2 Point) (Point, bool) {
	r := p2.Sub(p1)
	s := q2.Sub(q1)
	denom := r.X*s.Y - r.Y*s.X
	if denom == 0 {
		return Point{}, false
	}
	qp := q1.Sub(p1)
	t := (qp.X*s.Y - qp.Y*s.X) / denom
	u := (qp.X*r.Y - qp.Y*r.X) / denom
	const eps = 1e-9
	if t < -eps || t > 1+eps || u < -eps || u > 1+eps {
		return Point{}, false
	}
	return Point{p1.X + t*r.X, p1.Y + t*r.Y}, true
}
