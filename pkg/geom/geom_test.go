package geom

import (
	"math"
	"testing"
)

func TestEmptyRect(t *testing.T) {
	r := EmptyRect()
	if !r.Empty() {
		t.Fatal("EmptyRect().Empty() = false, want true")
	}
	if r.Width() != 0 || r.Height() != 0 {
		t.Errorf("empty size = %gx%g, want 0x0", r.Width(), r.Height())
	}

	r = r.Extend(Pt(3, -4))
	want := Rect{3, -4, 3, -4}
	if r != want {
		t.Errorf("Extend = %v, want %v", r, want)
	}
	if r.Empty() {
		t.Error("point box reported empty")
	}
}

func TestRectUnion(t *testing.T) {
	a := RectFromCenter(0, 0, 20, 10)
	if want := (Rect{-10, -5, 10, 5}); a != want {
		t.Fatalf("RectFromCenter = %v, want %v", a, want)
	}

	b := RectFromCenter(100, 50, 10, 10)
	u := a.Union(b)
	if want := (Rect{-10, -5, 105, 55}); u != want {
		t.Errorf("Union = %v, want %v", u, want)
	}
	if got := EmptyRect().Union(a); got != a {
		t.Errorf("Empty.Union(a) = %v, want %v", got, a)
	}
	if got := a.Union(EmptyRect()); got != a {
		t.Errorf("a.Union(Empty) = %v, want %v", got, a)
	}
}

func TestRectLargeExtent(t *testing.T) {
	// far beyond any fixed accumulator seed
	r := EmptyRect().Union(RectFromCenter(5000, -7000, 2, 2))
	if r.MinX != 4999 || r.MaxY != -6999 {
		t.Errorf("rect = %v, want min x 4999 and max y -6999", r)
	}
}

func TestRectInset(t *testing.T) {
	r := Rect{0, 0, 10, 10}.Inset(2, 3)
	if want := (Rect{-2, -3, 12, 13}); r != want {
		t.Errorf("Inset = %v, want %v", r, want)
	}
	if !EmptyRect().Inset(5, 5).Empty() {
		t.Error("Inset of empty rect is not empty")
	}
}

func TestIntersectRect(t *testing.T) {
	c := Pt(0, 0)
	tests := []struct {
		name string
		p    Point
		want Point
	}{
		{"right", Pt(100, 0), Pt(10, 0)},
		{"left", Pt(-100, 0), Pt(-10, 0)},
		{"below", Pt(0, 100), Pt(0, 5)},
		{"above", Pt(0, -100), Pt(0, -5)},
		{"corner diagonal", Pt(20, 10), Pt(10, 5)},
		{"shallow", Pt(100, 10), Pt(10, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IntersectRect(c, 20, 10, tt.p)
			if !got.Eq(tt.want, 1e-9) {
				t.Errorf("IntersectRect = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIntersectEllipse(t *testing.T) {
	c := Pt(10, 10)
	got := IntersectEllipse(c, 20, 10, Pt(100, 10))
	if !got.Eq(Pt(30, 10), 1e-9) {
		t.Errorf("horizontal = %v, want (30,10)", got)
	}
	got = IntersectEllipse(c, 20, 10, Pt(10, -50))
	if !got.Eq(Pt(10, 0), 1e-9) {
		t.Errorf("vertical = %v, want (10,0)", got)
	}

	// any direction lands on the ellipse
	p := IntersectEllipse(c, 20, 10, Pt(47, 31))
	v := (p.X-c.X)*(p.X-c.X)/400 + (p.Y-c.Y)*(p.Y-c.Y)/100
	if math.Abs(v-1) > 1e-9 {
		t.Errorf("point %v not on ellipse (%g)", p, v)
	}

	if got := IntersectEllipse(c, 20, 10, c); got != c {
		t.Errorf("degenerate = %v, want center", got)
	}
}

func TestIntersectCircle(t *testing.T) {
	p := IntersectCircle(Pt(0, 0), 5, Pt(30, 40))
	if !p.Eq(Pt(3, 4), 1e-9) {
		t.Errorf("IntersectCircle = %v, want (3,4)", p)
	}
}

func TestIntersectPolygon(t *testing.T) {
	diamond := []Point{{0, -10}, {20, 0}, {0, 10}, {-20, 0}}
	c := Pt(50, 50)

	got := IntersectPolygon(c, diamond, Pt(150, 50))
	if !got.Eq(Pt(70, 50), 1e-9) {
		t.Errorf("right = %v, want (70,50)", got)
	}
	got = IntersectPolygon(c, diamond, Pt(50, 0))
	if !got.Eq(Pt(50, 40), 1e-9) {
		t.Errorf("up = %v, want (50,40)", got)
	}
	// target inside the polygon: no crossing
	got = IntersectPolygon(c, diamond, Pt(51, 50))
	if got != c {
		t.Errorf("inside = %v, want center", got)
	}
}

func TestIntersectSegments(t *testing.T) {
	p, ok := IntersectSegments(Pt(0, 0), Pt(10, 10), Pt(0, 10), Pt(10, 0))
	if !ok || !p.Eq(Pt(5, 5), 1e-9) {
		t.Errorf("crossing = %v, %v, want (5,5), true", p, ok)
	}
	if _, ok := IntersectSegments(Pt(0, 0), Pt(10, 0), Pt(0, 1), Pt(10, 1)); ok {
		t.Error("parallel segments intersect")
	}
	if _, ok := IntersectSegments(Pt(0, 0), Pt(1, 1), Pt(5, 0), Pt(5, 10)); ok {
		t.Error("disjoint segments intersect")
	}
}
