package shapes

import (
	"math"
	"testing"

	"github.com/matzehuels/dagdraw/pkg/errors"
	"github.com/matzehuels/dagdraw/pkg/geom"
	"github.com/matzehuels/dagdraw/pkg/graph"
	"github.com/matzehuels/dagdraw/pkg/scene"
)

func TestRegistryLookup(t *testing.T) {
	r := DefaultRegistry()
	for _, name := range []string{"rect", "ellipse", "circle", "diamond"} {
		if _, err := r.Lookup(name); err != nil {
			t.Errorf("Lookup(%q) = %v", name, err)
		}
	}
	_, err := r.Lookup("not-a-real-shape")
	if !errors.Is(err, errors.ErrCodeInvalidShape) {
		t.Errorf("Lookup unknown = %v, want INVALID_SHAPE", err)
	}
}

func TestRegistryWith(t *testing.T) {
	base := DefaultRegistry()
	ext := base.With("box", Rect{})
	if _, err := ext.Lookup("box"); err != nil {
		t.Errorf("extended registry missing box: %v", err)
	}
	if _, err := base.Lookup("box"); err == nil {
		t.Error("With modified the original registry")
	}
	if got := Registry(nil).With("x", Rect{}); len(got) != 1 {
		t.Errorf("With on nil registry = %v", got)
	}
}

func TestDrawSizes(t *testing.T) {
	tests := []struct {
		name  string
		shape Shape
		wantW float64
		wantH float64
		tag   string
	}{
		{"rect", Rect{}, 40, 20, "rect"},
		{"ellipse", Ellipse{}, 40, 20, "ellipse"},
		{"circle", Circle{}, 40, 40, "circle"},
		{"diamond", Diamond{}, 40 * math.Sqrt2, 20 * math.Sqrt2, "polygon"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parent := scene.New("g")
			parent.Append("g").Set("class", "label")
			el, w, h := tt.shape.Draw(parent, 40, 20, graph.Attrs{})
			if math.Abs(w-tt.wantW) > 1e-9 || math.Abs(h-tt.wantH) > 1e-9 {
				t.Errorf("size = %gx%g, want %gx%g", w, h, tt.wantW, tt.wantH)
			}
			if el.Tag != tt.tag {
				t.Errorf("tag = %q, want %q", el.Tag, tt.tag)
			}
			if parent.Children[0] != el {
				t.Error("outline not inserted below the label")
			}
		})
	}
}

func TestRectCorners(t *testing.T) {
	parent := scene.New("g")
	el, _, _ := Rect{}.Draw(parent, 10, 10, graph.Attrs{graph.AttrRX: 5.0, graph.AttrRY: "3"})
	if v, _ := el.Get("rx"); v != "5" {
		t.Errorf("rx = %q", v)
	}
	if v, _ := el.Get("ry"); v != "3" {
		t.Errorf("ry = %q", v)
	}
	if v, _ := el.Get("x"); v != "-5" {
		t.Errorf("x = %q", v)
	}
}

// Intersections must land on the outline for any direction.
func TestIntersectOnBoundary(t *testing.T) {
	c := geom.Pt(100, 50)
	targets := []geom.Point{{X: 300, Y: 50}, {X: 100, Y: -200}, {X: -40, Y: 130}, {X: 170, Y: 90}}

	for _, p := range targets {
		q := Rect{}.Intersect(c, 40, 20, p)
		onX := math.Abs(math.Abs(q.X-c.X)-20) < 1e-9 && math.Abs(q.Y-c.Y) <= 10+1e-9
		onY := math.Abs(math.Abs(q.Y-c.Y)-10) < 1e-9 && math.Abs(q.X-c.X) <= 20+1e-9
		if !onX && !onY {
			t.Errorf("rect intersect towards %v = %v, not on boundary", p, q)
		}

		q = Ellipse{}.Intersect(c, 40, 20, p)
		if v := math.Pow((q.X-c.X)/20, 2) + math.Pow((q.Y-c.Y)/10, 2); math.Abs(v-1) > 1e-9 {
			t.Errorf("ellipse intersect towards %v = %v (%g)", p, q, v)
		}

		q = Circle{}.Intersect(c, 40, 40, p)
		if d := q.Dist(c); math.Abs(d-20) > 1e-9 {
			t.Errorf("circle intersect towards %v at distance %g", p, d)
		}

		q = Diamond{}.Intersect(c, 40, 20, p)
		if v := math.Abs(q.X-c.X)/20 + math.Abs(q.Y-c.Y)/10; math.Abs(v-1) > 1e-9 {
			t.Errorf("diamond intersect towards %v = %v (%g)", p, q, v)
		}
	}
}
