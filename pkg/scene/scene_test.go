package scene

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/dagdraw/pkg/geom"
)

func TestGroupCreateOrSelect(t *testing.T) {
	root := New("svg")
	a := root.Group("output")
	b := root.Group("output")
	if a != b {
		t.Fatal("Group created a second element for the same name")
	}
	if len(root.Children) != 1 {
		t.Errorf("children = %d, want 1", len(root.Children))
	}
	if v, _ := a.Get("class"); v != "output" {
		t.Errorf("class = %q, want output", v)
	}
}

func TestKeyed(t *testing.T) {
	root := New("g")
	n1 := root.Keyed("g", "node", "a")
	n2 := root.Keyed("g", "node", "b")
	if root.Keyed("g", "node", "a") != n1 {
		t.Error("Keyed(a) did not return the existing child")
	}
	if n1 == n2 || len(root.Children) != 2 {
		t.Errorf("got %d children, want 2 distinct", len(root.Children))
	}
	if root.Lookup("b") != n2 || root.Lookup("missing") != nil {
		t.Error("Lookup mismatch")
	}
	if n1.Key() != "a" {
		t.Errorf("Key() = %q", n1.Key())
	}
}

func TestAttributes(t *testing.T) {
	e := New("rect").
		Set("x", -10.0).
		Set("width", 20.123456).
		Set("rx", 0).
		Set("class", "label-container")
	e.Set("x", -5.5)
	e.SetIf("style", "")
	e.AddClass("extra").AddClass("extra").AddClass("")

	if v, _ := e.Get("x"); v != "-5.5" {
		t.Errorf("x = %q, want -5.5", v)
	}
	if v, _ := e.Get("width"); v != "20.123" {
		t.Errorf("width = %q, want 20.123", v)
	}
	if _, ok := e.Get("style"); ok {
		t.Error("SetIf stored an empty value")
	}
	if v, _ := e.Get("class"); v != "label-container extra" {
		t.Errorf("class = %q", v)
	}

	got := Markup(e)
	want := `<rect x="-5.5" width="20.123" rx="0" class="label-container extra"/>` + "\n"
	if got != want {
		t.Errorf("Markup = %q, want %q", got, want)
	}
}

func TestClear(t *testing.T) {
	root := New("svg")
	g := root.Group("output")
	g.Append("g")
	g.Append("g")
	root.Clear()
	if len(root.Children) != 0 || g.Parent() != nil {
		t.Error("Clear left children attached")
	}
}

func TestNum(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{-0.0001, "0"},
		{1.5, "1.5"},
		{2.0004, "2"},
		{0.1 + 0.2, "0.3"},
		{-12.3456, "-12.346"},
	}
	for _, tt := range tests {
		if got := Num(tt.in); got != tt.want {
			t.Errorf("Num(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if got := Translate(1, -2.5); got != "translate(1,-2.5)" {
		t.Errorf("Translate = %q", got)
	}
}

func TestWriteSVG(t *testing.T) {
	root := New("svg")
	out := root.Group("output")
	out.Append("text").SetText("a < b & c")

	var buf bytes.Buffer
	if err := WriteSVG(&buf, root, geom.Rect{MinX: -10, MinY: -5, MaxX: 10, MaxY: 5}, WithMargin(2)); err != nil {
		t.Fatalf("WriteSVG: %v", err)
	}
	s := buf.String()

	for _, want := range []string{
		`viewBox="-12 -7 24 14"`,
		`width="24" height="14"`,
		`<g class="output">`,
		`a &lt; b &amp; c`,
		"</svg>\n",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("output missing %q:\n%s", want, s)
		}
	}
}

func TestWriteSVGEmptyBox(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSVG(&buf, New("svg"), geom.EmptyRect(), WithMargin(10)); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `viewBox="0 0 0 0"`) {
		t.Errorf("empty drawing got %s", buf.String())
	}
}

func TestWriteSVGEmbeddedFont(t *testing.T) {
	var buf bytes.Buffer
	WriteSVG(&buf, New("svg"), geom.Rect{MaxX: 1, MaxY: 1},
		WithEmbeddedFont("Go", "ttf", "QUJD"),
		WithStyleSheet(".node rect { fill: #fff; }"))
	s := buf.String()
	if !strings.Contains(s, "font-family: 'Go'") || !strings.Contains(s, "base64,QUJD") {
		t.Errorf("font face missing:\n%s", s)
	}
	if !strings.Contains(s, ".node rect { fill: #fff; }") {
		t.Errorf("stylesheet missing:\n%s", s)
	}
}
