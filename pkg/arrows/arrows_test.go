package arrows

import (
	"strings"
	"testing"

	"github.com/matzehuels/dagdraw/pkg/errors"
	"github.com/matzehuels/dagdraw/pkg/graph"
	"github.com/matzehuels/dagdraw/pkg/scene"
)

func TestAttach(t *testing.T) {
	defs := scene.New("defs")
	m := Normal.Attach(defs, "arrowhead3", graph.Attrs{})

	if m.Parent() != defs || m.Tag != "marker" {
		t.Fatalf("marker not appended to defs: %s", scene.Markup(defs))
	}
	want := map[string]string{
		"id":           "arrowhead3",
		"viewBox":      "0 0 10 10",
		"refX":         "9",
		"refY":         "5",
		"markerUnits":  "strokeWidth",
		"markerWidth":  "8",
		"markerHeight": "6",
		"orient":       "auto",
	}
	for k, v := range want {
		if got, _ := m.Get(k); got != v {
			t.Errorf("marker %s = %q, want %q", k, got, v)
		}
	}
	path := m.Select("path", "")
	if path == nil {
		t.Fatal("marker has no path")
	}
	if d, _ := path.Get("d"); d != string(Normal) {
		t.Errorf("d = %q", d)
	}
}

func TestAttachStyle(t *testing.T) {
	defs := scene.New("defs")
	m := Vee.Attach(defs, "a", graph.Attrs{
		graph.AttrArrowheadStyle: "fill: red",
		AttrArrowheadClass:       "hot",
	})
	path := m.Select("path", "")
	if s, _ := path.Get("style"); s != "fill: red" {
		t.Errorf("style = %q", s)
	}
	if !path.HasClass("hot") {
		t.Error("class not applied")
	}
}

func TestRegistry(t *testing.T) {
	r := DefaultRegistry()
	if got := strings.Join(r.Names(), ","); got != "normal,undirected,vee" {
		t.Errorf("Names = %s", got)
	}
	if _, err := r.Lookup("vee"); err != nil {
		t.Errorf("Lookup(vee) = %v", err)
	}
	if _, err := r.Lookup("nope"); !errors.Is(err, errors.ErrCodeInvalidArrowhead) {
		t.Errorf("Lookup(nope) = %v, want INVALID_ARROWHEAD", err)
	}
	ext := r.With("dot", Func("M 5 5 m -4 0 a 4 4 0 1 0 8 0 a 4 4 0 1 0 -8 0"))
	if _, err := ext.Lookup("dot"); err != nil {
		t.Errorf("extended Lookup = %v", err)
	}
	if len(r) != 3 {
		t.Error("With modified the original registry")
	}
}
