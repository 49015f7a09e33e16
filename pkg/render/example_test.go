package render_test

import (
	"context"
	"fmt"

	"github.com/matzehuels/dagdraw/pkg/geom"
	"github.com/matzehuels/dagdraw/pkg/graph"
	"github.com/matzehuels/dagdraw/pkg/label"
	"github.com/matzehuels/dagdraw/pkg/layout"
	"github.com/matzehuels/dagdraw/pkg/render"
	"github.com/matzehuels/dagdraw/pkg/scene"
)

func Example() {
	g := graph.New()
	_ = g.AddNode("a", nil)
	_ = g.AddNode("b", graph.Attrs{graph.AttrShape: "ellipse"})
	_ = g.AddEdge(graph.EdgeKey{V: "a", W: "b"}, nil)

	// A fixed layout: a above b.
	engine := layout.EngineFunc(func(context.Context, *graph.Graph) (*layout.Result, error) {
		res := layout.NewResult()
		res.Nodes["a"] = layout.Box{X: 50, Y: 20, Width: 30, Height: 40}
		res.Nodes["b"] = layout.Box{X: 50, Y: 120, Width: 30, Height: 40}
		res.Edges = []layout.EdgeRoute{{
			Edge:   graph.EdgeKey{V: "a", W: "b"},
			Points: []geom.Point{{X: 50, Y: 20}, {X: 50, Y: 70}, {X: 50, Y: 120}},
		}}
		return res, nil
	})

	r := render.New(render.NewConfig(
		render.WithEngine(engine),
		render.WithMeasurer(label.FixedMeasurer{CharWidth: 10, LineHeight: 20}),
	))
	svg := scene.New("svg")
	out, err := r.RenderOutput(context.Background(), svg, g)
	if err != nil {
		fmt.Println(err)
		return
	}

	path := svg.Select("g", render.ClassOutput).
		Select("g", render.ClassEdgePaths).
		Select("g", "edgePath").
		Select("path", "path")
	d, _ := path.Get("d")
	fmt.Println(d)
	fmt.Println(out.BBox)
	// Output:
	// M 50,40 L 50,70 L 50,100
	// (35,0,65,140)
}
