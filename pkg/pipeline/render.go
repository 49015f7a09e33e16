package pipeline

import (
	"context"

	"github.com/matzehuels/dagdraw/pkg/graph"
	"github.com/matzehuels/dagdraw/pkg/layout"
	"github.com/matzehuels/dagdraw/pkg/render"
	"github.com/matzehuels/dagdraw/pkg/scene"
)

// Drawing is a rendered graph ready for export.
type Drawing struct {
	Graph   *graph.Graph
	Surface *scene.Element
	Output  *render.Output
}

// Render draws g onto a fresh <svg> surface. Unless opts.NoCache is set the
// layout engine is wrapped in [layout.Cached].
func (r *Runner) Render(ctx context.Context, g *graph.Graph, opts Options) (*Drawing, error) {
	logger := r.logger(opts)

	engine := r.Engine
	if engine == nil {
		engine = layout.NewGraphviz(layout.WithLogger(logger))
	}
	if !opts.NoCache {
		engine = layout.NewCached(engine, r.Cache, r.Keyer)
	}

	renderer := render.New(render.NewConfig(
		render.WithEngine(engine),
		render.WithLogger(logger),
	))
	surface := scene.New("svg")
	out, err := renderer.RenderOutput(ctx, surface, g)
	if err != nil {
		return nil, err
	}
	return &Drawing{Graph: g, Surface: surface, Output: out}, nil
}
