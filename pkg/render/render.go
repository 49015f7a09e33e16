package render

import (
	"context"
	"time"

	"github.com/matzehuels/dagdraw/pkg/errors"
	"github.com/matzehuels/dagdraw/pkg/geom"
	"github.com/matzehuels/dagdraw/pkg/graph"
	"github.com/matzehuels/dagdraw/pkg/layout"
	"github.com/matzehuels/dagdraw/pkg/scene"
)

// Renderer draws graphs into scene surfaces. It holds no per-render state
// and may be shared between goroutines as long as each render has its own
// graph and surface.
type Renderer struct {
	cfg Config
}

// New creates a renderer. Pass the result of [NewConfig]; zero fields of a
// hand-built Config are filled with the same defaults.
func New(cfg Config) *Renderer {
	if cfg.Engine == nil || cfg.Shapes == nil || cfg.Arrows == nil || cfg.Measurer == nil || cfg.Logger == nil {
		cfg = NewConfig(func(c *Config) { *c = cfg })
	}
	return &Renderer{cfg: cfg}
}

// Config returns the renderer's configuration.
func (r *Renderer) Config() Config { return r.cfg }

// Output is what a successful render produces besides the scene itself.
type Output struct {
	// BBox encloses every placed node, cluster, edge label and edge bend.
	// It is empty for an empty graph.
	BBox geom.Rect

	// Layout is the validated engine result the scene was positioned from.
	Layout *layout.Result

	// Trace lists the states the render passed through.
	Trace []State
}

// Render draws g into surface, replacing whatever surface held. On success
// the graph carries the layout (node x/y, edge points and label boxes) and
// the bounding box (minX, minY, maxX, maxY); sizes the caller did not set
// are removed again.
func (r *Renderer) Render(ctx context.Context, surface *scene.Element, g *graph.Graph) error {
	_, err := r.RenderOutput(ctx, surface, g)
	return err
}

// RenderOutput is [Renderer.Render] that also returns the bounding box and
// layout result.
func (r *Renderer) RenderOutput(ctx context.Context, surface *scene.Element, g *graph.Graph) (*Output, error) {
	hooks := r.cfg.hooks()
	start := time.Now()
	hooks.OnRenderStart(ctx, g.NodeCount(), g.EdgeCount())

	m := newMachine(ctx, r.cfg.Logger, hooks)
	out, err := r.run(ctx, m, surface, g)
	if err != nil {
		err = m.abort(err)
	}
	hooks.OnRenderComplete(ctx, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	out.Trace = m.trace
	return out, nil
}

func (r *Renderer) run(ctx context.Context, m *machine, surface *scene.Element, g *graph.Graph) (*Output, error) {
	if err := normalize(g); err != nil {
		return nil, err
	}
	if err := m.advance(StateNormalized); err != nil {
		return nil, err
	}

	p, err := r.resolve(g)
	if err != nil {
		return nil, err
	}
	c := newCanvas(surface)
	r.createEdgeLabels(c, g)
	r.createNodes(c, p, g)
	r.createClusters(c, g)
	if err := m.advance(StateCreated, "nodes", g.NodeCount(), "edges", g.EdgeCount()); err != nil {
		return nil, err
	}

	res, err := r.layout(ctx, g)
	if err != nil {
		return nil, err
	}
	if err := m.advance(StateLaidOut, "engine", layout.EngineName(r.cfg.Engine)); err != nil {
		return nil, err
	}

	bb := computeBBox(res, g)
	recordBBox(g, bb)
	if err := m.advance(StateBounded, "bbox", bb.String()); err != nil {
		return nil, err
	}

	positionNodes(c, res, g)
	positionEdgeLabels(c, res)
	positionClusters(c, res, g)
	if err := m.advance(StatePositioned); err != nil {
		return nil, err
	}

	createEdgePaths(c, p, res, g)
	restore(g)
	if err := m.advance(StateFinalized); err != nil {
		return nil, err
	}
	return &Output{BBox: bb, Layout: res}, nil
}

// layout runs the engine, validates its result and writes it onto g.
// Nothing is written when either step fails.
func (r *Renderer) layout(ctx context.Context, g *graph.Graph) (*layout.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeLayoutFailed, err, "layout cancelled")
	}
	res, err := r.cfg.Engine.Layout(ctx, g)
	if err != nil {
		if errors.GetCode(err) == "" {
			err = errors.Wrap(errors.ErrCodeLayoutFailed, err, "%s layout", layout.EngineName(r.cfg.Engine))
		}
		return nil, err
	}
	if err := res.Validate(g); err != nil {
		return nil, err
	}
	res.Apply(g)
	return res, nil
}
