package layout

import (
	"context"
	"encoding/json"
	"time"

	"github.com/matzehuels/dagdraw/pkg/cache"
	"github.com/matzehuels/dagdraw/pkg/graph"
	"github.com/matzehuels/dagdraw/pkg/observability"
)

// Cached wraps an engine with a cache. Results are stored as JSON under a
// key derived from the engine name and the layout-relevant part of the
// graph: topology, node and label sizes, paddings and graph options.
// Styles, classes and label text do not affect the key.
type Cached struct {
	inner Engine
	cache cache.Cache
	keyer cache.Keyer
	ttl   time.Duration
}

// NewCached wraps inner. A nil keyer selects [cache.NewDefaultKeyer]; a nil
// cache disables caching.
func NewCached(inner Engine, c cache.Cache, keyer cache.Keyer) *Cached {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	return &Cached{inner: inner, cache: c, keyer: keyer, ttl: cache.TTLLayout}
}

// Name implements [Named] by reporting the wrapped engine's name.
func (c *Cached) Name() string { return EngineName(c.inner) }

// Key returns the cache key for laying out g.
func (c *Cached) Key(g *graph.Graph) (string, error) {
	h, err := cache.HashJSON(canonicalize(g))
	if err != nil {
		return "", err
	}
	return c.keyer.LayoutKey(h, cache.LayoutKeyOpts{Engine: c.Name()}), nil
}

// Layout implements [Engine]. Cache failures fall back to the wrapped
// engine; a cached entry that no longer validates against g is ignored.
func (c *Cached) Layout(ctx context.Context, g *graph.Graph) (*Result, error) {
	key, err := c.Key(g)
	if err != nil {
		return c.inner.Layout(ctx, g)
	}

	if data, hit, err := c.cache.Get(ctx, key); err == nil && hit {
		var res Result
		if json.Unmarshal(data, &res) == nil && res.Validate(g) == nil {
			observability.Cache().OnCacheHit(ctx, "layout")
			return &res, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, "layout")

	res, err := c.inner.Layout(ctx, g)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(res); err == nil {
		if c.cache.Set(ctx, key, data, c.ttl) == nil {
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}
	return res, nil
}

type canonicalNode struct {
	ID      string     `json:"id"`
	Parent  string     `json:"parent,omitempty"`
	Width   float64    `json:"w"`
	Height  float64    `json:"h"`
	Padding [4]float64 `json:"pad"`
}

type canonicalEdge struct {
	Key      graph.EdgeKey `json:"key"`
	Labeled  bool          `json:"labeled,omitempty"`
	Width    float64       `json:"w,omitempty"`
	Height   float64       `json:"h,omitempty"`
	LabelPos string        `json:"labelpos,omitempty"`
	MinLen   float64       `json:"minlen,omitempty"`
	Weight   float64       `json:"weight,omitempty"`
}

type canonicalGraph struct {
	Options map[string]float64 `json:"options"`
	RankDir string             `json:"rankdir"`
	Nodes   []canonicalNode    `json:"nodes"`
	Edges   []canonicalEdge    `json:"edges"`
}

// canonicalize extracts the layout input of g in insertion order.
func canonicalize(g *graph.Graph) canonicalGraph {
	ga := g.Attrs()
	out := canonicalGraph{
		Options: map[string]float64{},
		RankDir: ga.StringOr(graph.AttrRankDir, ""),
	}
	for _, k := range []string{graph.AttrNodeSep, graph.AttrRankSep, graph.AttrEdgeSep, graph.AttrMarginX, graph.AttrMarginY} {
		if v, ok := ga.Float(k); ok {
			out.Options[k] = v
		}
	}

	for _, id := range g.Nodes() {
		n, _ := g.Node(id)
		out.Nodes = append(out.Nodes, canonicalNode{
			ID:     id,
			Parent: g.Parent(id),
			Width:  n.FloatOr(graph.AttrWidth, 0),
			Height: n.FloatOr(graph.AttrHeight, 0),
			Padding: [4]float64{
				n.FloatOr(graph.AttrPaddingLeft, 0),
				n.FloatOr(graph.AttrPaddingRight, 0),
				n.FloatOr(graph.AttrPaddingTop, 0),
				n.FloatOr(graph.AttrPaddingBottom, 0),
			},
		})
	}
	for _, k := range g.Edges() {
		a, _ := g.Edge(k)
		e := canonicalEdge{
			Key:    k,
			MinLen: a.FloatOr("minlen", 0),
			Weight: a.FloatOr("weight", 0),
		}
		if l, ok := a.String(graph.AttrLabel); ok && l != "" {
			e.Labeled = true
			e.Width = a.FloatOr(graph.AttrWidth, 0)
			e.Height = a.FloatOr(graph.AttrHeight, 0)
			e.LabelPos = a.StringOr(graph.AttrLabelPos, "")
		}
		out.Edges = append(out.Edges, e)
	}
	return out
}
