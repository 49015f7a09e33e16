package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dagdraw/pkg/cache"
	"github.com/matzehuels/dagdraw/pkg/graph"
	pkgio "github.com/matzehuels/dagdraw/pkg/io"
	"github.com/matzehuels/dagdraw/pkg/layout"
	"github.com/matzehuels/dagdraw/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use it to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// Engine lays graphs out. Nil selects the in-process Graphviz engine.
	Engine layout.Engine

	// ArtifactTTL is how long rendered outputs stay cached. Zero selects
	// cache.TTLArtifact.
	ArtifactTTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete import → render → export pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	logger := r.logger(opts)

	result := &Result{}

	// Stage 1: Import
	importStart := time.Now()
	g, err := r.Import(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("import: %w", err)
	}
	if opts.RankDir != "" {
		g.Attrs()[graph.AttrRankDir] = opts.RankDir
	}
	result.Graph = g
	result.Stats.ImportTime = time.Since(importStart)
	result.Stats.NodeCount = g.NodeCount()
	result.Stats.EdgeCount = g.EdgeCount()

	logger.Info("imported graph",
		"source", opts.source(),
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"duration", result.Stats.ImportTime)

	hash, err := GraphHash(g)
	if err != nil {
		return nil, fmt.Errorf("hash graph: %w", err)
	}
	result.GraphHash = hash

	if !opts.NoCache {
		if artifacts, ok := r.cachedArtifacts(ctx, hash, opts); ok {
			result.Artifacts = artifacts
			result.CacheInfo.RenderHit = true
			logger.Info("artifacts served from cache", "formats", opts.Formats)
			return result, nil
		}
	}

	// Stage 2: Render
	renderStart := time.Now()
	drawing, err := r.Render(ctx, g, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Output = drawing.Output
	result.Stats.RenderTime = time.Since(renderStart)

	logger.Info("rendered graph",
		"width", drawing.Output.BBox.Width(),
		"height", drawing.Output.BBox.Height(),
		"duration", result.Stats.RenderTime)

	// Stage 3: Export
	exportStart := time.Now()
	artifacts, err := r.Export(ctx, drawing, opts)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.ExportTime = time.Since(exportStart)

	if !opts.NoCache {
		ttl := r.ArtifactTTL
		if ttl <= 0 {
			ttl = cache.TTLArtifact
		}
		for format, data := range artifacts {
			key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
			if r.Cache.Set(ctx, key, data, ttl) == nil {
				observability.Cache().OnCacheSet(ctx, "artifact", len(data))
			}
		}
	}

	logger.Info("exported outputs",
		"formats", opts.Formats,
		"duration", result.Stats.ExportTime)

	return result, nil
}

// Import returns opts.Graph or reads opts.Input.
func (r *Runner) Import(ctx context.Context, opts Options) (*graph.Graph, error) {
	start := time.Now()
	g := opts.Graph
	var err error
	if g == nil {
		g, err = pkgio.Import(opts.Input)
	}
	nodes := 0
	if g != nil {
		nodes = g.NodeCount()
	}
	observability.Pipeline().OnImportComplete(ctx, opts.source(), nodes, time.Since(start), err)
	return g, err
}

// cachedArtifacts returns every requested format from the cache, or false
// if any one is missing.
func (r *Runner) cachedArtifacts(ctx context.Context, hash string, opts Options) (map[string][]byte, bool) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil || !hit {
			observability.Cache().OnCacheMiss(ctx, "artifact")
			return nil, false
		}
		observability.Cache().OnCacheHit(ctx, "artifact")
		artifacts[format] = data
	}
	return artifacts, true
}

// GraphHash hashes the graph's JSON encoding. Any attribute change,
// including styles and labels, changes the hash.
func GraphHash(g *graph.Graph) (string, error) {
	var buf bytes.Buffer
	if err := pkgio.WriteJSON(g, &buf); err != nil {
		return "", err
	}
	return cache.Hash(buf.Bytes()), nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}
