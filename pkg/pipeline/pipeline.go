// Package pipeline runs the complete import → render → export flow shared
// by the dagdraw CLI and HTTP service.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Import: read a JSON or DOT graph from disk, or take a graph the caller
//     already built
//  2. Render: run the render core with a cached Graphviz layout engine,
//     producing an SVG scene and a layout result
//  3. Export: produce the requested artifacts (SVG, laid-out JSON, PNG, PDF,
//     positioned DOT)
//
// Artifacts are cached under a key derived from the full graph and the
// output options, so repeated runs on an unchanged graph skip rendering
// entirely.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:   "deps.dot",
//	    Formats: []string{"svg", "png"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dagdraw/pkg/cache"
	"github.com/matzehuels/dagdraw/pkg/errors"
	"github.com/matzehuels/dagdraw/pkg/graph"
	"github.com/matzehuels/dagdraw/pkg/render"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultMargin is the space in pixels around the drawing.
	DefaultMargin = 20.0

	// DefaultScale is the PNG resolution multiplier.
	DefaultScale = 2.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatJSON = "json"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatDOT  = "dot"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatJSON: true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatDOT:  true,
}

// ValidRankDirs is the set of accepted rank directions.
var ValidRankDirs = map[string]bool{
	"TB": true,
	"BT": true,
	"LR": true,
	"RL": true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run. The json tags
// serve the HTTP service and the toml tags the CLI config file.
type Options struct {
	// Input is the graph file to import. It is ignored when Graph is set.
	Input string `json:"input,omitempty" toml:"-"`

	// Formats lists the artifacts to produce.
	Formats []string `json:"formats,omitempty" toml:"formats"`

	// RankDir overrides the graph's rankdir attribute when set.
	RankDir string `json:"rankdir,omitempty" toml:"rankdir"`

	// Margin is the space around the drawing in the SVG view box.
	Margin float64 `json:"margin,omitempty" toml:"margin"`

	// Scale is the PNG resolution multiplier.
	Scale float64 `json:"scale,omitempty" toml:"scale"`

	// EmbedFont embeds the measuring font in the SVG.
	EmbedFont bool `json:"embed_font,omitempty" toml:"embed_font"`

	// NoCache bypasses layout and artifact caches.
	NoCache bool `json:"no_cache,omitempty" toml:"no_cache"`

	// Runtime options (not serialized). A supplied Graph is rendered in
	// place and receives the layout attributes.
	Graph  *graph.Graph `json:"-" toml:"-"`
	Logger *log.Logger  `json:"-" toml:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the imported graph with the layout attributes applied. When
	// every artifact came from the cache it is the graph as imported.
	Graph *graph.Graph

	// GraphHash identifies the imported graph and the layout options.
	GraphHash string

	// Output is the render core's output. It is nil on a full cache hit.
	Output *render.Output

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	ImportTime time.Duration
	RenderTime time.Duration
	ExportTime time.Duration
}

// CacheInfo tracks cache hits for the pipeline stages.
type CacheInfo struct {
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: %s)", format, strings.Join(sortedKeys(ValidFormats), ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateRankDir checks that a rank direction is valid. Empty means "keep
// the graph's own setting".
func ValidateRankDir(dir string) error {
	if dir != "" && !ValidRankDirs[dir] {
		return errors.New(errors.ErrCodeInvalidInput,
			"invalid rankdir: %q (must be one of: %s)", dir, strings.Join(sortedKeys(ValidRankDirs), ", "))
	}
	return nil
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// =============================================================================
// Options Methods
// =============================================================================

// SetDefaults fills unset fields. It is idempotent.
func (o *Options) SetDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Margin == 0 {
		o.Margin = DefaultMargin
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	o.RankDir = strings.ToUpper(o.RankDir)
}

// Validate checks the options after defaults have been applied.
func (o *Options) Validate() error {
	if o.Graph == nil && o.Input == "" {
		return errors.New(errors.ErrCodeInvalidInput, "an input file or graph is required")
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := ValidateRankDir(o.RankDir); err != nil {
		return err
	}
	if o.Margin < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "margin must not be negative, got %v", o.Margin)
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must not be negative, got %v", o.Scale)
	}
	return nil
}

// ArtifactKeyOpts returns cache key options for one output format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{
		Format:  format,
		RankDir: o.RankDir,
	}
	switch format {
	case FormatSVG, FormatPNG, FormatPDF:
		opts.Margin = o.Margin
		opts.EmbedFont = o.EmbedFont
	}
	if format == FormatPNG {
		opts.Scale = o.Scale
	}
	return opts
}

func (o *Options) source() string {
	if o.Graph != nil {
		return "inline"
	}
	return o.Input
}
