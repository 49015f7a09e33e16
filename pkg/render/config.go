package render

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dagdraw/pkg/arrows"
	"github.com/matzehuels/dagdraw/pkg/label"
	"github.com/matzehuels/dagdraw/pkg/layout"
	"github.com/matzehuels/dagdraw/pkg/observability"
	"github.com/matzehuels/dagdraw/pkg/shapes"
)

// fallbackMeasurer approximates the default font when the embedded font
// cannot be loaded.
var fallbackMeasurer = label.FixedMeasurer{CharWidth: 8, LineHeight: 17}

// Config holds everything a [Renderer] needs. Build it with [NewConfig]; the
// zero value is not usable.
type Config struct {
	Engine   layout.Engine
	Shapes   shapes.Registry
	Arrows   arrows.Registry
	Measurer label.Measurer
	Logger   *log.Logger

	// Hooks receives render events. Nil means the globally registered
	// [observability.Render] hooks at render time.
	Hooks observability.RenderHooks
}

// Option configures a [Config].
type Option func(*Config)

// WithEngine sets the layout engine.
func WithEngine(e layout.Engine) Option {
	return func(c *Config) { c.Engine = e }
}

// WithShapes replaces the shape registry.
func WithShapes(r shapes.Registry) Option {
	return func(c *Config) { c.Shapes = r }
}

// WithArrows replaces the arrowhead registry.
func WithArrows(r arrows.Registry) Option {
	return func(c *Config) { c.Arrows = r }
}

// WithMeasurer sets how label text is measured.
func WithMeasurer(m label.Measurer) Option {
	return func(c *Config) { c.Measurer = m }
}

// WithLogger sets the logger for stage debug output.
func WithLogger(l *log.Logger) Option {
	return func(c *Config) { c.Logger = l }
}

// WithHooks sets the render hooks.
func WithHooks(h observability.RenderHooks) Option {
	return func(c *Config) { c.Hooks = h }
}

// NewConfig builds a configuration. Unset fields default to the Graphviz
// engine, the built-in shapes and arrowheads, the embedded-font measurer and
// a logger that discards output.
func NewConfig(opts ...Option) Config {
	var c Config
	for _, opt := range opts {
		opt(&c)
	}
	if c.Logger == nil {
		c.Logger = log.New(io.Discard)
	}
	if c.Engine == nil {
		c.Engine = layout.NewGraphviz(layout.WithLogger(c.Logger))
	}
	if c.Shapes == nil {
		c.Shapes = shapes.DefaultRegistry()
	}
	if c.Arrows == nil {
		c.Arrows = arrows.DefaultRegistry()
	}
	if c.Measurer == nil {
		m, err := label.NewFontMeasurer(label.DefaultFontSize)
		if err != nil {
			c.Logger.Warn("font measurer unavailable, using fixed metrics", "error", err)
			c.Measurer = fallbackMeasurer
		} else {
			c.Measurer = m
		}
	}
	return c
}

func (c Config) hooks() observability.RenderHooks {
	if c.Hooks != nil {
		return c.Hooks
	}
	return observability.Render()
}
