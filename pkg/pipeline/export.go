package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/dagdraw/pkg/errors"
	"github.com/matzehuels/dagdraw/pkg/fonts"
	pkgio "github.com/matzehuels/dagdraw/pkg/io"
	"github.com/matzehuels/dagdraw/pkg/label"
	"github.com/matzehuels/dagdraw/pkg/layout"
	"github.com/matzehuels/dagdraw/pkg/observability"
	"github.com/matzehuels/dagdraw/pkg/render"
	"github.com/matzehuels/dagdraw/pkg/scene"
)

// DefaultStyleSheet gives unstyled drawings visible outlines and the font
// labels were measured with. Per-element style attributes override it.
var DefaultStyleSheet = fmt.Sprintf(`text { font-family: %s; font-size: %gpx; }
.node rect, .node ellipse, .node circle, .node polygon { stroke: #333; fill: #fff; stroke-width: 1.5px; }
.cluster rect { stroke: #999; fill: #f4f4f4; }
.edgePath path.path { stroke: #333; stroke-width: 1.5px; }
.edgePath marker path { fill: #333; }`, fonts.FallbackFontFamily, label.DefaultFontSize)

// Export produces every format in opts.Formats from a drawing.
func (r *Runner) Export(ctx context.Context, d *Drawing, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	var svg []byte

	for _, format := range opts.Formats {
		start := time.Now()
		var data []byte
		var err error

		switch format {
		case FormatSVG, FormatPNG, FormatPDF:
			if svg == nil {
				svg, err = WriteSVG(d, opts)
				if err != nil {
					break
				}
			}
			switch format {
			case FormatSVG:
				data = svg
			case FormatPNG:
				data, err = render.ToPNG(ctx, svg, opts.Scale)
			case FormatPDF:
				data, err = render.ToPDF(ctx, svg)
			}
		case FormatJSON:
			var buf bytes.Buffer
			err = pkgio.WriteLayoutJSON(d.Graph, d.Output.Layout, &buf)
			data = buf.Bytes()
		case FormatDOT:
			data, err = layout.RenderDOT(ctx, d.Graph)
		default:
			err = errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
		}

		observability.Pipeline().OnArtifact(ctx, format, len(data), time.Since(start), err)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// WriteSVG serializes a drawing with the margin, stylesheet and optional
// embedded font of opts.
func WriteSVG(d *Drawing, opts Options) ([]byte, error) {
	svgOpts := []scene.SVGOption{
		scene.WithMargin(opts.Margin),
		scene.WithStyleSheet(DefaultStyleSheet),
	}
	if opts.EmbedFont {
		svgOpts = append(svgOpts, scene.WithEmbeddedFont(fonts.FontFamily, "truetype", fonts.RegularTTFBase64()))
	}
	var buf bytes.Buffer
	if err := scene.WriteSVG(&buf, d.Surface, d.Output.BBox, svgOpts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
