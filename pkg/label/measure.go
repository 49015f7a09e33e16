// Package label measures and draws the text labels of nodes, edges and
// clusters.
package label

import (
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/matzehuels/dagdraw/pkg/fonts"
)

// DefaultFontSize is the label font size in pixels.
const DefaultFontSize = 14.0

// Size is the extent of a rendered label.
type Size struct {
	Width  float64
	Height float64
}

// Measurer reports the size a label occupies once drawn.
type Measurer interface {
	Measure(text string) Size
}

// FontMeasurer measures text with real glyph advances from an OpenType face.
// It is safe for concurrent use.
type FontMeasurer struct {
	mu      sync.Mutex
	face    font.Face
	size    float64
	ascent  float64
	descent float64
}

// NewFontMeasurer returns a measurer for the embedded label font at size
// pixels.
func NewFontMeasurer(size float64) (*FontMeasurer, error) {
	if size <= 0 {
		size = DefaultFontSize
	}
	f, err := fonts.Regular()
	if err != nil {
		return nil, err
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, err
	}
	m := face.Metrics()
	return &FontMeasurer{
		face:    face,
		size:    size,
		ascent:  toFloat(m.Ascent),
		descent: toFloat(m.Descent),
	}, nil
}

// FontSize returns the size the measurer was created with.
func (m *FontMeasurer) FontSize() float64 { return m.size }

// Measure returns the size of text laid out as one tspan per line, each line
// advanced by one em. Empty text has zero size.
func (m *FontMeasurer) Measure(text string) Size {
	if text == "" {
		return Size{}
	}
	lines := Lines(text)

	m.mu.Lock()
	var width float64
	for _, line := range lines {
		width = max(width, toFloat(font.MeasureString(m.face, line)))
	}
	m.mu.Unlock()

	height := float64(len(lines)-1)*m.size + m.ascent + m.descent
	return Size{Width: width, Height: height}
}

// FixedMeasurer assigns every character the same advance. It is useful when
// output must not depend on font data, for example in tests.
type FixedMeasurer struct {
	CharWidth  float64
	LineHeight float64
}

// Measure implements [Measurer].
func (m FixedMeasurer) Measure(text string) Size {
	if text == "" {
		return Size{}
	}
	lines := Lines(text)
	var width float64
	for _, line := range lines {
		width = max(width, float64(len([]rune(line)))*m.CharWidth)
	}
	return Size{Width: width, Height: float64(len(lines)) * m.LineHeight}
}

// Lines splits a label into display lines. Both real newlines and the
// two-character escape `\n` used in DOT files break lines.
func Lines(text string) []string {
	text = strings.ReplaceAll(text, `\n`, "\n")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.Split(text, "\n")
}

func toFloat(v fixed.Int26_6) float64 { return float64(v) / 64 }
