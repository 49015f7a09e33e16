// Package fonts provides the font dagdraw measures labels with and embeds in
// SVG output, so that the text in a rendered drawing has exactly the size the
// layout reserved for it.
//
// The font is Go Regular from golang.org/x/image, compiled into the binary;
// no system fonts are consulted.
package fonts

import (
	"encoding/base64"
	"sync"

	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FontFamily is the CSS font-family name used for embedded label text.
const FontFamily = "Go Regular"

// FallbackFontFamily lists fonts with similar metrics for viewers that drop
// the embedded @font-face.
const FallbackFontFamily = `'Go Regular', 'DejaVu Sans', 'Helvetica Neue', Arial, sans-serif`

// RegularTTF returns the TTF font data.
func RegularTTF() []byte {
	return goregular.TTF
}

// Cache for the parsed font and its base64 encoding (computed once on first access).
var (
	parsed     *opentype.Font
	parseErr   error
	parseOnce  sync.Once
	ttfBase64  string
	base64Once sync.Once
)

// Regular returns the parsed font. The result is shared and read-only.
func Regular() (*opentype.Font, error) {
	parseOnce.Do(func() {
		parsed, parseErr = opentype.Parse(goregular.TTF)
	})
	return parsed, parseErr
}

// RegularTTFBase64 returns the TTF font data as a base64 string.
// The result is cached after first computation.
func RegularTTFBase64() string {
	base64Once.Do(func() {
		ttfBase64 = base64.StdEncoding.EncodeToString(goregular.TTF)
	})
	return ttfBase64
}
