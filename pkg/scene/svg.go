package scene

import (
	"bufio"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"

	"github.com/matzehuels/dagdraw/pkg/geom"
)

const svgNamespace = "http://www.w3.org/2000/svg"

// SVGOption configures [WriteSVG].
type SVGOption func(*svgWriter)

type svgWriter struct {
	margin float64
	style  string
	font   *fontFace
}

type fontFace struct {
	family string
	base64 string
	format string
}

// WithMargin adds space around the drawing's bounding box.
func WithMargin(m float64) SVGOption { return func(w *svgWriter) { w.margin = m } }

// WithStyleSheet embeds a CSS block in the document.
func WithStyleSheet(css string) SVGOption { return func(w *svgWriter) { w.style = css } }

// WithEmbeddedFont embeds a font as a base64 @font-face rule so that text
// renders with the same metrics it was measured with.
func WithEmbeddedFont(family, format, base64 string) SVGOption {
	return func(w *svgWriter) { w.font = &fontFace{family: family, format: format, base64: base64} }
}

// WriteSVG serializes root as a standalone SVG document. If root is an <svg>
// element its children are written inside a fresh <svg> root, otherwise root
// itself is. The viewBox is the given bounding box grown by the margin; an
// empty box yields a zero-sized document.
func WriteSVG(w io.Writer, root *Element, bbox geom.Rect, opts ...SVGOption) error {
	sw := svgWriter{}
	for _, opt := range opts {
		opt(&sw)
	}

	view := bbox.Inset(sw.margin, sw.margin)
	var minX, minY, width, height float64
	if !view.Empty() {
		minX, minY = view.MinX, view.MinY
		width, height = view.Width(), view.Height()
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, `<svg xmlns="%s" viewBox="%s %s %s %s" width="%s" height="%s">`+"\n",
		svgNamespace, Num(minX), Num(minY), Num(width), Num(height), Num(width), Num(height))

	if sw.style != "" || sw.font != nil {
		bw.WriteString("<style>\n")
		if sw.font != nil {
			fmt.Fprintf(bw, "@font-face { font-family: '%s'; src: url(data:font/%s;base64,%s) format('%s'); }\n",
				sw.font.family, sw.font.format, sw.font.base64, sw.font.format)
		}
		if sw.style != "" {
			writeEscaped(bw, sw.style)
			bw.WriteString("\n")
		}
		bw.WriteString("</style>\n")
	}

	children := []*Element{root}
	if root.Tag == "svg" {
		children = root.Children
	}
	for _, c := range children {
		writeElement(bw, c, 1)
	}
	bw.WriteString("</svg>\n")
	return bw.Flush()
}

// Markup serializes e and its descendants without a document wrapper.
func Markup(e *Element) string {
	var buf bytes.Buffer
	bw := bufio.NewWriter(&buf)
	writeElement(bw, e, 0)
	bw.Flush()
	return buf.String()
}

func writeElement(w *bufio.Writer, e *Element, depth int) {
	for i := 0; i < depth; i++ {
		w.WriteString("  ")
	}
	w.WriteByte('<')
	w.WriteString(e.Tag)
	for _, a := range e.attrs {
		w.WriteByte(' ')
		w.WriteString(a.name)
		w.WriteString(`="`)
		writeEscaped(w, a.value)
		w.WriteByte('"')
	}

	if len(e.Children) == 0 && e.Text == "" {
		w.WriteString("/>\n")
		return
	}
	w.WriteByte('>')
	if e.Text != "" {
		writeEscaped(w, e.Text)
	}
	if len(e.Children) > 0 {
		w.WriteByte('\n')
		for _, c := range e.Children {
			writeElement(w, c, depth+1)
		}
		for i := 0; i < depth; i++ {
			w.WriteString("  ")
		}
	}
	w.WriteString("</")
	w.WriteString(e.Tag)
	w.WriteString(">\n")
}

func writeEscaped(w io.Writer, s string) {
	_ = xml.EscapeText(w, []byte(s))
}
