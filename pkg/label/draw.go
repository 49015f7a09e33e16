package label

import (
	"github.com/matzehuels/dagdraw/pkg/scene"
)

// Draw appends the label text to parent and returns its size. The text is
// wrapped in a <g> translated so that the label box is centered on the
// parent origin.
func Draw(parent *scene.Element, text string, m Measurer, style string) Size {
	size := m.Measure(text)

	g := parent.Append("g")
	t := g.Append("text")
	t.SetIf("style", style)
	if text != "" {
		for _, line := range Lines(text) {
			t.Append("tspan").
				Set("xml:space", "preserve").
				Set("dy", "1em").
				Set("x", "1").
				SetText(line)
		}
	}

	g.Set("transform", scene.Translate(-size.Width/2, -size.Height/2))
	return size
}
