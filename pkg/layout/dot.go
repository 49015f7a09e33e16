package layout

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/dagdraw/pkg/graph"
)

// ToDOT converts g to readable Graphviz DOT using the caller's node IDs and
// labels. Clusters become "subgraph cluster_*" blocks. The result is meant
// for people and external tools; the engine itself uses synthetic IDs.
func ToDOT(g *graph.Graph) string {
	var b bytes.Buffer
	b.WriteString("digraph G {\n")
	if rd := strings.ToUpper(g.Attrs().StringOr(graph.AttrRankDir, "")); ValidRankDirs[rd] {
		fmt.Fprintf(&b, "  rankdir=%s;\n", rd)
	}
	b.WriteString("  node [shape=box];\n\n")

	clusterN := 0
	var scope func(parent, indent string)
	scope = func(parent, indent string) {
		for _, c := range g.Children(parent) {
			n, _ := g.Node(c)
			if g.IsCluster(c) {
				fmt.Fprintf(&b, "%ssubgraph %s {\n", indent, quoteID(fmt.Sprintf("cluster_%d", clusterN)))
				clusterN++
				if l, ok := n.String(graph.AttrLabel); ok && l != "" {
					fmt.Fprintf(&b, "%s  label=%s;\n", indent, quoteID(l))
				}
				scope(c, indent+"  ")
				fmt.Fprintf(&b, "%s}\n", indent)
				continue
			}
			fmt.Fprintf(&b, "%s%s%s;\n", indent, quoteID(c), nodeAttrs(n))
		}
	}
	scope("", "  ")

	b.WriteString("\n")
	for _, k := range g.Edges() {
		a, _ := g.Edge(k)
		var attrs []string
		if l, ok := a.String(graph.AttrLabel); ok && l != "" {
			attrs = append(attrs, "label="+quoteID(l))
		}
		if k.Name != "" {
			attrs = append(attrs, "key="+quoteID(k.Name))
		}
		if ah, ok := a.String(graph.AttrArrowhead); ok && ah == "undirected" {
			attrs = append(attrs, "dir=none")
		}
		suffix := ""
		if len(attrs) > 0 {
			suffix = " [" + strings.Join(attrs, ", ") + "]"
		}
		fmt.Fprintf(&b, "  %s -> %s%s;\n", quoteID(k.V), quoteID(k.W), suffix)
	}
	b.WriteString("}\n")
	return b.String()
}

func nodeAttrs(n graph.Attrs) string {
	var attrs []string
	if l, ok := n.String(graph.AttrLabel); ok {
		attrs = append(attrs, "label="+quoteID(l))
	}
	switch n.StringOr(graph.AttrShape, "") {
	case "ellipse", "circle", "diamond":
		attrs = append(attrs, "shape="+n.StringOr(graph.AttrShape, ""))
	}
	if len(attrs) == 0 {
		return ""
	}
	return " [" + strings.Join(attrs, ", ") + "]"
}

// RenderDOT lays g out with Graphviz and returns the positioned DOT, with
// the caller's IDs and a pos attribute on every node and edge.
func RenderDOT(ctx context.Context, g *graph.Graph) ([]byte, error) {
	return runGraphviz(ctx, []byte(ToDOT(g)), graphviz.XDOT)
}

// quoteID quotes s as a DOT string, escaping embedded quotes.
func quoteID(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}
