package layout

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/dagdraw/pkg/errors"
	"github.com/matzehuels/dagdraw/pkg/geom"
	"github.com/matzehuels/dagdraw/pkg/graph"
)

// Graph-level defaults, in SVG user units.
const (
	DefaultNodeSep = 50.0
	DefaultRankSep = 50.0

	// LabelOffset separates an edge from a label placed beside it.
	LabelOffset = 10.0

	pointsPerInch = 72.0
	minInches     = 0.01
)

// ValidRankDirs lists the accepted "rankdir" values.
var ValidRankDirs = map[string]bool{"TB": true, "BT": true, "LR": true, "RL": true}

// Graphviz lays graphs out with Graphviz's dot algorithm, run in-process.
//
// Leaves become fixed-size boxes using their width/height attributes,
// clusters become "subgraph cluster_N" blocks with a margin equal to their
// largest padding, and every labeled edge is split in two around a
// fixed-size node standing in for the label. Edges incident to a cluster
// are rejected with MALFORMED_GRAPH.
//
// Honoured graph attributes: rankdir, nodesep, ranksep, marginx, marginy.
// Honoured edge attributes: labelpos (l, c, r; default r), minlen, weight.
type Graphviz struct {
	logger *log.Logger
}

// GraphvizOption configures a [Graphviz] engine.
type GraphvizOption func(*Graphviz)

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) GraphvizOption {
	return func(g *Graphviz) {
		if l != nil {
			g.logger = l
		}
	}
}

// NewGraphviz creates the Graphviz engine.
func NewGraphviz(opts ...GraphvizOption) *Graphviz {
	g := &Graphviz{logger: log.New(io.Discard)}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Name implements [Named].
func (*Graphviz) Name() string { return "graphviz-dot" }

// Layout implements [Engine].
func (e *Graphviz) Layout(ctx context.Context, g *graph.Graph) (*Result, error) {
	if err := g.CheckHierarchy(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformedGraph, err, "invalid cluster hierarchy")
	}
	for _, k := range g.Edges() {
		if g.IsCluster(k.V) || g.IsCluster(k.W) {
			return nil, errors.New(errors.ErrCodeMalformedGraph, "edge %s is incident to a cluster", k)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeLayoutFailed, err, "layout cancelled")
	}

	if g.NodeCount() == 0 {
		return NewResult(), nil
	}

	start := time.Now()
	in := encode(g)
	out, err := runGraphviz(ctx, in.src, graphviz.XDOT)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeLayoutFailed, err, "graphviz")
	}
	pos, err := parsePositioned(out)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeLayoutFailed, err, "graphviz output")
	}
	res, err := in.decode(g, pos)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeLayoutFailed, err, "graphviz output")
	}

	e.logger.Debug("graphviz layout",
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"clusters", len(in.clusters),
		"duration", time.Since(start))
	return res, nil
}

// runGraphviz renders DOT source into the given output format.
func runGraphviz(ctx context.Context, src []byte, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes(src)
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

// =============================================================================
// DOT encoding
// =============================================================================

type encodedEdge struct {
	key      graph.EdgeKey
	labeled  bool
	w, h     float64 // label size
	labelPos string
}

// encoded is the DOT sent to Graphviz plus what is needed to map its
// synthetic IDs (n0, cluster_0, e0, l0) back.
type encoded struct {
	src        []byte
	nodes      []string
	sizes      [][2]float64
	clusters   []string
	edges      []encodedEdge
	horizontal bool
	marginX    float64
	marginY    float64
}

func encode(g *graph.Graph) *encoded {
	attrs := g.Attrs()
	rankdir := strings.ToUpper(attrs.StringOr(graph.AttrRankDir, "TB"))
	if !ValidRankDirs[rankdir] {
		rankdir = "TB"
	}
	in := &encoded{
		horizontal: rankdir == "LR" || rankdir == "RL",
		marginX:    attrs.FloatOr(graph.AttrMarginX, 0),
		marginY:    attrs.FloatOr(graph.AttrMarginY, 0),
	}

	nodeIdx := map[string]int{}
	for _, id := range g.Nodes() {
		if g.IsCluster(id) {
			continue
		}
		nodeIdx[id] = len(in.nodes)
		n, _ := g.Node(id)
		in.nodes = append(in.nodes, id)
		in.sizes = append(in.sizes, [2]float64{
			math.Max(0, n.FloatOr(graph.AttrWidth, 0)),
			math.Max(0, n.FloatOr(graph.AttrHeight, 0)),
		})
	}

	// Label stand-ins live in the innermost cluster holding both ends.
	home := map[string][]int{}
	for i, k := range g.Edges() {
		a, _ := g.Edge(k)
		e := encodedEdge{key: k}
		if s, ok := a.String(graph.AttrLabel); ok && s != "" {
			e.labeled = true
			e.w = math.Max(0, a.FloatOr(graph.AttrWidth, 0))
			e.h = math.Max(0, a.FloatOr(graph.AttrHeight, 0))
			e.labelPos = strings.ToLower(a.StringOr(graph.AttrLabelPos, "r"))
			h := commonCluster(g, k.V, k.W)
			home[h] = append(home[h], i)
		}
		in.edges = append(in.edges, e)
	}

	var b bytes.Buffer
	b.WriteString("digraph G {\n")
	fmt.Fprintf(&b, "  graph [rankdir=%s, nodesep=%s, ranksep=%s, splines=polyline, pad=0];\n",
		rankdir,
		inches(attrs.FloatOr(graph.AttrNodeSep, DefaultNodeSep)),
		inches(attrs.FloatOr(graph.AttrRankSep, DefaultRankSep)))
	b.WriteString("  node [shape=box, fixedsize=true, label=\"\", margin=0];\n")
	b.WriteString("  edge [dir=none];\n")

	in.writeScope(&b, g, "", nodeIdx, home, "  ")

	for i, e := range in.edges {
		v, w := nodeIdx[e.key.V], nodeIdx[e.key.W]
		extra := edgeExtras(g, e.key)
		if !e.labeled {
			fmt.Fprintf(&b, "  n%d -> n%d [id=e%d%s];\n", v, w, i, extra)
			continue
		}
		fmt.Fprintf(&b, "  n%d -> l%d [id=e%d_0%s];\n", v, i, i, extra)
		fmt.Fprintf(&b, "  l%d -> n%d [id=e%d_1%s];\n", i, w, i, extra)
	}
	b.WriteString("}\n")
	in.src = b.Bytes()
	return in
}

func (in *encoded) writeScope(b *bytes.Buffer, g *graph.Graph, parent string, nodeIdx map[string]int, home map[string][]int, indent string) {
	for _, c := range g.Children(parent) {
		if g.IsCluster(c) {
			n, _ := g.Node(c)
			fmt.Fprintf(b, "%ssubgraph cluster_%d {\n", indent, len(in.clusters))
			in.clusters = append(in.clusters, c)
			fmt.Fprintf(b, "%s  graph [margin=%s];\n", indent, num(clusterMargin(n)))
			in.writeScope(b, g, c, nodeIdx, home, indent+"  ")
			fmt.Fprintf(b, "%s}\n", indent)
			continue
		}
		i := nodeIdx[c]
		fmt.Fprintf(b, "%sn%d [width=%s, height=%s];\n", indent, i, inches(in.sizes[i][0]), inches(in.sizes[i][1]))
	}
	for _, i := range home[parent] {
		w, h := in.edges[i].standInSize(in.horizontal)
		fmt.Fprintf(b, "%sl%d [width=%s, height=%s];\n", indent, i, inches(w), inches(h))
	}
}

// standInSize is the size reserved in the layout for an edge label. Labels
// beside the edge reserve room on both sides so the edge stays centered.
func (e encodedEdge) standInSize(horizontal bool) (float64, float64) {
	if e.labelPos != "l" && e.labelPos != "r" {
		return e.w, e.h
	}
	if horizontal {
		return e.w, 2 * (e.h + LabelOffset)
	}
	return 2 * (e.w + LabelOffset), e.h
}

func edgeExtras(g *graph.Graph, k graph.EdgeKey) string {
	a, _ := g.Edge(k)
	var s string
	if v, ok := a.Float("minlen"); ok && v >= 0 {
		s += ", minlen=" + strconv.Itoa(int(v))
	}
	if v, ok := a.Float("weight"); ok && v >= 0 {
		s += ", weight=" + strconv.Itoa(int(v))
	}
	return s
}

func clusterMargin(n graph.Attrs) float64 {
	m := 0.0
	for _, k := range []string{graph.AttrPaddingLeft, graph.AttrPaddingRight, graph.AttrPaddingTop, graph.AttrPaddingBottom} {
		m = math.Max(m, n.FloatOr(k, 10))
	}
	return m
}

// commonCluster returns the innermost ancestor shared by v and w, or "" for
// the root.
func commonCluster(g *graph.Graph, v, w string) string {
	seen := map[string]bool{}
	for _, a := range g.Ancestors(v) {
		seen[a] = true
	}
	for _, a := range g.Ancestors(w) {
		if seen[a] {
			return a
		}
	}
	return ""
}

func inches(px float64) string {
	return num(math.Max(px/pointsPerInch, minInches))
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// =============================================================================
// Decoding
// =============================================================================

func (in *encoded) decode(g *graph.Graph, pos *positioned) (*Result, error) {
	res := NewResult()
	if len(in.nodes) == 0 && len(in.clusters) == 0 {
		return res, nil
	}
	if pos.bb.Empty() {
		return nil, fmt.Errorf("missing graph bounding box")
	}

	// Graphviz's y axis points up; flip it and shift by the margins.
	tr := func(p geom.Point) geom.Point {
		return geom.Pt(p.X-pos.bb.MinX+in.marginX, pos.bb.MaxY-p.Y+in.marginY)
	}

	for i, id := range in.nodes {
		p, ok := pos.nodes[fmt.Sprintf("n%d", i)]
		if !ok {
			return nil, fmt.Errorf("no position for node %q", id)
		}
		c := tr(p)
		res.Nodes[id] = Box{X: c.X, Y: c.Y, Width: in.sizes[i][0], Height: in.sizes[i][1]}
	}
	for i, id := range in.clusters {
		r, ok := pos.clusters[fmt.Sprintf("cluster_%d", i)]
		if !ok {
			return nil, fmt.Errorf("no bounding box for cluster %q", id)
		}
		c := tr(r.Center())
		res.Nodes[id] = Box{X: c.X, Y: c.Y, Width: r.Width(), Height: r.Height()}
	}

	for i, e := range in.edges {
		tail := res.Nodes[e.key.V].Center()
		route := EdgeRoute{Edge: e.key}

		if !e.labeled {
			pts, ok := pos.edges[fmt.Sprintf("e%d", i)]
			if !ok {
				return nil, fmt.Errorf("no route for edge %s", e.key)
			}
			route.Points = orient(transform(pts, tr), tail)
			res.Edges = append(res.Edges, route)
			continue
		}

		lp, ok := pos.nodes[fmt.Sprintf("l%d", i)]
		if !ok {
			return nil, fmt.Errorf("no position for label of edge %s", e.key)
		}
		mid := tr(lp)
		first, ok1 := pos.edges[fmt.Sprintf("e%d_0", i)]
		second, ok2 := pos.edges[fmt.Sprintf("e%d_1", i)]
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("no route for edge %s", e.key)
		}
		a := orient(transform(first, tr), tail)
		b := orient(transform(second, tr), mid)

		pts := append([]geom.Point{}, a[:len(a)-1]...)
		pts = append(pts, mid)
		pts = append(pts, b[1:]...)
		route.Points = pts

		label := Box{X: mid.X, Y: mid.Y, Width: e.w, Height: e.h}
		shift := 0.0
		switch e.labelPos {
		case "l":
			shift = -1
		case "r":
			shift = 1
		}
		if in.horizontal {
			label.Y += shift * (e.h/2 + LabelOffset)
		} else {
			label.X += shift * (e.w/2 + LabelOffset)
		}
		route.Label = &label
		res.Edges = append(res.Edges, route)
	}
	return res, nil
}

func transform(pts []geom.Point, tr func(geom.Point) geom.Point) []geom.Point {
	out := make([]geom.Point, len(pts))
	for i, p := range pts {
		out[i] = tr(p)
	}
	return out
}

// orient reverses pts if its last point is closer to from than its first.
func orient(pts []geom.Point, from geom.Point) []geom.Point {
	if len(pts) > 1 && pts[len(pts)-1].Dist(from) < pts[0].Dist(from) {
		for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
			pts[i], pts[j] = pts[j], pts[i]
		}
	}
	return pts
}
