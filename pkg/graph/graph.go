package graph

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [Graph.AddNode] when the node ID is empty.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNode is returned by [Graph.AddNode] when the ID is taken.
	ErrDuplicateNode = errors.New("duplicate node ID")

	// ErrDuplicateEdge is returned by [Graph.AddEdge] when an edge with the
	// same source, target and name already exists.
	ErrDuplicateEdge = errors.New("duplicate edge")

	// ErrUnknownNode is returned when an operation names a node that is not
	// in the graph.
	ErrUnknownNode = errors.New("unknown node")

	// ErrUnknownSourceNode is returned by [Graph.AddEdge] when V does not exist.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [Graph.AddEdge] when W does not exist.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrParentCycle is returned by [Graph.CheckHierarchy] when a node is its
	// own ancestor.
	ErrParentCycle = errors.New("cycle in parent relation")
)

// EdgeKey identifies an edge. Name distinguishes parallel edges between the
// same pair of nodes and is empty for the common single-edge case.
type EdgeKey struct {
	V    string `json:"v"`
	W    string `json:"w"`
	Name string `json:"name,omitempty"`
}

// IsLoop reports whether the edge starts and ends at the same node.
func (k EdgeKey) IsLoop() bool { return k.V == k.W }

// String formats k for messages. It is not an identity: ids containing
// "->" can make two keys print alike.
func (k EdgeKey) String() string {
	if k.Name == "" {
		return k.V + "->" + k.W
	}
	return fmt.Sprintf("%s->%s[%s]", k.V, k.W, k.Name)
}

// Graph is a directed multigraph with an optional parent relation between
// nodes. The zero value is not usable; create graphs with [New].
type Graph struct {
	nodes     map[string]Attrs
	nodeOrder []string
	edges     map[EdgeKey]Attrs
	edgeOrder []EdgeKey
	parent    map[string]string
	children  map[string][]string // "" holds the root-level nodes
	attrs     Attrs
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodes:    make(map[string]Attrs),
		edges:    make(map[EdgeKey]Attrs),
		parent:   make(map[string]string),
		children: make(map[string][]string),
		attrs:    Attrs{},
	}
}

// Attrs returns the graph-level attribute map. It is never nil.
func (g *Graph) Attrs() Attrs { return g.attrs }

// AddNode adds a node. A nil attrs map is replaced by an empty one; a
// non-nil map is stored as is, so later changes through either reference
// are visible to both.
func (g *Graph) AddNode(id string, attrs Attrs) error {
	if id == "" {
		return ErrInvalidNodeID
	}
	if _, ok := g.nodes[id]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateNode, id)
	}
	if attrs == nil {
		attrs = Attrs{}
	}
	g.nodes[id] = attrs
	g.nodeOrder = append(g.nodeOrder, id)
	g.children[""] = append(g.children[""], id)
	return nil
}

// AddEdge adds an edge between two existing nodes.
func (g *Graph) AddEdge(k EdgeKey, attrs Attrs) error {
	if _, ok := g.nodes[k.V]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSourceNode, k.V)
	}
	if _, ok := g.nodes[k.W]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTargetNode, k.W)
	}
	if _, ok := g.edges[k]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateEdge, k)
	}
	if attrs == nil {
		attrs = Attrs{}
	}
	g.edges[k] = attrs
	g.edgeOrder = append(g.edgeOrder, k)
	return nil
}

// SetParent nests child inside parent. An empty parent moves child back to
// the root level. Cycles are not rejected here; see [Graph.CheckHierarchy].
func (g *Graph) SetParent(child, parent string) error {
	if _, ok := g.nodes[child]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownNode, child)
	}
	if parent != "" {
		if _, ok := g.nodes[parent]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownNode, parent)
		}
	}

	old := g.parent[child]
	g.children[old] = slices.DeleteFunc(g.children[old], func(s string) bool { return s == child })
	if len(g.children[old]) == 0 && old != "" {
		delete(g.children, old)
	}

	if parent == "" {
		delete(g.parent, child)
	} else {
		g.parent[child] = parent
	}
	g.children[parent] = append(g.children[parent], child)
	return nil
}

// Node returns the attribute map of a node.
func (g *Graph) Node(id string) (Attrs, bool) {
	a, ok := g.nodes[id]
	return a, ok
}

// HasNode reports whether id names a node.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// Edge returns the attribute map of an edge.
func (g *Graph) Edge(k EdgeKey) (Attrs, bool) {
	a, ok := g.edges[k]
	return a, ok
}

// Nodes returns all node IDs in insertion order.
func (g *Graph) Nodes() []string { return slices.Clone(g.nodeOrder) }

// Edges returns all edge keys in insertion order.
func (g *Graph) Edges() []EdgeKey { return slices.Clone(g.edgeOrder) }

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Parent returns the parent of id, or "" for root-level and unknown nodes.
func (g *Graph) Parent(id string) string { return g.parent[id] }

// Children returns the direct children of id in the order they were nested.
// Children("") returns the root-level nodes.
func (g *Graph) Children(id string) []string { return slices.Clone(g.children[id]) }

// IsCluster reports whether id has at least one child.
func (g *Graph) IsCluster(id string) bool { return id != "" && len(g.children[id]) > 0 }

// Ancestors returns the parent chain of id, nearest first. The walk stops if
// it meets a node twice.
func (g *Graph) Ancestors(id string) []string {
	var out []string
	seen := map[string]bool{id: true}
	for p := g.parent[id]; p != "" && !seen[p]; p = g.parent[p] {
		seen[p] = true
		out = append(out, p)
	}
	return out
}

// Depth returns the number of ancestors of id.
func (g *Graph) Depth(id string) int { return len(g.Ancestors(id)) }

// OutEdges returns the edges leaving id, in insertion order.
func (g *Graph) OutEdges(id string) []EdgeKey {
	var out []EdgeKey
	for _, k := range g.edgeOrder {
		if k.V == id {
			out = append(out, k)
		}
	}
	return out
}

// InEdges returns the edges entering id, in insertion order.
func (g *Graph) InEdges(id string) []EdgeKey {
	var out []EdgeKey
	for _, k := range g.edgeOrder {
		if k.W == id {
			out = append(out, k)
		}
	}
	return out
}

// CheckHierarchy returns an error wrapping [ErrParentCycle] if any node is
// its own ancestor.
func (g *Graph) CheckHierarchy() error {
	const (
		white = iota
		gray
		black
	)
	color := make(map[string]int, len(g.nodes))
	for _, id := range g.nodeOrder {
		if color[id] != white {
			continue
		}
		// walk up the chain; a gray node on it closes a cycle
		var chain []string
		for n := id; n != "" && color[n] != black; n = g.parent[n] {
			if color[n] == gray {
				return fmt.Errorf("%w: %q", ErrParentCycle, n)
			}
			color[n] = gray
			chain = append(chain, n)
		}
		for _, n := range chain {
			color[n] = black
		}
	}
	return nil
}

// Clone returns a deep copy of the graph topology. Attribute maps are copied
// one level deep.
func (g *Graph) Clone() *Graph {
	c := New()
	c.attrs = g.attrs.Clone()
	for _, id := range g.nodeOrder {
		_ = c.AddNode(id, g.nodes[id].Clone())
	}
	for _, id := range g.nodeOrder {
		if p := g.parent[id]; p != "" {
			_ = c.SetParent(id, p)
		}
	}
	for _, k := range g.edgeOrder {
		_ = c.AddEdge(k, g.edges[k].Clone())
	}
	return c
}
