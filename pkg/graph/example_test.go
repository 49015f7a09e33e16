package graph_test

import (
	"fmt"

	"github.com/matzehuels/dagdraw/pkg/graph"
)

func Example() {
	g := graph.New()
	g.AddNode("web", graph.Attrs{graph.AttrLabel: "Web"})
	g.AddNode("db", graph.Attrs{graph.AttrShape: "ellipse"})
	g.AddNode("backend", nil)
	g.SetParent("db", "backend")
	g.AddEdge(graph.EdgeKey{V: "web", W: "db"}, graph.Attrs{graph.AttrLabel: "queries"})

	fmt.Println("nodes:", g.Nodes())
	fmt.Println("clusters:", g.IsCluster("backend"), g.IsCluster("db"))
	fmt.Println("edges:", g.Edges())
	// Output:
	// nodes: [web db backend]
	// clusters: true false
	// edges: [web->db]
}

func ExampleGraph_CheckHierarchy() {
	g := graph.New()
	g.AddNode("a", nil)
	g.AddNode("b", nil)
	g.SetParent("a", "b")
	g.SetParent("b", "a")

	fmt.Println(g.CheckHierarchy())
	// Output:
	// cycle in parent relation: "a"
}
