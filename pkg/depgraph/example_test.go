package depgraph_test

import (
	"fmt"

	"github.com/matzehuels/strut/pkg/depgraph"
	"github.com/matzehuels/strut/pkg/geom"
)

func ExampleGraph_Sort() {
	// container.midx feeds a.midx, which feeds b.midx.
	g := depgraph.New()
	root := g.Add(depgraph.ContainerOwner, geom.MidX, "container.midx")
	a := g.Add(0, geom.MidX, "a.midx")
	b := g.Add(1, geom.MidX, "b.midx")
	g.Edge(root, a)
	g.Edge(a, b)

	order, _ := g.Sort()
	for _, h := range order {
		fmt.Println(g.Node(h).Label)
	}
	// Output:
	// container.midx
	// a.midx
	// b.midx
}

func ExampleGraph_Sort_cycle() {
	g := depgraph.New()
	a := g.Add(0, geom.MinX, "a.minx")
	b := g.Add(1, geom.MinX, "b.minx")
	g.Edge(a, b)
	g.Edge(b, a)

	_, err := g.Sort()
	fmt.Println(err)
	// Output:
	// dependency graph contains a cycle: a.minx, b.minx
}
