package routing

type testEdge struct {
	from, to NodeID
	length   float64
	category uint8
}

// buildGraph wires the given edges into a fresh Graph.
func buildGraph(edges ...testEdge) *Graph {
	g := NewGraph()
	for _, e := range edges {
		g.AddEdge(e.from, Edge{Node: e.to, Length: e.length, Category: e.category})
	}
	return g
}

// triangleGraph: A->B direct on a safe street, A->C->B as a detour that
// starts on an unsafe street.
func triangleGraph() *Graph {
	return buildGraph(
		testEdge{"A", "B", 100, 4},
		testEdge{"A", "C", 50, 1},
		testEdge{"C", "B", 60, 4},
	)
}

// tradeOffGraph: S->T is short but unsafe, S->M->T is longer but safe.
func tradeOffGraph() *Graph {
	return buildGraph(
		testEdge{"S", "T", 100, 1},
		testEdge{"S", "M", 80, 4},
		testEdge{"M", "T", 80, 4},
	)
}

// gridGraph builds an n x n grid with edges in both directions and a
// category pattern that produces several incomparable labels per node.
func gridGraph(n int) *Graph {
	g := NewGraph()
	id := func(r, c int) NodeID {
		return NodeID(string(rune('a'+r)) + string(rune('a'+c)))
	}
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			cat := uint8((r*3+c*5)%4 + 1)
			length := float64(50 + (r*7+c*11)%40)
			if c+1 < n {
				g.AddEdge(id(r, c), Edge{Node: id(r, c+1), Length: length, Category: cat})
				g.AddEdge(id(r, c+1), Edge{Node: id(r, c), Length: length, Category: cat})
			}
			if r+1 < n {
				alt := cat%4 + 1
				g.AddEdge(id(r, c), Edge{Node: id(r+1, c), Length: length + 5, Category: alt})
				g.AddEdge(id(r+1, c), Edge{Node: id(r, c), Length: length + 5, Category: alt})
			}
		}
	}
	return g
}
