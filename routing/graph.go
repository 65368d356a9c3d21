package routing

// NodeID identifies a vertex of the street graph. Source data uses the
// serialized "x,y" EPSG:3857 coordinate of the intersection.
type NodeID string

// Edge is a directed street segment leaving a node.
type Edge struct {
	Node     NodeID  `json:"node"`     // target node
	Length   float64 `json:"length"`   // meters
	Category uint8   `json:"category"` // 1 (least safe) .. 4 (dedicated infrastructure)
}

// GraphView is the read-only adjacency lookup consumed by the search.
type GraphView interface {
	Edges(id NodeID) []Edge
	HasNode(id NodeID) bool
}

// Graph is a directed adjacency list. Nodes holds every id that appears
// either as a source or as an edge target.
type Graph struct {
	Nodes map[NodeID]struct{}
	Adj   map[NodeID][]Edge
}

func NewGraph() *Graph {
	return &Graph{
		Nodes: make(map[NodeID]struct{}),
		Adj:   make(map[NodeID][]Edge),
	}
}

// AddNode registers a node without outgoing edges.
func (g *Graph) AddNode(id NodeID) {
	g.Nodes[id] = struct{}{}
}

// AddEdge appends a directed edge from -> e.Node.
func (g *Graph) AddEdge(from NodeID, e Edge) {
	g.Nodes[from] = struct{}{}
	g.Nodes[e.Node] = struct{}{}
	g.Adj[from] = append(g.Adj[from], e)
}

func (g *Graph) Edges(id NodeID) []Edge {
	return g.Adj[id]
}

func (g *Graph) HasNode(id NodeID) bool {
	_, ok := g.Nodes[id]
	return ok
}

// GraphStats summarises a loaded graph.
type GraphStats struct {
	Nodes      int           `json:"nodes"`
	Edges      int           `json:"edges"`
	TotalKm    float64       `json:"totalKm"`
	Categories map[uint8]int `json:"categories"`
}

func (g *Graph) Stats() GraphStats {
	s := GraphStats{
		Nodes:      len(g.Nodes),
		Categories: make(map[uint8]int),
	}
	for _, edges := range g.Adj {
		for _, e := range edges {
			s.Edges++
			s.TotalKm += e.Length / 1000
			s.Categories[e.Category]++
		}
	}
	return s
}
