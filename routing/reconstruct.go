package routing

import "fmt"

// Segment is one traversed edge of a reconstructed route.
type Segment struct {
	From     NodeID  `json:"from"`
	To       NodeID  `json:"to"`
	Length   float64 `json:"length"`
	Category uint8   `json:"category"`
}

// Path is an ordered start..end node sequence with the edges between them.
type Path struct {
	Nodes    []NodeID
	Segments []Segment
	Cost     Vector
}

// Reconstruct follows the parent references of entry id back to the start
// of the search. When the chain breaks, the end-side part that could be
// recovered is returned along with ErrReconstructionInconsistency.
func Reconstruct(f *Frontier, g GraphView, id EntryID) (Path, error) {
	final, ok := f.Entry(id)
	if !ok {
		return Path{}, fmt.Errorf("%w: unknown entry %d", ErrReconstructionInconsistency, id)
	}

	nodes := []NodeID{final.Node}
	var segments []Segment

	broken := func(format string, args ...any) (Path, error) {
		p := Path{Nodes: reverseNodes(nodes), Segments: reverseSegments(segments), Cost: final.Cost}
		return p, fmt.Errorf("%w: "+format, append([]any{ErrReconstructionInconsistency}, args...)...)
	}

	cur := final
	for steps := 0; !cur.IsRoot(); steps++ {
		if steps >= len(f.entries) {
			return broken("parent chain of entry %d does not terminate", id)
		}
		parent, ok := f.Entry(cur.Parent)
		if !ok {
			return broken("entry at %q references missing parent %d", cur.Node, cur.Parent)
		}
		if parent.Node != cur.Pred {
			return broken("parent of %q is at %q, expected %q", cur.Node, parent.Node, cur.Pred)
		}
		edges := g.Edges(cur.Pred)
		if cur.Via < 0 || cur.Via >= len(edges) || edges[cur.Via].Node != cur.Node {
			return broken("edge %d of %q does not lead to %q", cur.Via, cur.Pred, cur.Node)
		}
		e := edges[cur.Via]
		segments = append(segments, Segment{From: cur.Pred, To: cur.Node, Length: e.Length, Category: e.Category})
		nodes = append(nodes, parent.Node)
		cur = parent
	}

	return Path{Nodes: reverseNodes(nodes), Segments: reverseSegments(segments), Cost: final.Cost}, nil
}

// ReconstructByCost rebuilds the path of entry id by searching each
// predecessor's current Pareto set for the entry whose cost plus the
// connecting edge equals the successor's cost exactly. It depends on
// floating-point equality and only sees entries that are still linked, so
// it can fail on frontiers where Reconstruct succeeds.
func ReconstructByCost(f *Frontier, g GraphView, w Weights, id EntryID) (Path, error) {
	final, ok := f.Entry(id)
	if !ok {
		return Path{}, fmt.Errorf("%w: unknown entry %d", ErrReconstructionInconsistency, id)
	}

	nodes := []NodeID{final.Node}
	var segments []Segment

	broken := func(format string, args ...any) (Path, error) {
		p := Path{Nodes: reverseNodes(nodes), Segments: reverseSegments(segments), Cost: final.Cost}
		return p, fmt.Errorf("%w: "+format, append([]any{ErrReconstructionInconsistency}, args...)...)
	}

	cur := final
	for steps := 0; !cur.IsRoot(); steps++ {
		if steps >= len(f.entries) {
			return broken("cost chain of entry %d does not terminate", id)
		}
		pred := cur.Pred
		candidates := f.Entries(pred)
		if len(candidates) == 0 {
			return broken("no Pareto entry for predecessor %q", pred)
		}

		edge, found := firstEdge(g, pred, cur.Node)
		if !found {
			return broken("no edge from %q to %q", pred, cur.Node)
		}
		edgeCost := EdgeCost(edge.Length, edge.Category, w)

		var match *Entry
		for i := range candidates {
			if candidates[i].Cost.Add(edgeCost) == cur.Cost {
				match = &candidates[i]
				break
			}
		}
		if match == nil {
			return broken("no entry at %q sums to the cost at %q", pred, cur.Node)
		}

		segments = append(segments, Segment{From: pred, To: cur.Node, Length: edge.Length, Category: edge.Category})
		nodes = append(nodes, pred)
		cur = *match
	}

	return Path{Nodes: reverseNodes(nodes), Segments: reverseSegments(segments), Cost: final.Cost}, nil
}

func firstEdge(g GraphView, from, to NodeID) (Edge, bool) {
	for _, e := range g.Edges(from) {
		if e.Node == to {
			return e, true
		}
	}
	return Edge{}, false
}

func reverseNodes(s []NodeID) []NodeID {
	out := make([]NodeID, len(s))
	for i, n := range s {
		out[len(s)-1-i] = n
	}
	return out
}

func reverseSegments(s []Segment) []Segment {
	out := make([]Segment, len(s))
	for i, seg := range s {
		out[len(s)-1-i] = seg
	}
	return out
}
