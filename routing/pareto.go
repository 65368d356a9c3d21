package routing

import (
	"context"
	"fmt"
	"math"
)

// EntryID identifies an entry in a Frontier's arena.
type EntryID int

// NoParent marks the root entry at the start node.
const NoParent EntryID = -1

// Entry is one Pareto-optimal label at a node. Entries are immutable once
// created; Parent points at the entry the path was extended from and Via is
// the index of the traversed edge in Pred's adjacency list.
type Entry struct {
	Cost   Vector
	Node   NodeID
	Pred   NodeID
	Parent EntryID
	Via    int
}

// IsRoot reports whether e is the start entry of a search.
func (e Entry) IsRoot() bool {
	return e.Parent == NoParent
}

// SearchStats counts what a single search did.
type SearchStats struct {
	Expanded       int `json:"expanded"`
	Pruned         int `json:"pruned"`
	Inserted       int `json:"inserted"`
	Discarded      int `json:"discarded"`
	Unlinked       int `json:"unlinked"`
	MalformedEdges int `json:"malformedEdges"`
	PeakQueue      int `json:"peakQueue"`
}

// Frontier holds the per-node Pareto sets of one query. Every entry ever
// created stays in the arena so that parent references of surviving entries
// remain valid after a dominated ancestor has been unlinked from its node.
type Frontier struct {
	entries []Entry
	lists   map[NodeID][]EntryID
	Stats   SearchStats
}

func newFrontier() *Frontier {
	return &Frontier{
		lists: make(map[NodeID][]EntryID),
	}
}

// Entry returns the entry with the given id.
func (f *Frontier) Entry(id EntryID) (Entry, bool) {
	if id < 0 || int(id) >= len(f.entries) {
		return Entry{}, false
	}
	return f.entries[id], true
}

// IDs returns the ids of the current Pareto set at node, in insertion order.
func (f *Frontier) IDs(node NodeID) []EntryID {
	return append([]EntryID(nil), f.lists[node]...)
}

// Entries returns the current Pareto set at node, in insertion order.
func (f *Frontier) Entries(node NodeID) []Entry {
	ids := f.lists[node]
	out := make([]Entry, 0, len(ids))
	for _, id := range ids {
		out = append(out, f.entries[id])
	}
	return out
}

// Reached reports whether node has entered the frontier.
func (f *Frontier) Reached(node NodeID) bool {
	_, ok := f.lists[node]
	return ok
}

// Size returns the number of live entries over all nodes.
func (f *Frontier) Size() int {
	n := 0
	for _, ids := range f.lists {
		n += len(ids)
	}
	return n
}

// Nodes returns the number of nodes that have a Pareto set.
func (f *Frontier) Nodes() int {
	return len(f.lists)
}

// Best selects the entry at node with the smallest cost[0], the first
// inserted one on ties. This is a scalarisation policy; callers wanting a
// different trade-off can pick from Entries instead.
func (f *Frontier) Best(node NodeID) (EntryID, error) {
	ids := f.lists[node]
	if len(ids) == 0 {
		return NoParent, fmt.Errorf("%w: destination %q not reached", ErrNoRoute, node)
	}
	best := ids[0]
	for _, id := range ids[1:] {
		if f.entries[id].Cost[0] < f.entries[best].Cost[0] {
			best = id
		}
	}
	return best, nil
}

func (f *Frontier) add(e Entry) EntryID {
	f.entries = append(f.entries, e)
	return EntryID(len(f.entries) - 1)
}

// insert adds e to its node's Pareto set unless an existing entry dominates
// it. Entries dominated by e are unlinked.
func (f *Frontier) insert(e Entry) (EntryID, bool) {
	current := f.lists[e.Node]

	dominated := 0
	for _, id := range current {
		existing := f.entries[id].Cost
		if existing.Dominates(e.Cost) {
			f.Stats.Discarded++
			return NoParent, false
		}
		if e.Cost.Dominates(existing) {
			dominated++
		}
	}

	kept := current
	if dominated > 0 {
		kept = make([]EntryID, 0, len(current)-dominated+1)
		for _, id := range current {
			if !e.Cost.Dominates(f.entries[id].Cost) {
				kept = append(kept, id)
			}
		}
		f.Stats.Unlinked += dominated
	}

	id := f.add(e)
	f.lists[e.Node] = append(kept, id)
	f.Stats.Inserted++
	return id, true
}

// Query describes one route search.
type Query struct {
	Start         NodeID
	End           NodeID
	Weights       Weights
	AbortDistance float64
}

const cancelCheckInterval = 1024

// Search expands the frontier breadth-first from q.Start until the queue is
// empty. Labels whose distance exceeds q.AbortDistance are not expanded.
// Edges without a positive length are skipped and counted as malformed.
// The destination's Pareto set is read from the returned frontier.
func Search(ctx context.Context, g GraphView, q Query) (*Frontier, error) {
	if g == nil {
		return nil, fmt.Errorf("%w: nil graph", ErrInvalidInput)
	}
	if !g.HasNode(q.Start) {
		return nil, fmt.Errorf("%w: start node %q not in graph", ErrInvalidInput, q.Start)
	}
	if !g.HasNode(q.End) {
		return nil, fmt.Errorf("%w: end node %q not in graph", ErrInvalidInput, q.End)
	}
	if math.IsNaN(q.AbortDistance) || q.AbortDistance < 0 {
		return nil, fmt.Errorf("%w: abort distance %v", ErrInvalidInput, q.AbortDistance)
	}

	f := newFrontier()
	root := f.add(Entry{Node: q.Start, Parent: NoParent, Via: -1})
	f.lists[q.Start] = []EntryID{root}

	queue := []EntryID{root}
	head := 0
	pops := 0

	for head < len(queue) {
		if pops%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("search canceled after %d expansions: %w", f.Stats.Expanded, err)
			}
		}
		pops++

		cur := f.entries[queue[head]]
		curID := queue[head]
		head++

		if cur.Cost[DistanceIndex] > q.AbortDistance {
			f.Stats.Pruned++
			continue
		}
		f.Stats.Expanded++

		for i, e := range g.Edges(cur.Node) {
			// zero-length cycles would yield equal labels forever
			if !(e.Length > 0) {
				f.Stats.MalformedEdges++
				continue
			}
			if !ValidCategory(e.Category) {
				f.Stats.MalformedEdges++
			}
			next := Entry{
				Cost:   cur.Cost.Add(EdgeCost(e.Length, e.Category, q.Weights)),
				Node:   e.Node,
				Pred:   cur.Node,
				Parent: curID,
				Via:    i,
			}
			if id, ok := f.insert(next); ok {
				queue = append(queue, id)
			}
		}

		if pending := len(queue) - head; pending > f.Stats.PeakQueue {
			f.Stats.PeakQueue = pending
		}

		// release the consumed prefix once it exceeds half the backing array
		if head > cancelCheckInterval && head*2 > len(queue) {
			queue = append(queue[:0:0], queue[head:]...)
			head = 0
		}
	}

	return f, nil
}
