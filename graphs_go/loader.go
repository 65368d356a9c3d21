package graphs_go

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/Mammutor/NINA/routing"
)

// Options controls how raw graph files are turned into a routing.Graph.
type Options struct {
	// Bidirectional adds the reverse of every edge, for exports that only
	// list each street segment once.
	Bidirectional bool
}

// LoadReport counts what the loader accepted and rejected.
type LoadReport struct {
	Nodes               int `json:"nodes"`
	Edges               int `json:"edges"`
	DroppedEdges        int `json:"droppedEdges"`
	MalformedCategories int `json:"malformedCategories"`
}

type jsonEdge struct {
	Node     string  `json:"node"`
	Length   float64 `json:"length"`
	Category float64 `json:"category"`
}

// parseCategory keeps integral values in the uint8 range and maps anything
// else to 0, which the cost model treats as distance-only.
func parseCategory(c float64) uint8 {
	if c != math.Trunc(c) || c < 0 || c > math.MaxUint8 {
		return 0
	}
	return uint8(c)
}

// LoadGraphFromJSON parses the adjacency export
// {"<nodeId>": [{"node": "<nodeId>", "length": 12.3, "category": 2}, ...]}.
// Edges without a positive length or target are dropped. Edges with a
// category outside 1..4 are kept and counted. Adjacency order is the same
// for every load of the same bytes.
func LoadGraphFromJSON(data []byte, opts Options) (*routing.Graph, LoadReport, error) {
	var raw map[string][]jsonEdge
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, LoadReport{}, fmt.Errorf("failed to parse graph JSON: %w", err)
	}

	g := routing.NewGraph()
	var report LoadReport

	// sorted sources keep reverse-edge positions stable across loads
	for _, from := range slices.Sorted(maps.Keys(raw)) {
		id := routing.NodeID(from)
		g.AddNode(id)

		for _, e := range raw[from] {
			if e.Node == "" || !(e.Length > 0) || math.IsInf(e.Length, 1) {
				report.DroppedEdges++
				continue
			}
			cat := parseCategory(e.Category)
			if !routing.ValidCategory(cat) {
				report.MalformedCategories++
			}

			edge := routing.Edge{Node: routing.NodeID(e.Node), Length: e.Length, Category: cat}
			g.AddEdge(id, edge)
			if opts.Bidirectional {
				g.AddEdge(edge.Node, routing.Edge{Node: id, Length: e.Length, Category: cat})
			}
		}
	}

	stats := g.Stats()
	report.Nodes = stats.Nodes
	report.Edges = stats.Edges
	return g, report, nil
}

// LoadGraphFromFile reads a .json export or a .gob cache written by
// ConvertJSONToGOB.
func LoadGraphFromFile(path string, opts Options) (*routing.Graph, LoadReport, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, LoadReport{}, fmt.Errorf("could not read graph file: %w", err)
		}
		return LoadGraphFromJSON(data, opts)
	case ".gob":
		g, err := LoadGraphFromGOB(path)
		if err != nil {
			return nil, LoadReport{}, err
		}
		stats := g.Stats()
		return g, LoadReport{Nodes: stats.Nodes, Edges: stats.Edges}, nil
	default:
		return nil, LoadReport{}, fmt.Errorf("unsupported graph file %s: want .json or .gob", path)
	}
}

// LoadGraphsFromDirectory loads every graph file in folder concurrently,
// keyed by file name without extension.
func LoadGraphsFromDirectory(ctx context.Context, folder string, opts Options) (map[string]*routing.Graph, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, fmt.Errorf("could not list graph directory: %w", err)
	}

	var (
		mu     sync.Mutex
		graphs = make(map[string]*routing.Graph)
	)
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(4)

	for _, entry := range entries {
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if entry.IsDir() || (ext != ".json" && ext != ".gob") {
			continue
		}
		path := filepath.Join(folder, entry.Name())
		key := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))

		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			g, _, err := LoadGraphFromFile(path, opts)
			if err != nil {
				return fmt.Errorf("error loading graph from %s: %w", path, err)
			}
			mu.Lock()
			graphs[key] = g
			mu.Unlock()
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return graphs, nil
}
