package graphs_go

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Mammutor/NINA/routing"
)

const gobFormatVersion = 1

// gobGraph is the on-disk form of a routing.Graph. gob cannot encode the
// empty-struct node set, so nodes without outgoing edges are listed apart.
type gobGraph struct {
	Version  int
	Adj      map[routing.NodeID][]routing.Edge
	Isolated []routing.NodeID
}

// WriteGOB stores g at path, creating parent directories as needed.
func WriteGOB(g *routing.Graph, path string) error {
	out := gobGraph{Version: gobFormatVersion, Adj: g.Adj}
	for id := range g.Nodes {
		if _, ok := g.Adj[id]; !ok {
			out.Isolated = append(out.Isolated, id)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory for %s: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create GOB file %s: %w", path, err)
	}
	defer f.Close()

	if err := gob.NewEncoder(f).Encode(out); err != nil {
		return fmt.Errorf("failed to encode GOB to %s: %w", path, err)
	}
	return f.Close()
}

// LoadGraphFromGOB reads a graph written by WriteGOB.
func LoadGraphFromGOB(path string) (*routing.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open graph file: %w", err)
	}
	defer f.Close()

	var in gobGraph
	if err := gob.NewDecoder(f).Decode(&in); err != nil {
		return nil, fmt.Errorf("failed to decode GOB from %s: %w", path, err)
	}
	if in.Version != gobFormatVersion {
		return nil, fmt.Errorf("graph cache %s has format %d, want %d", path, in.Version, gobFormatVersion)
	}

	g := routing.NewGraph()
	for from, edges := range in.Adj {
		g.AddNode(from)
		for _, e := range edges {
			g.AddEdge(from, e)
		}
	}
	for _, id := range in.Isolated {
		g.AddNode(id)
	}
	return g, nil
}

// ConvertJSONToGOB parses a JSON export and writes it as a gob cache. An
// empty outputPath writes next to the input with a .gob extension.
func ConvertJSONToGOB(inputPath, outputPath string, opts Options) (string, LoadReport, error) {
	if outputPath == "" {
		ext := filepath.Ext(inputPath)
		base := strings.TrimSuffix(filepath.Base(inputPath), ext)
		outputPath = filepath.Join(filepath.Dir(inputPath), base+".gob")
	}

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return "", LoadReport{}, fmt.Errorf("failed to open JSON file %s: %w", inputPath, err)
	}
	g, report, err := LoadGraphFromJSON(data, opts)
	if err != nil {
		return "", report, err
	}
	if err := WriteGOB(g, outputPath); err != nil {
		return "", report, err
	}
	return outputPath, report, nil
}
