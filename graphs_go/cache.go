package graphs_go

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/Mammutor/NINA/routing"
)

// Cache keeps loaded graphs by path. Graphs are shared read-only between
// all callers; concurrent loads of the same path run once.
type Cache struct {
	opts   Options
	logger *logrus.Logger

	mu     sync.RWMutex
	graphs map[string]*routing.Graph
	flight singleflight.Group
}

func NewCache(opts Options, logger *logrus.Logger) *Cache {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Cache{
		opts:   opts,
		logger: logger,
		graphs: make(map[string]*routing.Graph),
	}
}

// Get returns the graph stored at path, loading it on first use.
func (c *Cache) Get(ctx context.Context, path string) (*routing.Graph, error) {
	c.mu.RLock()
	g, ok := c.graphs[path]
	c.mu.RUnlock()
	if ok {
		return g, nil
	}

	ch := c.flight.DoChan(path, func() (interface{}, error) {
		start := time.Now()
		g, report, err := LoadGraphFromFile(path, c.opts)
		if err != nil {
			return nil, err
		}

		fields := logrus.Fields{
			"path":     path,
			"nodes":    report.Nodes,
			"edges":    report.Edges,
			"duration": time.Since(start).String(),
		}
		if report.DroppedEdges > 0 || report.MalformedCategories > 0 {
			fields["dropped_edges"] = report.DroppedEdges
			fields["malformed_categories"] = report.MalformedCategories
			c.logger.WithFields(fields).Warn("graph loaded with rejected edges")
		} else {
			c.logger.WithFields(fields).Info("graph loaded")
		}

		c.mu.Lock()
		c.graphs[path] = g
		c.mu.Unlock()
		return g, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*routing.Graph), nil
	}
}

// Invalidate drops path so the next Get reloads it.
func (c *Cache) Invalidate(path string) {
	c.mu.Lock()
	delete(c.graphs, path)
	c.mu.Unlock()
}
