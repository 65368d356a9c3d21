package routing

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlannerPlan(t *testing.T) {
	p := NewPlanner(nil)
	g := tradeOffGraph()

	route, err := p.Plan(context.Background(), g, "S", "T", Safest, math.Inf(1))
	require.NoError(t, err)

	assert.Equal(t, []NodeID{"S", "M", "T"}, route.Path)
	assert.Len(t, route.Segments, 2)
	assert.Equal(t, 160.0, route.DistanceMeters)
	assert.Equal(t, uint32(1), route.ETAMinutes)
	assert.InDelta(t, 1.0, route.SafetyScore, 1e-9)
	assert.Equal(t, RatingGood, route.Rating)
	assert.False(t, route.Partial)
	assert.Len(t, route.Alternatives, 2)
	assert.Positive(t, route.Stats.Expanded)

	route, err = p.Plan(context.Background(), g, "S", "T", Fastest, math.Inf(1))
	require.NoError(t, err)
	assert.Equal(t, []NodeID{"S", "T"}, route.Path)
	assert.InDelta(t, 6.0, route.SafetyScore, 1e-9)
	assert.Equal(t, RatingPoor, route.Rating)
}

func TestPlannerNoRoute(t *testing.T) {
	g := buildGraph(
		testEdge{"A", "B", 100, 4},
		testEdge{"B", "C", 100, 4},
	)

	route, err := NewPlanner(nil).Plan(context.Background(), g, "A", "C", Balanced, 50)
	assert.ErrorIs(t, err, ErrNoRoute)
	require.NotNil(t, route)
	assert.Equal(t, 1, route.Stats.Pruned)
}

func TestPlannerInvalidInput(t *testing.T) {
	_, err := NewPlanner(nil).Plan(context.Background(), triangleGraph(), "A", "nowhere", Safest, math.Inf(1))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestPlannerCustomWeights(t *testing.T) {
	table := DefaultWeightTable()
	table[Fastest] = Weights{1.5, 2, 2.5}

	route, err := NewPlanner(table).Plan(context.Background(), tradeOffGraph(), "S", "T", Fastest, math.Inf(1))
	require.NoError(t, err)
	assert.Equal(t, []NodeID{"S", "M", "T"}, route.Path)
}

func TestGraphStats(t *testing.T) {
	s := triangleGraph().Stats()
	assert.Equal(t, 3, s.Nodes)
	assert.Equal(t, 3, s.Edges)
	assert.InDelta(t, 0.21, s.TotalKm, 1e-9)
	assert.Equal(t, map[uint8]int{1: 1, 4: 2}, s.Categories)
}
