package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mammutor/NINA/routing"
)

func TestPrepareRoute(t *testing.T) {
	r := &routing.Route{
		Path: []routing.NodeID{"0,0", "1000,0", "b"},
		Segments: []routing.Segment{
			{From: "0,0", To: "1000,0", Length: 300, Category: 1},
			{From: "1000,0", To: "b", Length: 100, Category: 4},
		},
		DistanceMeters: 400,
		ETAMinutes:     2,
		SafetyScore:    4.2,
		Rating:         routing.RatingPoor,
	}

	resp := PrepareRoute(r, routing.Safest, 1234)

	assert.Equal(t, "safest", resp.Preference)
	require.NotNil(t, resp.AbortDistance)
	assert.Equal(t, 1234.0, *resp.AbortDistance)
	require.Len(t, resp.Segments, 2)

	require.NotNil(t, resp.Segments[0].Origin)
	assert.InDelta(t, 0, resp.Segments[0].Origin.Latitude, 1e-9)
	require.NotNil(t, resp.Segments[0].Target)
	assert.InDelta(t, 0.00898, resp.Segments[0].Target.Longitude, 1e-4)
	assert.Nil(t, resp.Segments[1].Target, "non-coordinate ids have no position")

	require.Len(t, resp.Categories, 4)
	assert.Equal(t, CategoryShare{Category: 1, Meters: 300, Share: 0.75}, resp.Categories[0])
	assert.Equal(t, CategoryShare{Category: 2}, resp.Categories[1])
	assert.Equal(t, CategoryShare{Category: 4, Meters: 100, Share: 0.25}, resp.Categories[3])
}

func TestPrepareRouteEmpty(t *testing.T) {
	resp := PrepareRoute(&routing.Route{}, routing.Fastest, math.Inf(1))
	assert.NotNil(t, resp.Path)
	assert.Nil(t, resp.AbortDistance)
	assert.Empty(t, resp.Segments)
	for _, c := range resp.Categories {
		assert.Zero(t, c.Share)
	}
}

func TestPreferenceList(t *testing.T) {
	list := PreferenceList(routing.DefaultWeightTable())
	require.Len(t, list, 3)
	assert.Equal(t, PreferenceInfo{Name: "safest", Position: 0, Weights: routing.Weights{1.5, 2, 2.5}}, list[0])
	assert.Equal(t, "fastest", list[2].Name)
}
