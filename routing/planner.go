package routing

import (
	"context"
	"errors"
)

// Alternative summarises one entry of the destination's Pareto set.
type Alternative struct {
	WeightedCost   float64 `json:"weightedCost"`
	DistanceMeters float64 `json:"distanceMeters"`
	SafetyScore    float64 `json:"safetyScore"`
}

// Route is the outcome of a successful query.
type Route struct {
	Path           []NodeID
	Segments       []Segment
	Cost           Vector
	SafetyScore    float64
	Rating         Rating
	DistanceMeters float64
	ETAMinutes     uint32
	Alternatives   []Alternative

	// Partial is set when the predecessor chain broke; Path then holds the
	// end-side part that could be recovered and Warning the reason.
	Partial bool
	Warning string

	Stats SearchStats
}

// Planner runs search, selection, reconstruction and scoring for one query.
type Planner struct {
	Weights WeightTable
}

func NewPlanner(table WeightTable) *Planner {
	if table == nil {
		table = DefaultWeightTable()
	}
	return &Planner{Weights: table}
}

// Plan computes the route from start to end. ErrNoRoute and ErrInvalidInput
// are returned as errors; a broken predecessor chain yields a partial route.
func (p *Planner) Plan(ctx context.Context, g GraphView, start, end NodeID, pref Preference, abortDistance float64) (*Route, error) {
	w := p.Weights.For(pref)

	f, err := Search(ctx, g, Query{Start: start, End: end, Weights: w, AbortDistance: abortDistance})
	if err != nil {
		return nil, err
	}

	best, err := f.Best(end)
	if err != nil {
		return &Route{Stats: f.Stats}, err
	}

	path, err := Reconstruct(f, g, best)
	route := &Route{
		Path:           path.Nodes,
		Segments:       path.Segments,
		Cost:           path.Cost,
		SafetyScore:    SafetyScore(path.Cost, pref, p.Weights),
		DistanceMeters: path.Cost.Distance(),
		ETAMinutes:     EstimatedMinutes(path.Cost.Distance()),
		Stats:          f.Stats,
	}
	route.Rating = RatingBand(route.SafetyScore)

	if err != nil {
		if !errors.Is(err, ErrReconstructionInconsistency) {
			return nil, err
		}
		route.Partial = true
		route.Warning = err.Error()
	}

	for _, e := range f.Entries(end) {
		route.Alternatives = append(route.Alternatives, Alternative{
			WeightedCost:   e.Cost[0],
			DistanceMeters: e.Cost.Distance(),
			SafetyScore:    SafetyScore(e.Cost, pref, p.Weights),
		})
	}

	return route, nil
}
