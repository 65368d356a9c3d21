package models

import (
	"math"

	"github.com/Mammutor/NINA/routing"
)

type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type RouteSegment struct {
	From     routing.NodeID `json:"from"`
	To       routing.NodeID `json:"to"`
	Length   float64        `json:"length"`
	Category uint8          `json:"category"`
	Origin   *Location      `json:"origin,omitempty"`
	Target   *Location      `json:"target,omitempty"`
}

// CategoryShare is the distance ridden on one safety category.
type CategoryShare struct {
	Category uint8   `json:"category"`
	Meters   float64 `json:"meters"`
	Share    float64 `json:"share"`
}

type Route struct {
	Path            []routing.NodeID      `json:"path"`
	Segments        []RouteSegment        `json:"segments"`
	FinalCostVector routing.Vector        `json:"finalCostVector"`
	SafetyScore     float64               `json:"safetyScore"`
	Rating          routing.Rating        `json:"rating"`
	DistanceMeters  float64               `json:"distanceMeters"`
	ETAMinutes      uint32                `json:"etaMinutes"`
	Categories      []CategoryShare       `json:"categories"`
	Preference      string                `json:"preference"`
	AbortDistance   *float64              `json:"abortDistance,omitempty"`
	Partial         bool                  `json:"partial"`
	Warning         string                `json:"warning,omitempty"`
	Alternatives    []routing.Alternative `json:"alternatives,omitempty"`
	Stats           routing.SearchStats   `json:"stats"`
}

// PrepareRoute turns a planner result into the response shape. Segments get
// WGS84 positions when their node ids are EPSG:3857 coordinates. An
// unbounded abort distance is omitted since JSON cannot carry infinity.
func PrepareRoute(r *routing.Route, pref routing.Preference, abortDistance float64) Route {
	resp := Route{
		Path:            r.Path,
		Segments:        make([]RouteSegment, 0, len(r.Segments)),
		FinalCostVector: r.Cost,
		SafetyScore:     r.SafetyScore,
		Rating:          r.Rating,
		DistanceMeters:  r.DistanceMeters,
		ETAMinutes:      r.ETAMinutes,
		Preference:      pref.String(),
		Partial:         r.Partial,
		Warning:         r.Warning,
		Alternatives:    r.Alternatives,
		Stats:           r.Stats,
	}
	if !math.IsInf(abortDistance, 0) && !math.IsNaN(abortDistance) {
		resp.AbortDistance = &abortDistance
	}
	if resp.Path == nil {
		resp.Path = []routing.NodeID{}
	}

	meters := make(map[uint8]float64)
	var total float64
	for _, seg := range r.Segments {
		resp.Segments = append(resp.Segments, RouteSegment{
			From:     seg.From,
			To:       seg.To,
			Length:   seg.Length,
			Category: seg.Category,
			Origin:   locate(seg.From),
			Target:   locate(seg.To),
		})
		meters[seg.Category] += seg.Length
		total += seg.Length
	}

	for cat := uint8(1); cat <= 4; cat++ {
		share := CategoryShare{Category: cat, Meters: meters[cat]}
		if total > 0 {
			share.Share = meters[cat] / total
		}
		resp.Categories = append(resp.Categories, share)
	}

	return resp
}

func locate(id routing.NodeID) *Location {
	c, err := routing.NodeCoordinate(id)
	if err != nil {
		return nil
	}
	return &Location{Latitude: c.Lat, Longitude: c.Lon}
}
