package routing

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	EARTH_RADIUS_KM = 6371.0

	// WGS84 semi-major axis used by the web mercator projection (EPSG:3857)
	MERCATOR_RADIUS_M = 6378137.0
)

type Coordinate struct {
	Lat float64
	Lon float64
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

func toDegrees(radians float64) float64 {
	return radians * 180 / math.Pi
}

// HaversineDistance returns the great-circle distance in meters.
func HaversineDistance(coord1, coord2 Coordinate) float64 {
	phi1 := toRadians(coord1.Lat)
	phi2 := toRadians(coord2.Lat)
	deltaPhi := toRadians(coord2.Lat - coord1.Lat)
	deltaLambda := toRadians(coord2.Lon - coord1.Lon)

	a := math.Sin(deltaPhi/2)*math.Sin(deltaPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*
			math.Sin(deltaLambda/2)*math.Sin(deltaLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EARTH_RADIUS_KM * c * 1000
}

// MercatorToWGS84 converts EPSG:3857 meters to EPSG:4326 degrees.
func MercatorToWGS84(x, y float64) Coordinate {
	lon := toDegrees(x / MERCATOR_RADIUS_M)
	lat := toDegrees(2*math.Atan(math.Exp(y/MERCATOR_RADIUS_M)) - math.Pi/2)
	return Coordinate{Lat: lat, Lon: lon}
}

// ParseNodeID decodes a "x,y" node id into its projected coordinates.
func ParseNodeID(id NodeID) (x, y float64, err error) {
	parts := strings.Split(string(id), ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("node id %q is not an x,y pair", id)
	}
	x, err = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("node id %q: bad x: %w", id, err)
	}
	y, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("node id %q: bad y: %w", id, err)
	}
	return x, y, nil
}

// NodeCoordinate returns the WGS84 position encoded in a node id.
func NodeCoordinate(id NodeID) (Coordinate, error) {
	x, y, err := ParseNodeID(id)
	if err != nil {
		return Coordinate{}, err
	}
	return MercatorToWGS84(x, y), nil
}

// AbortDistanceFor derives the search bound from the straight-line distance
// between two coordinate node ids, scaled by factor.
func AbortDistanceFor(start, end NodeID, factor float64) (float64, error) {
	a, err := NodeCoordinate(start)
	if err != nil {
		return 0, err
	}
	b, err := NodeCoordinate(end)
	if err != nil {
		return 0, err
	}
	return HaversineDistance(a, b) * factor, nil
}
