package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMercatorToWGS84(t *testing.T) {
	c := MercatorToWGS84(0, 0)
	assert.InDelta(t, 0, c.Lat, 1e-12)
	assert.InDelta(t, 0, c.Lon, 1e-12)

	// Münster, roughly
	c = MercatorToWGS84(848000, 6793000)
	assert.InDelta(t, 7.62, c.Lon, 0.01)
	assert.InDelta(t, 51.96, c.Lat, 0.01)
}

func TestHaversineDistance(t *testing.T) {
	p := Coordinate{Lat: 51.96, Lon: 7.62}
	assert.Equal(t, 0.0, HaversineDistance(p, p))

	oneDegree := HaversineDistance(Coordinate{0, 0}, Coordinate{0, 1})
	assert.InDelta(t, 111195, oneDegree, 1)
}

func TestParseNodeID(t *testing.T) {
	x, y, err := ParseNodeID("848000.5, 6793000")
	require.NoError(t, err)
	assert.Equal(t, 848000.5, x)
	assert.Equal(t, 6793000.0, y)

	for _, bad := range []NodeID{"", "12", "1,2,3", "a,2", "1,b"} {
		_, _, err := ParseNodeID(bad)
		assert.Error(t, err, string(bad))
	}
}

func TestAbortDistanceFor(t *testing.T) {
	d, err := AbortDistanceFor("0,0", "1000,0", 2)
	require.NoError(t, err)
	assert.InDelta(t, 2*1000*EARTH_RADIUS_KM*1000/MERCATOR_RADIUS_M, d, 1e-3)

	_, err = AbortDistanceFor("A", "1000,0", 2)
	assert.Error(t, err)
}
