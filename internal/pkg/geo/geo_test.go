package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistance_SamePointIsZero(t *testing.T) {
	t.Parallel()

	p := Coordinate{Latitude: 4.1472, Longitude: 9.2858}
	assert.Zero(t, Distance(p, p))
}

func TestDistance_Symmetric(t *testing.T) {
	t.Parallel()

	a := Coordinate{Latitude: 4.1472, Longitude: 9.2858}
	b := Coordinate{Latitude: 4.1500, Longitude: 9.2900}

	assert.InDelta(t, Distance(a, b), Distance(b, a), 1e-9)
}

func TestDistance_KnownReferencePair(t *testing.T) {
	t.Parallel()

	// 0.0002 degrees of latitude at the equator is roughly 22.24 m
	// (one degree of latitude ~= 111.195 km on a 6371 km sphere).
	a := Coordinate{Latitude: 0, Longitude: 0}
	b := Coordinate{Latitude: 0.0002, Longitude: 0}

	assert.InDelta(t, 22.24, Distance(a, b), 0.05)
}

func TestDistance_LongerReferencePair(t *testing.T) {
	t.Parallel()

	// Douala to Yaoundé, roughly 212 km great-circle.
	douala := Coordinate{Latitude: 4.0511, Longitude: 9.7679}
	yaounde := Coordinate{Latitude: 3.8480, Longitude: 11.5021}

	d := Distance(douala, yaounde)
	assert.InDelta(t, 212000, d, 3000)
}

func TestGeofence_WithinRadius_BoundaryInclusive(t *testing.T) {
	t.Parallel()

	center := Coordinate{Latitude: 0, Longitude: 0}
	observed := Coordinate{Latitude: 0.0002, Longitude: 0}
	d := Distance(observed, center)

	exact := Geofence{Center: center, RadiusMeters: d}
	ok, got := exact.WithinRadius(observed)
	assert.True(t, ok, "a point exactly on the boundary is admitted")
	assert.Equal(t, d, got)

	short := Geofence{Center: center, RadiusMeters: d - 1}
	ok, _ = short.WithinRadius(observed)
	assert.False(t, ok, "one meter beyond the boundary is rejected")
}

func TestParseDMS_KnownFixture(t *testing.T) {
	t.Parallel()

	c, err := ParseDMS(`4°08'49.9"N 9°17'08.8"E`)
	require.NoError(t, err)

	assert.InDelta(t, 4.1472, c.Latitude, 1e-3)
	assert.InDelta(t, 9.2858, c.Longitude, 1e-3)
}

func TestParseDMS_SouthWestNegative(t *testing.T) {
	t.Parallel()

	c, err := ParseDMS(`33°51'54.5"S 151°12'35.6"W`)
	require.NoError(t, err)

	assert.Negative(t, c.Latitude)
	assert.Negative(t, c.Longitude)
	assert.InDelta(t, -33.8651, c.Latitude, 1e-3)
	assert.InDelta(t, -151.2099, c.Longitude, 1e-3)
}

func TestParseDMS_Malformed(t *testing.T) {
	t.Parallel()

	cases := []string{
		"",
		"not a coordinate",
		`4°08'49.9"N`,                       // missing longitude
		`4°08'49.9"X 9°17'08.8"E`,           // bad hemisphere letter
		`4°08'49.9"E 9°17'08.8"N`,           // hemisphere letters swapped
		`4 08 49.9 N 9 17 08.8 E`,           // no DMS punctuation
		`4°08'49.9"N 9°17'08.8"E extra`,     // trailing garbage
		`4°08'49.9"N 9°17'08.8"E 1°0'0.0"N`, // three components
	}

	for _, in := range cases {
		_, err := ParseDMS(in)
		assert.ErrorIs(t, err, ErrMalformedCoordinate, "input %q", in)
	}
}

func TestFormatDistance(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "50 cm", FormatDistance(0.5))
	assert.Equal(t, "18 m", FormatDistance(17.6))
	assert.Equal(t, "1.50 km", FormatDistance(1500))
}

func TestCoordinate_Valid(t *testing.T) {
	t.Parallel()

	assert.True(t, Coordinate{Latitude: -90, Longitude: 180}.Valid())
	assert.False(t, Coordinate{Latitude: 90.1, Longitude: 0}.Valid())
	assert.False(t, Coordinate{Latitude: 0, Longitude: -180.1}.Valid())
}
