// Package geo provides great-circle distance math and geofence
// admission checks for presence verification.
package geo

import (
	"fmt"
	"math"
)

// earthRadiusMeters is the mean Earth radius used by the Haversine formula.
const earthRadiusMeters = 6371000

// Coordinate is a point expressed in decimal degrees.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Valid reports whether the coordinate lies inside the WGS84 value range.
func (c Coordinate) Valid() bool {
	return c.Latitude >= -90 && c.Latitude <= 90 &&
		c.Longitude >= -180 && c.Longitude <= 180
}

// Geofence is a circular admission boundary around a center coordinate.
type Geofence struct {
	Name         string
	Center       Coordinate
	RadiusMeters float64
}

// Distance returns the great-circle distance between a and b in meters.
func Distance(a, b Coordinate) float64 {
	dLat := toRadians(b.Latitude - a.Latitude)
	dLon := toRadians(b.Longitude - a.Longitude)

	latA := toRadians(a.Latitude)
	latB := toRadians(b.Latitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(latA)*math.Cos(latB)*math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusMeters * c
}

// WithinRadius reports whether observed is inside the geofence. The
// boundary itself is admitted: distance == radius passes.
func (g Geofence) WithinRadius(observed Coordinate) (bool, float64) {
	d := Distance(observed, g.Center)
	return d <= g.RadiusMeters, d
}

// FormatDistance renders a distance in meters for human-readable messages.
func FormatDistance(meters float64) string {
	switch {
	case meters < 1:
		return fmt.Sprintf("%d cm", int(math.Round(meters*100)))
	case meters < 1000:
		return fmt.Sprintf("%d m", int(math.Round(meters)))
	default:
		return fmt.Sprintf("%.2f km", meters/1000)
	}
}

func toRadians(degrees float64) float64 {
	return degrees * (math.Pi / 180.0)
}
