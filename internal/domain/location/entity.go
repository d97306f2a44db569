package location

import (
	"time"

	"github.com/shiftpoint-hq/shiftpoint-backend-go/internal/pkg/geo"
)

// Location is a named, shared geofence that shifts may reference
// instead of carrying an inline geofence.
type Location struct {
	ID           string
	CompanyID    string
	Name         string
	Address      string
	Latitude     float64
	Longitude    float64
	RadiusMeters float64
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Geofence converts the location into a concrete admission boundary.
func (l Location) Geofence() geo.Geofence {
	return geo.Geofence{
		Name: l.Name,
		Center: geo.Coordinate{
			Latitude:  l.Latitude,
			Longitude: l.Longitude,
		},
		RadiusMeters: l.RadiusMeters,
	}
}
