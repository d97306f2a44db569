package shift

import (
	"fmt"
	"time"

	"github.com/shiftpoint-hq/shiftpoint-backend-go/internal/pkg/geo"
)

// Status is the lifecycle state of a shift. Transitions only move
// forward: scheduled -> in-progress -> completed, with missed as an
// alternate terminal reached from scheduled by the scheduling sweep.
type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
	StatusMissed     Status = "missed"
)

// ValidStatuses lists every persisted shift status value.
var ValidStatuses = []string{
	string(StatusScheduled),
	string(StatusInProgress),
	string(StatusCompleted),
	string(StatusMissed),
}

type Shift struct {
	ID         string
	EmployeeID string
	Date       time.Time
	Day        string
	StartTime  string // local time-of-day, "15:04"
	EndTime    string // local time-of-day, "15:04"
	Status     Status

	// Geofence variant: either an inline geofence or a Location
	// reference. Resolved to a single concrete geofence at load time.
	LocationID        *string
	GeofenceName      *string
	GeofenceLatitude  *float64
	GeofenceLongitude *float64
	GeofenceRadiusM   *float64

	QRToken    *string
	QRIssuedAt *time.Time

	CheckInTime       *time.Time
	CheckOutTime      *time.Time
	CheckInLatitude   *float64
	CheckInLongitude  *float64

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined from the owning employee
	EmployeeName      *string
	EmployeeCompanyID *string
}

// CanCheckIn reports whether a check-in is legal from the current state.
func (s *Shift) CanCheckIn() bool {
	return s.Status == StatusScheduled
}

// CanCheckOut reports whether a check-out is legal from the current state.
func (s *Shift) CanCheckOut() bool {
	return s.Status == StatusInProgress
}

// StartAt combines the shift date with its startTime in the given
// reference timezone.
func (s *Shift) StartAt(tz *time.Location) (time.Time, error) {
	start, err := time.ParseInLocation("15:04", s.StartTime, tz)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse shift start time %q: %w", s.StartTime, err)
	}
	return time.Date(
		s.Date.Year(), s.Date.Month(), s.Date.Day(),
		start.Hour(), start.Minute(), 0, 0,
		tz,
	), nil
}

// EndAt combines the shift date with its endTime in the given
// reference timezone.
func (s *Shift) EndAt(tz *time.Location) (time.Time, error) {
	end, err := time.ParseInLocation("15:04", s.EndTime, tz)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse shift end time %q: %w", s.EndTime, err)
	}
	return time.Date(
		s.Date.Year(), s.Date.Month(), s.Date.Day(),
		end.Hour(), end.Minute(), 0, 0,
		tz,
	), nil
}

// InlineGeofence returns the shift's embedded geofence when all inline
// fields are present, or nil when the shift relies on a Location
// reference or the configured office default.
func (s *Shift) InlineGeofence() *geo.Geofence {
	if s.GeofenceLatitude == nil || s.GeofenceLongitude == nil || s.GeofenceRadiusM == nil {
		return nil
	}
	name := ""
	if s.GeofenceName != nil {
		name = *s.GeofenceName
	}
	return &geo.Geofence{
		Name: name,
		Center: geo.Coordinate{
			Latitude:  *s.GeofenceLatitude,
			Longitude: *s.GeofenceLongitude,
		},
		RadiusMeters: *s.GeofenceRadiusM,
	}
}

// HasActiveToken reports whether the shift carries a token that is
// still inside its validity window at now.
func (s *Shift) HasActiveToken(now time.Time, ttl time.Duration) bool {
	return s.QRToken != nil && s.QRIssuedAt != nil && now.Sub(*s.QRIssuedAt) <= ttl
}
