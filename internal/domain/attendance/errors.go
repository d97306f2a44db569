package attendance

import (
	"errors"
	"fmt"

	"github.com/shiftpoint-hq/shiftpoint-backend-go/internal/pkg/geo"
)

// Attendance domain errors
var (
	// Check-in / check-out errors
	ErrNotAuthorized   = errors.New("not authorized to record attendance for this shift")
	ErrNoCheckInRecord = errors.New("no check-in record found for today")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
)

// OutOfRangeError is returned when the observed coordinate falls
// outside the shift's geofence. It carries the computed distance and
// the configured maximum so clients can render a meaningful message.
type OutOfRangeError struct {
	DistanceMeters    float64
	MaxDistanceMeters float64
	GeofenceName      string
}

func (e *OutOfRangeError) Error() string {
	name := e.GeofenceName
	if name == "" {
		name = "the work location"
	}
	return fmt.Sprintf("you are %s away from %s, max allowed is %s",
		geo.FormatDistance(e.DistanceMeters), name, geo.FormatDistance(e.MaxDistanceMeters))
}
