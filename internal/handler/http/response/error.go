package response

import (
	"errors"
	"net/http"

	"github.com/shiftpoint-hq/shiftpoint-backend-go/internal/domain/attendance"
	"github.com/shiftpoint-hq/shiftpoint-backend-go/internal/domain/auth"
	"github.com/shiftpoint-hq/shiftpoint-backend-go/internal/domain/employee"
	"github.com/shiftpoint-hq/shiftpoint-backend-go/internal/domain/location"
	"github.com/shiftpoint-hq/shiftpoint-backend-go/internal/domain/shift"
	"github.com/shiftpoint-hq/shiftpoint-backend-go/internal/domain/user"
	"github.com/shiftpoint-hq/shiftpoint-backend-go/internal/pkg/geo"
	"github.com/shiftpoint-hq/shiftpoint-backend-go/internal/pkg/qrtoken"
	"github.com/shiftpoint-hq/shiftpoint-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// A failed geofence check carries the computed distance.
	var outOfRange *attendance.OutOfRangeError
	if errors.As(err, &outOfRange) {
		BadRequest(w, outOfRange.Error(), map[string]string{
			"distance":     geo.FormatDistance(outOfRange.DistanceMeters),
			"max_distance": geo.FormatDistance(outOfRange.MaxDistanceMeters),
		})
		return
	}

	// Malformed DMS input surfaces as a plain bad request.
	if errors.Is(err, geo.ErrMalformedCoordinate) {
		BadRequest(w, "Malformed coordinate", nil)
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or revoked token")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")

	// QR token errors
	case errors.Is(err, qrtoken.ErrMalformedPayload):
		BadRequest(w, "Malformed QR payload", nil)
	case errors.Is(err, qrtoken.ErrTokenMismatch):
		BadRequest(w, "QR code is not valid for this shift", nil)
	case errors.Is(err, qrtoken.ErrTokenExpired):
		BadRequest(w, "QR code has expired, ask for a fresh one", nil)

	// Shift domain errors
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Shift not found")
	case errors.Is(err, shift.ErrInvalidStateTransition):
		Conflict(w, "Shift is not in a valid state for this operation")
	case errors.Is(err, shift.ErrShiftOverlaps):
		Conflict(w, "Employee already has a shift overlapping this period")
	case errors.Is(err, shift.ErrNotAuthorized):
		Forbidden(w, "Not authorized to manage this shift")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrNotAuthorized):
		Forbidden(w, "Not authorized to record attendance for this shift")
	case errors.Is(err, attendance.ErrNoCheckInRecord):
		Conflict(w, "No check-in record found for today")
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")

	// Location domain errors
	case errors.Is(err, location.ErrLocationNotFound):
		NotFound(w, "Location not found")
	case errors.Is(err, location.ErrLocationNameExists):
		Conflict(w, "A location with this name already exists")
	case errors.Is(err, location.ErrNotAuthorized):
		Forbidden(w, "Not authorized to manage locations")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}

// PageMeta builds pagination metadata from a total count.
func PageMeta(page, limit int, total int64) *Meta {
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	return &Meta{
		Page:       page,
		Limit:      limit,
		TotalItems: total,
		TotalPages: totalPages,
	}
}
