package shift

import (
	"strings"
	"time"

	"github.com/shiftpoint-hq/shiftpoint-backend-go/internal/pkg/validator"
)

type CreateShiftRequest struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"` // YYYY-MM-DD
	Day        string `json:"day"`
	StartTime  string `json:"start_time"` // HH:MM
	EndTime    string `json:"end_time"`   // HH:MM

	// Either a shared Location reference or an inline geofence. When
	// both are absent the configured office geofence applies.
	LocationID        *string  `json:"location_id,omitempty"`
	GeofenceName      *string  `json:"geofence_name,omitempty"`
	GeofenceLatitude  *float64 `json:"geofence_latitude,omitempty"`
	GeofenceLongitude *float64 `json:"geofence_longitude,omitempty"`
	GeofenceRadiusM   *float64 `json:"geofence_radius_meters,omitempty"`
}

var validDays = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

func (r *CreateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if _, valid := validator.IsValidDate(r.Date); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if !validator.IsInSlice(r.Day, validDays) {
		errs = append(errs, validator.ValidationError{
			Field:   "day",
			Message: "day must be a weekday name, Monday through Sunday",
		})
	}

	if !validator.IsValidTimeOfDay(r.StartTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be in HH:MM format",
		})
	}

	if !validator.IsValidTimeOfDay(r.EndTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be in HH:MM format",
		})
	}

	inlineFields := 0
	if r.GeofenceLatitude != nil {
		inlineFields++
	}
	if r.GeofenceLongitude != nil {
		inlineFields++
	}
	if r.GeofenceRadiusM != nil {
		inlineFields++
	}

	if inlineFields > 0 && inlineFields < 3 {
		errs = append(errs, validator.ValidationError{
			Field:   "geofence",
			Message: "inline geofence requires latitude, longitude and radius together",
		})
	}

	if inlineFields == 3 && r.LocationID != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "geofence",
			Message: "provide either location_id or an inline geofence, not both",
		})
	}

	if r.GeofenceLatitude != nil && (*r.GeofenceLatitude < -90 || *r.GeofenceLatitude > 90) {
		errs = append(errs, validator.ValidationError{
			Field:   "geofence_latitude",
			Message: "geofence_latitude must be between -90 and 90",
		})
	}

	if r.GeofenceLongitude != nil && (*r.GeofenceLongitude < -180 || *r.GeofenceLongitude > 180) {
		errs = append(errs, validator.ValidationError{
			Field:   "geofence_longitude",
			Message: "geofence_longitude must be between -180 and 180",
		})
	}

	if r.GeofenceRadiusM != nil && *r.GeofenceRadiusM <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "geofence_radius_meters",
			Message: "geofence_radius_meters must be positive",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateShiftRequest struct {
	ID         string   `json:"-"`
	Date       *string  `json:"date,omitempty"`
	Day        *string  `json:"day,omitempty"`
	StartTime  *string  `json:"start_time,omitempty"`
	EndTime    *string  `json:"end_time,omitempty"`
	LocationID *string  `json:"location_id,omitempty"`
}

func (r *UpdateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Date != nil {
		if _, valid := validator.IsValidDate(*r.Date); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	if r.Day != nil && !validator.IsInSlice(*r.Day, validDays) {
		errs = append(errs, validator.ValidationError{
			Field:   "day",
			Message: "day must be a weekday name, Monday through Sunday",
		})
	}

	if r.StartTime != nil && !validator.IsValidTimeOfDay(*r.StartTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be in HH:MM format",
		})
	}

	if r.EndTime != nil && !validator.IsValidTimeOfDay(*r.EndTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be in HH:MM format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ShiftResponse struct {
	ID              string     `json:"id"`
	EmployeeID      string     `json:"employee_id"`
	EmployeeName    *string    `json:"employee_name,omitempty"`
	Date            string     `json:"date"`
	Day             string     `json:"day"`
	StartTime       string     `json:"start_time"`
	EndTime         string     `json:"end_time"`
	Status          string     `json:"status"`
	LocationID      *string    `json:"location_id,omitempty"`
	CheckInTime     *string    `json:"check_in_time,omitempty"`
	CheckOutTime    *string    `json:"check_out_time,omitempty"`
	CheckInLocation []float64  `json:"check_in_location,omitempty"` // [longitude, latitude]
	CreatedAt       string     `json:"created_at"`
}

// ToResponse maps a Shift entity to its API shape. The QR token never
// leaves through this path; only the issuance endpoint returns payloads.
func ToResponse(s Shift) ShiftResponse {
	resp := ShiftResponse{
		ID:           s.ID,
		EmployeeID:   s.EmployeeID,
		EmployeeName: s.EmployeeName,
		Date:         s.Date.Format("2006-01-02"),
		Day:          s.Day,
		StartTime:    s.StartTime,
		EndTime:      s.EndTime,
		Status:       string(s.Status),
		LocationID:   s.LocationID,
		CreatedAt:    s.CreatedAt.Format(time.RFC3339),
	}

	if s.CheckInTime != nil {
		v := s.CheckInTime.Format(time.RFC3339)
		resp.CheckInTime = &v
	}
	if s.CheckOutTime != nil {
		v := s.CheckOutTime.Format(time.RFC3339)
		resp.CheckOutTime = &v
	}
	if s.CheckInLongitude != nil && s.CheckInLatitude != nil {
		resp.CheckInLocation = []float64{*s.CheckInLongitude, *s.CheckInLatitude}
	}

	return resp
}

type ListShiftsResponse struct {
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	Shifts     []ShiftResponse `json:"shifts"`
}

// QRCodeResponse carries the serialized payload the client renders as a
// QR image, plus the server-side expiry for display.
type QRCodeResponse struct {
	ShiftID   string `json:"shift_id"`
	QRData    string `json:"qr_data"`
	ExpiresAt string `json:"expires_at"`
}

// NormalizeStatusFilter lower-cases and checks a status query value.
func NormalizeStatusFilter(status string) (string, bool) {
	s := strings.ToLower(strings.TrimSpace(status))
	return s, validator.IsInSlice(s, ValidStatuses)
}
