package attendance

import (
	"time"

	"github.com/shiftpoint-hq/shiftpoint-backend-go/internal/domain/shift"
	"github.com/shiftpoint-hq/shiftpoint-backend-go/internal/pkg/geo"
	"github.com/shiftpoint-hq/shiftpoint-backend-go/internal/pkg/validator"
)

type CheckInRequest struct {
	QRData       string         `json:"qrData"`
	UserLocation geo.Coordinate `json:"userLocation"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.QRData) {
		errs = append(errs, validator.ValidationError{
			Field:   "qrData",
			Message: "qrData is required",
		})
	}

	if !r.UserLocation.Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "userLocation",
			Message: "userLocation must carry a latitude between -90 and 90 and a longitude between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CheckOutRequest struct {
	ShiftID      string         `json:"shiftId"`
	UserLocation geo.Coordinate `json:"userLocation"`
}

func (r *CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ShiftID) {
		errs = append(errs, validator.ValidationError{
			Field:   "shiftId",
			Message: "shiftId is required",
		})
	}

	if !r.UserLocation.Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "userLocation",
			Message: "userLocation must carry a latitude between -90 and 90 and a longitude between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AttendanceResponse struct {
	ID           string    `json:"id"`
	EmployeeID   string    `json:"employee_id"`
	EmployeeName *string   `json:"employee_name,omitempty"`
	ShiftID      string    `json:"shift_id"`
	Date         string    `json:"date"`
	CheckInTime  *string   `json:"check_in_time,omitempty"`
	CheckOutTime *string   `json:"check_out_time,omitempty"`
	Status       string    `json:"status"`
	Location     []float64 `json:"location,omitempty"` // [longitude, latitude]
	Notes        *string   `json:"notes,omitempty"`
	UpdatedAt    string    `json:"updated_at"`
}

// ToResponse maps an Attendance entity to its API shape.
func ToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:           a.ID,
		EmployeeID:   a.EmployeeID,
		EmployeeName: a.EmployeeName,
		ShiftID:      a.ShiftID,
		Date:         a.Date.Format("2006-01-02"),
		Status:       string(a.Status),
		Notes:        a.Notes,
		UpdatedAt:    a.UpdatedAt.Format(time.RFC3339),
	}

	if a.CheckInTime != nil {
		v := a.CheckInTime.Format(time.RFC3339)
		resp.CheckInTime = &v
	}
	if a.CheckOutTime != nil {
		v := a.CheckOutTime.Format(time.RFC3339)
		resp.CheckOutTime = &v
	}
	if a.Longitude != nil && a.Latitude != nil {
		resp.Location = []float64{*a.Longitude, *a.Latitude}
	}

	return resp
}

// CheckResult is returned by both check-in and check-out: the two
// records the transaction updated together.
type CheckResult struct {
	Attendance AttendanceResponse  `json:"attendance"`
	Shift      shift.ShiftResponse `json:"shift"`
}

// DashboardResponse summarizes today's presence for a company.
type DashboardResponse struct {
	TotalEmployees int                  `json:"total_employees"`
	Present        int                  `json:"present"`
	Late           int                  `json:"late"`
	Absent         int                  `json:"absent"`
	Attendance     []AttendanceResponse `json:"attendance"`
}

type MyAttendanceFilter struct {
	StartDate *string // YYYY-MM-DD
	EndDate   *string // YYYY-MM-DD
	Page      int
	Limit     int
}

func (f *MyAttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if f.StartDate != nil && *f.StartDate != "" {
		if _, valid := validator.IsValidDate(*f.StartDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.EndDate != nil && *f.EndDate != "" {
		if _, valid := validator.IsValidDate(*f.EndDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListAttendanceResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	Attendances []AttendanceResponse `json:"attendances"`
}
