package attendance

import (
	"time"
)

// Status is the derived presence status for one employee-day.
type Status string

const (
	StatusPresent Status = "present"
	StatusLate    Status = "late"
	StatusAbsent  Status = "absent"
	StatusExcused Status = "excused"
)

// ValidStatuses lists every persisted attendance status value.
var ValidStatuses = []string{
	string(StatusPresent),
	string(StatusLate),
	string(StatusAbsent),
	string(StatusExcused),
}

// Attendance is the presence record for one employee on one calendar
// day. Uniqueness is enforced on (EmployeeID, Date), where Date is the
// day truncated to midnight in the reference timezone.
type Attendance struct {
	ID           string
	EmployeeID   string
	ShiftID      string
	Date         time.Time
	CheckInTime  *time.Time
	CheckOutTime *time.Time
	Status       Status

	// Check-in coordinate
	Latitude  *float64
	Longitude *float64

	// Raw QR payload retained for audit
	QRData *string
	Notes  *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined from the owning employee
	EmployeeName     *string
	EmployeePosition *string
}

// DateBucket truncates t to the start of its calendar day in tz. One
// Attendance row exists per employee per bucket.
func DateBucket(t time.Time, tz *time.Location) time.Time {
	local := t.In(tz)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, tz)
}

// DeriveCheckInStatus computes the presence status from the check-in
// instant against the scheduled shift start. Strictly after the start
// is late; at or before is present. No grace period.
func DeriveCheckInStatus(checkIn, shiftStart time.Time) Status {
	if checkIn.After(shiftStart) {
		return StatusLate
	}
	return StatusPresent
}
