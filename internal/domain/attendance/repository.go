package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access for attendance records. The
// (employee_id, date) pair carries a uniqueness constraint; Upsert
// relies on it so two concurrent check-ins for the same day serialize
// into a single row.
type AttendanceRepository interface {
	// Upsert creates the employee-day row or updates it in place when
	// it already exists. Returns the row as committed.
	Upsert(ctx context.Context, a Attendance) (Attendance, error)

	// GetByEmployeeAndDate retrieves the attendance row for one
	// employee-day, or nil when none exists.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)

	// SetCheckOut attaches the check-out instant to an existing row.
	SetCheckOut(ctx context.Context, id string, at time.Time) (Attendance, error)

	// ListByCompanyAndDate retrieves all rows for a company on one day,
	// with employee names joined. Feeds the admin dashboard.
	ListByCompanyAndDate(ctx context.Context, companyID string, date time.Time) ([]Attendance, error)

	// ListByEmployee retrieves an employee's history, newest first.
	ListByEmployee(ctx context.Context, employeeID string, filter MyAttendanceFilter) ([]Attendance, int64, error)

	// CreateAbsences bulk-inserts absent rows written by the sweep.
	// Conflicting employee-days are skipped, never overwritten.
	CreateAbsences(ctx context.Context, rows []Attendance) error
}
