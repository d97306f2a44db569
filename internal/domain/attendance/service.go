package attendance

import (
	"context"

	"github.com/shiftpoint-hq/shiftpoint-backend-go/internal/domain/identity"
)

// AttendanceService coordinates the check-in/check-out protocol: QR
// token validation, geofence verification, and the transactional
// Shift + Attendance state transition.
type AttendanceService interface {
	// CheckIn validates the presented QR payload and coordinate, then
	// atomically upserts the employee-day Attendance record and moves
	// the shift to in-progress.
	CheckIn(ctx context.Context, requester identity.Requester, req CheckInRequest) (CheckResult, error)

	// CheckOut attaches the check-out instant to today's Attendance
	// record and completes the shift. It never creates a record.
	CheckOut(ctx context.Context, requester identity.Requester, req CheckOutRequest) (CheckResult, error)

	// Dashboard summarizes today's presence for the company.
	Dashboard(ctx context.Context, requester identity.Requester) (DashboardResponse, error)

	// GetMyAttendance retrieves the requesting employee's history.
	GetMyAttendance(ctx context.Context, requester identity.Requester, filter MyAttendanceFilter) (ListAttendanceResponse, error)
}
