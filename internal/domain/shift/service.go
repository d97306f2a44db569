package shift

import (
	"context"

	"github.com/shiftpoint-hq/shiftpoint-backend-go/internal/domain/identity"
)

// ScheduleService defines business logic for shift scheduling and QR
// token issuance.
type ScheduleService interface {
	// CreateShift schedules a new shift for an employee.
	CreateShift(ctx context.Context, requester identity.Requester, req CreateShiftRequest) (ShiftResponse, error)

	// GetShift retrieves a single shift.
	GetShift(ctx context.Context, requester identity.Requester, id string) (ShiftResponse, error)

	// ListShifts retrieves shifts for the requester's company.
	ListShifts(ctx context.Context, requester identity.Requester, filter ShiftFilter) (ListShiftsResponse, error)

	// UpdateShift updates scheduling fields of a shift.
	UpdateShift(ctx context.Context, requester identity.Requester, req UpdateShiftRequest) (ShiftResponse, error)

	// DeleteShift removes a shift.
	DeleteShift(ctx context.Context, requester identity.Requester, id string) error

	// IssueQRCode mints a fresh check-in token for the shift, replacing
	// any prior token, and returns the serialized QR payload.
	IssueQRCode(ctx context.Context, requester identity.Requester, shiftID string) (QRCodeResponse, error)
}
