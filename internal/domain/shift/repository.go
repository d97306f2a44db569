package shift

import (
	"context"
	"time"

	"github.com/shiftpoint-hq/shiftpoint-backend-go/internal/pkg/geo"
)

// ShiftRepository defines data access for shifts. Reads join the owning
// employee so callers can authorize against its company.
type ShiftRepository interface {
	// Create persists a new shift in the scheduled state.
	Create(ctx context.Context, s Shift) (Shift, error)

	// GetByID retrieves a shift together with its owning employee.
	GetByID(ctx context.Context, id string) (Shift, error)

	// List retrieves shifts for a company, newest date first.
	List(ctx context.Context, companyID string, filter ShiftFilter) ([]Shift, int64, error)

	// Update overwrites the mutable scheduling fields of a shift.
	Update(ctx context.Context, s Shift) error

	// Delete removes a shift. Administrative operation only.
	Delete(ctx context.Context, id string) error

	// SetToken stores a freshly issued token on the shift, replacing
	// any prior token.
	SetToken(ctx context.Context, shiftID, token string, issuedAt time.Time) error

	// RecordCheckIn transitions the shift to in-progress and stores the
	// check-in instant and coordinate.
	RecordCheckIn(ctx context.Context, shiftID string, at time.Time, observed geo.Coordinate) error

	// RecordCheckOut transitions the shift to completed and stores the
	// check-out instant.
	RecordCheckOut(ctx context.Context, shiftID string, at time.Time) error

	// ListOverdueScheduled returns shifts still scheduled whose date is
	// before cutoff. Consumed by the missed-shift sweep.
	ListOverdueScheduled(ctx context.Context, cutoff time.Time) ([]Shift, error)

	// MarkMissed moves a still-scheduled shift to the missed state.
	MarkMissed(ctx context.Context, shiftID string) error
}

type ShiftFilter struct {
	EmployeeID *string
	Date       *string // YYYY-MM-DD
	Status     *string
	Page       int
	Limit      int
}
