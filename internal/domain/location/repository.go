package location

import "context"

type LocationRepository interface {
	// Create persists a new location.
	Create(ctx context.Context, l Location) (Location, error)

	// GetByID retrieves a location within a company.
	GetByID(ctx context.Context, id string, companyID string) (Location, error)

	// List retrieves all locations of a company.
	List(ctx context.Context, companyID string) ([]Location, error)

	// Update overwrites a location's mutable fields.
	Update(ctx context.Context, l Location) error

	// Delete removes a location.
	Delete(ctx context.Context, id string, companyID string) error
}
