package location

import (
	"context"

	"github.com/shiftpoint-hq/shiftpoint-backend-go/internal/domain/identity"
)

// LocationService defines business logic for managing shared geofenced
// work locations.
type LocationService interface {
	CreateLocation(ctx context.Context, requester identity.Requester, req CreateLocationRequest) (LocationResponse, error)
	GetLocation(ctx context.Context, requester identity.Requester, id string) (LocationResponse, error)
	ListLocations(ctx context.Context, requester identity.Requester) ([]LocationResponse, error)
	UpdateLocation(ctx context.Context, requester identity.Requester, req UpdateLocationRequest) (LocationResponse, error)
	DeleteLocation(ctx context.Context, requester identity.Requester, id string) error
}
