// Package location implements management of shared geofenced work
// locations.
package location

import (
	"context"

	"github.com/shiftpoint-hq/shiftpoint-backend-go/internal/domain/identity"
	"github.com/shiftpoint-hq/shiftpoint-backend-go/internal/domain/location"
)

type LocationServiceImpl struct {
	locationRepo location.LocationRepository
}

func NewLocationService(locationRepo location.LocationRepository) location.LocationService {
	return &LocationServiceImpl{locationRepo: locationRepo}
}

// CreateLocation implements location.LocationService.
func (s *LocationServiceImpl) CreateLocation(ctx context.Context, requester identity.Requester, req location.CreateLocationRequest) (location.LocationResponse, error) {
	if !requester.IsAdmin() {
		return location.LocationResponse{}, location.ErrNotAuthorized
	}
	if err := req.Validate(); err != nil {
		return location.LocationResponse{}, err
	}

	radius := float64(location.DefaultRadiusMeters)
	if req.RadiusMeters != nil {
		radius = *req.RadiusMeters
	}

	created, err := s.locationRepo.Create(ctx, location.Location{
		CompanyID:    requester.CompanyID,
		Name:         req.Name,
		Address:      req.Address,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		RadiusMeters: radius,
		IsActive:     true,
	})
	if err != nil {
		return location.LocationResponse{}, err
	}

	return location.ToResponse(created), nil
}

// GetLocation implements location.LocationService.
func (s *LocationServiceImpl) GetLocation(ctx context.Context, requester identity.Requester, id string) (location.LocationResponse, error) {
	l, err := s.locationRepo.GetByID(ctx, id, requester.CompanyID)
	if err != nil {
		return location.LocationResponse{}, err
	}
	return location.ToResponse(l), nil
}

// ListLocations implements location.LocationService.
func (s *LocationServiceImpl) ListLocations(ctx context.Context, requester identity.Requester) ([]location.LocationResponse, error) {
	locations, err := s.locationRepo.List(ctx, requester.CompanyID)
	if err != nil {
		return nil, err
	}

	resp := make([]location.LocationResponse, 0, len(locations))
	for _, l := range locations {
		resp = append(resp, location.ToResponse(l))
	}
	return resp, nil
}

// UpdateLocation implements location.LocationService.
func (s *LocationServiceImpl) UpdateLocation(ctx context.Context, requester identity.Requester, req location.UpdateLocationRequest) (location.LocationResponse, error) {
	if !requester.IsAdmin() {
		return location.LocationResponse{}, location.ErrNotAuthorized
	}
	if err := req.Validate(); err != nil {
		return location.LocationResponse{}, err
	}

	l, err := s.locationRepo.GetByID(ctx, req.ID, requester.CompanyID)
	if err != nil {
		return location.LocationResponse{}, err
	}

	if req.Name != nil {
		l.Name = *req.Name
	}
	if req.Address != nil {
		l.Address = *req.Address
	}
	if req.Latitude != nil {
		l.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		l.Longitude = *req.Longitude
	}
	if req.RadiusMeters != nil {
		l.RadiusMeters = *req.RadiusMeters
	}
	if req.IsActive != nil {
		l.IsActive = *req.IsActive
	}

	if err := s.locationRepo.Update(ctx, l); err != nil {
		return location.LocationResponse{}, err
	}

	return location.ToResponse(l), nil
}

// DeleteLocation implements location.LocationService.
func (s *LocationServiceImpl) DeleteLocation(ctx context.Context, requester identity.Requester, id string) error {
	if !requester.IsAdmin() {
		return location.ErrNotAuthorized
	}
	return s.locationRepo.Delete(ctx, id, requester.CompanyID)
}
