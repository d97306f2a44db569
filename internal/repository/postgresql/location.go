package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/shiftpoint-hq/shiftpoint-backend-go/internal/domain/location"
	"github.com/shiftpoint-hq/shiftpoint-backend-go/internal/pkg/database"
)

type locationRepository struct {
	db *database.DB
}

func NewLocationRepository(db *database.DB) location.LocationRepository {
	return &locationRepository{db: db}
}

const locationColumns = `
	id, company_id, name, address, latitude, longitude, radius_meters,
	is_active, created_at, updated_at`

func scanLocation(row pgx.Row) (location.Location, error) {
	var l location.Location
	err := row.Scan(
		&l.ID, &l.CompanyID, &l.Name, &l.Address, &l.Latitude, &l.Longitude,
		&l.RadiusMeters, &l.IsActive, &l.CreatedAt, &l.UpdatedAt,
	)
	return l, err
}

// Create implements location.LocationRepository.
func (r *locationRepository) Create(ctx context.Context, l location.Location) (location.Location, error) {
	q := database.QuerierFrom(ctx, r.db)

	l.ID = uuid.NewString()

	query := `
		INSERT INTO locations (
			id, company_id, name, address, latitude, longitude, radius_meters, is_active
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		l.ID, l.CompanyID, l.Name, l.Address, l.Latitude, l.Longitude, l.RadiusMeters, l.IsActive,
	).Scan(&l.CreatedAt, &l.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return location.Location{}, location.ErrLocationNameExists
		}
		return location.Location{}, fmt.Errorf("failed to create location: %w", err)
	}

	return l, nil
}

// GetByID implements location.LocationRepository.
func (r *locationRepository) GetByID(ctx context.Context, id string, companyID string) (location.Location, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		SELECT ` + locationColumns + `
		FROM locations
		WHERE id = $1 AND company_id = $2
	`

	l, err := scanLocation(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return location.Location{}, location.ErrLocationNotFound
		}
		return location.Location{}, fmt.Errorf("failed to get location by ID: %w", err)
	}

	return l, nil
}

// List implements location.LocationRepository.
func (r *locationRepository) List(ctx context.Context, companyID string) ([]location.Location, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		SELECT ` + locationColumns + `
		FROM locations
		WHERE company_id = $1
		ORDER BY name
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	defer rows.Close()

	var locations []location.Location
	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan location: %w", err)
		}
		locations = append(locations, l)
	}

	return locations, rows.Err()
}

// Update implements location.LocationRepository.
func (r *locationRepository) Update(ctx context.Context, l location.Location) error {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		UPDATE locations
		SET name = $3, address = $4, latitude = $5, longitude = $6,
			radius_meters = $7, is_active = $8, updated_at = NOW()
		WHERE id = $1 AND company_id = $2
	`

	tag, err := q.Exec(ctx, query,
		l.ID, l.CompanyID, l.Name, l.Address, l.Latitude, l.Longitude, l.RadiusMeters, l.IsActive,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return location.ErrLocationNameExists
		}
		return fmt.Errorf("failed to update location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return location.ErrLocationNotFound
	}

	return nil
}

// Delete implements location.LocationRepository.
func (r *locationRepository) Delete(ctx context.Context, id string, companyID string) error {
	q := database.QuerierFrom(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM locations WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return location.ErrLocationNotFound
	}

	return nil
}
