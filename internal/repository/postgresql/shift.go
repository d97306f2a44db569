package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/shiftpoint-hq/shiftpoint-backend-go/internal/domain/shift"
	"github.com/shiftpoint-hq/shiftpoint-backend-go/internal/pkg/database"
	"github.com/shiftpoint-hq/shiftpoint-backend-go/internal/pkg/geo"
)

type shiftRepository struct {
	db *database.DB
}

func NewShiftRepository(db *database.DB) shift.ShiftRepository {
	return &shiftRepository{db: db}
}

const shiftColumns = `
	s.id, s.employee_id, s.date, s.day, s.start_time, s.end_time, s.status,
	s.location_id, s.geofence_name, s.geofence_latitude, s.geofence_longitude, s.geofence_radius_m,
	s.qr_token, s.qr_issued_at,
	s.check_in_time, s.check_out_time, s.check_in_latitude, s.check_in_longitude,
	s.created_at, s.updated_at,
	e.name AS employee_name, e.company_id AS employee_company_id`

func scanShift(row pgx.Row) (shift.Shift, error) {
	var s shift.Shift
	err := row.Scan(
		&s.ID, &s.EmployeeID, &s.Date, &s.Day, &s.StartTime, &s.EndTime, &s.Status,
		&s.LocationID, &s.GeofenceName, &s.GeofenceLatitude, &s.GeofenceLongitude, &s.GeofenceRadiusM,
		&s.QRToken, &s.QRIssuedAt,
		&s.CheckInTime, &s.CheckOutTime, &s.CheckInLatitude, &s.CheckInLongitude,
		&s.CreatedAt, &s.UpdatedAt,
		&s.EmployeeName, &s.EmployeeCompanyID,
	)
	return s, err
}

// Create implements shift.ShiftRepository.
func (r *shiftRepository) Create(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	q := database.QuerierFrom(ctx, r.db)

	s.ID = uuid.NewString()

	query := `
		INSERT INTO shifts (
			id, employee_id, date, day, start_time, end_time, status,
			location_id, geofence_name, geofence_latitude, geofence_longitude, geofence_radius_m
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		s.ID, s.EmployeeID, s.Date, s.Day, s.StartTime, s.EndTime, s.Status,
		s.LocationID, s.GeofenceName, s.GeofenceLatitude, s.GeofenceLongitude, s.GeofenceRadiusM,
	).Scan(&s.CreatedAt, &s.UpdatedAt)

	if err != nil {
		return shift.Shift{}, fmt.Errorf("failed to create shift: %w", err)
	}

	return s, nil
}

// GetByID implements shift.ShiftRepository.
func (r *shiftRepository) GetByID(ctx context.Context, id string) (shift.Shift, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		SELECT ` + shiftColumns + `
		FROM shifts s
		JOIN employees e ON e.id = s.employee_id
		WHERE s.id = $1
	`

	s, err := scanShift(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.Shift{}, shift.ErrShiftNotFound
		}
		return shift.Shift{}, fmt.Errorf("failed to get shift by ID: %w", err)
	}

	return s, nil
}

// List implements shift.ShiftRepository.
func (r *shiftRepository) List(ctx context.Context, companyID string, filter shift.ShiftFilter) ([]shift.Shift, int64, error) {
	q := database.QuerierFrom(ctx, r.db)

	conditions := []string{"e.company_id = $1"}
	args := []interface{}{companyID}

	if filter.EmployeeID != nil {
		args = append(args, *filter.EmployeeID)
		conditions = append(conditions, fmt.Sprintf("s.employee_id = $%d", len(args)))
	}
	if filter.Date != nil {
		args = append(args, *filter.Date)
		conditions = append(conditions, fmt.Sprintf("s.date = $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("s.status = $%d", len(args)))
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := `
		SELECT COUNT(*)
		FROM shifts s
		JOIN employees e ON e.id = s.employee_id
		WHERE ` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count shifts: %w", err)
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	query := fmt.Sprintf(`
		SELECT %s
		FROM shifts s
		JOIN employees e ON e.id = s.employee_id
		WHERE %s
		ORDER BY s.date DESC, s.start_time
		LIMIT $%d OFFSET $%d
	`, shiftColumns, where, len(args)-1, len(args))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list shifts: %w", err)
	}
	defer rows.Close()

	var shifts []shift.Shift
	for rows.Next() {
		s, err := scanShift(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, s)
	}

	return shifts, total, rows.Err()
}

// Update implements shift.ShiftRepository.
func (r *shiftRepository) Update(ctx context.Context, s shift.Shift) error {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		UPDATE shifts
		SET date = $2, day = $3, start_time = $4, end_time = $5, location_id = $6,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, s.ID, s.Date, s.Day, s.StartTime, s.EndTime, s.LocationID)
	if err != nil {
		return fmt.Errorf("failed to update shift: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shift.ErrShiftNotFound
	}

	return nil
}

// Delete implements shift.ShiftRepository.
func (r *shiftRepository) Delete(ctx context.Context, id string) error {
	q := database.QuerierFrom(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM shifts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete shift: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shift.ErrShiftNotFound
	}

	return nil
}

// SetToken implements shift.ShiftRepository.
func (r *shiftRepository) SetToken(ctx context.Context, shiftID, token string, issuedAt time.Time) error {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		UPDATE shifts
		SET qr_token = $2, qr_issued_at = $3, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, shiftID, token, issuedAt)
	if err != nil {
		return fmt.Errorf("failed to store shift token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shift.ErrShiftNotFound
	}

	return nil
}

// RecordCheckIn implements shift.ShiftRepository. The state guard is
// repeated in SQL so a concurrent transition loses cleanly.
func (r *shiftRepository) RecordCheckIn(ctx context.Context, shiftID string, at time.Time, observed geo.Coordinate) error {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		UPDATE shifts
		SET status = $2, check_in_time = $3, check_in_latitude = $4, check_in_longitude = $5,
			updated_at = NOW()
		WHERE id = $1 AND status = $6
	`

	tag, err := q.Exec(ctx, query,
		shiftID, shift.StatusInProgress, at, observed.Latitude, observed.Longitude, shift.StatusScheduled,
	)
	if err != nil {
		return fmt.Errorf("failed to record shift check-in: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shift.ErrInvalidStateTransition
	}

	return nil
}

// RecordCheckOut implements shift.ShiftRepository.
func (r *shiftRepository) RecordCheckOut(ctx context.Context, shiftID string, at time.Time) error {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		UPDATE shifts
		SET status = $2, check_out_time = $3, updated_at = NOW()
		WHERE id = $1 AND status = $4
	`

	tag, err := q.Exec(ctx, query, shiftID, shift.StatusCompleted, at, shift.StatusInProgress)
	if err != nil {
		return fmt.Errorf("failed to record shift check-out: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shift.ErrInvalidStateTransition
	}

	return nil
}

// ListOverdueScheduled implements shift.ShiftRepository.
func (r *shiftRepository) ListOverdueScheduled(ctx context.Context, cutoff time.Time) ([]shift.Shift, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		SELECT ` + shiftColumns + `
		FROM shifts s
		JOIN employees e ON e.id = s.employee_id
		WHERE s.status = $1 AND s.date < $2
		ORDER BY s.date
	`

	rows, err := q.Query(ctx, query, shift.StatusScheduled, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to list overdue shifts: %w", err)
	}
	defer rows.Close()

	var shifts []shift.Shift
	for rows.Next() {
		s, err := scanShift(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, s)
	}

	return shifts, rows.Err()
}

// MarkMissed implements shift.ShiftRepository.
func (r *shiftRepository) MarkMissed(ctx context.Context, shiftID string) error {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		UPDATE shifts
		SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status = $3
	`

	tag, err := q.Exec(ctx, query, shiftID, shift.StatusMissed, shift.StatusScheduled)
	if err != nil {
		return fmt.Errorf("failed to mark shift missed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shift.ErrInvalidStateTransition
	}

	return nil
}
