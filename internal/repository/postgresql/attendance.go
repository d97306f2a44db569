package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/shiftpoint-hq/shiftpoint-backend-go/internal/domain/attendance"
	"github.com/shiftpoint-hq/shiftpoint-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	a.id, a.employee_id, a.shift_id, a.date,
	a.check_in_time, a.check_out_time, a.status,
	a.latitude, a.longitude, a.qr_data, a.notes,
	a.created_at, a.updated_at`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var a attendance.Attendance
	err := row.Scan(
		&a.ID, &a.EmployeeID, &a.ShiftID, &a.Date,
		&a.CheckInTime, &a.CheckOutTime, &a.Status,
		&a.Latitude, &a.Longitude, &a.QRData, &a.Notes,
		&a.CreatedAt, &a.UpdatedAt,
	)
	return a, err
}

// Upsert implements attendance.AttendanceRepository. The unique index
// on (employee_id, date) makes concurrent check-ins for the same day
// converge on a single row.
func (r *attendanceRepository) Upsert(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	q := database.QuerierFrom(ctx, r.db)

	// The generated id only survives when this insert wins; on conflict
	// the existing row keeps its id and RETURNING reports that one.
	query := `
		INSERT INTO attendances (
			id, employee_id, shift_id, date, check_in_time, status, latitude, longitude, qr_data
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		)
		ON CONFLICT (employee_id, date) DO UPDATE SET
			shift_id = EXCLUDED.shift_id,
			check_in_time = EXCLUDED.check_in_time,
			status = EXCLUDED.status,
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			qr_data = EXCLUDED.qr_data,
			updated_at = NOW()
		RETURNING id, employee_id, shift_id, date,
			check_in_time, check_out_time, status,
			latitude, longitude, qr_data, notes,
			created_at, updated_at
	`

	out, err := scanAttendance(q.QueryRow(ctx, query,
		uuid.NewString(), a.EmployeeID, a.ShiftID, a.Date, a.CheckInTime, a.Status, a.Latitude, a.Longitude, a.QRData,
	))
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to upsert attendance: %w", err)
	}

	return out, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		WHERE a.employee_id = $1 AND a.date = $2
	`

	a, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance: %w", err)
	}

	return &a, nil
}

// SetCheckOut implements attendance.AttendanceRepository.
func (r *attendanceRepository) SetCheckOut(ctx context.Context, id string, at time.Time) (attendance.Attendance, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		UPDATE attendances
		SET check_out_time = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING id, employee_id, shift_id, date,
			check_in_time, check_out_time, status,
			latitude, longitude, qr_data, notes,
			created_at, updated_at
	`

	a, err := scanAttendance(q.QueryRow(ctx, query, id, at))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to set attendance check-out: %w", err)
	}

	return a, nil
}

// ListByCompanyAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListByCompanyAndDate(ctx context.Context, companyID string, date time.Time) ([]attendance.Attendance, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `,
			e.name AS employee_name, e.position AS employee_position
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		WHERE e.company_id = $1 AND a.date = $2
		ORDER BY a.check_in_time NULLS LAST, e.name
	`

	rows, err := q.Query(ctx, query, companyID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance by company: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		var a attendance.Attendance
		err := rows.Scan(
			&a.ID, &a.EmployeeID, &a.ShiftID, &a.Date,
			&a.CheckInTime, &a.CheckOutTime, &a.Status,
			&a.Latitude, &a.Longitude, &a.QRData, &a.Notes,
			&a.CreatedAt, &a.UpdatedAt,
			&a.EmployeeName, &a.EmployeePosition,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, a)
	}

	return records, rows.Err()
}

// ListByEmployee implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListByEmployee(ctx context.Context, employeeID string, filter attendance.MyAttendanceFilter) ([]attendance.Attendance, int64, error) {
	q := database.QuerierFrom(ctx, r.db)

	conditions := []string{"a.employee_id = $1"}
	args := []interface{}{employeeID}

	if filter.StartDate != nil && *filter.StartDate != "" {
		args = append(args, *filter.StartDate)
		conditions = append(conditions, fmt.Sprintf("a.date >= $%d", len(args)))
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		args = append(args, *filter.EndDate)
		conditions = append(conditions, fmt.Sprintf("a.date <= $%d", len(args)))
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := `SELECT COUNT(*) FROM attendances a WHERE ` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance: %w", err)
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	query := fmt.Sprintf(`
		SELECT %s
		FROM attendances a
		WHERE %s
		ORDER BY a.date DESC
		LIMIT $%d OFFSET $%d
	`, attendanceColumns, where, len(args)-1, len(args))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance by employee: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, a)
	}

	return records, total, rows.Err()
}

// CreateAbsences implements attendance.AttendanceRepository. Rows that
// already exist for the employee-day are left untouched.
func (r *attendanceRepository) CreateAbsences(ctx context.Context, records []attendance.Attendance) error {
	if len(records) == 0 {
		return nil
	}

	q := database.QuerierFrom(ctx, r.db)

	query := `
		INSERT INTO attendances (id, employee_id, shift_id, date, status)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (employee_id, date) DO NOTHING
	`

	for _, a := range records {
		if _, err := q.Exec(ctx, query, uuid.NewString(), a.EmployeeID, a.ShiftID, a.Date, attendance.StatusAbsent); err != nil {
			return fmt.Errorf("failed to create absence record: %w", err)
		}
	}

	return nil
}
