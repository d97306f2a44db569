// Package attendance implements the check-in/check-out coordinator: it
// validates the presented QR token, verifies the observed coordinate
// against the shift's geofence, and applies the Shift and Attendance
// state transitions inside one transaction.
package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shiftpoint-hq/shiftpoint-backend-go/internal/config"
	"github.com/shiftpoint-hq/shiftpoint-backend-go/internal/domain/attendance"
	"github.com/shiftpoint-hq/shiftpoint-backend-go/internal/domain/employee"
	"github.com/shiftpoint-hq/shiftpoint-backend-go/internal/domain/identity"
	"github.com/shiftpoint-hq/shiftpoint-backend-go/internal/domain/location"
	"github.com/shiftpoint-hq/shiftpoint-backend-go/internal/domain/shift"
	"github.com/shiftpoint-hq/shiftpoint-backend-go/internal/pkg/database"
	"github.com/shiftpoint-hq/shiftpoint-backend-go/internal/pkg/geo"
	"github.com/shiftpoint-hq/shiftpoint-backend-go/internal/pkg/qrtoken"
)

type attendanceService struct {
	shiftRepo      shift.ShiftRepository
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	locationRepo   location.LocationRepository
	txManager      database.TxManager
	cfg            config.AttendanceConfig
	now            func() time.Time
}

// Option configures the service.
type Option func(*attendanceService)

// WithClock replaces the wall clock. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(s *attendanceService) { s.now = now }
}

func NewAttendanceService(
	shiftRepo shift.ShiftRepository,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	locationRepo location.LocationRepository,
	txManager database.TxManager,
	cfg config.AttendanceConfig,
	opts ...Option,
) attendance.AttendanceService {
	s := &attendanceService{
		shiftRepo:      shiftRepo,
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		locationRepo:   locationRepo,
		txManager:      txManager,
		cfg:            cfg,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CheckIn implements attendance.AttendanceService.
//
// The order of checks is fixed: payload shape, shift existence,
// authorization, token, geofence, then shift state. Every check runs
// before any write, so a rejected request leaves no trace.
func (s *attendanceService) CheckIn(ctx context.Context, requester identity.Requester, req attendance.CheckInRequest) (attendance.CheckResult, error) {
	if err := req.Validate(); err != nil {
		return attendance.CheckResult{}, err
	}

	payload, err := qrtoken.DecodePayload(req.QRData)
	if err != nil {
		return attendance.CheckResult{}, err
	}

	sh, err := s.shiftRepo.GetByID(ctx, payload.ShiftID)
	if err != nil {
		return attendance.CheckResult{}, err
	}

	if err := s.authorize(requester, sh); err != nil {
		return attendance.CheckResult{}, err
	}

	now := s.now()

	if sh.QRToken == nil || sh.QRIssuedAt == nil {
		return attendance.CheckResult{}, qrtoken.ErrTokenMismatch
	}
	if err := qrtoken.Validate(*sh.QRToken, *sh.QRIssuedAt, payload.Token, now); err != nil {
		return attendance.CheckResult{}, err
	}

	if err := s.verifyLocation(ctx, sh, req.UserLocation); err != nil {
		return attendance.CheckResult{}, err
	}

	if !sh.CanCheckIn() {
		return attendance.CheckResult{}, shift.ErrInvalidStateTransition
	}

	start, err := sh.StartAt(s.cfg.Timezone)
	if err != nil {
		return attendance.CheckResult{}, err
	}

	record := attendance.Attendance{
		EmployeeID:  sh.EmployeeID,
		ShiftID:     sh.ID,
		Date:        attendance.DateBucket(now, s.cfg.Timezone),
		CheckInTime: &now,
		Status:      attendance.DeriveCheckInStatus(now, start),
		Latitude:    &req.UserLocation.Latitude,
		Longitude:   &req.UserLocation.Longitude,
		QRData:      &req.QRData,
	}

	var committed attendance.Attendance
	err = s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		var txErr error
		committed, txErr = s.attendanceRepo.Upsert(txCtx, record)
		if txErr != nil {
			return txErr
		}
		return s.shiftRepo.RecordCheckIn(txCtx, sh.ID, now, req.UserLocation)
	})
	if err != nil {
		return attendance.CheckResult{}, err
	}

	sh.Status = shift.StatusInProgress
	sh.CheckInTime = &now
	sh.CheckInLatitude = &req.UserLocation.Latitude
	sh.CheckInLongitude = &req.UserLocation.Longitude

	return attendance.CheckResult{
		Attendance: attendance.ToResponse(committed),
		Shift:      shift.ToResponse(sh),
	}, nil
}

// CheckOut implements attendance.AttendanceService. Unlike check-in it
// never creates an attendance row; a missing row means the employee
// never checked in today.
func (s *attendanceService) CheckOut(ctx context.Context, requester identity.Requester, req attendance.CheckOutRequest) (attendance.CheckResult, error) {
	if err := req.Validate(); err != nil {
		return attendance.CheckResult{}, err
	}

	sh, err := s.shiftRepo.GetByID(ctx, req.ShiftID)
	if err != nil {
		return attendance.CheckResult{}, err
	}

	if err := s.authorize(requester, sh); err != nil {
		return attendance.CheckResult{}, err
	}

	if s.cfg.VerifyCheckoutLocation {
		if err := s.verifyLocation(ctx, sh, req.UserLocation); err != nil {
			return attendance.CheckResult{}, err
		}
	}

	if !sh.CanCheckOut() {
		return attendance.CheckResult{}, shift.ErrInvalidStateTransition
	}

	now := s.now()
	date := attendance.DateBucket(now, s.cfg.Timezone)

	record, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, sh.EmployeeID, date)
	if err != nil {
		return attendance.CheckResult{}, err
	}
	if record == nil || record.CheckInTime == nil {
		return attendance.CheckResult{}, attendance.ErrNoCheckInRecord
	}

	var committed attendance.Attendance
	err = s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		var txErr error
		committed, txErr = s.attendanceRepo.SetCheckOut(txCtx, record.ID, now)
		if txErr != nil {
			return txErr
		}
		return s.shiftRepo.RecordCheckOut(txCtx, sh.ID, now)
	})
	if err != nil {
		return attendance.CheckResult{}, err
	}

	sh.Status = shift.StatusCompleted
	sh.CheckOutTime = &now

	return attendance.CheckResult{
		Attendance: attendance.ToResponse(committed),
		Shift:      shift.ToResponse(sh),
	}, nil
}

// Dashboard implements attendance.AttendanceService.
func (s *attendanceService) Dashboard(ctx context.Context, requester identity.Requester) (attendance.DashboardResponse, error) {
	if !requester.IsAdmin() {
		return attendance.DashboardResponse{}, attendance.ErrNotAuthorized
	}

	today := attendance.DateBucket(s.now(), s.cfg.Timezone)

	total, err := s.employeeRepo.CountActiveByCompany(ctx, requester.CompanyID)
	if err != nil {
		return attendance.DashboardResponse{}, err
	}

	records, err := s.attendanceRepo.ListByCompanyAndDate(ctx, requester.CompanyID, today)
	if err != nil {
		return attendance.DashboardResponse{}, err
	}

	resp := attendance.DashboardResponse{
		TotalEmployees: total,
		Attendance:     make([]attendance.AttendanceResponse, 0, len(records)),
	}

	for _, rec := range records {
		switch rec.Status {
		case attendance.StatusPresent:
			resp.Present++
		case attendance.StatusLate:
			resp.Late++
		case attendance.StatusAbsent:
			resp.Absent++
		}
		resp.Attendance = append(resp.Attendance, attendance.ToResponse(rec))
	}

	return resp, nil
}

// GetMyAttendance implements attendance.AttendanceService.
func (s *attendanceService) GetMyAttendance(ctx context.Context, requester identity.Requester, filter attendance.MyAttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	if requester.EmployeeID == "" {
		return attendance.ListAttendanceResponse{}, attendance.ErrNotAuthorized
	}

	records, total, err := s.attendanceRepo.ListByEmployee(ctx, requester.EmployeeID, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	resp := attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		Attendances: make([]attendance.AttendanceResponse, 0, len(records)),
	}
	for _, rec := range records {
		resp.Attendances = append(resp.Attendances, attendance.ToResponse(rec))
	}

	return resp, nil
}

// authorize checks that the requester may act on the shift: the owning
// employee, or any admin of the same company. A shift from another
// company is rejected even for admins.
func (s *attendanceService) authorize(requester identity.Requester, sh shift.Shift) error {
	if sh.EmployeeCompanyID == nil || *sh.EmployeeCompanyID != requester.CompanyID {
		return attendance.ErrNotAuthorized
	}
	if requester.IsAdmin() {
		return nil
	}
	if requester.EmployeeID == "" || requester.EmployeeID != sh.EmployeeID {
		return attendance.ErrNotAuthorized
	}
	return nil
}

// verifyLocation resolves the shift's geofence and checks the observed
// coordinate against it. The distance is always computed server-side
// from the raw coordinate; client-reported distances are ignored.
func (s *attendanceService) verifyLocation(ctx context.Context, sh shift.Shift, observed geo.Coordinate) error {
	fence, err := s.resolveGeofence(ctx, sh)
	if err != nil {
		return err
	}

	within, distance := fence.WithinRadius(observed)
	if !within {
		return &attendance.OutOfRangeError{
			DistanceMeters:    distance,
			MaxDistanceMeters: fence.RadiusMeters,
			GeofenceName:      fence.Name,
		}
	}

	return nil
}

// resolveGeofence picks the admission boundary for a shift: the inline
// geofence when present, otherwise the referenced Location, otherwise
// the configured office default.
func (s *attendanceService) resolveGeofence(ctx context.Context, sh shift.Shift) (geo.Geofence, error) {
	if fence := sh.InlineGeofence(); fence != nil {
		return *fence, nil
	}

	if sh.LocationID != nil {
		if sh.EmployeeCompanyID == nil {
			return geo.Geofence{}, errors.New("shift is missing its company scope")
		}
		loc, err := s.locationRepo.GetByID(ctx, *sh.LocationID, *sh.EmployeeCompanyID)
		if err != nil {
			return geo.Geofence{}, fmt.Errorf("resolve shift location: %w", err)
		}
		return loc.Geofence(), nil
	}

	return s.cfg.OfficeGeofence()
}
