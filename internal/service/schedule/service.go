// Package schedule implements shift scheduling: CRUD over shifts and
// issuance of the short-lived QR check-in tokens.
package schedule

import (
	"context"
	"time"

	"github.com/shiftpoint-hq/shiftpoint-backend-go/internal/domain/employee"
	"github.com/shiftpoint-hq/shiftpoint-backend-go/internal/domain/identity"
	"github.com/shiftpoint-hq/shiftpoint-backend-go/internal/domain/location"
	"github.com/shiftpoint-hq/shiftpoint-backend-go/internal/domain/shift"
	"github.com/shiftpoint-hq/shiftpoint-backend-go/internal/pkg/qrtoken"
	"github.com/shiftpoint-hq/shiftpoint-backend-go/internal/pkg/validator"
)

type ScheduleServiceImpl struct {
	shiftRepo    shift.ShiftRepository
	employeeRepo employee.EmployeeRepository
	locationRepo location.LocationRepository
	issuer       *qrtoken.Issuer
}

func NewScheduleService(
	shiftRepo shift.ShiftRepository,
	employeeRepo employee.EmployeeRepository,
	locationRepo location.LocationRepository,
	issuer *qrtoken.Issuer,
) shift.ScheduleService {
	return &ScheduleServiceImpl{
		shiftRepo:    shiftRepo,
		employeeRepo: employeeRepo,
		locationRepo: locationRepo,
		issuer:       issuer,
	}
}

// CreateShift implements shift.ScheduleService.
func (s *ScheduleServiceImpl) CreateShift(ctx context.Context, requester identity.Requester, req shift.CreateShiftRequest) (shift.ShiftResponse, error) {
	if !requester.IsAdmin() {
		return shift.ShiftResponse{}, shift.ErrNotAuthorized
	}
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	// The employee lookup doubles as the company-scope check.
	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID, requester.CompanyID)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	if req.LocationID != nil {
		if _, err := s.locationRepo.GetByID(ctx, *req.LocationID, requester.CompanyID); err != nil {
			return shift.ShiftResponse{}, err
		}
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return shift.ShiftResponse{}, validator.ValidationErrors{{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		}}
	}

	if err := s.checkOverlap(ctx, requester.CompanyID, emp.ID, req.Date, req.StartTime, req.EndTime); err != nil {
		return shift.ShiftResponse{}, err
	}

	created, err := s.shiftRepo.Create(ctx, shift.Shift{
		EmployeeID:        emp.ID,
		Date:              date,
		Day:               req.Day,
		StartTime:         req.StartTime,
		EndTime:           req.EndTime,
		Status:            shift.StatusScheduled,
		LocationID:        req.LocationID,
		GeofenceName:      req.GeofenceName,
		GeofenceLatitude:  req.GeofenceLatitude,
		GeofenceLongitude: req.GeofenceLongitude,
		GeofenceRadiusM:   req.GeofenceRadiusM,
	})
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	created.EmployeeName = &emp.Name
	return shift.ToResponse(created), nil
}

// GetShift implements shift.ScheduleService. Admins see any shift of
// their company; employees only their own.
func (s *ScheduleServiceImpl) GetShift(ctx context.Context, requester identity.Requester, id string) (shift.ShiftResponse, error) {
	sh, err := s.loadAuthorized(ctx, requester, id)
	if err != nil {
		return shift.ShiftResponse{}, err
	}
	return shift.ToResponse(sh), nil
}

// ListShifts implements shift.ScheduleService.
func (s *ScheduleServiceImpl) ListShifts(ctx context.Context, requester identity.Requester, filter shift.ShiftFilter) (shift.ListShiftsResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}

	if filter.Status != nil {
		normalized, ok := shift.NormalizeStatusFilter(*filter.Status)
		if !ok {
			return shift.ListShiftsResponse{}, validator.ValidationErrors{{
				Field:   "status",
				Message: "status must be one of scheduled, in-progress, completed, missed",
			}}
		}
		filter.Status = &normalized
	}

	// Employees are pinned to their own shifts regardless of the filter.
	if !requester.IsAdmin() {
		filter.EmployeeID = &requester.EmployeeID
	}

	shifts, total, err := s.shiftRepo.List(ctx, requester.CompanyID, filter)
	if err != nil {
		return shift.ListShiftsResponse{}, err
	}

	resp := shift.ListShiftsResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Shifts:     make([]shift.ShiftResponse, 0, len(shifts)),
	}
	for _, sh := range shifts {
		resp.Shifts = append(resp.Shifts, shift.ToResponse(sh))
	}

	return resp, nil
}

// UpdateShift implements shift.ScheduleService. Only still-scheduled
// shifts can be rescheduled; a shift that already started keeps its
// recorded times.
func (s *ScheduleServiceImpl) UpdateShift(ctx context.Context, requester identity.Requester, req shift.UpdateShiftRequest) (shift.ShiftResponse, error) {
	if !requester.IsAdmin() {
		return shift.ShiftResponse{}, shift.ErrNotAuthorized
	}
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	sh, err := s.loadAuthorized(ctx, requester, req.ID)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	if sh.Status != shift.StatusScheduled {
		return shift.ShiftResponse{}, shift.ErrInvalidStateTransition
	}

	if req.Date != nil {
		date, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			return shift.ShiftResponse{}, validator.ValidationErrors{{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			}}
		}
		sh.Date = date
	}
	if req.Day != nil {
		sh.Day = *req.Day
	}
	if req.StartTime != nil {
		sh.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		sh.EndTime = *req.EndTime
	}
	if req.LocationID != nil {
		if _, err := s.locationRepo.GetByID(ctx, *req.LocationID, requester.CompanyID); err != nil {
			return shift.ShiftResponse{}, err
		}
		sh.LocationID = req.LocationID
	}

	if err := s.shiftRepo.Update(ctx, sh); err != nil {
		return shift.ShiftResponse{}, err
	}

	return shift.ToResponse(sh), nil
}

// DeleteShift implements shift.ScheduleService.
func (s *ScheduleServiceImpl) DeleteShift(ctx context.Context, requester identity.Requester, id string) error {
	if !requester.IsAdmin() {
		return shift.ErrNotAuthorized
	}

	if _, err := s.loadAuthorized(ctx, requester, id); err != nil {
		return err
	}

	return s.shiftRepo.Delete(ctx, id)
}

// IssueQRCode implements shift.ScheduleService. Every call mints a
// fresh token; the previous token stops validating the moment the new
// one is stored.
func (s *ScheduleServiceImpl) IssueQRCode(ctx context.Context, requester identity.Requester, shiftID string) (shift.QRCodeResponse, error) {
	if !requester.IsAdmin() {
		return shift.QRCodeResponse{}, shift.ErrNotAuthorized
	}

	sh, err := s.loadAuthorized(ctx, requester, shiftID)
	if err != nil {
		return shift.QRCodeResponse{}, err
	}

	if !sh.CanCheckIn() {
		return shift.QRCodeResponse{}, shift.ErrInvalidStateTransition
	}

	issued, err := s.issuer.Issue(sh.ID)
	if err != nil {
		return shift.QRCodeResponse{}, err
	}

	if err := s.shiftRepo.SetToken(ctx, sh.ID, issued.Token, issued.IssuedAt); err != nil {
		return shift.QRCodeResponse{}, err
	}

	payload, err := qrtoken.EncodePayload(sh.ID, issued.Token, issued.IssuedAt)
	if err != nil {
		return shift.QRCodeResponse{}, err
	}

	return shift.QRCodeResponse{
		ShiftID:   sh.ID,
		QRData:    payload,
		ExpiresAt: issued.IssuedAt.Add(qrtoken.TTL).Format(time.RFC3339),
	}, nil
}

// loadAuthorized fetches a shift and verifies the requester may see it.
func (s *ScheduleServiceImpl) loadAuthorized(ctx context.Context, requester identity.Requester, id string) (shift.Shift, error) {
	sh, err := s.shiftRepo.GetByID(ctx, id)
	if err != nil {
		return shift.Shift{}, err
	}

	if sh.EmployeeCompanyID == nil || *sh.EmployeeCompanyID != requester.CompanyID {
		return shift.Shift{}, shift.ErrNotAuthorized
	}
	if !requester.IsAdmin() && requester.EmployeeID != sh.EmployeeID {
		return shift.Shift{}, shift.ErrNotAuthorized
	}

	return sh, nil
}

// checkOverlap rejects a new shift whose time range intersects an
// existing scheduled or in-progress shift of the same employee-day.
func (s *ScheduleServiceImpl) checkOverlap(ctx context.Context, companyID, employeeID, date, startTime, endTime string) error {
	existing, _, err := s.shiftRepo.List(ctx, companyID, shift.ShiftFilter{
		EmployeeID: &employeeID,
		Date:       &date,
		Page:       1,
		Limit:      100,
	})
	if err != nil {
		return err
	}

	for _, sh := range existing {
		if sh.Status != shift.StatusScheduled && sh.Status != shift.StatusInProgress {
			continue
		}
		// HH:MM strings compare correctly as text.
		if startTime < sh.EndTime && sh.StartTime < endTime {
			return shift.ErrShiftOverlaps
		}
	}

	return nil
}
