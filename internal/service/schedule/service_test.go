package schedule

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftpoint-hq/shiftpoint-backend-go/internal/domain/employee"
	"github.com/shiftpoint-hq/shiftpoint-backend-go/internal/domain/identity"
	"github.com/shiftpoint-hq/shiftpoint-backend-go/internal/domain/location"
	"github.com/shiftpoint-hq/shiftpoint-backend-go/internal/domain/shift"
	"github.com/shiftpoint-hq/shiftpoint-backend-go/internal/pkg/geo"
	"github.com/shiftpoint-hq/shiftpoint-backend-go/internal/pkg/qrtoken"
	"github.com/shiftpoint-hq/shiftpoint-backend-go/internal/pkg/validator"
)

type memShiftRepo struct {
	mu     sync.Mutex
	nextID int
	shifts map[string]shift.Shift
}

func newMemShiftRepo() *memShiftRepo {
	return &memShiftRepo{shifts: make(map[string]shift.Shift)}
}

func (r *memShiftRepo) Create(_ context.Context, s shift.Shift) (shift.Shift, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	s.ID = "shift-" + string(rune('0'+r.nextID))
	s.CreatedAt = time.Now()
	// The real repository joins the owning employee on every read; the
	// fake stores the company up front instead.
	company := testCompany
	s.EmployeeCompanyID = &company
	r.shifts[s.ID] = s
	return s, nil
}

func (r *memShiftRepo) GetByID(_ context.Context, id string) (shift.Shift, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.shifts[id]
	if !ok {
		return shift.Shift{}, shift.ErrShiftNotFound
	}
	return s, nil
}

func (r *memShiftRepo) List(_ context.Context, companyID string, filter shift.ShiftFilter) ([]shift.Shift, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []shift.Shift
	for _, s := range r.shifts {
		if s.EmployeeCompanyID == nil || *s.EmployeeCompanyID != companyID {
			continue
		}
		if filter.EmployeeID != nil && s.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Date != nil && s.Date.Format("2006-01-02") != *filter.Date {
			continue
		}
		if filter.Status != nil && string(s.Status) != *filter.Status {
			continue
		}
		out = append(out, s)
	}
	return out, int64(len(out)), nil
}

func (r *memShiftRepo) Update(_ context.Context, s shift.Shift) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.shifts[s.ID]; !ok {
		return shift.ErrShiftNotFound
	}
	r.shifts[s.ID] = s
	return nil
}

func (r *memShiftRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.shifts[id]; !ok {
		return shift.ErrShiftNotFound
	}
	delete(r.shifts, id)
	return nil
}

func (r *memShiftRepo) SetToken(_ context.Context, shiftID, token string, issuedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.shifts[shiftID]
	if !ok {
		return shift.ErrShiftNotFound
	}
	s.QRToken = &token
	s.QRIssuedAt = &issuedAt
	r.shifts[shiftID] = s
	return nil
}

func (r *memShiftRepo) RecordCheckIn(_ context.Context, _ string, _ time.Time, _ geo.Coordinate) error {
	return nil
}

func (r *memShiftRepo) RecordCheckOut(_ context.Context, _ string, _ time.Time) error { return nil }

func (r *memShiftRepo) ListOverdueScheduled(_ context.Context, _ time.Time) ([]shift.Shift, error) {
	return nil, nil
}

func (r *memShiftRepo) MarkMissed(_ context.Context, _ string) error { return nil }

// seed places a shift directly in the store, bypassing Create.
func (r *memShiftRepo) seed(s shift.Shift) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.shifts[s.ID] = s
}

type memEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (r *memEmployeeRepo) GetByID(_ context.Context, id, companyID string) (employee.Employee, error) {
	e, ok := r.employees[id]
	if !ok || e.CompanyID != companyID {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *memEmployeeRepo) ListActiveByCompany(_ context.Context, _ string) ([]employee.Employee, error) {
	return nil, nil
}

func (r *memEmployeeRepo) CountActiveByCompany(_ context.Context, _ string) (int, error) {
	return 0, nil
}

type memLocationRepo struct {
	locations map[string]location.Location
}

func (r *memLocationRepo) Create(_ context.Context, l location.Location) (location.Location, error) {
	return l, nil
}

func (r *memLocationRepo) GetByID(_ context.Context, id, companyID string) (location.Location, error) {
	l, ok := r.locations[id]
	if !ok || l.CompanyID != companyID {
		return location.Location{}, location.ErrLocationNotFound
	}
	return l, nil
}

func (r *memLocationRepo) List(_ context.Context, _ string) ([]location.Location, error) {
	return nil, nil
}

func (r *memLocationRepo) Update(_ context.Context, _ location.Location) error { return nil }
func (r *memLocationRepo) Delete(_ context.Context, _, _ string) error         { return nil }

const testCompany = "co-1"

func adminRequester() identity.Requester {
	return identity.Requester{UserID: "admin-1", CompanyID: testCompany, Role: identity.RoleAdmin}
}

func workerRequester(employeeID string) identity.Requester {
	return identity.Requester{
		UserID:     "user-1",
		EmployeeID: employeeID,
		CompanyID:  testCompany,
		Role:       identity.RoleEmployee,
	}
}

func newTestService(shifts *memShiftRepo) shift.ScheduleService {
	employees := &memEmployeeRepo{employees: map[string]employee.Employee{
		"emp-1": {ID: "emp-1", CompanyID: testCompany, Name: "Ada", Status: employee.StatusActive},
	}}
	locations := &memLocationRepo{locations: map[string]location.Location{
		"loc-1": {ID: "loc-1", CompanyID: testCompany, Name: "HQ", Latitude: 4.1, Longitude: 9.2, RadiusMeters: 50},
	}}
	return NewScheduleService(shifts, employees, locations, qrtoken.NewIssuer())
}

func validCreateRequest() shift.CreateShiftRequest {
	return shift.CreateShiftRequest{
		EmployeeID: "emp-1",
		Date:       "2025-03-10",
		Day:        "Monday",
		StartTime:  "09:00",
		EndTime:    "17:00",
	}
}

func TestCreateShift(t *testing.T) {
	t.Parallel()

	shifts := newMemShiftRepo()
	svc := newTestService(shifts)

	resp, err := svc.CreateShift(context.Background(), adminRequester(), validCreateRequest())
	require.NoError(t, err)

	assert.Equal(t, "emp-1", resp.EmployeeID)
	assert.Equal(t, "2025-03-10", resp.Date)
	assert.Equal(t, string(shift.StatusScheduled), resp.Status)
	require.NotNil(t, resp.EmployeeName)
	assert.Equal(t, "Ada", *resp.EmployeeName)
}

func TestCreateShift_AdminOnly(t *testing.T) {
	t.Parallel()

	svc := newTestService(newMemShiftRepo())

	_, err := svc.CreateShift(context.Background(), workerRequester("emp-1"), validCreateRequest())
	assert.ErrorIs(t, err, shift.ErrNotAuthorized)
}

func TestCreateShift_UnknownEmployee(t *testing.T) {
	t.Parallel()

	svc := newTestService(newMemShiftRepo())

	req := validCreateRequest()
	req.EmployeeID = "emp-404"
	_, err := svc.CreateShift(context.Background(), adminRequester(), req)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestCreateShift_OverlapRejected(t *testing.T) {
	t.Parallel()

	shifts := newMemShiftRepo()
	svc := newTestService(shifts)

	_, err := svc.CreateShift(context.Background(), adminRequester(), validCreateRequest())
	require.NoError(t, err)

	overlapping := validCreateRequest()
	overlapping.StartTime = "16:00"
	overlapping.EndTime = "20:00"
	_, err = svc.CreateShift(context.Background(), adminRequester(), overlapping)
	assert.ErrorIs(t, err, shift.ErrShiftOverlaps)

	// Back to back is fine.
	adjacent := validCreateRequest()
	adjacent.StartTime = "17:00"
	adjacent.EndTime = "21:00"
	_, err = svc.CreateShift(context.Background(), adminRequester(), adjacent)
	assert.NoError(t, err)
}

func TestCreateShift_ValidationErrors(t *testing.T) {
	t.Parallel()

	svc := newTestService(newMemShiftRepo())

	req := validCreateRequest()
	req.Date = "10-03-2025"
	req.StartTime = "9am"

	_, err := svc.CreateShift(context.Background(), adminRequester(), req)

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := verrs.ToMap()
	assert.Contains(t, fields, "date")
	assert.Contains(t, fields, "start_time")
}

func TestGetShift_EmployeeSeesOwnOnly(t *testing.T) {
	t.Parallel()

	shifts := newMemShiftRepo()
	svc := newTestService(shifts)

	created, err := svc.CreateShift(context.Background(), adminRequester(), validCreateRequest())
	require.NoError(t, err)

	_, err = svc.GetShift(context.Background(), workerRequester("emp-1"), created.ID)
	assert.NoError(t, err)

	_, err = svc.GetShift(context.Background(), workerRequester("emp-2"), created.ID)
	assert.ErrorIs(t, err, shift.ErrNotAuthorized)
}

func TestUpdateShift_OnlyWhileScheduled(t *testing.T) {
	t.Parallel()

	shifts := newMemShiftRepo()
	svc := newTestService(shifts)

	created, err := svc.CreateShift(context.Background(), adminRequester(), validCreateRequest())
	require.NoError(t, err)

	newStart := "10:00"
	resp, err := svc.UpdateShift(context.Background(), adminRequester(), shift.UpdateShiftRequest{
		ID:        created.ID,
		StartTime: &newStart,
	})
	require.NoError(t, err)
	assert.Equal(t, "10:00", resp.StartTime)

	// Force the shift into progress, then try again.
	sh, err := shifts.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	sh.Status = shift.StatusInProgress
	shifts.seed(sh)

	_, err = svc.UpdateShift(context.Background(), adminRequester(), shift.UpdateShiftRequest{
		ID:        created.ID,
		StartTime: &newStart,
	})
	assert.ErrorIs(t, err, shift.ErrInvalidStateTransition)
}

func TestDeleteShift(t *testing.T) {
	t.Parallel()

	shifts := newMemShiftRepo()
	svc := newTestService(shifts)

	created, err := svc.CreateShift(context.Background(), adminRequester(), validCreateRequest())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteShift(context.Background(), adminRequester(), created.ID))

	_, err = svc.GetShift(context.Background(), adminRequester(), created.ID)
	assert.ErrorIs(t, err, shift.ErrShiftNotFound)
}

func TestIssueQRCode(t *testing.T) {
	t.Parallel()

	shifts := newMemShiftRepo()
	svc := newTestService(shifts)

	created, err := svc.CreateShift(context.Background(), adminRequester(), validCreateRequest())
	require.NoError(t, err)

	resp, err := svc.IssueQRCode(context.Background(), adminRequester(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, resp.ShiftID)

	var payload qrtoken.Payload
	require.NoError(t, json.Unmarshal([]byte(resp.QRData), &payload))
	assert.Equal(t, created.ID, payload.ShiftID)
	assert.Len(t, payload.Token, 64)

	stored, err := shifts.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.QRToken)
	assert.Equal(t, payload.Token, *stored.QRToken)
}

func TestIssueQRCode_ReplacesPriorToken(t *testing.T) {
	t.Parallel()

	shifts := newMemShiftRepo()
	svc := newTestService(shifts)

	created, err := svc.CreateShift(context.Background(), adminRequester(), validCreateRequest())
	require.NoError(t, err)

	first, err := svc.IssueQRCode(context.Background(), adminRequester(), created.ID)
	require.NoError(t, err)
	second, err := svc.IssueQRCode(context.Background(), adminRequester(), created.ID)
	require.NoError(t, err)

	var firstPayload, secondPayload qrtoken.Payload
	require.NoError(t, json.Unmarshal([]byte(first.QRData), &firstPayload))
	require.NoError(t, json.Unmarshal([]byte(second.QRData), &secondPayload))
	assert.NotEqual(t, firstPayload.Token, secondPayload.Token)

	// Only the latest token remains valid against the stored state.
	stored, err := shifts.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, secondPayload.Token, *stored.QRToken)
	assert.Error(t, qrtoken.Validate(*stored.QRToken, *stored.QRIssuedAt, firstPayload.Token, time.Now()))
}

func TestIssueQRCode_RequiresScheduledShift(t *testing.T) {
	t.Parallel()

	shifts := newMemShiftRepo()
	svc := newTestService(shifts)

	created, err := svc.CreateShift(context.Background(), adminRequester(), validCreateRequest())
	require.NoError(t, err)

	sh, err := shifts.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	sh.Status = shift.StatusCompleted
	shifts.seed(sh)

	_, err = svc.IssueQRCode(context.Background(), adminRequester(), created.ID)
	assert.ErrorIs(t, err, shift.ErrInvalidStateTransition)
}

func TestListShifts_EmployeePinnedToOwn(t *testing.T) {
	t.Parallel()

	shifts := newMemShiftRepo()
	svc := newTestService(shifts)

	_, err := svc.CreateShift(context.Background(), adminRequester(), validCreateRequest())
	require.NoError(t, err)

	company := testCompany
	shifts.seed(shift.Shift{
		ID:                "shift-other",
		EmployeeID:        "emp-2",
		Date:              time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Day:               "Monday",
		StartTime:         "09:00",
		EndTime:           "17:00",
		Status:            shift.StatusScheduled,
		EmployeeCompanyID: &company,
	})

	mine, err := svc.ListShifts(context.Background(), workerRequester("emp-1"), shift.ShiftFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), mine.TotalCount)

	all, err := svc.ListShifts(context.Background(), adminRequester(), shift.ShiftFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), all.TotalCount)
}
