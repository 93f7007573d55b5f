package leave

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/angkorhr/hrms-backend-go/internal/domain/leave"
	"github.com/angkorhr/hrms-backend-go/internal/domain/user"
	"github.com/angkorhr/hrms-backend-go/internal/pkg/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTypeRepository struct {
	types map[string]leave.Type
}

func (f *fakeTypeRepository) Create(_ context.Context, t leave.Type) (leave.Type, error) {
	t.ID = fmt.Sprintf("type-%d", len(f.types)+1)
	f.types[t.ID] = t
	return t, nil
}

func (f *fakeTypeRepository) GetByID(_ context.Context, id string) (leave.Type, error) {
	t, ok := f.types[id]
	if !ok {
		return leave.Type{}, leave.ErrTypeNotFound
	}
	return t, nil
}

func (f *fakeTypeRepository) List(_ context.Context) ([]leave.Type, error) {
	types := make([]leave.Type, 0, len(f.types))
	for _, t := range f.types {
		types = append(types, t)
	}
	return types, nil
}

type fakeRequestRepository struct {
	requests map[string]*leave.Request
	nextID   int
}

func (f *fakeRequestRepository) Create(_ context.Context, req leave.Request) (leave.Request, error) {
	f.nextID++
	req.ID = fmt.Sprintf("req-%d", f.nextID)
	f.requests[req.ID] = &req
	return req, nil
}

func (f *fakeRequestRepository) GetByID(_ context.Context, id string) (leave.Request, error) {
	req, ok := f.requests[id]
	if !ok {
		return leave.Request{}, leave.ErrRequestNotFound
	}
	return *req, nil
}

func (f *fakeRequestRepository) HasOverlapping(_ context.Context, employeeID string, startDate, endDate time.Time) (bool, error) {
	for _, req := range f.requests {
		if req.EmployeeID != employeeID {
			continue
		}
		if req.Status != leave.RequestStatusPending && req.Status != leave.RequestStatusApproved {
			continue
		}
		if !req.StartDate.After(endDate) && !req.EndDate.Before(startDate) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRequestRepository) UpdateStatusFromPending(_ context.Context, id string, status leave.RequestStatus, approvedBy *string, notes *string) error {
	req, ok := f.requests[id]
	if !ok || req.Status != leave.RequestStatusPending {
		return leave.ErrRequestNotPending
	}
	req.Status = status
	req.ApprovedBy = approvedBy
	req.DecisionNotes = notes
	return nil
}

func (f *fakeRequestRepository) MarkCancelled(_ context.Context, id string, fromStatus leave.RequestStatus) error {
	req, ok := f.requests[id]
	if !ok || req.Status != fromStatus {
		return leave.ErrRequestNotCancellable
	}
	req.Status = leave.RequestStatusCancelled
	return nil
}

func (f *fakeRequestRepository) List(_ context.Context, _ leave.RequestFilter) ([]leave.Request, int64, error) {
	requests := make([]leave.Request, 0, len(f.requests))
	for _, req := range f.requests {
		requests = append(requests, *req)
	}
	return requests, int64(len(requests)), nil
}

func (f *fakeRequestRepository) ListByEmployee(_ context.Context, employeeID string, _ leave.RequestFilter) ([]leave.Request, int64, error) {
	requests := make([]leave.Request, 0)
	for _, req := range f.requests {
		if req.EmployeeID == employeeID {
			requests = append(requests, *req)
		}
	}
	return requests, int64(len(requests)), nil
}

type fakeBalanceRepository struct {
	balances map[string]*leave.Balance
}

func balanceKey(employeeID, leaveTypeID string, year int) string {
	return fmt.Sprintf("%s|%s|%d", employeeID, leaveTypeID, year)
}

func (f *fakeBalanceRepository) Create(_ context.Context, b leave.Balance) (leave.Balance, error) {
	b.ID = fmt.Sprintf("bal-%d", len(f.balances)+1)
	f.balances[balanceKey(b.EmployeeID, b.LeaveTypeID, b.Year)] = &b
	return b, nil
}

func (f *fakeBalanceRepository) GetByEmployeeTypeYear(_ context.Context, employeeID, leaveTypeID string, year int) (leave.Balance, error) {
	b, ok := f.balances[balanceKey(employeeID, leaveTypeID, year)]
	if !ok {
		return leave.Balance{}, leave.ErrBalanceNotFound
	}
	return *b, nil
}

func (f *fakeBalanceRepository) ListByEmployeeYear(_ context.Context, employeeID string, year int) ([]leave.Balance, error) {
	balances := make([]leave.Balance, 0)
	for _, b := range f.balances {
		if b.EmployeeID == employeeID && b.Year == year {
			balances = append(balances, *b)
		}
	}
	return balances, nil
}

func (f *fakeBalanceRepository) ConsumeDays(_ context.Context, employeeID, leaveTypeID string, year, days int) error {
	b, ok := f.balances[balanceKey(employeeID, leaveTypeID, year)]
	if !ok || b.AnnualQuota-b.UsedDays < days {
		return leave.ErrInsufficientBalance
	}
	b.UsedDays += days
	return nil
}

func (f *fakeBalanceRepository) RestoreDays(_ context.Context, employeeID, leaveTypeID string, year, days int) error {
	b, ok := f.balances[balanceKey(employeeID, leaveTypeID, year)]
	if !ok || b.UsedDays < days {
		return leave.ErrBalanceNotFound
	}
	b.UsedDays -= days
	return nil
}

type leaveFixture struct {
	svc      *LeaveServiceImpl
	types    *fakeTypeRepository
	requests *fakeRequestRepository
	balances *fakeBalanceRepository
}

// newLeaveFixture pins the clock to 2026-03-01 in ICT and provisions one
// active annual leave type with a 12-day quota for emp-1.
func newLeaveFixture(t *testing.T) *leaveFixture {
	t.Helper()

	loc, err := time.LoadLocation("Asia/Phnom_Penh")
	require.NoError(t, err)
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, loc)

	types := &fakeTypeRepository{types: map[string]leave.Type{
		"type-annual": {ID: "type-annual", Name: "Annual Leave", Code: "AL", AnnualQuota: 12, IsActive: true},
		"type-frozen": {ID: "type-frozen", Name: "Frozen", Code: "FR", AnnualQuota: 5, IsActive: false},
	}}
	requests := &fakeRequestRepository{requests: make(map[string]*leave.Request)}
	balances := &fakeBalanceRepository{balances: make(map[string]*leave.Balance)}
	balances.balances[balanceKey("emp-1", "type-annual", 2026)] = &leave.Balance{
		ID: "bal-1", EmployeeID: "emp-1", LeaveTypeID: "type-annual", Year: 2026, AnnualQuota: 12, UsedDays: 0,
	}

	svc := NewLeaveService(nil, types, requests, balances, clock.FixedClock{Time: now, Loc: loc}).(*LeaveServiceImpl)
	svc.runInTx = func(ctx context.Context, fn func(ctx context.Context) error) error {
		return fn(ctx)
	}

	return &leaveFixture{svc: svc, types: types, requests: requests, balances: balances}
}

func employeeActor() user.Identity {
	return user.Identity{UserID: "user-1", EmployeeID: "emp-1", Role: user.RoleEmployee}
}

func managerActor() user.Identity {
	return user.Identity{UserID: "user-9", EmployeeID: "emp-9", Role: user.RoleManager}
}

func (f *leaveFixture) createRequest(t *testing.T, startDate, endDate string) leave.RequestResponse {
	t.Helper()
	resp, err := f.svc.CreateRequest(context.Background(), employeeActor(), leave.CreateRequestRequest{
		LeaveTypeID: "type-annual",
		StartDate:   startDate,
		EndDate:     endDate,
		Reason:      "family trip",
	})
	require.NoError(t, err)
	return resp
}

func (f *leaveFixture) remainingDays(t *testing.T) int {
	t.Helper()
	b, err := f.balances.GetByEmployeeTypeYear(context.Background(), "emp-1", "type-annual", 2026)
	require.NoError(t, err)
	return b.RemainingDays()
}

func TestCreateRequest_Pending_InclusiveDays(t *testing.T) {
	f := newLeaveFixture(t)

	resp := f.createRequest(t, "2026-04-06", "2026-04-08")

	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, 3, resp.RequestedDays)
	// Creation never touches the balance.
	assert.Equal(t, 12, f.remainingDays(t))
}

func TestCreateRequest_SingleDay(t *testing.T) {
	f := newLeaveFixture(t)

	resp := f.createRequest(t, "2026-04-06", "2026-04-06")
	assert.Equal(t, 1, resp.RequestedDays)
}

func TestCreateRequest_Overlap_Rejected(t *testing.T) {
	f := newLeaveFixture(t)

	f.createRequest(t, "2026-04-06", "2026-04-10")

	_, err := f.svc.CreateRequest(context.Background(), employeeActor(), leave.CreateRequestRequest{
		LeaveTypeID: "type-annual",
		StartDate:   "2026-04-10",
		EndDate:     "2026-04-12",
		Reason:      "second trip",
	})
	assert.ErrorIs(t, err, leave.ErrOverlappingRequest)
}

func TestCreateRequest_InactiveType_Rejected(t *testing.T) {
	f := newLeaveFixture(t)

	_, err := f.svc.CreateRequest(context.Background(), employeeActor(), leave.CreateRequestRequest{
		LeaveTypeID: "type-frozen",
		StartDate:   "2026-04-06",
		EndDate:     "2026-04-07",
		Reason:      "trip",
	})
	assert.ErrorIs(t, err, leave.ErrTypeInactive)
}

func TestCreateRequest_ExceedsRemaining_Rejected(t *testing.T) {
	f := newLeaveFixture(t)

	_, err := f.svc.CreateRequest(context.Background(), employeeActor(), leave.CreateRequestRequest{
		LeaveTypeID: "type-annual",
		StartDate:   "2026-04-01",
		EndDate:     "2026-04-30",
		Reason:      "sabbatical",
	})
	assert.ErrorIs(t, err, leave.ErrInsufficientBalance)
}

func TestApproveRequest_ConsumesBalance(t *testing.T) {
	f := newLeaveFixture(t)

	created := f.createRequest(t, "2026-04-06", "2026-04-08")

	resp, err := f.svc.ApproveRequest(context.Background(), managerActor(), created.ID)
	require.NoError(t, err)

	assert.Equal(t, "approved", resp.Status)
	require.NotNil(t, resp.ApprovedBy)
	assert.Equal(t, "user-9", *resp.ApprovedBy)
	assert.Equal(t, 9, f.remainingDays(t))
}

func TestApproveRequest_Twice_Rejected(t *testing.T) {
	f := newLeaveFixture(t)

	created := f.createRequest(t, "2026-04-06", "2026-04-08")

	_, err := f.svc.ApproveRequest(context.Background(), managerActor(), created.ID)
	require.NoError(t, err)

	_, err = f.svc.ApproveRequest(context.Background(), managerActor(), created.ID)
	assert.ErrorIs(t, err, leave.ErrRequestNotPending)
	assert.Equal(t, 9, f.remainingDays(t))
}

func TestCreateRequest_AfterApprovalsExhaustBalance(t *testing.T) {
	f := newLeaveFixture(t)

	// Quota 12: approve 7, then 3, leaving 2 remaining.
	first := f.createRequest(t, "2026-04-06", "2026-04-12")
	_, err := f.svc.ApproveRequest(context.Background(), managerActor(), first.ID)
	require.NoError(t, err)

	second := f.createRequest(t, "2026-05-04", "2026-05-06")
	_, err = f.svc.ApproveRequest(context.Background(), managerActor(), second.ID)
	require.NoError(t, err)
	require.Equal(t, 2, f.remainingDays(t))

	_, err = f.svc.CreateRequest(context.Background(), employeeActor(), leave.CreateRequestRequest{
		LeaveTypeID: "type-annual",
		StartDate:   "2026-06-01",
		EndDate:     "2026-06-03",
		Reason:      "trip",
	})
	assert.ErrorIs(t, err, leave.ErrInsufficientBalance)
}

func TestRejectRequest_NoBalanceEffect(t *testing.T) {
	f := newLeaveFixture(t)

	created := f.createRequest(t, "2026-04-06", "2026-04-08")

	resp, err := f.svc.RejectRequest(context.Background(), managerActor(), created.ID, leave.RejectRequestRequest{
		Notes: "team is short-staffed that week",
	})
	require.NoError(t, err)

	assert.Equal(t, "rejected", resp.Status)
	require.NotNil(t, resp.DecisionNotes)
	assert.Equal(t, 12, f.remainingDays(t))
}

func TestCancelRequest_Pending(t *testing.T) {
	f := newLeaveFixture(t)

	created := f.createRequest(t, "2026-04-06", "2026-04-08")

	resp, err := f.svc.CancelRequest(context.Background(), employeeActor(), created.ID)
	require.NoError(t, err)

	assert.Equal(t, "cancelled", resp.Status)
	assert.Equal(t, 12, f.remainingDays(t))
}

func TestCancelRequest_ApprovedBeforeStart_RestoresBalance(t *testing.T) {
	f := newLeaveFixture(t)

	created := f.createRequest(t, "2026-04-06", "2026-04-08")
	_, err := f.svc.ApproveRequest(context.Background(), managerActor(), created.ID)
	require.NoError(t, err)
	require.Equal(t, 9, f.remainingDays(t))

	resp, err := f.svc.CancelRequest(context.Background(), employeeActor(), created.ID)
	require.NoError(t, err)

	// Round trip: the balance lands exactly where it started.
	assert.Equal(t, "cancelled", resp.Status)
	assert.Equal(t, 12, f.remainingDays(t))
}

func TestCancelRequest_ApprovedAfterStart_Rejected(t *testing.T) {
	f := newLeaveFixture(t)

	// Leave started 2026-02-23; the pinned clock is 2026-03-01.
	created := f.createRequest(t, "2026-02-23", "2026-03-06")
	_, err := f.svc.ApproveRequest(context.Background(), managerActor(), created.ID)
	require.NoError(t, err)

	_, err = f.svc.CancelRequest(context.Background(), employeeActor(), created.ID)
	assert.ErrorIs(t, err, leave.ErrRequestNotCancellable)
	assert.Equal(t, 0, f.remainingDays(t))
}

func TestCancelRequest_Rejected_NotCancellable(t *testing.T) {
	f := newLeaveFixture(t)

	created := f.createRequest(t, "2026-04-06", "2026-04-08")
	_, err := f.svc.RejectRequest(context.Background(), managerActor(), created.ID, leave.RejectRequestRequest{Notes: "no"})
	require.NoError(t, err)

	_, err = f.svc.CancelRequest(context.Background(), employeeActor(), created.ID)
	assert.ErrorIs(t, err, leave.ErrRequestNotCancellable)
}

func TestCancelRequest_NotOwner_Rejected(t *testing.T) {
	f := newLeaveFixture(t)

	created := f.createRequest(t, "2026-04-06", "2026-04-08")

	_, err := f.svc.CancelRequest(context.Background(), managerActor(), created.ID)
	assert.ErrorIs(t, err, leave.ErrNotRequestOwner)
}

func TestGetEmployeeBalances_DefaultsToCurrentYear(t *testing.T) {
	f := newLeaveFixture(t)

	balances, err := f.svc.GetEmployeeBalances(context.Background(), "emp-1", 0)
	require.NoError(t, err)

	require.Len(t, balances, 1)
	assert.Equal(t, 2026, balances[0].Year)
	assert.Equal(t, 12, balances[0].RemainingDays)
}

func TestInitBalance_UsesTypeQuota(t *testing.T) {
	f := newLeaveFixture(t)

	b, err := f.svc.InitBalance(context.Background(), "emp-2", "type-annual", 2026)
	require.NoError(t, err)

	assert.Equal(t, 12, b.AnnualQuota)
	assert.Equal(t, 0, b.UsedDays)
}
