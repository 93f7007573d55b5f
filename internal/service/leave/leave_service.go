package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/angkorhr/hrms-backend-go/internal/domain/leave"
	"github.com/angkorhr/hrms-backend-go/internal/domain/user"
	"github.com/angkorhr/hrms-backend-go/internal/pkg/clock"
	"github.com/angkorhr/hrms-backend-go/internal/pkg/database"
	"github.com/angkorhr/hrms-backend-go/internal/repository/postgresql"
)

// LeaveServiceImpl is the leave balance engine. The availability check at
// creation is advisory; the binding check is the guarded decrement that runs
// inside the approval transaction.
type LeaveServiceImpl struct {
	db *database.DB
	leave.TypeRepository
	leave.RequestRepository
	leave.BalanceRepository
	clk clock.Clock

	// runInTx wraps fn in a database transaction; replaced in tests.
	runInTx func(ctx context.Context, fn func(ctx context.Context) error) error
}

func NewLeaveService(
	db *database.DB,
	typeRepository leave.TypeRepository,
	requestRepository leave.RequestRepository,
	balanceRepository leave.BalanceRepository,
	clk clock.Clock,
) leave.Service {
	s := &LeaveServiceImpl{
		db:                db,
		TypeRepository:    typeRepository,
		RequestRepository: requestRepository,
		BalanceRepository: balanceRepository,
		clk:               clk,
	}
	s.runInTx = func(ctx context.Context, fn func(ctx context.Context) error) error {
		return postgresql.WithTransaction(ctx, s.db, fn)
	}
	return s
}

// CreateRequest implements leave.Service.
func (l *LeaveServiceImpl) CreateRequest(ctx context.Context, actor user.Identity, req leave.CreateRequestRequest) (leave.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.RequestResponse{}, err
	}
	if actor.EmployeeID == "" {
		return leave.RequestResponse{}, leave.ErrNotRequestOwner
	}

	leaveType, err := l.TypeRepository.GetByID(ctx, req.LeaveTypeID)
	if err != nil {
		return leave.RequestResponse{}, err
	}
	if !leaveType.IsActive {
		return leave.RequestResponse{}, leave.ErrTypeInactive
	}

	startDate, err := time.ParseInLocation("2006-01-02", req.StartDate, l.clk.Location())
	if err != nil {
		return leave.RequestResponse{}, fmt.Errorf("failed to parse start date: %w", err)
	}
	endDate, err := time.ParseInLocation("2006-01-02", req.EndDate, l.clk.Location())
	if err != nil {
		return leave.RequestResponse{}, fmt.Errorf("failed to parse end date: %w", err)
	}

	hasOverlap, err := l.RequestRepository.HasOverlapping(ctx, actor.EmployeeID, startDate, endDate)
	if err != nil {
		return leave.RequestResponse{}, fmt.Errorf("failed to check overlapping leave requests: %w", err)
	}
	if hasOverlap {
		return leave.RequestResponse{}, leave.ErrOverlappingRequest
	}

	requestedDays := leave.RequestedDaysBetween(startDate, endDate)

	// Advisory availability check. Approval re-validates atomically, so a
	// request that slips past here still cannot oversubscribe the balance.
	balance, err := l.BalanceRepository.GetByEmployeeTypeYear(ctx, actor.EmployeeID, leaveType.ID, startDate.Year())
	if err != nil {
		return leave.RequestResponse{}, err
	}
	if balance.RemainingDays() < requestedDays {
		return leave.RequestResponse{}, leave.ErrInsufficientBalance
	}

	request := leave.Request{
		EmployeeID:    actor.EmployeeID,
		LeaveTypeID:   leaveType.ID,
		StartDate:     startDate,
		EndDate:       endDate,
		RequestedDays: requestedDays,
		Reason:        req.Reason,
		Status:        leave.RequestStatusPending,
	}

	created, err := l.RequestRepository.Create(ctx, request)
	if err != nil {
		return leave.RequestResponse{}, fmt.Errorf("failed to create leave request: %w", err)
	}
	created.LeaveTypeName = &leaveType.Name

	return l.toResponse(created), nil
}

// ApproveRequest implements leave.Service.
func (l *LeaveServiceImpl) ApproveRequest(ctx context.Context, actor user.Identity, requestID string) (leave.RequestResponse, error) {
	request, err := l.RequestRepository.GetByID(ctx, requestID)
	if err != nil {
		return leave.RequestResponse{}, err
	}
	if request.Status != leave.RequestStatusPending {
		return leave.RequestResponse{}, leave.ErrRequestNotPending
	}

	// Status flip and balance decrement commit together or not at all. Both
	// statements are guarded, so losing a race to another approver surfaces
	// as a domain error instead of a double spend.
	err = l.runInTx(ctx, func(txCtx context.Context) error {
		if err := l.RequestRepository.UpdateStatusFromPending(txCtx, requestID, leave.RequestStatusApproved, &actor.UserID, nil); err != nil {
			return err
		}
		return l.BalanceRepository.ConsumeDays(txCtx, request.EmployeeID, request.LeaveTypeID, request.StartDate.Year(), request.RequestedDays)
	})
	if err != nil {
		return leave.RequestResponse{}, err
	}

	return l.GetRequest(ctx, requestID)
}

// RejectRequest implements leave.Service.
func (l *LeaveServiceImpl) RejectRequest(ctx context.Context, actor user.Identity, requestID string, req leave.RejectRequestRequest) (leave.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.RequestResponse{}, err
	}

	if _, err := l.RequestRepository.GetByID(ctx, requestID); err != nil {
		return leave.RequestResponse{}, err
	}

	if err := l.RequestRepository.UpdateStatusFromPending(ctx, requestID, leave.RequestStatusRejected, &actor.UserID, &req.Notes); err != nil {
		return leave.RequestResponse{}, err
	}

	return l.GetRequest(ctx, requestID)
}

// CancelRequest implements leave.Service.
func (l *LeaveServiceImpl) CancelRequest(ctx context.Context, actor user.Identity, requestID string) (leave.RequestResponse, error) {
	request, err := l.RequestRepository.GetByID(ctx, requestID)
	if err != nil {
		return leave.RequestResponse{}, err
	}
	if request.EmployeeID != actor.EmployeeID {
		return leave.RequestResponse{}, leave.ErrNotRequestOwner
	}

	switch request.Status {
	case leave.RequestStatusPending:
		if err := l.RequestRepository.MarkCancelled(ctx, requestID, leave.RequestStatusPending); err != nil {
			return leave.RequestResponse{}, err
		}

	case leave.RequestStatusApproved:
		// Approved requests are cancellable strictly before the leave starts,
		// measured against the start of start_date in the organization
		// timezone.
		if !l.clk.Now().Before(clock.WorkDateOf(request.StartDate, l.clk.Location())) {
			return leave.RequestResponse{}, leave.ErrRequestNotCancellable
		}

		err = l.runInTx(ctx, func(txCtx context.Context) error {
			if err := l.RequestRepository.MarkCancelled(txCtx, requestID, leave.RequestStatusApproved); err != nil {
				return err
			}
			return l.BalanceRepository.RestoreDays(txCtx, request.EmployeeID, request.LeaveTypeID, request.StartDate.Year(), request.RequestedDays)
		})
		if err != nil {
			return leave.RequestResponse{}, err
		}

	default:
		return leave.RequestResponse{}, leave.ErrRequestNotCancellable
	}

	return l.GetRequest(ctx, requestID)
}

// GetEmployeeBalances implements leave.Service.
func (l *LeaveServiceImpl) GetEmployeeBalances(ctx context.Context, employeeID string, year int) ([]leave.BalanceResponse, error) {
	if year == 0 {
		year = l.clk.Now().Year()
	}

	balances, err := l.BalanceRepository.ListByEmployeeYear(ctx, employeeID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave balances: %w", err)
	}

	responses := make([]leave.BalanceResponse, 0, len(balances))
	for _, b := range balances {
		responses = append(responses, leave.BalanceResponse{
			LeaveTypeID:   b.LeaveTypeID,
			LeaveTypeName: b.LeaveTypeName,
			Year:          b.Year,
			AnnualQuota:   b.AnnualQuota,
			UsedDays:      b.UsedDays,
			RemainingDays: b.RemainingDays(),
		})
	}

	return responses, nil
}

// GetRequest implements leave.Service.
func (l *LeaveServiceImpl) GetRequest(ctx context.Context, id string) (leave.RequestResponse, error) {
	request, err := l.RequestRepository.GetByID(ctx, id)
	if err != nil {
		return leave.RequestResponse{}, err
	}
	return l.toResponse(request), nil
}

// ListRequests implements leave.Service.
func (l *LeaveServiceImpl) ListRequests(ctx context.Context, filter leave.RequestFilter) (leave.ListRequestsResponse, error) {
	requests, total, err := l.RequestRepository.List(ctx, filter)
	if err != nil {
		return leave.ListRequestsResponse{}, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return l.toListResponse(requests, total, filter), nil
}

// ListMyRequests implements leave.Service.
func (l *LeaveServiceImpl) ListMyRequests(ctx context.Context, employeeID string, filter leave.RequestFilter) (leave.ListRequestsResponse, error) {
	requests, total, err := l.RequestRepository.ListByEmployee(ctx, employeeID, filter)
	if err != nil {
		return leave.ListRequestsResponse{}, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return l.toListResponse(requests, total, filter), nil
}

// CreateType implements leave.Service.
func (l *LeaveServiceImpl) CreateType(ctx context.Context, req leave.CreateTypeRequest) (leave.Type, error) {
	if err := req.Validate(); err != nil {
		return leave.Type{}, err
	}

	created, err := l.TypeRepository.Create(ctx, leave.Type{
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
		AnnualQuota: req.AnnualQuota,
		IsActive:    true,
	})
	if err != nil {
		return leave.Type{}, fmt.Errorf("failed to create leave type: %w", err)
	}

	return created, nil
}

// ListTypes implements leave.Service.
func (l *LeaveServiceImpl) ListTypes(ctx context.Context) ([]leave.Type, error) {
	types, err := l.TypeRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave types: %w", err)
	}
	return types, nil
}

// InitBalance implements leave.Service.
func (l *LeaveServiceImpl) InitBalance(ctx context.Context, employeeID, leaveTypeID string, year int) (leave.Balance, error) {
	leaveType, err := l.TypeRepository.GetByID(ctx, leaveTypeID)
	if err != nil {
		return leave.Balance{}, err
	}
	if year == 0 {
		year = l.clk.Now().Year()
	}

	created, err := l.BalanceRepository.Create(ctx, leave.Balance{
		EmployeeID:  employeeID,
		LeaveTypeID: leaveTypeID,
		Year:        year,
		AnnualQuota: leaveType.AnnualQuota,
		UsedDays:    0,
	})
	if err != nil {
		return leave.Balance{}, fmt.Errorf("failed to create leave balance: %w", err)
	}

	return created, nil
}

func (l *LeaveServiceImpl) toResponse(request leave.Request) leave.RequestResponse {
	return leave.RequestResponse{
		ID:            request.ID,
		EmployeeID:    request.EmployeeID,
		EmployeeName:  request.EmployeeName,
		LeaveTypeID:   request.LeaveTypeID,
		LeaveTypeName: request.LeaveTypeName,
		StartDate:     request.StartDate.Format("2006-01-02"),
		EndDate:       request.EndDate.Format("2006-01-02"),
		RequestedDays: request.RequestedDays,
		Reason:        request.Reason,
		Status:        string(request.Status),
		ApprovedBy:    request.ApprovedBy,
		DecisionNotes: request.DecisionNotes,
	}
}

func (l *LeaveServiceImpl) toListResponse(requests []leave.Request, total int64, filter leave.RequestFilter) leave.ListRequestsResponse {
	page := filter.Page
	if page == 0 {
		page = 1
	}
	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}

	responses := make([]leave.RequestResponse, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, l.toResponse(request))
	}

	return leave.ListRequestsResponse{
		TotalCount: total,
		Page:       page,
		Limit:      limit,
		Requests:   responses,
	}
}
