package leave

import (
	"context"

	"github.com/angkorhr/hrms-backend-go/internal/domain/user"
)

// Service is the leave balance engine. The caller's identity is threaded in
// explicitly; the router gates roles, the engine re-validates state.
type Service interface {
	// CreateRequest validates dates, overlap and current availability, then
	// files a pending request. The balance is not decremented here; it is
	// re-validated atomically at approval.
	CreateRequest(ctx context.Context, actor user.Identity, req CreateRequestRequest) (RequestResponse, error)

	// ApproveRequest flips pending -> approved and consumes the balance in
	// one transaction. Fails with ErrInsufficientBalance when the guarded
	// decrement loses to a concurrent approval.
	ApproveRequest(ctx context.Context, actor user.Identity, requestID string) (RequestResponse, error)

	// RejectRequest flips pending -> rejected with decision notes. No balance
	// effect.
	RejectRequest(ctx context.Context, actor user.Identity, requestID string, req RejectRequestRequest) (RequestResponse, error)

	// CancelRequest cancels a pending request, or an approved one strictly
	// before its start date; cancelling an approved request restores the
	// balance by exactly the requested days.
	CancelRequest(ctx context.Context, actor user.Identity, requestID string) (RequestResponse, error)

	// GetEmployeeBalances reads balances for the year (current year when
	// year == 0).
	GetEmployeeBalances(ctx context.Context, employeeID string, year int) ([]BalanceResponse, error)

	GetRequest(ctx context.Context, id string) (RequestResponse, error)
	ListRequests(ctx context.Context, filter RequestFilter) (ListRequestsResponse, error)
	ListMyRequests(ctx context.Context, employeeID string, filter RequestFilter) (ListRequestsResponse, error)

	CreateType(ctx context.Context, req CreateTypeRequest) (Type, error)
	ListTypes(ctx context.Context) ([]Type, error)

	// InitBalance provisions an employee's yearly balance for a leave type.
	InitBalance(ctx context.Context, employeeID, leaveTypeID string, year int) (Balance, error)
}
