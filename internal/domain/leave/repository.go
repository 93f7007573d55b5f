package leave

import (
	"context"
	"time"
)

// TypeRepository - interface for leave_types table
type TypeRepository interface {
	Create(ctx context.Context, t Type) (Type, error)
	GetByID(ctx context.Context, id string) (Type, error)
	List(ctx context.Context) ([]Type, error)
}

// RequestRepository - interface for leave_requests table
type RequestRepository interface {
	Create(ctx context.Context, req Request) (Request, error)
	GetByID(ctx context.Context, id string) (Request, error)

	// HasOverlapping reports whether the employee already has a pending or
	// approved request intersecting [startDate, endDate].
	HasOverlapping(ctx context.Context, employeeID string, startDate, endDate time.Time) (bool, error)

	// UpdateStatusFromPending flips pending -> status in one statement and
	// returns ErrRequestNotPending when the row was no longer pending.
	UpdateStatusFromPending(ctx context.Context, id string, status RequestStatus, approvedBy *string, notes *string) error

	// MarkCancelled sets status=cancelled only while the row still has
	// fromStatus; returns ErrRequestNotCancellable otherwise.
	MarkCancelled(ctx context.Context, id string, fromStatus RequestStatus) error

	List(ctx context.Context, filter RequestFilter) ([]Request, int64, error)
	ListByEmployee(ctx context.Context, employeeID string, filter RequestFilter) ([]Request, int64, error)
}

// BalanceRepository - interface for leave_balances table. The consume/restore
// mutations are atomic conditional updates; a plain read-then-write here is a
// correctness bug under concurrent approvals.
type BalanceRepository interface {
	Create(ctx context.Context, b Balance) (Balance, error)
	GetByEmployeeTypeYear(ctx context.Context, employeeID, leaveTypeID string, year int) (Balance, error)
	ListByEmployeeYear(ctx context.Context, employeeID string, year int) ([]Balance, error)

	// ConsumeDays adds days to used_days only while annual_quota - used_days
	// still covers them; returns ErrInsufficientBalance when the guard fails.
	ConsumeDays(ctx context.Context, employeeID, leaveTypeID string, year, days int) error

	// RestoreDays subtracts days from used_days, guarded so used_days never
	// goes negative.
	RestoreDays(ctx context.Context, employeeID, leaveTypeID string, year, days int) error
}
