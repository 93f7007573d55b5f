package leave

import (
	"time"
)

type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "pending"
	RequestStatusApproved  RequestStatus = "approved"
	RequestStatusRejected  RequestStatus = "rejected"
	RequestStatusCancelled RequestStatus = "cancelled"
)

// Type is a leave category (annual, sick, ...) with its yearly quota.
type Type struct {
	ID          string
	Name        string
	Code        string
	Description *string
	AnnualQuota int
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Request is a leave request over an inclusive calendar date range.
// Transitions are one-directional: pending -> approved|rejected|cancelled,
// approved -> cancelled (before the leave starts). rejected and cancelled are
// terminal.
type Request struct {
	ID          string
	EmployeeID  string
	LeaveTypeID string

	StartDate time.Time // calendar date, inclusive
	EndDate   time.Time // calendar date, inclusive

	// Inclusive day count, derived at creation.
	RequestedDays int

	Reason        string
	Status        RequestStatus
	ApprovedBy    *string
	ApprovedAt    *time.Time
	DecisionNotes *string

	CancelledAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO / Join
	LeaveTypeName *string
	EmployeeName  *string
}

// Balance tracks one employee's allotment for a leave type in a year.
// remaining = annual_quota - used_days and never goes negative; the repository
// enforces that with guarded updates.
type Balance struct {
	ID          string
	EmployeeID  string
	LeaveTypeID string
	Year        int

	AnnualQuota int
	UsedDays    int

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO / Join
	LeaveTypeName *string
}

// RemainingDays is the balance still available for approval.
func (b *Balance) RemainingDays() int {
	return b.AnnualQuota - b.UsedDays
}

// RequestedDaysBetween is the inclusive day count of a request's date range.
// Both dates are reduced to calendar days before subtracting, so a DST shift
// inside the range cannot skew the count.
func RequestedDaysBetween(startDate, endDate time.Time) int {
	start := time.Date(startDate.Year(), startDate.Month(), startDate.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(endDate.Year(), endDate.Month(), endDate.Day(), 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start).Hours()/24) + 1
}
