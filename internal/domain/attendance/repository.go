package attendance

import (
	"context"
	"time"
)

// Repository defines data access for attendance records. Mutations against
// shared state are single conditional statements; callers must never
// read-modify-write a record across two calls.
type Repository interface {
	// InsertCheckIn atomically upserts the check-in keyed on
	// (employee_id, work_date). If a record for the key already carries a
	// check-in it returns ErrAlreadyCheckedIn and changes nothing; a record
	// created by the absence sweep (no times) is filled in instead.
	InsertCheckIn(ctx context.Context, rec Record) (Record, error)

	// CompleteCheckOut sets check-out fields only when the record is still
	// open (check_out_time IS NULL). Returns ErrAlreadyCheckedOut when the
	// guard fails against a concurrent close.
	CompleteCheckOut(ctx context.Context, rec Record) error

	// GetByEmployeeAndDate returns nil when no record exists.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, workDate time.Time) (*Record, error)

	// CreateAbsences inserts absent records for every active employee with no
	// record on workDate, skipping existing rows. Returns the number created.
	CreateAbsences(ctx context.Context, workDate time.Time) (int, error)

	GetByID(ctx context.Context, id string) (Record, error)
	List(ctx context.Context, filter ListFilter) ([]Record, int64, error)
	ListByEmployee(ctx context.Context, employeeID string, filter ListFilter) ([]Record, int64, error)
}
