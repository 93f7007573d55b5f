package attendance

import (
	"context"
	"time"
)

// Service is the attendance engine: work-date boundaries, check-in/check-out
// transitions, work-hour computation and the absence sweep. Role gating is the
// caller's job; the engine enforces state invariants only.
type Service interface {
	// CheckIn opens the employee's attendance for the work date derived from
	// the timestamp in the organization timezone.
	CheckIn(ctx context.Context, employeeID string, req CheckInRequest) (RecordResponse, error)

	// CheckOut closes the record for the work date fixed at check-in. The
	// work date is passed through, never recomputed from the timestamp, so a
	// post-midnight check-out resolves to the prior day.
	CheckOut(ctx context.Context, employeeID string, req CheckOutRequest) (RecordResponse, error)

	// MarkAbsences creates absent records for active employees with no record
	// on the work date. Idempotent: re-running fills gaps only.
	MarkAbsences(ctx context.Context, workDate time.Time) (SweepResult, error)

	GetRecord(ctx context.Context, id string) (RecordResponse, error)
	ListRecords(ctx context.Context, filter ListFilter) (ListRecordsResponse, error)
	ListMyRecords(ctx context.Context, employeeID string, filter ListFilter) (ListRecordsResponse, error)
}
