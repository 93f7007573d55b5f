package payroll

import "context"

type Repository interface {
	// CreateIfAbsent inserts the record unless one exists for the same
	// (employee_id, period_month, period_year). Returns false when skipped.
	CreateIfAbsent(ctx context.Context, rec Record) (bool, error)

	GetByID(ctx context.Context, id string) (Record, error)
	List(ctx context.Context, filter ListFilter) ([]Record, int64, error)
	MarkPaid(ctx context.Context, id string) error

	// CountAbsences returns absent-day counts per employee for the period.
	CountAbsences(ctx context.Context, month, year int) (map[string]int, error)
}
