package report

import "context"

// Service is the read-only reporting aggregator. No mutation; grouping and
// summation delegated to SQL.
type Service interface {
	HeadcountByDepartment(ctx context.Context) (HeadcountReport, error)
	AttendanceSummary(ctx context.Context, req AttendanceSummaryRequest) (AttendanceSummary, error)
	LeaveUtilization(ctx context.Context, year int) (LeaveUtilizationReport, error)
	PayrollTotals(ctx context.Context, req PayrollTotalsRequest) (PayrollTotals, error)
}
