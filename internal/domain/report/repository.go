package report

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// PayrollAggregate carries the summed payroll columns for one period.
type PayrollAggregate struct {
	EmployeeCount int
	TotalBase     decimal.Decimal
	TotalNet      decimal.Decimal
}

type Repository interface {
	HeadcountByDepartment(ctx context.Context) ([]HeadcountRow, error)
	AttendanceStatusCounts(ctx context.Context, startDate, endDate time.Time) (map[string]int, error)
	LeaveDaysConsumedByType(ctx context.Context, year int) ([]LeaveUtilizationRow, error)
	PayrollTotals(ctx context.Context, month, year int) (PayrollAggregate, error)
}
