package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/angkorhr/hrms-backend-go/internal/domain/report"
	"github.com/angkorhr/hrms-backend-go/internal/pkg/database"
)

type reportRepositoryImpl struct {
	db *database.DB
}

func NewReportRepository(db *database.DB) report.Repository {
	return &reportRepositoryImpl{db: db}
}

// HeadcountByDepartment implements report.Repository.
func (r *reportRepositoryImpl) HeadcountByDepartment(ctx context.Context) ([]report.HeadcountRow, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT department, COUNT(*)
		FROM employees
		WHERE status = 'active'
		GROUP BY department
		ORDER BY department
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query headcount: %w", err)
	}
	defer rows.Close()

	result := make([]report.HeadcountRow, 0)
	for rows.Next() {
		var row report.HeadcountRow
		if err := rows.Scan(&row.Department, &row.Headcount); err != nil {
			return nil, fmt.Errorf("failed to scan headcount row: %w", err)
		}
		result = append(result, row)
	}

	return result, nil
}

// AttendanceStatusCounts implements report.Repository.
func (r *reportRepositoryImpl) AttendanceStatusCounts(ctx context.Context, startDate, endDate time.Time) (map[string]int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT status, COUNT(*)
		FROM attendance_records
		WHERE work_date >= $1 AND work_date <= $2
		GROUP BY status
	`

	rows, err := q.Query(ctx, query, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance summary: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan attendance summary row: %w", err)
		}
		counts[status] = count
	}

	return counts, nil
}

// LeaveDaysConsumedByType implements report.Repository.
func (r *reportRepositoryImpl) LeaveDaysConsumedByType(ctx context.Context, year int) ([]report.LeaveUtilizationRow, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT lt.id, lt.name, COALESCE(SUM(lb.used_days), 0)
		FROM leave_types lt
		LEFT JOIN leave_balances lb ON lb.leave_type_id = lt.id AND lb.year = $1
		GROUP BY lt.id, lt.name
		ORDER BY lt.name
	`

	rows, err := q.Query(ctx, query, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query leave utilization: %w", err)
	}
	defer rows.Close()

	result := make([]report.LeaveUtilizationRow, 0)
	for rows.Next() {
		var row report.LeaveUtilizationRow
		if err := rows.Scan(&row.LeaveTypeID, &row.LeaveTypeName, &row.DaysConsumed); err != nil {
			return nil, fmt.Errorf("failed to scan leave utilization row: %w", err)
		}
		result = append(result, row)
	}

	return result, nil
}

// PayrollTotals implements report.Repository.
func (r *reportRepositoryImpl) PayrollTotals(ctx context.Context, month, year int) (report.PayrollAggregate, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*), COALESCE(SUM(base_salary), 0), COALESCE(SUM(net_salary), 0)
		FROM payroll_records
		WHERE period_month = $1 AND period_year = $2
	`

	var agg report.PayrollAggregate
	err := q.QueryRow(ctx, query, month, year).Scan(
		&agg.EmployeeCount,
		&agg.TotalBase,
		&agg.TotalNet,
	)
	if err != nil {
		return report.PayrollAggregate{}, fmt.Errorf("failed to query payroll totals: %w", err)
	}

	return agg, nil
}
