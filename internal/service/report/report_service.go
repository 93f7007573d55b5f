package report

import (
	"context"
	"fmt"
	"time"

	"github.com/angkorhr/hrms-backend-go/internal/domain/report"
	"github.com/angkorhr/hrms-backend-go/internal/pkg/clock"
	"github.com/angkorhr/hrms-backend-go/internal/pkg/database"
)

// ReportServiceImpl aggregates over whatever the writers have committed so
// far; numbers are a consistent-at-read-time snapshot, not a ledger.
type ReportServiceImpl struct {
	db *database.DB
	report.Repository
	clk clock.Clock
}

func NewReportService(db *database.DB, repo report.Repository, clk clock.Clock) report.Service {
	return &ReportServiceImpl{db: db, Repository: repo, clk: clk}
}

// HeadcountByDepartment implements report.Service.
func (s *ReportServiceImpl) HeadcountByDepartment(ctx context.Context) (report.HeadcountReport, error) {
	rows, err := s.Repository.HeadcountByDepartment(ctx)
	if err != nil {
		return report.HeadcountReport{}, fmt.Errorf("failed to build headcount report: %w", err)
	}

	total := 0
	for _, row := range rows {
		total += row.Headcount
	}

	return report.HeadcountReport{
		GeneratedAt: s.clk.Now().Format(time.RFC3339),
		Total:       total,
		Departments: rows,
	}, nil
}

// AttendanceSummary implements report.Service.
func (s *ReportServiceImpl) AttendanceSummary(ctx context.Context, req report.AttendanceSummaryRequest) (report.AttendanceSummary, error) {
	if err := req.Validate(); err != nil {
		return report.AttendanceSummary{}, err
	}

	startDate, _ := time.ParseInLocation("2006-01-02", req.StartDate, s.clk.Location())
	endDate, _ := time.ParseInLocation("2006-01-02", req.EndDate, s.clk.Location())

	counts, err := s.Repository.AttendanceStatusCounts(ctx, startDate, endDate)
	if err != nil {
		return report.AttendanceSummary{}, fmt.Errorf("failed to build attendance summary: %w", err)
	}

	return report.AttendanceSummary{
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		GeneratedAt: s.clk.Now().Format(time.RFC3339),
		Present:     counts["present"],
		Late:        counts["late"],
		Absent:      counts["absent"],
		HalfDay:     counts["half_day"],
	}, nil
}

// LeaveUtilization implements report.Service.
func (s *ReportServiceImpl) LeaveUtilization(ctx context.Context, year int) (report.LeaveUtilizationReport, error) {
	if year == 0 {
		year = s.clk.Now().Year()
	}

	rows, err := s.Repository.LeaveDaysConsumedByType(ctx, year)
	if err != nil {
		return report.LeaveUtilizationReport{}, fmt.Errorf("failed to build leave utilization report: %w", err)
	}

	return report.LeaveUtilizationReport{
		Year:        year,
		GeneratedAt: s.clk.Now().Format(time.RFC3339),
		Types:       rows,
	}, nil
}

// PayrollTotals implements report.Service.
func (s *ReportServiceImpl) PayrollTotals(ctx context.Context, req report.PayrollTotalsRequest) (report.PayrollTotals, error) {
	if err := req.Validate(); err != nil {
		return report.PayrollTotals{}, err
	}

	agg, err := s.Repository.PayrollTotals(ctx, req.Month, req.Year)
	if err != nil {
		return report.PayrollTotals{}, fmt.Errorf("failed to build payroll totals: %w", err)
	}

	return report.PayrollTotals{
		PeriodMonth:   req.Month,
		PeriodYear:    req.Year,
		GeneratedAt:   s.clk.Now().Format(time.RFC3339),
		EmployeeCount: agg.EmployeeCount,
		TotalBase:     agg.TotalBase.StringFixed(2),
		TotalNet:      agg.TotalNet.StringFixed(2),
	}, nil
}
