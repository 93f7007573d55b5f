package payroll

import (
	"context"
	"fmt"
	"time"

	"github.com/angkorhr/hrms-backend-go/internal/domain/employee"
	"github.com/angkorhr/hrms-backend-go/internal/domain/payroll"
	"github.com/angkorhr/hrms-backend-go/internal/pkg/clock"
	"github.com/angkorhr/hrms-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type PayrollServiceImpl struct {
	db *database.DB
	payroll.Repository
	employees employee.Repository
	clk       clock.Clock
}

func NewPayrollService(db *database.DB, payrollRepo payroll.Repository, employeeRepo employee.Repository, clk clock.Clock) payroll.Service {
	return &PayrollServiceImpl{
		db:         db,
		Repository: payrollRepo,
		employees:  employeeRepo,
		clk:        clk,
	}
}

// Generate implements payroll.Service.
//
// One record per (employee, month, year); the insert skips existing rows, so
// regenerating a period only fills in employees hired since the last run.
func (s *PayrollServiceImpl) Generate(ctx context.Context, req payroll.GenerateRequest) (payroll.GenerateResult, error) {
	if err := req.Validate(); err != nil {
		return payroll.GenerateResult{}, err
	}

	employees, err := s.employees.ListActive(ctx)
	if err != nil {
		return payroll.GenerateResult{}, fmt.Errorf("failed to list active employees: %w", err)
	}
	if len(employees) == 0 {
		return payroll.GenerateResult{}, payroll.ErrNothingGenerated
	}

	absences, err := s.Repository.CountAbsences(ctx, req.Month, req.Year)
	if err != nil {
		return payroll.GenerateResult{}, fmt.Errorf("failed to count absences: %w", err)
	}

	workingDays := weekdaysInMonth(req.Month, req.Year, s.clk.Location())
	now := s.clk.Now()

	result := payroll.GenerateResult{PeriodMonth: req.Month, PeriodYear: req.Year}
	for _, emp := range employees {
		absentDays := absences[emp.ID]

		dailyRate := emp.BaseSalary.Div(decimal.NewFromInt(int64(workingDays)))
		deduction := dailyRate.Mul(decimal.NewFromInt(int64(absentDays))).Round(2)
		if absentDays >= workingDays {
			deduction = emp.BaseSalary
		}
		net := emp.BaseSalary.Sub(deduction)

		created, err := s.Repository.CreateIfAbsent(ctx, payroll.Record{
			EmployeeID:       emp.ID,
			PeriodMonth:      req.Month,
			PeriodYear:       req.Year,
			BaseSalary:       emp.BaseSalary,
			WorkingDays:      workingDays,
			AbsentDays:       absentDays,
			AbsenceDeduction: deduction,
			NetSalary:        net,
			Status:           payroll.StatusDraft,
			GeneratedAt:      now,
		})
		if err != nil {
			return payroll.GenerateResult{}, fmt.Errorf("failed to create payroll record for employee %s: %w", emp.ID, err)
		}
		if created {
			result.Generated++
		} else {
			result.Skipped++
		}
	}

	return result, nil
}

// Get implements payroll.Service.
func (s *PayrollServiceImpl) Get(ctx context.Context, id string) (payroll.RecordResponse, error) {
	rec, err := s.Repository.GetByID(ctx, id)
	if err != nil {
		return payroll.RecordResponse{}, err
	}
	return toResponse(rec), nil
}

// List implements payroll.Service.
func (s *PayrollServiceImpl) List(ctx context.Context, filter payroll.ListFilter) (payroll.ListRecordsResponse, error) {
	records, total, err := s.Repository.List(ctx, filter)
	if err != nil {
		return payroll.ListRecordsResponse{}, fmt.Errorf("failed to list payroll records: %w", err)
	}

	page := filter.Page
	if page == 0 {
		page = 1
	}
	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}

	responses := make([]payroll.RecordResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, toResponse(rec))
	}

	return payroll.ListRecordsResponse{
		TotalCount: total,
		Page:       page,
		Limit:      limit,
		Records:    responses,
	}, nil
}

// MarkPaid implements payroll.Service.
func (s *PayrollServiceImpl) MarkPaid(ctx context.Context, id string) error {
	if _, err := s.Repository.GetByID(ctx, id); err != nil {
		return err
	}
	return s.Repository.MarkPaid(ctx, id)
}

// weekdaysInMonth counts Monday through Friday dates in the period.
func weekdaysInMonth(month, year int, loc *time.Location) int {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	count := 0
	for d := first; d.Month() == time.Month(month); d = d.AddDate(0, 0, 1) {
		if d.Weekday() != time.Saturday && d.Weekday() != time.Sunday {
			count++
		}
	}
	return count
}

func toResponse(rec payroll.Record) payroll.RecordResponse {
	return payroll.RecordResponse{
		ID:               rec.ID,
		EmployeeID:       rec.EmployeeID,
		EmployeeName:     rec.EmployeeName,
		Department:       rec.Department,
		PeriodMonth:      rec.PeriodMonth,
		PeriodYear:       rec.PeriodYear,
		BaseSalary:       rec.BaseSalary.StringFixed(2),
		WorkingDays:      rec.WorkingDays,
		AbsentDays:       rec.AbsentDays,
		AbsenceDeduction: rec.AbsenceDeduction.StringFixed(2),
		NetSalary:        rec.NetSalary.StringFixed(2),
		Status:           string(rec.Status),
	}
}
