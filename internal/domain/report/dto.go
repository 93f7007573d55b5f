package report

import (
	"github.com/angkorhr/hrms-backend-go/internal/pkg/validator"
)

// ========================================
// REPORT DTOs
// ========================================

type HeadcountRow struct {
	Department string `json:"department"`
	Headcount  int    `json:"headcount"`
}

type HeadcountReport struct {
	GeneratedAt string         `json:"generated_at"`
	Total       int            `json:"total"`
	Departments []HeadcountRow `json:"departments"`
}

type AttendanceSummaryRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (r *AttendanceSummaryRequest) Validate() error {
	var errs validator.ValidationErrors

	startDate, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be YYYY-MM-DD",
		})
	}
	endDate, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be YYYY-MM-DD",
		})
	}
	if startOK && endOK && endDate.Before(startDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AttendanceSummary struct {
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	GeneratedAt string `json:"generated_at"`
	Present     int    `json:"present"`
	Late        int    `json:"late"`
	Absent      int    `json:"absent"`
	HalfDay     int    `json:"half_day"`
}

type LeaveUtilizationRow struct {
	LeaveTypeID   string `json:"leave_type_id"`
	LeaveTypeName string `json:"leave_type_name"`
	DaysConsumed  int    `json:"days_consumed"`
}

type LeaveUtilizationReport struct {
	Year        int                   `json:"year"`
	GeneratedAt string                `json:"generated_at"`
	Types       []LeaveUtilizationRow `json:"types"`
}

type PayrollTotalsRequest struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (r *PayrollTotalsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}
	if r.Year < 2000 || r.Year > 2100 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year is out of range",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PayrollTotals struct {
	PeriodMonth   int    `json:"period_month"`
	PeriodYear    int    `json:"period_year"`
	GeneratedAt   string `json:"generated_at"`
	EmployeeCount int    `json:"employee_count"`
	TotalBase     string `json:"total_base"`
	TotalNet      string `json:"total_net"`
}
