package payroll

import (
	"github.com/angkorhr/hrms-backend-go/internal/pkg/validator"
)

type GenerateRequest struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (r *GenerateRequest) Validate() error {
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

type RecordResponse struct {
	ID               string  `json:"id"`
	EmployeeID       string  `json:"employee_id"`
	EmployeeName     *string `json:"employee_name,omitempty"`
	Department       *string `json:"department,omitempty"`
	PeriodMonth      int     `json:"period_month"`
	PeriodYear       int     `json:"period_year"`
	BaseSalary       string  `json:"base_salary"`
	WorkingDays      int     `json:"working_days"`
	AbsentDays       int     `json:"absent_days"`
	AbsenceDeduction string  `json:"absence_deduction"`
	NetSalary        string  `json:"net_salary"`
	Status           string  `json:"status"`
}

type GenerateResult struct {
	PeriodMonth int `json:"period_month"`
	PeriodYear  int `json:"period_year"`
	Generated   int `json:"generated"`
	Skipped     int `json:"skipped"`
}

type ListFilter struct {
	Month *int
	Year  *int
	Page  int
	Limit int
}

type ListRecordsResponse struct {
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	Records    []RecordResponse `json:"records"`
}
