package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusDraft Status = "draft"
	StatusPaid  Status = "paid"
)

// Record is one employee's payroll for a month. Net salary is base salary
// minus the absence deduction (base / working days in period x absent days
// from attendance). One record per (employee, month, year).
type Record struct {
	ID          string
	EmployeeID  string
	PeriodMonth int
	PeriodYear  int

	BaseSalary       decimal.Decimal
	WorkingDays      int
	AbsentDays       int
	AbsenceDeduction decimal.Decimal
	NetSalary        decimal.Decimal

	Status      Status
	GeneratedAt time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// DTO / Join
	EmployeeName *string
	Department   *string
}
