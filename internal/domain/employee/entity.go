package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type EmploymentStatus string

const (
	StatusActive   EmploymentStatus = "active"
	StatusInactive EmploymentStatus = "inactive"
)

type Employee struct {
	ID           string
	UserID       *string
	FullName     string
	Email        string
	EmployeeCode string
	Department   string
	Position     string
	BaseSalary   decimal.Decimal
	Status       EmploymentStatus
	HireDate     time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (e *Employee) IsActive() bool {
	return e.Status == StatusActive
}
