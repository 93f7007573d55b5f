package employee

import (
	"github.com/angkorhr/hrms-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	EmployeeCode string `json:"employee_code"`
	Department   string `json:"department"`
	Position     string `json:"position"`
	BaseSalary   string `json:"base_salary"`
	HireDate     string `json:"hire_date"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name is required",
		})
	}
	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is invalid",
		})
	}
	if !validator.IsValidEmployeeCode(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_code",
			Message: "employee_code must match EMP-NNNN",
		})
	}
	if validator.IsEmpty(r.Department) {
		errs = append(errs, validator.ValidationError{
			Field:   "department",
			Message: "department is required",
		})
	}
	if validator.IsEmpty(r.Position) {
		errs = append(errs, validator.ValidationError{
			Field:   "position",
			Message: "position is required",
		})
	}
	if validator.IsEmpty(r.BaseSalary) {
		errs = append(errs, validator.ValidationError{
			Field:   "base_salary",
			Message: "base_salary is required",
		})
	}
	if _, ok := validator.IsValidDate(r.HireDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "hire_date",
			Message: "hire_date must be YYYY-MM-DD",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	ID         string  `json:"-"`
	FullName   *string `json:"full_name,omitempty"`
	Department *string `json:"department,omitempty"`
	Position   *string `json:"position,omitempty"`
	BaseSalary *string `json:"base_salary,omitempty"`
}

type EmployeeResponse struct {
	ID           string `json:"id"`
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	EmployeeCode string `json:"employee_code"`
	Department   string `json:"department"`
	Position     string `json:"position"`
	BaseSalary   string `json:"base_salary"`
	Status       string `json:"status"`
	HireDate     string `json:"hire_date"`
}

type ListFilter struct {
	Department *string
	Status     *string
	Page       int
	Limit      int
}

type ListEmployeesResponse struct {
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	Employees  []EmployeeResponse `json:"employees"`
}
