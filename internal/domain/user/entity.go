package user

import "time"

type Role string

const (
	RoleAdmin     Role = "admin"      // Full access, including user management
	RoleHRManager Role = "hr_manager" // HR operations: employees, payroll, sweeps
	RoleManager   Role = "manager"    // Can approve leave and view team data
	RoleEmployee  Role = "employee"   // Regular employee
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleHRManager, RoleManager, RoleEmployee:
		return true
	}
	return false
}

type User struct {
	ID           string
	Email        string
	PasswordHash string
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// DTO / Join
	EmployeeID *string
}

// CanApprove checks if user can approve leave requests
func (u *User) CanApprove() bool {
	return u.Role == RoleManager || u.Role == RoleHRManager || u.Role == RoleAdmin
}

// CanManageEmployees checks if user can create or deactivate employees
func (u *User) CanManageEmployees() bool {
	return u.Role == RoleHRManager || u.Role == RoleAdmin
}
