package employee

import "context"

type Repository interface {
	Create(ctx context.Context, e Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByUserID(ctx context.Context, userID string) (Employee, error)
	List(ctx context.Context, filter ListFilter) ([]Employee, int64, error)
	ListActive(ctx context.Context) ([]Employee, error)
	Update(ctx context.Context, req UpdateEmployeeRequest) error
	SetStatus(ctx context.Context, id string, status EmploymentStatus) error

	// LinkUser attaches a login account to the employee record.
	LinkUser(ctx context.Context, id string, userID string) error
}
