package postgresql

import (
	"context"
	"fmt"

	"github.com/angkorhr/hrms-backend-go/internal/domain/employee"
	"github.com/angkorhr/hrms-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.Repository {
	return &employeeRepositoryImpl{db: db}
}

// Create implements employee.Repository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (
			user_id, full_name, email, employee_code, department, position,
			base_salary, status, hire_date
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, user_id, full_name, email, employee_code, department, position,
				  base_salary, status, hire_date, created_at, updated_at
	`

	var created employee.Employee
	err := q.QueryRow(ctx, query,
		e.UserID,
		e.FullName,
		e.Email,
		e.EmployeeCode,
		e.Department,
		e.Position,
		e.BaseSalary,
		e.Status,
		e.HireDate,
	).Scan(
		&created.ID,
		&created.UserID,
		&created.FullName,
		&created.Email,
		&created.EmployeeCode,
		&created.Department,
		&created.Position,
		&created.BaseSalary,
		&created.Status,
		&created.HireDate,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		return employee.Employee{}, err
	}

	return created, nil
}

// GetByID implements employee.Repository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, full_name, email, employee_code, department, position,
			   base_salary, status, hire_date, created_at, updated_at
		FROM employees
		WHERE id = $1
	`

	var found employee.Employee
	err := q.QueryRow(ctx, query, id).Scan(
		&found.ID,
		&found.UserID,
		&found.FullName,
		&found.Email,
		&found.EmployeeCode,
		&found.Department,
		&found.Position,
		&found.BaseSalary,
		&found.Status,
		&found.HireDate,
		&found.CreatedAt,
		&found.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, err
	}

	return found, nil
}

// GetByUserID implements employee.Repository.
func (r *employeeRepositoryImpl) GetByUserID(ctx context.Context, userID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, full_name, email, employee_code, department, position,
			   base_salary, status, hire_date, created_at, updated_at
		FROM employees
		WHERE user_id = $1
	`

	var found employee.Employee
	err := q.QueryRow(ctx, query, userID).Scan(
		&found.ID,
		&found.UserID,
		&found.FullName,
		&found.Email,
		&found.EmployeeCode,
		&found.Department,
		&found.Position,
		&found.BaseSalary,
		&found.Status,
		&found.HireDate,
		&found.CreatedAt,
		&found.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, err
	}

	return found, nil
}

// List implements employee.Repository.
func (r *employeeRepositoryImpl) List(ctx context.Context, filter employee.ListFilter) ([]employee.Employee, int64, error) {
	q := GetQuerier(ctx, r.db)

	// Build WHERE clause
	baseWhere := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.Department != nil && *filter.Department != "" {
		baseWhere += fmt.Sprintf(" AND department = $%d", argIdx)
		args = append(args, *filter.Department)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM employees WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	selectQuery := fmt.Sprintf(`
		SELECT id, user_id, full_name, email, employee_code, department, position,
			   base_salary, status, hire_date, created_at, updated_at
		FROM employees
		WHERE %s
		ORDER BY full_name
		LIMIT $%d OFFSET $%d
	`, baseWhere, argIdx, argIdx+1)

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	offset := (filter.Page - 1) * limit
	if offset < 0 {
		offset = 0
	}
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	employees := make([]employee.Employee, 0)
	for rows.Next() {
		var e employee.Employee
		if err := rows.Scan(
			&e.ID,
			&e.UserID,
			&e.FullName,
			&e.Email,
			&e.EmployeeCode,
			&e.Department,
			&e.Position,
			&e.BaseSalary,
			&e.Status,
			&e.HireDate,
			&e.CreatedAt,
			&e.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}

	return employees, total, nil
}

// ListActive implements employee.Repository.
func (r *employeeRepositoryImpl) ListActive(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, full_name, email, employee_code, department, position,
			   base_salary, status, hire_date, created_at, updated_at
		FROM employees
		WHERE status = 'active'
		ORDER BY full_name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := make([]employee.Employee, 0)
	for rows.Next() {
		var e employee.Employee
		if err := rows.Scan(
			&e.ID,
			&e.UserID,
			&e.FullName,
			&e.Email,
			&e.EmployeeCode,
			&e.Department,
			&e.Position,
			&e.BaseSalary,
			&e.Status,
			&e.HireDate,
			&e.CreatedAt,
			&e.UpdatedAt,
		); err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}

	return employees, nil
}

// Update implements employee.Repository.
func (r *employeeRepositoryImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET full_name = COALESCE($1, full_name),
			department = COALESCE($2, department),
			position = COALESCE($3, position),
			base_salary = COALESCE($4::numeric, base_salary),
			updated_at = NOW()
		WHERE id = $5
	`

	commandTag, err := q.Exec(ctx, query,
		req.FullName,
		req.Department,
		req.Position,
		req.BaseSalary,
		req.ID,
	)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

// LinkUser implements employee.Repository.
func (r *employeeRepositoryImpl) LinkUser(ctx context.Context, id string, userID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET user_id = $1, updated_at = NOW()
		WHERE id = $2
	`

	commandTag, err := q.Exec(ctx, query, userID, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

// SetStatus implements employee.Repository.
func (r *employeeRepositoryImpl) SetStatus(ctx context.Context, id string, status employee.EmploymentStatus) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`

	commandTag, err := q.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}
