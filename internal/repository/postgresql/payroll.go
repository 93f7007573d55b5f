package postgresql

import (
	"context"
	"fmt"

	"github.com/angkorhr/hrms-backend-go/internal/domain/payroll"
	"github.com/angkorhr/hrms-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type payrollRepositoryImpl struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.Repository {
	return &payrollRepositoryImpl{db: db}
}

// CreateIfAbsent implements payroll.Repository.
func (r *payrollRepositoryImpl) CreateIfAbsent(ctx context.Context, rec payroll.Record) (bool, error) {
	q := GetQuerier(ctx, r.db)

	if rec.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return false, fmt.Errorf("failed to generate payroll record id: %w", err)
		}
		rec.ID = id.String()
	}

	query := `
		INSERT INTO payroll_records (
			id, employee_id, period_month, period_year, base_salary,
			working_days, absent_days, absence_deduction, net_salary,
			status, generated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (employee_id, period_month, period_year) DO NOTHING
	`

	commandTag, err := q.Exec(ctx, query,
		rec.ID,
		rec.EmployeeID,
		rec.PeriodMonth,
		rec.PeriodYear,
		rec.BaseSalary,
		rec.WorkingDays,
		rec.AbsentDays,
		rec.AbsenceDeduction,
		rec.NetSalary,
		rec.Status,
		rec.GeneratedAt,
	)
	if err != nil {
		return false, err
	}

	return commandTag.RowsAffected() > 0, nil
}

// GetByID implements payroll.Repository.
func (r *payrollRepositoryImpl) GetByID(ctx context.Context, id string) (payroll.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT p.id, p.employee_id, p.period_month, p.period_year, p.base_salary,
			   p.working_days, p.absent_days, p.absence_deduction, p.net_salary,
			   p.status, p.generated_at, p.created_at, p.updated_at,
			   e.full_name AS employee_name,
			   e.department AS department
		FROM payroll_records p
		JOIN employees e ON e.id = p.employee_id
		WHERE p.id = $1
	`

	var found payroll.Record
	err := q.QueryRow(ctx, query, id).Scan(
		&found.ID,
		&found.EmployeeID,
		&found.PeriodMonth,
		&found.PeriodYear,
		&found.BaseSalary,
		&found.WorkingDays,
		&found.AbsentDays,
		&found.AbsenceDeduction,
		&found.NetSalary,
		&found.Status,
		&found.GeneratedAt,
		&found.CreatedAt,
		&found.UpdatedAt,
		&found.EmployeeName,
		&found.Department,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Record{}, payroll.ErrRecordNotFound
		}
		return payroll.Record{}, err
	}

	return found, nil
}

// List implements payroll.Repository.
func (r *payrollRepositoryImpl) List(ctx context.Context, filter payroll.ListFilter) ([]payroll.Record, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.Month != nil {
		baseWhere += fmt.Sprintf(" AND p.period_month = $%d", argIdx)
		args = append(args, *filter.Month)
		argIdx++
	}
	if filter.Year != nil {
		baseWhere += fmt.Sprintf(" AND p.period_year = $%d", argIdx)
		args = append(args, *filter.Year)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM payroll_records p WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count payroll records: %w", err)
	}

	selectQuery := fmt.Sprintf(`
		SELECT p.id, p.employee_id, p.period_month, p.period_year, p.base_salary,
			   p.working_days, p.absent_days, p.absence_deduction, p.net_salary,
			   p.status, p.generated_at, p.created_at, p.updated_at,
			   e.full_name AS employee_name,
			   e.department AS department
		FROM payroll_records p
		JOIN employees e ON e.id = p.employee_id
		WHERE %s
		ORDER BY p.period_year DESC, p.period_month DESC, e.full_name
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
		return nil, 0, fmt.Errorf("failed to query payroll records: %w", err)
	}
	defer rows.Close()

	records := make([]payroll.Record, 0)
	for rows.Next() {
		var rec payroll.Record
		if err := rows.Scan(
			&rec.ID,
			&rec.EmployeeID,
			&rec.PeriodMonth,
			&rec.PeriodYear,
			&rec.BaseSalary,
			&rec.WorkingDays,
			&rec.AbsentDays,
			&rec.AbsenceDeduction,
			&rec.NetSalary,
			&rec.Status,
			&rec.GeneratedAt,
			&rec.CreatedAt,
			&rec.UpdatedAt,
			&rec.EmployeeName,
			&rec.Department,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		records = append(records, rec)
	}

	return records, total, nil
}

// MarkPaid implements payroll.Repository.
func (r *payrollRepositoryImpl) MarkPaid(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_records
		SET status = 'paid', updated_at = NOW()
		WHERE id = $1 AND status = 'draft'
	`

	commandTag, err := q.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return payroll.ErrAlreadyPaid
	}

	return nil
}

// CountAbsences implements payroll.Repository.
func (r *payrollRepositoryImpl) CountAbsences(ctx context.Context, month, year int) (map[string]int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT employee_id, COUNT(*)
		FROM attendance_records
		WHERE status = 'absent'
		  AND EXTRACT(MONTH FROM work_date) = $1
		  AND EXTRACT(YEAR FROM work_date) = $2
		GROUP BY employee_id
	`

	rows, err := q.Query(ctx, query, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to count absences: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var employeeID string
		var count int
		if err := rows.Scan(&employeeID, &count); err != nil {
			return nil, fmt.Errorf("failed to scan absence count: %w", err)
		}
		counts[employeeID] = count
	}

	return counts, nil
}
