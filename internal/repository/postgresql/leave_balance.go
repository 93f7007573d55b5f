package postgresql

import (
	"context"

	"github.com/angkorhr/hrms-backend-go/internal/domain/leave"
	"github.com/angkorhr/hrms-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveBalanceRepositoryImpl struct {
	db *database.DB
}

func NewLeaveBalanceRepository(db *database.DB) leave.BalanceRepository {
	return &leaveBalanceRepositoryImpl{db: db}
}

// Create implements leave.BalanceRepository.
func (r *leaveBalanceRepositoryImpl) Create(ctx context.Context, b leave.Balance) (leave.Balance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_balances (employee_id, leave_type_id, year, annual_quota, used_days)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, employee_id, leave_type_id, year, annual_quota, used_days,
				  created_at, updated_at
	`

	var created leave.Balance
	err := q.QueryRow(ctx, query,
		b.EmployeeID,
		b.LeaveTypeID,
		b.Year,
		b.AnnualQuota,
		b.UsedDays,
	).Scan(
		&created.ID,
		&created.EmployeeID,
		&created.LeaveTypeID,
		&created.Year,
		&created.AnnualQuota,
		&created.UsedDays,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		return leave.Balance{}, err
	}

	return created, nil
}

// GetByEmployeeTypeYear implements leave.BalanceRepository.
func (r *leaveBalanceRepositoryImpl) GetByEmployeeTypeYear(ctx context.Context, employeeID, leaveTypeID string, year int) (leave.Balance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, leave_type_id, year, annual_quota, used_days,
			   created_at, updated_at
		FROM leave_balances
		WHERE employee_id = $1 AND leave_type_id = $2 AND year = $3
	`

	var found leave.Balance
	err := q.QueryRow(ctx, query, employeeID, leaveTypeID, year).Scan(
		&found.ID,
		&found.EmployeeID,
		&found.LeaveTypeID,
		&found.Year,
		&found.AnnualQuota,
		&found.UsedDays,
		&found.CreatedAt,
		&found.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.Balance{}, leave.ErrBalanceNotFound
		}
		return leave.Balance{}, err
	}

	return found, nil
}

// ListByEmployeeYear implements leave.BalanceRepository.
func (r *leaveBalanceRepositoryImpl) ListByEmployeeYear(ctx context.Context, employeeID string, year int) ([]leave.Balance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT lb.id, lb.employee_id, lb.leave_type_id, lb.year,
			   lb.annual_quota, lb.used_days, lb.created_at, lb.updated_at,
			   lt.name AS leave_type_name
		FROM leave_balances lb
		JOIN leave_types lt ON lt.id = lb.leave_type_id
		WHERE lb.employee_id = $1 AND lb.year = $2
		ORDER BY lt.name
	`

	rows, err := q.Query(ctx, query, employeeID, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	balances := make([]leave.Balance, 0)
	for rows.Next() {
		var b leave.Balance
		if err := rows.Scan(
			&b.ID,
			&b.EmployeeID,
			&b.LeaveTypeID,
			&b.Year,
			&b.AnnualQuota,
			&b.UsedDays,
			&b.CreatedAt,
			&b.UpdatedAt,
			&b.LeaveTypeName,
		); err != nil {
			return nil, err
		}
		balances = append(balances, b)
	}

	return balances, nil
}

// ConsumeDays implements leave.BalanceRepository.
//
// The quota check lives in the WHERE clause, not in application code. Two
// concurrent approvals serialize on the row lock and the loser sees the
// already-incremented used_days, so the balance can never be oversubscribed.
func (r *leaveBalanceRepositoryImpl) ConsumeDays(ctx context.Context, employeeID, leaveTypeID string, year, days int) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_balances
		SET used_days = used_days + $1, updated_at = NOW()
		WHERE employee_id = $2 AND leave_type_id = $3 AND year = $4
		  AND annual_quota - used_days >= $1
	`

	commandTag, err := q.Exec(ctx, query, days, employeeID, leaveTypeID, year)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return leave.ErrInsufficientBalance
	}

	return nil
}

// RestoreDays implements leave.BalanceRepository.
func (r *leaveBalanceRepositoryImpl) RestoreDays(ctx context.Context, employeeID, leaveTypeID string, year, days int) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_balances
		SET used_days = used_days - $1, updated_at = NOW()
		WHERE employee_id = $2 AND leave_type_id = $3 AND year = $4
		  AND used_days >= $1
	`

	commandTag, err := q.Exec(ctx, query, days, employeeID, leaveTypeID, year)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return leave.ErrBalanceNotFound
	}

	return nil
}
