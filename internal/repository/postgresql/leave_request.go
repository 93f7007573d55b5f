package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/angkorhr/hrms-backend-go/internal/domain/leave"
	"github.com/angkorhr/hrms-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.RequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

// Create implements leave.RequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, req leave.Request) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (
			employee_id, leave_type_id, start_date, end_date,
			requested_days, reason, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, employee_id, leave_type_id, start_date, end_date,
				  requested_days, reason, status, approved_by, approved_at,
				  decision_notes, cancelled_at, created_at, updated_at
	`

	var created leave.Request
	err := q.QueryRow(ctx, query,
		req.EmployeeID,
		req.LeaveTypeID,
		req.StartDate,
		req.EndDate,
		req.RequestedDays,
		req.Reason,
		req.Status,
	).Scan(
		&created.ID,
		&created.EmployeeID,
		&created.LeaveTypeID,
		&created.StartDate,
		&created.EndDate,
		&created.RequestedDays,
		&created.Reason,
		&created.Status,
		&created.ApprovedBy,
		&created.ApprovedAt,
		&created.DecisionNotes,
		&created.CancelledAt,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		return leave.Request{}, err
	}

	return created, nil
}

// GetByID implements leave.RequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT lr.id, lr.employee_id, lr.leave_type_id, lr.start_date, lr.end_date,
			   lr.requested_days, lr.reason, lr.status, lr.approved_by, lr.approved_at,
			   lr.decision_notes, lr.cancelled_at, lr.created_at, lr.updated_at,
			   lt.name AS leave_type_name,
			   e.full_name AS employee_name
		FROM leave_requests lr
		JOIN leave_types lt ON lt.id = lr.leave_type_id
		JOIN employees e ON e.id = lr.employee_id
		WHERE lr.id = $1
	`

	var found leave.Request
	err := q.QueryRow(ctx, query, id).Scan(
		&found.ID,
		&found.EmployeeID,
		&found.LeaveTypeID,
		&found.StartDate,
		&found.EndDate,
		&found.RequestedDays,
		&found.Reason,
		&found.Status,
		&found.ApprovedBy,
		&found.ApprovedAt,
		&found.DecisionNotes,
		&found.CancelledAt,
		&found.CreatedAt,
		&found.UpdatedAt,
		&found.LeaveTypeName,
		&found.EmployeeName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.Request{}, leave.ErrRequestNotFound
		}
		return leave.Request{}, err
	}

	return found, nil
}

// HasOverlapping implements leave.RequestRepository.
func (r *leaveRequestRepositoryImpl) HasOverlapping(ctx context.Context, employeeID string, startDate, endDate time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM leave_requests
			WHERE employee_id = $1
			  AND status IN ('pending', 'approved')
			  AND start_date <= $3
			  AND end_date >= $2
		)
	`

	var overlaps bool
	err := q.QueryRow(ctx, query, employeeID, startDate, endDate).Scan(&overlaps)
	if err != nil {
		return false, fmt.Errorf("failed to check overlapping leave requests: %w", err)
	}

	return overlaps, nil
}

// UpdateStatusFromPending implements leave.RequestRepository.
func (r *leaveRequestRepositoryImpl) UpdateStatusFromPending(ctx context.Context, id string, status leave.RequestStatus, approvedBy *string, notes *string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $1,
			approved_by = $2,
			approved_at = NOW(),
			decision_notes = $3,
			updated_at = NOW()
		WHERE id = $4 AND status = 'pending'
	`

	commandTag, err := q.Exec(ctx, query, status, approvedBy, notes, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return leave.ErrRequestNotPending
	}

	return nil
}

// MarkCancelled implements leave.RequestRepository.
func (r *leaveRequestRepositoryImpl) MarkCancelled(ctx context.Context, id string, fromStatus leave.RequestStatus) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = 'cancelled', cancelled_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND status = $2
	`

	commandTag, err := q.Exec(ctx, query, id, fromStatus)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return leave.ErrRequestNotCancellable
	}

	return nil
}

// List implements leave.RequestRepository.
func (r *leaveRequestRepositoryImpl) List(ctx context.Context, filter leave.RequestFilter) ([]leave.Request, int64, error) {
	baseWhere := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND lr.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}

	return r.list(ctx, baseWhere, args, argIdx, filter)
}

// ListByEmployee implements leave.RequestRepository.
func (r *leaveRequestRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, filter leave.RequestFilter) ([]leave.Request, int64, error) {
	baseWhere := "lr.employee_id = $1"
	args := []interface{}{employeeID}
	return r.list(ctx, baseWhere, args, 2, filter)
}

func (r *leaveRequestRepositoryImpl) list(ctx context.Context, baseWhere string, args []interface{}, argIdx int, filter leave.RequestFilter) ([]leave.Request, int64, error) {
	q := GetQuerier(ctx, r.db)

	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND lr.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.Year != nil {
		baseWhere += fmt.Sprintf(" AND EXTRACT(YEAR FROM lr.start_date) = $%d", argIdx)
		args = append(args, *filter.Year)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM leave_requests lr WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count leave requests: %w", err)
	}

	selectQuery := fmt.Sprintf(`
		SELECT lr.id, lr.employee_id, lr.leave_type_id, lr.start_date, lr.end_date,
			   lr.requested_days, lr.reason, lr.status, lr.approved_by, lr.approved_at,
			   lr.decision_notes, lr.cancelled_at, lr.created_at, lr.updated_at,
			   lt.name AS leave_type_name,
			   e.full_name AS employee_name
		FROM leave_requests lr
		JOIN leave_types lt ON lt.id = lr.leave_type_id
		JOIN employees e ON e.id = lr.employee_id
		WHERE %s
		ORDER BY lr.created_at DESC
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
		return nil, 0, fmt.Errorf("failed to query leave requests: %w", err)
	}
	defer rows.Close()

	requests := make([]leave.Request, 0)
	for rows.Next() {
		var req leave.Request
		if err := rows.Scan(
			&req.ID,
			&req.EmployeeID,
			&req.LeaveTypeID,
			&req.StartDate,
			&req.EndDate,
			&req.RequestedDays,
			&req.Reason,
			&req.Status,
			&req.ApprovedBy,
			&req.ApprovedAt,
			&req.DecisionNotes,
			&req.CancelledAt,
			&req.CreatedAt,
			&req.UpdatedAt,
			&req.LeaveTypeName,
			&req.EmployeeName,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, req)
	}

	return requests, total, nil
}
