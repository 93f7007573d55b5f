package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/angkorhr/hrms-backend-go/internal/domain/attendance"
	"github.com/angkorhr/hrms-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.Repository {
	return &attendanceRepositoryImpl{db: db}
}

// InsertCheckIn implements attendance.Repository.
//
// Single upsert keyed on (employee_id, work_date). The WHERE guard on the
// conflict branch makes a second check-in a no-op: no row comes back and the
// caller sees ErrAlreadyCheckedIn. A sweep-created absent row (no times) is
// claimed by the update branch instead of conflicting.
func (r *attendanceRepositoryImpl) InsertCheckIn(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_records (
			employee_id, work_date, check_in_time,
			check_in_latitude, check_in_longitude, status, notes
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (employee_id, work_date) DO UPDATE
		SET check_in_time = EXCLUDED.check_in_time,
			check_in_latitude = EXCLUDED.check_in_latitude,
			check_in_longitude = EXCLUDED.check_in_longitude,
			status = EXCLUDED.status,
			notes = COALESCE(EXCLUDED.notes, attendance_records.notes),
			updated_at = NOW()
		WHERE attendance_records.check_in_time IS NULL
		RETURNING id, employee_id, work_date, check_in_time, check_out_time,
				  check_in_latitude, check_in_longitude,
				  check_out_latitude, check_out_longitude,
				  work_hours, status, notes, created_at, updated_at
	`

	var saved attendance.Record
	err := q.QueryRow(ctx, query,
		rec.EmployeeID,
		rec.WorkDate,
		rec.CheckInTime,
		rec.CheckInLatitude,
		rec.CheckInLongitude,
		rec.Status,
		rec.Notes,
	).Scan(
		&saved.ID,
		&saved.EmployeeID,
		&saved.WorkDate,
		&saved.CheckInTime,
		&saved.CheckOutTime,
		&saved.CheckInLatitude,
		&saved.CheckInLongitude,
		&saved.CheckOutLatitude,
		&saved.CheckOutLongitude,
		&saved.WorkHours,
		&saved.Status,
		&saved.Notes,
		&saved.CreatedAt,
		&saved.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Record{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Record{}, err
	}

	return saved, nil
}

// CompleteCheckOut implements attendance.Repository.
func (r *attendanceRepositoryImpl) CompleteCheckOut(ctx context.Context, rec attendance.Record) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_records
		SET check_out_time = $1,
			check_out_latitude = $2,
			check_out_longitude = $3,
			work_hours = $4,
			status = $5,
			updated_at = NOW()
		WHERE employee_id = $6
		  AND work_date = $7
		  AND check_in_time IS NOT NULL
		  AND check_out_time IS NULL
	`

	commandTag, err := q.Exec(ctx, query,
		rec.CheckOutTime,
		rec.CheckOutLatitude,
		rec.CheckOutLongitude,
		rec.WorkHours,
		rec.Status,
		rec.EmployeeID,
		rec.WorkDate,
	)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return attendance.ErrAlreadyCheckedOut
	}

	return nil
}

// GetByEmployeeAndDate implements attendance.Repository.
func (r *attendanceRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID string, workDate time.Time) (*attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, work_date, check_in_time, check_out_time,
			   check_in_latitude, check_in_longitude,
			   check_out_latitude, check_out_longitude,
			   work_hours, status, notes, created_at, updated_at
		FROM attendance_records
		WHERE employee_id = $1 AND work_date = $2
	`

	var found attendance.Record
	err := q.QueryRow(ctx, query, employeeID, workDate).Scan(
		&found.ID,
		&found.EmployeeID,
		&found.WorkDate,
		&found.CheckInTime,
		&found.CheckOutTime,
		&found.CheckInLatitude,
		&found.CheckInLongitude,
		&found.CheckOutLatitude,
		&found.CheckOutLongitude,
		&found.WorkHours,
		&found.Status,
		&found.Notes,
		&found.CreatedAt,
		&found.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &found, nil
}

// CreateAbsences implements attendance.Repository.
//
// INSERT ... SELECT with DO NOTHING keeps the sweep idempotent: reruns and
// concurrent sweeps insert zero extra rows.
func (r *attendanceRepositoryImpl) CreateAbsences(ctx context.Context, workDate time.Time) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_records (employee_id, work_date, status)
		SELECT e.id, $1, 'absent'
		FROM employees e
		WHERE e.status = 'active'
		ON CONFLICT (employee_id, work_date) DO NOTHING
	`

	commandTag, err := q.Exec(ctx, query, workDate)
	if err != nil {
		return 0, fmt.Errorf("failed to create absence records: %w", err)
	}

	return int(commandTag.RowsAffected()), nil
}

// GetByID implements attendance.Repository.
func (r *attendanceRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT a.id, a.employee_id, a.work_date, a.check_in_time, a.check_out_time,
			   a.check_in_latitude, a.check_in_longitude,
			   a.check_out_latitude, a.check_out_longitude,
			   a.work_hours, a.status, a.notes, a.created_at, a.updated_at,
			   e.full_name AS employee_name,
			   e.department AS department
		FROM attendance_records a
		JOIN employees e ON e.id = a.employee_id
		WHERE a.id = $1
	`

	var found attendance.Record
	err := q.QueryRow(ctx, query, id).Scan(
		&found.ID,
		&found.EmployeeID,
		&found.WorkDate,
		&found.CheckInTime,
		&found.CheckOutTime,
		&found.CheckInLatitude,
		&found.CheckInLongitude,
		&found.CheckOutLatitude,
		&found.CheckOutLongitude,
		&found.WorkHours,
		&found.Status,
		&found.Notes,
		&found.CreatedAt,
		&found.UpdatedAt,
		&found.EmployeeName,
		&found.Department,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, err
	}

	return found, nil
}

// List implements attendance.Repository.
func (r *attendanceRepositoryImpl) List(ctx context.Context, filter attendance.ListFilter) ([]attendance.Record, int64, error) {
	baseWhere := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND a.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}

	return r.list(ctx, baseWhere, args, argIdx, filter)
}

// ListByEmployee implements attendance.Repository.
func (r *attendanceRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, filter attendance.ListFilter) ([]attendance.Record, int64, error) {
	baseWhere := "a.employee_id = $1"
	args := []interface{}{employeeID}
	return r.list(ctx, baseWhere, args, 2, filter)
}

func (r *attendanceRepositoryImpl) list(ctx context.Context, baseWhere string, args []interface{}, argIdx int, filter attendance.ListFilter) ([]attendance.Record, int64, error) {
	q := GetQuerier(ctx, r.db)

	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND a.work_date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND a.work_date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND a.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM attendance_records a WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance records: %w", err)
	}

	selectQuery := fmt.Sprintf(`
		SELECT a.id, a.employee_id, a.work_date, a.check_in_time, a.check_out_time,
			   a.check_in_latitude, a.check_in_longitude,
			   a.check_out_latitude, a.check_out_longitude,
			   a.work_hours, a.status, a.notes, a.created_at, a.updated_at,
			   e.full_name AS employee_name,
			   e.department AS department
		FROM attendance_records a
		JOIN employees e ON e.id = a.employee_id
		WHERE %s
		ORDER BY a.work_date DESC, e.full_name
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
		return nil, 0, fmt.Errorf("failed to query attendance records: %w", err)
	}
	defer rows.Close()

	records := make([]attendance.Record, 0)
	for rows.Next() {
		var rec attendance.Record
		if err := rows.Scan(
			&rec.ID,
			&rec.EmployeeID,
			&rec.WorkDate,
			&rec.CheckInTime,
			&rec.CheckOutTime,
			&rec.CheckInLatitude,
			&rec.CheckInLongitude,
			&rec.CheckOutLatitude,
			&rec.CheckOutLongitude,
			&rec.WorkHours,
			&rec.Status,
			&rec.Notes,
			&rec.CreatedAt,
			&rec.UpdatedAt,
			&rec.EmployeeName,
			&rec.Department,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}

	return records, total, nil
}
