package postgresql

import (
	"context"

	"github.com/angkorhr/hrms-backend-go/internal/domain/leave"
	"github.com/angkorhr/hrms-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveTypeRepositoryImpl struct {
	db *database.DB
}

func NewLeaveTypeRepository(db *database.DB) leave.TypeRepository {
	return &leaveTypeRepositoryImpl{db: db}
}

// Create implements leave.TypeRepository.
func (r *leaveTypeRepositoryImpl) Create(ctx context.Context, t leave.Type) (leave.Type, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_types (name, code, description, annual_quota, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, code, description, annual_quota, is_active, created_at, updated_at
	`

	var created leave.Type
	err := q.QueryRow(ctx, query,
		t.Name,
		t.Code,
		t.Description,
		t.AnnualQuota,
		t.IsActive,
	).Scan(
		&created.ID,
		&created.Name,
		&created.Code,
		&created.Description,
		&created.AnnualQuota,
		&created.IsActive,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		return leave.Type{}, err
	}

	return created, nil
}

// GetByID implements leave.TypeRepository.
func (r *leaveTypeRepositoryImpl) GetByID(ctx context.Context, id string) (leave.Type, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, code, description, annual_quota, is_active, created_at, updated_at
		FROM leave_types
		WHERE id = $1
	`

	var found leave.Type
	err := q.QueryRow(ctx, query, id).Scan(
		&found.ID,
		&found.Name,
		&found.Code,
		&found.Description,
		&found.AnnualQuota,
		&found.IsActive,
		&found.CreatedAt,
		&found.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.Type{}, leave.ErrTypeNotFound
		}
		return leave.Type{}, err
	}

	return found, nil
}

// List implements leave.TypeRepository.
func (r *leaveTypeRepositoryImpl) List(ctx context.Context) ([]leave.Type, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, code, description, annual_quota, is_active, created_at, updated_at
		FROM leave_types
		ORDER BY name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	types := make([]leave.Type, 0)
	for rows.Next() {
		var t leave.Type
		if err := rows.Scan(
			&t.ID,
			&t.Name,
			&t.Code,
			&t.Description,
			&t.AnnualQuota,
			&t.IsActive,
			&t.CreatedAt,
			&t.UpdatedAt,
		); err != nil {
			return nil, err
		}
		types = append(types, t)
	}

	return types, nil
}
