package employee

import (
	"context"
	"fmt"
	"time"

	"github.com/angkorhr/hrms-backend-go/internal/domain/employee"
	"github.com/angkorhr/hrms-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type EmployeeServiceImpl struct {
	db *database.DB
	employee.Repository
}

func NewEmployeeService(db *database.DB, repo employee.Repository) employee.Service {
	return &EmployeeServiceImpl{db: db, Repository: repo}
}

// Create implements employee.Service.
func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	baseSalary, err := decimal.NewFromString(req.BaseSalary)
	if err != nil || baseSalary.IsNegative() {
		return employee.EmployeeResponse{}, fmt.Errorf("invalid base salary %q", req.BaseSalary)
	}

	hireDate, err := time.Parse("2006-01-02", req.HireDate)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to parse hire date: %w", err)
	}

	created, err := s.Repository.Create(ctx, employee.Employee{
		FullName:     req.FullName,
		Email:        req.Email,
		EmployeeCode: req.EmployeeCode,
		Department:   req.Department,
		Position:     req.Position,
		BaseSalary:   baseSalary,
		Status:       employee.StatusActive,
		HireDate:     hireDate,
	})
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return toResponse(created), nil
}

// Get implements employee.Service.
func (s *EmployeeServiceImpl) Get(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	found, err := s.Repository.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return toResponse(found), nil
}

// List implements employee.Service.
func (s *EmployeeServiceImpl) List(ctx context.Context, filter employee.ListFilter) (employee.ListEmployeesResponse, error) {
	employees, total, err := s.Repository.List(ctx, filter)
	if err != nil {
		return employee.ListEmployeesResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	page := filter.Page
	if page == 0 {
		page = 1
	}
	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		responses = append(responses, toResponse(e))
	}

	return employee.ListEmployeesResponse{
		TotalCount: total,
		Page:       page,
		Limit:      limit,
		Employees:  responses,
	}, nil
}

// Update implements employee.Service.
func (s *EmployeeServiceImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if req.BaseSalary != nil {
		if _, err := decimal.NewFromString(*req.BaseSalary); err != nil {
			return employee.EmployeeResponse{}, fmt.Errorf("invalid base salary %q", *req.BaseSalary)
		}
	}

	if err := s.Repository.Update(ctx, req); err != nil {
		return employee.EmployeeResponse{}, err
	}

	return s.Get(ctx, req.ID)
}

// Deactivate implements employee.Service.
func (s *EmployeeServiceImpl) Deactivate(ctx context.Context, id string) error {
	return s.Repository.SetStatus(ctx, id, employee.StatusInactive)
}

// Activate implements employee.Service.
func (s *EmployeeServiceImpl) Activate(ctx context.Context, id string) error {
	return s.Repository.SetStatus(ctx, id, employee.StatusActive)
}

func toResponse(e employee.Employee) employee.EmployeeResponse {
	return employee.EmployeeResponse{
		ID:           e.ID,
		FullName:     e.FullName,
		Email:        e.Email,
		EmployeeCode: e.EmployeeCode,
		Department:   e.Department,
		Position:     e.Position,
		BaseSalary:   e.BaseSalary.StringFixed(2),
		Status:       string(e.Status),
		HireDate:     e.HireDate.Format("2006-01-02"),
	}
}
