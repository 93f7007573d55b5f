package employee

import (
	"context"
	"fmt"
	"testing"

	"github.com/angkorhr/hrms-backend-go/internal/domain/employee"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmployeeRepository struct {
	employees map[string]employee.Employee
	nextID    int
}

func newFakeEmployeeRepository() *fakeEmployeeRepository {
	return &fakeEmployeeRepository{employees: make(map[string]employee.Employee)}
}

func (f *fakeEmployeeRepository) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	for _, existing := range f.employees {
		if existing.EmployeeCode == e.EmployeeCode {
			return employee.Employee{}, employee.ErrEmployeeCodeExists
		}
		if existing.Email == e.Email {
			return employee.Employee{}, employee.ErrEmailExists
		}
	}
	f.nextID++
	e.ID = fmt.Sprintf("emp-%d", f.nextID)
	f.employees[e.ID] = e
	return e, nil
}

func (f *fakeEmployeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	e, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (f *fakeEmployeeRepository) GetByUserID(ctx context.Context, userID string) (employee.Employee, error) {
	for _, e := range f.employees {
		if e.UserID != nil && *e.UserID == userID {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepository) List(ctx context.Context, filter employee.ListFilter) ([]employee.Employee, int64, error) {
	var out []employee.Employee
	for _, e := range f.employees {
		if filter.Department != nil && e.Department != *filter.Department {
			continue
		}
		if filter.Status != nil && string(e.Status) != *filter.Status {
			continue
		}
		out = append(out, e)
	}
	return out, int64(len(out)), nil
}

func (f *fakeEmployeeRepository) ListActive(ctx context.Context) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range f.employees {
		if e.Status == employee.StatusActive {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEmployeeRepository) Update(ctx context.Context, req employee.UpdateEmployeeRequest) error {
	e, ok := f.employees[req.ID]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	if req.FullName != nil {
		e.FullName = *req.FullName
	}
	if req.Department != nil {
		e.Department = *req.Department
	}
	if req.Position != nil {
		e.Position = *req.Position
	}
	f.employees[req.ID] = e
	return nil
}

func (f *fakeEmployeeRepository) SetStatus(ctx context.Context, id string, status employee.EmploymentStatus) error {
	e, ok := f.employees[id]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	e.Status = status
	f.employees[id] = e
	return nil
}

func (f *fakeEmployeeRepository) LinkUser(ctx context.Context, id string, userID string) error {
	e, ok := f.employees[id]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	e.UserID = &userID
	f.employees[id] = e
	return nil
}

func validCreateRequest() employee.CreateEmployeeRequest {
	return employee.CreateEmployeeRequest{
		FullName:     "Sokha Chea",
		Email:        "sokha.chea@example.com",
		EmployeeCode: "EMP-0001",
		Department:   "Engineering",
		Position:     "Backend Developer",
		BaseSalary:   "1500.00",
		HireDate:     "2024-06-01",
	}
}

func TestCreateEmployee_StartsActive(t *testing.T) {
	repo := newFakeEmployeeRepository()
	svc := NewEmployeeService(nil, repo)

	created, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "active", created.Status)
	assert.Equal(t, "1500.00", created.BaseSalary)
	assert.Equal(t, "2024-06-01", created.HireDate)
}

func TestCreateEmployee_InvalidCode_Rejected(t *testing.T) {
	repo := newFakeEmployeeRepository()
	svc := NewEmployeeService(nil, repo)

	req := validCreateRequest()
	req.EmployeeCode = "E-1"

	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.Empty(t, repo.employees)
}

func TestCreateEmployee_NegativeSalary_Rejected(t *testing.T) {
	repo := newFakeEmployeeRepository()
	svc := NewEmployeeService(nil, repo)

	req := validCreateRequest()
	req.BaseSalary = "-100"

	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
}

func TestCreateEmployee_DuplicateCode_Rejected(t *testing.T) {
	repo := newFakeEmployeeRepository()
	svc := NewEmployeeService(nil, repo)

	_, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	dup := validCreateRequest()
	dup.Email = "other@example.com"
	_, err = svc.Create(context.Background(), dup)
	assert.ErrorIs(t, err, employee.ErrEmployeeCodeExists)
}

func TestUpdateEmployee_AppliesPartialFields(t *testing.T) {
	repo := newFakeEmployeeRepository()
	svc := NewEmployeeService(nil, repo)

	created, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	position := "Senior Backend Developer"
	updated, err := svc.Update(context.Background(), employee.UpdateEmployeeRequest{
		ID:       created.ID,
		Position: &position,
	})
	require.NoError(t, err)

	assert.Equal(t, position, updated.Position)
	assert.Equal(t, created.FullName, updated.FullName)
}

func TestDeactivateThenActivate_RoundTrips(t *testing.T) {
	repo := newFakeEmployeeRepository()
	svc := NewEmployeeService(nil, repo)

	created, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Deactivate(context.Background(), created.ID))
	found, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "inactive", found.Status)

	require.NoError(t, svc.Activate(context.Background(), created.ID))
	found, err = svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "active", found.Status)
}

func TestGetEmployee_NotFound(t *testing.T) {
	repo := newFakeEmployeeRepository()
	svc := NewEmployeeService(nil, repo)

	_, err := svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}
