package payroll

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/angkorhr/hrms-backend-go/internal/domain/employee"
	"github.com/angkorhr/hrms-backend-go/internal/domain/payroll"
	"github.com/angkorhr/hrms-backend-go/internal/pkg/clock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePayrollRepository struct {
	records  map[string]*payroll.Record
	absences map[string]int
	nextID   int
}

func payrollKey(employeeID string, month, year int) string {
	return fmt.Sprintf("%s|%d|%d", employeeID, month, year)
}

func (f *fakePayrollRepository) CreateIfAbsent(_ context.Context, rec payroll.Record) (bool, error) {
	key := payrollKey(rec.EmployeeID, rec.PeriodMonth, rec.PeriodYear)
	if _, ok := f.records[key]; ok {
		return false, nil
	}
	f.nextID++
	rec.ID = fmt.Sprintf("pay-%d", f.nextID)
	f.records[key] = &rec
	return true, nil
}

func (f *fakePayrollRepository) GetByID(_ context.Context, id string) (payroll.Record, error) {
	for _, rec := range f.records {
		if rec.ID == id {
			return *rec, nil
		}
	}
	return payroll.Record{}, payroll.ErrRecordNotFound
}

func (f *fakePayrollRepository) List(_ context.Context, _ payroll.ListFilter) ([]payroll.Record, int64, error) {
	records := make([]payroll.Record, 0, len(f.records))
	for _, rec := range f.records {
		records = append(records, *rec)
	}
	return records, int64(len(records)), nil
}

func (f *fakePayrollRepository) MarkPaid(_ context.Context, id string) error {
	for _, rec := range f.records {
		if rec.ID == id {
			if rec.Status == payroll.StatusPaid {
				return payroll.ErrAlreadyPaid
			}
			rec.Status = payroll.StatusPaid
			return nil
		}
	}
	return payroll.ErrAlreadyPaid
}

func (f *fakePayrollRepository) CountAbsences(_ context.Context, _, _ int) (map[string]int, error) {
	return f.absences, nil
}

type fakeEmployeeRepository struct {
	active []employee.Employee
}

func (f *fakeEmployeeRepository) Create(_ context.Context, e employee.Employee) (employee.Employee, error) {
	return e, nil
}

func (f *fakeEmployeeRepository) GetByID(_ context.Context, _ string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepository) GetByUserID(_ context.Context, _ string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepository) List(_ context.Context, _ employee.ListFilter) ([]employee.Employee, int64, error) {
	return f.active, int64(len(f.active)), nil
}

func (f *fakeEmployeeRepository) ListActive(_ context.Context) ([]employee.Employee, error) {
	return f.active, nil
}

func (f *fakeEmployeeRepository) Update(_ context.Context, _ employee.UpdateEmployeeRequest) error {
	return nil
}

func (f *fakeEmployeeRepository) SetStatus(_ context.Context, _ string, _ employee.EmploymentStatus) error {
	return nil
}

func (f *fakeEmployeeRepository) LinkUser(_ context.Context, _, _ string) error {
	return nil
}

func newPayrollService(t *testing.T, employees []employee.Employee, absences map[string]int) (payroll.Service, *fakePayrollRepository) {
	t.Helper()

	loc, err := time.LoadLocation("Asia/Phnom_Penh")
	require.NoError(t, err)
	clk := clock.FixedClock{Time: time.Date(2026, 4, 1, 9, 0, 0, 0, loc), Loc: loc}

	repo := &fakePayrollRepository{
		records:  make(map[string]*payroll.Record),
		absences: absences,
	}
	svc := NewPayrollService(nil, repo, &fakeEmployeeRepository{active: employees}, clk)
	return svc, repo
}

func salariedEmployee(id, salary string) employee.Employee {
	return employee.Employee{
		ID:         id,
		FullName:   "Employee " + id,
		BaseSalary: decimal.RequireFromString(salary),
		Status:     employee.StatusActive,
	}
}

func TestGenerate_DeductsPerAbsentDay(t *testing.T) {
	// March 2026 has 22 weekdays; 2200 base makes the daily rate exactly 100.
	svc, repo := newPayrollService(t,
		[]employee.Employee{salariedEmployee("emp-1", "2200.00")},
		map[string]int{"emp-1": 2},
	)

	result, err := svc.Generate(context.Background(), payroll.GenerateRequest{Month: 3, Year: 2026})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Generated)

	rec := repo.records[payrollKey("emp-1", 3, 2026)]
	require.NotNil(t, rec)
	assert.Equal(t, 22, rec.WorkingDays)
	assert.Equal(t, 2, rec.AbsentDays)
	assert.Equal(t, "200.00", rec.AbsenceDeduction.StringFixed(2))
	assert.Equal(t, "2000.00", rec.NetSalary.StringFixed(2))
	assert.Equal(t, payroll.StatusDraft, rec.Status)
}

func TestGenerate_NoAbsences_FullSalary(t *testing.T) {
	svc, repo := newPayrollService(t,
		[]employee.Employee{salariedEmployee("emp-1", "1500.00")},
		map[string]int{},
	)

	_, err := svc.Generate(context.Background(), payroll.GenerateRequest{Month: 3, Year: 2026})
	require.NoError(t, err)

	rec := repo.records[payrollKey("emp-1", 3, 2026)]
	require.NotNil(t, rec)
	assert.Equal(t, "0.00", rec.AbsenceDeduction.StringFixed(2))
	assert.Equal(t, "1500.00", rec.NetSalary.StringFixed(2))
}

func TestGenerate_AbsentWholePeriod_NetZero(t *testing.T) {
	svc, repo := newPayrollService(t,
		[]employee.Employee{salariedEmployee("emp-1", "1500.00")},
		map[string]int{"emp-1": 25},
	)

	_, err := svc.Generate(context.Background(), payroll.GenerateRequest{Month: 3, Year: 2026})
	require.NoError(t, err)

	rec := repo.records[payrollKey("emp-1", 3, 2026)]
	require.NotNil(t, rec)
	assert.Equal(t, "0.00", rec.NetSalary.StringFixed(2))
}

func TestGenerate_Rerun_SkipsExisting(t *testing.T) {
	svc, _ := newPayrollService(t,
		[]employee.Employee{
			salariedEmployee("emp-1", "2200.00"),
			salariedEmployee("emp-2", "1800.00"),
		},
		map[string]int{},
	)

	first, err := svc.Generate(context.Background(), payroll.GenerateRequest{Month: 3, Year: 2026})
	require.NoError(t, err)
	assert.Equal(t, 2, first.Generated)
	assert.Equal(t, 0, first.Skipped)

	second, err := svc.Generate(context.Background(), payroll.GenerateRequest{Month: 3, Year: 2026})
	require.NoError(t, err)
	assert.Equal(t, 0, second.Generated)
	assert.Equal(t, 2, second.Skipped)
}

func TestGenerate_NoActiveEmployees_Rejected(t *testing.T) {
	svc, _ := newPayrollService(t, nil, map[string]int{})

	_, err := svc.Generate(context.Background(), payroll.GenerateRequest{Month: 3, Year: 2026})
	assert.ErrorIs(t, err, payroll.ErrNothingGenerated)
}

func TestGenerate_InvalidPeriod_Rejected(t *testing.T) {
	svc, _ := newPayrollService(t,
		[]employee.Employee{salariedEmployee("emp-1", "1500.00")},
		map[string]int{},
	)

	_, err := svc.Generate(context.Background(), payroll.GenerateRequest{Month: 13, Year: 2026})
	assert.Error(t, err)
}

func TestMarkPaid_Twice_Rejected(t *testing.T) {
	svc, repo := newPayrollService(t,
		[]employee.Employee{salariedEmployee("emp-1", "1500.00")},
		map[string]int{},
	)

	_, err := svc.Generate(context.Background(), payroll.GenerateRequest{Month: 3, Year: 2026})
	require.NoError(t, err)
	id := repo.records[payrollKey("emp-1", 3, 2026)].ID

	require.NoError(t, svc.MarkPaid(context.Background(), id))
	assert.ErrorIs(t, svc.MarkPaid(context.Background(), id), payroll.ErrAlreadyPaid)
}
