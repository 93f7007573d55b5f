package attendance

import (
	"time"
)

type Status string

const (
	StatusPresent Status = "present"
	StatusLate    Status = "late"
	StatusAbsent  Status = "absent"
	StatusHalfDay Status = "half_day"
)

// Record is one employee-day of attendance. At most one record exists per
// (employee_id, work_date); the database enforces that with a unique index.
// The record moves empty -> checked_in -> checked_out; the absence sweep
// creates terminal absent records only where no record exists at all.
type Record struct {
	ID         string
	EmployeeID string
	WorkDate   time.Time // calendar day, org timezone, midnight

	CheckInTime       *time.Time
	CheckOutTime      *time.Time
	CheckInLatitude   *float64
	CheckInLongitude  *float64
	CheckOutLatitude  *float64
	CheckOutLongitude *float64

	// Hours between check-in and check-out, rounded to 2 decimals.
	// Nil until check-out completes.
	WorkHours *float64

	Status Status
	Notes  *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO / Join
	EmployeeName *string
	Department   *string
}

// CheckedIn reports whether the record has an open or closed check-in.
func (r *Record) CheckedIn() bool {
	return r.CheckInTime != nil
}

// CheckedOut reports whether the record is closed.
func (r *Record) CheckedOut() bool {
	return r.CheckOutTime != nil
}
