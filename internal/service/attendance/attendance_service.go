package attendance

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/angkorhr/hrms-backend-go/internal/config"
	"github.com/angkorhr/hrms-backend-go/internal/domain/attendance"
	"github.com/angkorhr/hrms-backend-go/internal/pkg/clock"
	"github.com/angkorhr/hrms-backend-go/internal/pkg/database"
)

// AttendanceServiceImpl is the attendance engine. The work date is derived
// once at check-in via clock.WorkDateOf and travels with the record from then
// on; check-out trusts the work date it is handed and never recomputes it from
// the check-out timestamp.
type AttendanceServiceImpl struct {
	db *database.DB
	attendance.Repository
	clk clock.Clock
	cfg config.AttendanceConfig
}

func NewAttendanceService(db *database.DB, repo attendance.Repository, clk clock.Clock, cfg config.AttendanceConfig) attendance.Service {
	return &AttendanceServiceImpl{
		db:         db,
		Repository: repo,
		clk:        clk,
		cfg:        cfg,
	}
}

// CheckIn implements attendance.Service.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, employeeID string, req attendance.CheckInRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	ts, err := s.resolveTimestamp(req.Timestamp)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	workDate := clock.WorkDateOf(ts, s.clk.Location())

	// Strictly after the cutoff counts as late; on the dot is present.
	status := attendance.StatusPresent
	cutoff := clock.CutoffOn(workDate, s.cfg.LateCutoff, s.clk.Location())
	if ts.After(cutoff) {
		status = attendance.StatusLate
	}

	rec := attendance.Record{
		EmployeeID:       employeeID,
		WorkDate:         workDate,
		CheckInTime:      &ts,
		CheckInLatitude:  req.Latitude,
		CheckInLongitude: req.Longitude,
		Status:           status,
		Notes:            req.Notes,
	}

	saved, err := s.Repository.InsertCheckIn(ctx, rec)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	return s.toResponse(saved), nil
}

// CheckOut implements attendance.Service.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, employeeID string, req attendance.CheckOutRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	workDate, err := time.ParseInLocation("2006-01-02", req.WorkDate, s.clk.Location())
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to parse work date: %w", err)
	}

	ts, err := s.resolveTimestamp(req.Timestamp)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	rec, err := s.Repository.GetByEmployeeAndDate(ctx, employeeID, workDate)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to get attendance record: %w", err)
	}
	if rec == nil || !rec.CheckedIn() {
		return attendance.RecordResponse{}, attendance.ErrNotCheckedIn
	}
	if rec.CheckedOut() {
		return attendance.RecordResponse{}, attendance.ErrAlreadyCheckedOut
	}
	if !ts.After(*rec.CheckInTime) {
		return attendance.RecordResponse{}, attendance.ErrCheckOutNotAfterCheckIn
	}

	hours := math.Round(ts.Sub(*rec.CheckInTime).Hours()*100) / 100

	// A short day downgrades to half_day; otherwise the check-in
	// classification (present or late) stands.
	status := rec.Status
	if hours < s.cfg.HalfDayBelowHours {
		status = attendance.StatusHalfDay
	}

	rec.CheckOutTime = &ts
	rec.CheckOutLatitude = req.Latitude
	rec.CheckOutLongitude = req.Longitude
	rec.WorkHours = &hours
	rec.Status = status

	if err := s.Repository.CompleteCheckOut(ctx, *rec); err != nil {
		return attendance.RecordResponse{}, err
	}

	return s.toResponse(*rec), nil
}

// MarkAbsences implements attendance.Service.
func (s *AttendanceServiceImpl) MarkAbsences(ctx context.Context, workDate time.Time) (attendance.SweepResult, error) {
	day := clock.WorkDateOf(workDate, s.clk.Location())

	created, err := s.Repository.CreateAbsences(ctx, day)
	if err != nil {
		return attendance.SweepResult{}, fmt.Errorf("failed to mark absences: %w", err)
	}

	return attendance.SweepResult{
		WorkDate: day.Format("2006-01-02"),
		Created:  created,
	}, nil
}

// GetRecord implements attendance.Service.
func (s *AttendanceServiceImpl) GetRecord(ctx context.Context, id string) (attendance.RecordResponse, error) {
	rec, err := s.Repository.GetByID(ctx, id)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	return s.toResponse(rec), nil
}

// ListRecords implements attendance.Service.
func (s *AttendanceServiceImpl) ListRecords(ctx context.Context, filter attendance.ListFilter) (attendance.ListRecordsResponse, error) {
	records, total, err := s.Repository.List(ctx, filter)
	if err != nil {
		return attendance.ListRecordsResponse{}, fmt.Errorf("failed to list attendance records: %w", err)
	}
	return s.toListResponse(records, total, filter), nil
}

// ListMyRecords implements attendance.Service.
func (s *AttendanceServiceImpl) ListMyRecords(ctx context.Context, employeeID string, filter attendance.ListFilter) (attendance.ListRecordsResponse, error) {
	records, total, err := s.Repository.ListByEmployee(ctx, employeeID, filter)
	if err != nil {
		return attendance.ListRecordsResponse{}, fmt.Errorf("failed to list attendance records: %w", err)
	}
	return s.toListResponse(records, total, filter), nil
}

func (s *AttendanceServiceImpl) resolveTimestamp(raw string) (time.Time, error) {
	if raw == "" {
		return s.clk.Now(), nil
	}
	ts, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse timestamp: %w", err)
	}
	return ts.In(s.clk.Location()), nil
}

func (s *AttendanceServiceImpl) toResponse(rec attendance.Record) attendance.RecordResponse {
	resp := attendance.RecordResponse{
		ID:                rec.ID,
		EmployeeID:        rec.EmployeeID,
		EmployeeName:      rec.EmployeeName,
		Department:        rec.Department,
		WorkDate:          rec.WorkDate.Format("2006-01-02"),
		CheckInLatitude:   rec.CheckInLatitude,
		CheckInLongitude:  rec.CheckInLongitude,
		CheckOutLatitude:  rec.CheckOutLatitude,
		CheckOutLongitude: rec.CheckOutLongitude,
		WorkHours:         rec.WorkHours,
		Status:            string(rec.Status),
		Notes:             rec.Notes,
	}
	if rec.CheckInTime != nil {
		v := rec.CheckInTime.In(s.clk.Location()).Format(time.RFC3339)
		resp.CheckInTime = &v
	}
	if rec.CheckOutTime != nil {
		v := rec.CheckOutTime.In(s.clk.Location()).Format(time.RFC3339)
		resp.CheckOutTime = &v
	}
	return resp
}

func (s *AttendanceServiceImpl) toListResponse(records []attendance.Record, total int64, filter attendance.ListFilter) attendance.ListRecordsResponse {
	page := filter.Page
	if page == 0 {
		page = 1
	}
	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}

	responses := make([]attendance.RecordResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, s.toResponse(rec))
	}

	return attendance.ListRecordsResponse{
		TotalCount: total,
		Page:       page,
		Limit:      limit,
		Records:    responses,
	}
}
