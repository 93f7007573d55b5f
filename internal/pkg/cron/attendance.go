package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/angkorhr/hrms-backend-go/internal/config"
	"github.com/angkorhr/hrms-backend-go/internal/domain/attendance"
	"github.com/angkorhr/hrms-backend-go/internal/pkg/clock"
)

// AttendanceJobs contains attendance-related cron jobs
type AttendanceJobs struct {
	attendanceService attendance.Service
	clk               clock.Clock
	cfg               config.AttendanceConfig
}

// NewAttendanceJobs creates attendance cron jobs
func NewAttendanceJobs(attendanceService attendance.Service, clk clock.Clock, cfg config.AttendanceConfig) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceService: attendanceService,
		clk:               clk,
		cfg:               cfg,
	}
}

// RegisterJobs registers all attendance-related cron jobs
func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	// Mark absences for the previous work date once a day (check every hour)
	scheduler.Register(Job{
		Name:     "sweep_absences",
		Interval: 1 * time.Hour,
		Run:      j.SweepAbsences,
	})
}

// SweepAbsences marks active employees without a record on the previous work
// date as absent. The job ticks hourly and only acts during the configured
// sweep hour; the sweep itself is idempotent, so an extra run fills nothing.
func (j *AttendanceJobs) SweepAbsences(ctx context.Context) error {
	loc, err := time.LoadLocation(j.cfg.Timezone)
	if err != nil {
		return err
	}

	now := j.clk.Now().In(loc)
	if now.Hour() != j.cfg.SweepHour {
		return nil
	}

	workDate := clock.WorkDateOf(now, loc).AddDate(0, 0, -1)

	result, err := j.attendanceService.MarkAbsences(ctx, workDate)
	if err != nil {
		return err
	}

	slog.Info("Absence sweep completed",
		"work_date", workDate.Format("2006-01-02"),
		"created", result.Created,
	)
	return nil
}
