package cron

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Job is a background task run on a fixed interval.
type Job struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) error
}

// Scheduler drives background jobs. Jobs must be registered before Start;
// the job list is not locked once the run loops are going.
type Scheduler struct {
	jobs   []Job
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewScheduler() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{ctx: ctx, cancel: cancel}
}

// Register adds a job to the scheduler.
func (s *Scheduler) Register(job Job) {
	s.jobs = append(s.jobs, job)
	slog.Info("background job registered", "job", job.Name, "interval", job.Interval)
}

// Start launches one run loop per registered job. Each job runs once
// immediately so a restart does not wait out a full interval.
func (s *Scheduler) Start() {
	for _, job := range s.jobs {
		s.wg.Add(1)
		go s.loop(job)
	}
	slog.Info("background scheduler started", "jobs", len(s.jobs))
}

// Stop cancels all run loops and waits for in-flight runs to finish.
func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
	slog.Info("background scheduler stopped")
}

func (s *Scheduler) loop(job Job) {
	defer s.wg.Done()

	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	s.run(job)

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.run(job)
		}
	}
}

func (s *Scheduler) run(job Job) {
	start := time.Now()
	if err := job.Run(s.ctx); err != nil {
		slog.Error("background job failed", "job", job.Name, "error", err, "duration", time.Since(start))
		return
	}
	slog.Debug("background job finished", "job", job.Name, "duration", time.Since(start))
}

// RunOnce runs every registered job a single time with the given context
// and reports the first error. Used by tests and one-shot invocations.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	for _, job := range s.jobs {
		if err := job.Run(ctx); err != nil {
			return err
		}
	}
	return nil
}
