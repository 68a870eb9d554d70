package maintenance

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Job is one named housekeeping task with a cron schedule. Run returns
// how many entries the job touched.
type Job struct {
	Name     string
	Schedule string
	Run      func() int
}

// Scheduler runs housekeeping jobs at their configured schedules.
type Scheduler struct {
	cron    *cron.Cron
	jobs    []Job
	mu      sync.Mutex
	logger  *slog.Logger
	running bool
}

// NewScheduler creates a scheduler for the given jobs. Jobs with an
// empty schedule are skipped.
func NewScheduler(jobs []Job) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		jobs:   jobs,
		logger: slog.Default().With("component", "maintenance"),
	}
}

// Start validates schedules, registers the jobs, and starts the cron
// runner. The scheduler stops itself when ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	scheduled := 0
	for _, job := range s.jobs {
		if job.Schedule == "" {
			s.logger.Info("job has no schedule, skipping", "job", job.Name)
			continue
		}
		if _, err := cron.ParseStandard(job.Schedule); err != nil {
			return fmt.Errorf("invalid cron schedule %q for job %s: %w", job.Schedule, job.Name, err)
		}

		job := job
		_, err := s.cron.AddFunc(job.Schedule, func() {
			touched := job.Run()
			s.logger.Info("maintenance job completed", "job", job.Name, "touched", touched)
		})
		if err != nil {
			return fmt.Errorf("failed to schedule job %s: %w", job.Name, err)
		}
		scheduled++
		s.logger.Info("maintenance job scheduled", "job", job.Name, "schedule", job.Schedule)
	}

	if scheduled == 0 {
		return nil
	}

	s.cron.Start()
	s.running = true

	go func() {
		<-ctx.Done()
		s.Stop()
	}()
	return nil
}

// Stop stops the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil && s.running {
		ctx := s.cron.Stop()
		<-ctx.Done()
		s.running = false
		s.logger.Info("maintenance scheduler stopped")
	}
}

// IsRunning reports whether the scheduler is active.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// NextRun returns the earliest next job execution, if any.
func (s *Scheduler) NextRun() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.cron.Entries()
	if len(entries) == 0 {
		return nil
	}
	next := entries[0].Next
	for _, e := range entries[1:] {
		if e.Next.Before(next) {
			next = e.Next
		}
	}
	return &next
}
