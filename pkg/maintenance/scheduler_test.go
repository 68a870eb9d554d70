package maintenance

import (
	"context"
	"testing"
)

func TestStartWithNoSchedules(t *testing.T) {
	s := NewScheduler([]Job{{Name: "sweep", Run: func() int { return 0 }}})
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if s.IsRunning() {
		t.Error("scheduler running with no scheduled jobs")
	}
}

func TestStartRejectsBadSchedule(t *testing.T) {
	s := NewScheduler([]Job{{Name: "sweep", Schedule: "not a cron expr", Run: func() int { return 0 }}})
	if err := s.Start(context.Background()); err == nil {
		t.Error("invalid schedule accepted")
	}
}

func TestStartAndStop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := NewScheduler([]Job{{Name: "sweep", Schedule: "0 3 * * *", Run: func() int { return 0 }}})
	if err := s.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if !s.IsRunning() {
		t.Error("scheduler not running")
	}
	if s.NextRun() == nil {
		t.Error("no next run scheduled")
	}

	s.Stop()
	if s.IsRunning() {
		t.Error("scheduler still running after Stop")
	}
}
