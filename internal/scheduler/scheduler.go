// Package scheduler runs periodic housekeeping on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Task is one housekeeping step.
type Task func(ctx context.Context) error

type namedTask struct {
	name string
	run  Task
}

// Scheduler wraps robfig/cron and runs every registered task on one spec.
type Scheduler struct {
	cron   *cron.Cron
	spec   string
	logger *slog.Logger
	tasks  []namedTask
}

// New creates a Scheduler that fires on spec, e.g. "@every 1h".
func New(spec string, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		spec:   spec,
		logger: logger,
	}
}

// Add registers a task. Tasks run in the order they were added.
func (s *Scheduler) Add(name string, task Task) {
	s.tasks = append(s.tasks, namedTask{name: name, run: task})
}

// Start registers the cycle with cron and starts it. One cycle also runs
// immediately so stale state is cleared without waiting for the first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.spec, func() { s.RunOnce(ctx) }); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", s.spec, err)
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "spec", s.spec, "tasks", len(s.tasks))

	go s.RunOnce(ctx)

	return nil
}

// Stop stops the scheduler and waits for a running cycle to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("scheduler stopped")
}

// RunOnce runs every task once. A failing task is logged and does not stop
// the ones after it.
func (s *Scheduler) RunOnce(ctx context.Context) {
	for _, task := range s.tasks {
		if ctx.Err() != nil {
			return
		}

		start := time.Now()
		if err := task.run(ctx); err != nil {
			s.logger.Error("scheduled task failed", "task", task.name, "error", err)
			continue
		}
		s.logger.Debug("scheduled task done", "task", task.name, "duration", time.Since(start))
	}
}
