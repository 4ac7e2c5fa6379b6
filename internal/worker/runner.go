package worker

import (
	"context"
	"log/slog"
	"time"
)

type Task func(ctx context.Context) error

// Runner drives one periodic background task: queue drain, status-key
// sweep, expiry reap. Tasks coordinate only through the shared stores'
// optimistic-locking contract, so runners need no locking between them.
type Runner struct {
	name     string
	interval time.Duration
	task     Task
	logger   *slog.Logger
}

func NewRunner(name string, interval time.Duration, task Task, logger *slog.Logger) *Runner {
	return &Runner{
		name:     name,
		interval: interval,
		task:     task,
		logger:   logger,
	}
}

// Run blocks until ctx is cancelled, invoking the task once per interval.
// Task errors are logged and counted against nothing: the next tick always
// happens.
func (r *Runner) Run(ctx context.Context) {
	r.logger.Info("background worker started", "worker", r.name, "interval", r.interval.String())
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("background worker stopped", "worker", r.name)
			return
		case <-ticker.C:
			if err := r.task(ctx); err != nil {
				r.logger.Error("background task failed", "worker", r.name, "error", err)
			}
		}
	}
}
