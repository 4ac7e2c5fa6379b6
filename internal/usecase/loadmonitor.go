package usecase

import (
	"log/slog"
	"sync/atomic"

	"slot-reservation/internal/pkg/metrics"
)

// LoadMonitor is the admission-control valve for the direct path. It shifts
// excess load onto the queue instead of rejecting it.
type LoadMonitor struct {
	active    atomic.Int64
	threshold int64
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

func NewLoadMonitor(threshold int, logger *slog.Logger, m *metrics.Metrics) *LoadMonitor {
	if threshold < 1 {
		threshold = 1
	}
	return &LoadMonitor{
		threshold: int64(threshold),
		logger:    logger,
		metrics:   m,
	}
}

// ShouldQueue reports whether the current in-flight count has reached the
// configured threshold.
func (l *LoadMonitor) ShouldQueue() bool {
	current := l.active.Load()
	shouldQueue := current >= l.threshold
	if shouldQueue {
		l.logger.Debug("high load detected, request will be queued", "active_requests", current)
	}
	return shouldQueue
}

// Begin brackets the start of a direct-path request.
func (l *LoadMonitor) Begin() {
	l.metrics.ActiveRequests.Set(float64(l.active.Add(1)))
}

// End brackets the completion of a direct-path request.
func (l *LoadMonitor) End() {
	l.metrics.ActiveRequests.Set(float64(l.active.Add(-1)))
}
