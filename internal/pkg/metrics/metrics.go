package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics is the fire-and-forget sink the core reports into. Losing a
// sample never affects reservation state.
type Metrics struct {
	Registry *prometheus.Registry

	ReservationSuccess   prometheus.Counter
	ReservationFailed    prometheus.Counter
	ReservationCancelled prometheus.Counter
	LockConflicts        prometheus.Counter
	ExpiredReclaimed     prometheus.Counter

	QueueProcessed prometheus.Counter
	QueueDuplicate prometheus.Counter
	QueueNoSlots   prometheus.Counter
	QueueRetries   *prometheus.CounterVec
	DLQMoved       prometheus.Counter

	QueueDepth     prometheus.Gauge
	DLQDepth       prometheus.Gauge
	ActiveRequests prometheus.Gauge
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		ReservationSuccess: factory.NewCounter(prometheus.CounterOpts{
			Name: "reservation_success_total",
			Help: "Reservations committed, direct and queued paths combined.",
		}),
		ReservationFailed: factory.NewCounter(prometheus.CounterOpts{
			Name: "reservation_failed_total",
			Help: "Reserve calls rejected for business reasons.",
		}),
		ReservationCancelled: factory.NewCounter(prometheus.CounterOpts{
			Name: "reservation_cancelled_total",
			Help: "Reservations cancelled by the caller.",
		}),
		LockConflicts: factory.NewCounter(prometheus.CounterOpts{
			Name: "reservation_lock_conflicts_total",
			Help: "Claim attempts abandoned after exhausting the version-conflict retry budget.",
		}),
		ExpiredReclaimed: factory.NewCounter(prometheus.CounterOpts{
			Name: "reservation_expired_reclaimed_total",
			Help: "Reservations deleted by the expiry reaper.",
		}),
		QueueProcessed: factory.NewCounter(prometheus.CounterOpts{
			Name: "reservation_queue_processed_total",
			Help: "Queue items that resulted in a committed reservation.",
		}),
		QueueDuplicate: factory.NewCounter(prometheus.CounterOpts{
			Name: "reservation_queue_duplicate_total",
			Help: "Queue items dropped because the requester already held a reservation.",
		}),
		QueueNoSlots: factory.NewCounter(prometheus.CounterOpts{
			Name: "reservation_queue_no_slots_total",
			Help: "Queue items failed because no slot was available.",
		}),
		QueueRetries: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "reservation_queue_retries_total",
			Help: "Queue items written back for another drain pass.",
		}, []string{"reason"}),
		DLQMoved: factory.NewCounter(prometheus.CounterOpts{
			Name: "reservation_dlq_moved_total",
			Help: "Queue items moved to the dead-letter list.",
		}),
		QueueDepth: factory.NewGauge(prometheus.GaugeOpts{
			Name: "reservation_queue_depth",
			Help: "Items currently waiting in the request queue.",
		}),
		DLQDepth: factory.NewGauge(prometheus.GaugeOpts{
			Name: "reservation_dlq_depth",
			Help: "Items parked in the dead-letter list.",
		}),
		ActiveRequests: factory.NewGauge(prometheus.GaugeOpts{
			Name: "reservation_active_requests",
			Help: "Direct-path requests currently in flight.",
		}),
	}
}
