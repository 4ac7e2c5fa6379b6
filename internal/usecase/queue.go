package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"slot-reservation/internal/pkg/errs"
	"slot-reservation/internal/pkg/metrics"

	"github.com/google/uuid"
)

var (
	ErrDuplicateInQueue = errors.New("a reservation request for this email is already in queue")
	ErrStatusNotFound   = errors.New("request status not found")
)

type RequestStatus string

const (
	StatusQueued     RequestStatus = "QUEUED"
	StatusProcessing RequestStatus = "PROCESSING"
	StatusSuccess    RequestStatus = "SUCCESS"
	StatusFailed     RequestStatus = "FAILED"
)

// QueueItem is the unit of work in the durable FIFO. It is owned by the
// queue while in flight; only the single drain worker mutates Attempts.
type QueueItem struct {
	RequestID string `json:"request_id"`
	Email     string `json:"email"`
	Attempts  int    `json:"attempts"`
}

// FIFO is a durable list with head-pop and tail-push. PopHead returns
// (nil, nil) when the list is empty.
type FIFO interface {
	PushTail(ctx context.Context, payload []byte) error
	PopHead(ctx context.Context) ([]byte, error)
	Len(ctx context.Context) (int64, error)
}

// StatusStore is a TTL-backed key→string map. Not a source of truth: losing
// an entry never corrupts reservation state.
type StatusStore interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, bool, error)
}

// GuardSet tracks requester identities with an in-flight queued request.
type GuardSet interface {
	Add(ctx context.Context, member string) error
	Remove(ctx context.Context, member string) error
	Contains(ctx context.Context, member string) (bool, error)
}

type ReservationQueue interface {
	Enqueue(ctx context.Context, email string) (string, error)
	Status(ctx context.Context, requestID string) (string, error)
	// DrainOnce processes up to the configured batch size from the head of
	// the queue. It is invoked on a fixed interval by one worker at a time.
	DrainOnce(ctx context.Context) error
	Depth(ctx context.Context) (int64, error)
	DeadLetterDepth(ctx context.Context) (int64, error)
}

type reservationQueueImpl struct {
	fifo        FIFO
	dlq         FIFO
	status      StatusStore
	guard       GuardSet
	reservation ReservationUseCase
	logger      *slog.Logger
	metrics     *metrics.Metrics

	batchSize   int
	maxAttempts int
	statusTTL   time.Duration
}

func NewReservationQueue(
	fifo FIFO,
	dlq FIFO,
	status StatusStore,
	guard GuardSet,
	res ReservationUseCase,
	logger *slog.Logger,
	m *metrics.Metrics,
	batchSize int,
	maxAttempts int,
	statusTTL time.Duration,
) ReservationQueue {
	if batchSize < 1 {
		batchSize = 1
	}
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &reservationQueueImpl{
		fifo:        fifo,
		dlq:         dlq,
		status:      status,
		guard:       guard,
		reservation: res,
		logger:      logger,
		metrics:     m,
		batchSize:   batchSize,
		maxAttempts: maxAttempts,
		statusTTL:   statusTTL,
	}
}

func (q *reservationQueueImpl) Enqueue(ctx context.Context, email string) (string, error) {
	inQueue, err := q.guard.Contains(ctx, email)
	if err != nil {
		return "", errs.Wrap(err, "duplicate guard check failed")
	}
	if inQueue {
		return "", ErrDuplicateInQueue
	}

	requestID := uuid.NewString()
	payload, err := json.Marshal(QueueItem{RequestID: requestID, Email: email, Attempts: 0})
	if err != nil {
		return "", errs.Wrap(err, "queue item serialization failed")
	}

	if err := q.fifo.PushTail(ctx, payload); err != nil {
		return "", errs.Wrap(err, "queue append failed")
	}
	if err := q.status.Set(ctx, requestID, string(StatusQueued), q.statusTTL); err != nil {
		return "", errs.Wrap(err, "status write failed")
	}
	if err := q.guard.Add(ctx, email); err != nil {
		return "", errs.Wrap(err, "duplicate guard add failed")
	}

	q.logger.Info("reservation request queued", "request_id", requestID, "email", email)
	return requestID, nil
}

func (q *reservationQueueImpl) Status(ctx context.Context, requestID string) (string, error) {
	value, found, err := q.status.Get(ctx, requestID)
	if err != nil {
		return "", errs.Wrap(err, "status read failed")
	}
	if !found {
		return "", ErrStatusNotFound
	}
	return value, nil
}

func (q *reservationQueueImpl) Depth(ctx context.Context) (int64, error) {
	return q.fifo.Len(ctx)
}

func (q *reservationQueueImpl) DeadLetterDepth(ctx context.Context) (int64, error) {
	return q.dlq.Len(ctx)
}

func (q *reservationQueueImpl) DrainOnce(ctx context.Context) error {
	q.updateDepthGauges(ctx)

	for i := 0; i < q.batchSize; i++ {
		payload, err := q.fifo.PopHead(ctx)
		if err != nil {
			return errs.Wrap(err, "queue pop failed")
		}
		if payload == nil {
			return nil
		}

		var item QueueItem
		if err := json.Unmarshal(payload, &item); err != nil {
			// Unparseable items go straight to the dead-letter list so an
			// operator can inspect the raw payload.
			q.logger.Error("failed to deserialize queue item", "payload", string(payload), "error", err)
			q.moveToDLQ(ctx, payload)
			continue
		}

		// Defensive idempotency: a crash can leave an already committed
		// item in the queue. Never reprocess it.
		current, found, err := q.status.Get(ctx, item.RequestID)
		if err == nil && found && current == string(StatusSuccess) {
			continue
		}
		q.setStatus(ctx, item.RequestID, string(StatusProcessing))

		_, reserveErr := q.reservation.Reserve(ctx, item.Email)
		q.classify(ctx, item, reserveErr)
	}
	return nil
}

func (q *reservationQueueImpl) classify(ctx context.Context, item QueueItem, reserveErr error) {
	switch {
	case reserveErr == nil:
		q.metrics.QueueProcessed.Inc()
		q.setStatus(ctx, item.RequestID, string(StatusSuccess))
		q.removeGuard(ctx, item.Email)

	case errors.Is(reserveErr, ErrDuplicateActiveReservation):
		// Business failure: retrying cannot help, consume the item.
		q.logger.Info("skipping duplicate reservation", "email", item.Email)
		q.metrics.QueueDuplicate.Inc()
		q.setStatus(ctx, item.RequestID, failedStatus(reserveErr))
		q.removeGuard(ctx, item.Email)

	case errors.Is(reserveErr, ErrNoSlotAvailable), errors.Is(reserveErr, ErrUserNotFound):
		q.logger.Info("reservation request failed", "email", item.Email, "reason", reserveErr.Error())
		q.metrics.QueueNoSlots.Inc()
		q.setStatus(ctx, item.RequestID, failedStatus(reserveErr))
		q.removeGuard(ctx, item.Email)

	default:
		// Capacity and technical failures are expected to resolve once
		// contention subsides.
		reason := "technical"
		if errors.Is(reserveErr, ErrCapacityExceeded) {
			reason = "capacity_exceeded"
		}
		q.retry(ctx, item, reserveErr, reason)
	}
}

func (q *reservationQueueImpl) retry(ctx context.Context, item QueueItem, cause error, reason string) {
	item.Attempts++
	q.logger.Error("failed to process reservation request",
		"request_id", item.RequestID, "email", item.Email,
		"attempt", item.Attempts, "type", reason, "error", cause)
	q.metrics.QueueRetries.WithLabelValues(reason).Inc()

	if item.Attempts >= q.maxAttempts {
		payload, err := json.Marshal(item)
		if err != nil {
			q.logger.Error("failed to serialize dead-lettered item", "request_id", item.RequestID, "error", err)
			payload = []byte(item.RequestID)
		}
		q.moveToDLQ(ctx, payload)
		q.setStatus(ctx, item.RequestID, failedStatus(cause))
		q.removeGuard(ctx, item.Email)
		return
	}

	// Re-append to the tail so a persistently failing item cannot starve
	// everything queued behind it.
	payload, err := json.Marshal(item)
	if err != nil {
		q.moveToDLQ(ctx, []byte(item.RequestID))
		q.setStatus(ctx, item.RequestID, failedStatus(cause))
		q.removeGuard(ctx, item.Email)
		return
	}
	if err := q.fifo.PushTail(ctx, payload); err != nil {
		q.logger.Error("failed to re-enqueue reservation request", "request_id", item.RequestID, "error", err)
		q.moveToDLQ(ctx, payload)
		q.setStatus(ctx, item.RequestID, failedStatus(cause))
		q.removeGuard(ctx, item.Email)
	}
}

func (q *reservationQueueImpl) moveToDLQ(ctx context.Context, payload []byte) {
	if err := q.dlq.PushTail(ctx, payload); err != nil {
		q.logger.Error("failed to move item to dead-letter queue", "error", err)
		return
	}
	q.metrics.DLQMoved.Inc()
	q.logger.Warn("moved reservation request to dead-letter queue", "payload", string(payload))
}

func (q *reservationQueueImpl) setStatus(ctx context.Context, requestID, value string) {
	if err := q.status.Set(ctx, requestID, value, q.statusTTL); err != nil {
		q.logger.Error("failed to update request status", "request_id", requestID, "error", err)
	}
}

func (q *reservationQueueImpl) removeGuard(ctx context.Context, email string) {
	if err := q.guard.Remove(ctx, email); err != nil {
		q.logger.Error("failed to remove duplicate guard entry", "email", email, "error", err)
	}
}

func (q *reservationQueueImpl) updateDepthGauges(ctx context.Context) {
	if depth, err := q.fifo.Len(ctx); err == nil {
		q.metrics.QueueDepth.Set(float64(depth))
	}
	if depth, err := q.dlq.Len(ctx); err == nil {
		q.metrics.DLQDepth.Set(float64(depth))
	}
}

func failedStatus(cause error) string {
	return string(StatusFailed) + ": " + cause.Error()
}
