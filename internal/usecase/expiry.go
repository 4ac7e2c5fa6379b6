package usecase

import (
	"context"
	"log/slog"
	"time"

	"slot-reservation/internal/pkg/clock"
	"slot-reservation/internal/pkg/errs"
	"slot-reservation/internal/pkg/metrics"
)

// ExpiryService reclaims slots whose reservation was never finalized within
// the configured age.
type ExpiryService struct {
	reservations ReservationRepository
	slots        SlotRepository
	cache        NextSlotCache
	clock        clock.Clock
	logger       *slog.Logger
	metrics      *metrics.Metrics
	expiryAge    time.Duration
}

func NewExpiryService(
	reservations ReservationRepository,
	slots SlotRepository,
	cache NextSlotCache,
	clk clock.Clock,
	logger *slog.Logger,
	m *metrics.Metrics,
	expiryAge time.Duration,
) *ExpiryService {
	return &ExpiryService{
		reservations: reservations,
		slots:        slots,
		cache:        cache,
		clock:        clk,
		logger:       logger,
		metrics:      m,
		expiryAge:    expiryAge,
	}
}

// Sweep releases the slot and deletes the reservation for every reservation
// older than the expiry age. The next-slot cache is evicted once per sweep,
// not once per reclaimed slot, since all reclaimed slots become candidates
// at the same moment.
func (s *ExpiryService) Sweep(ctx context.Context) (int, error) {
	cutoff := s.clock.Now().Add(-s.expiryAge)
	expired, err := s.reservations.FindReservedBefore(ctx, cutoff)
	if err != nil {
		return 0, errs.Wrap(err, "expired reservation lookup failed")
	}
	if len(expired) == 0 {
		return 0, nil
	}

	s.logger.Info("processing expired reservations", "count", len(expired))

	reclaimed := 0
	for _, res := range expired {
		if err := s.slots.Release(ctx, res.SlotID); err != nil {
			s.logger.Error("failed to release expired slot",
				"reservation_id", res.ID, "slot_id", res.SlotID, "error", err)
			continue
		}
		if err := s.reservations.Delete(ctx, res.ID); err != nil {
			s.logger.Error("failed to delete expired reservation",
				"reservation_id", res.ID, "error", err)
			continue
		}
		reclaimed++
		s.metrics.ExpiredReclaimed.Inc()
		s.logger.Info("expired reservation deleted",
			"reservation_id", res.ID, "email", res.UserEmail, "slot_id", res.SlotID)
	}

	if reclaimed > 0 {
		s.cache.Evict()
	}
	return reclaimed, nil
}
