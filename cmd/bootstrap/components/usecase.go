package components

import (
	"log/slog"

	"slot-reservation/internal/infra/queue"
	"slot-reservation/internal/pkg/clock"
	"slot-reservation/internal/pkg/config"
	"slot-reservation/internal/pkg/metrics"
	"slot-reservation/internal/usecase"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		clock.NewRealClock,
		NewReservationUseCase,
		NewReservationQueue,
		NewLoadMonitor,
		NewExpiryService,
	),
)

func NewReservationUseCase(
	slots usecase.SlotRepository,
	reservations usecase.ReservationRepository,
	users usecase.UserRepository,
	slotCache usecase.NextSlotCache,
	clk clock.Clock,
	logger *slog.Logger,
	m *metrics.Metrics,
	cfg config.Config,
) usecase.ReservationUseCase {
	return usecase.NewReservationUseCase(
		slots, reservations, users, slotCache, clk, logger, m,
		cfg.Reservation.MaxClaimAttempts,
		cfg.Reservation.ClaimBackoffInitial,
	)
}

func NewReservationQueue(
	rdb *redis.Client,
	status usecase.StatusStore,
	guard usecase.GuardSet,
	res usecase.ReservationUseCase,
	logger *slog.Logger,
	m *metrics.Metrics,
	cfg config.Config,
) usecase.ReservationQueue {
	return usecase.NewReservationQueue(
		queue.NewRedisFIFO(rdb, queue.MainQueueKey),
		queue.NewRedisFIFO(rdb, queue.DeadLetterKey),
		status, guard, res, logger, m,
		cfg.Reservation.QueueBatchSize,
		cfg.Reservation.QueueMaxAttempts,
		cfg.Reservation.StatusTTL,
	)
}

func NewLoadMonitor(logger *slog.Logger, m *metrics.Metrics, cfg config.Config) *usecase.LoadMonitor {
	return usecase.NewLoadMonitor(cfg.Reservation.RequestThreshold, logger, m)
}

func NewExpiryService(
	reservations usecase.ReservationRepository,
	slots usecase.SlotRepository,
	slotCache usecase.NextSlotCache,
	clk clock.Clock,
	logger *slog.Logger,
	m *metrics.Metrics,
	cfg config.Config,
) *usecase.ExpiryService {
	return usecase.NewExpiryService(
		reservations, slots, slotCache, clk, logger, m,
		cfg.Reservation.ExpiryAge,
	)
}
