package bootstrap

import (
	"context"
	"log/slog"
	"sync"

	"slot-reservation/internal/infra/kv"
	"slot-reservation/internal/pkg/config"
	"slot-reservation/internal/usecase"
	"slot-reservation/internal/worker"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("workers",
	fx.Invoke(StartWorkers),
)

// StartWorkers wires the periodic background loops: queue drain, expiry
// reap, and the status-key TTL sweep. Each runs independently; shutdown
// cancels their shared context and waits for the tick in progress.
func StartWorkers(
	lc fx.Lifecycle,
	cfg config.Config,
	queue usecase.ReservationQueue,
	expiry *usecase.ExpiryService,
	statusStore *kv.Store,
	logger *slog.Logger,
) {
	runCtx, cancel := context.WithCancel(context.Background())

	runners := []*worker.Runner{
		worker.NewRunner("queue-drain", cfg.Reservation.QueuePollInterval, queue.DrainOnce, logger),
		worker.NewRunner("expiry-reaper", cfg.Reservation.ExpiryCheckInterval, func(ctx context.Context) error {
			_, err := expiry.Sweep(ctx)
			return err
		}, logger),
		worker.NewRunner("status-ttl-sweep", cfg.Reservation.StatusSweepInterval, func(ctx context.Context) error {
			applied, err := statusStore.ApplyMissingTTL(ctx, cfg.Reservation.StatusTTL)
			if applied > 0 {
				logger.Info("applied TTL to status keys", "count", applied)
			}
			return err
		}, logger),
	}

	var wg sync.WaitGroup
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			for _, r := range runners {
				wg.Add(1)
				go func(r *worker.Runner) {
					defer wg.Done()
					r.Run(runCtx)
				}(r)
			}
			return nil
		},
		OnStop: func(_ context.Context) error {
			cancel()
			wg.Wait()
			return nil
		},
	})
}
