package components

import (
	"slot-reservation/internal/infra/cache"
	"slot-reservation/internal/infra/kv"
	"slot-reservation/internal/infra/repository"
	"slot-reservation/internal/usecase"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		NewRepositoryDB,
		fx.Annotate(
			repository.NewSlotRepository,
			fx.As(new(usecase.SlotRepository)),
		),
		fx.Annotate(
			repository.NewReservationRepository,
			fx.As(new(usecase.ReservationRepository)),
		),
		fx.Annotate(
			repository.NewUserRepository,
			fx.As(new(usecase.UserRepository)),
		),
		kv.NewStatusStore,
		kv.NewGuardSet,
		func(s *kv.Store) usecase.StatusStore { return s },
		func(s *kv.MemberSet) usecase.GuardSet { return s },
		// The cache reads through the slot repository; eviction timing is
		// owned by the use cases.
		func(slots usecase.SlotRepository) usecase.NextSlotCache { return cache.New(slots) },
	),
)

func NewRepositoryDB(pool *pgxpool.Pool) repository.DB {
	return pool
}
