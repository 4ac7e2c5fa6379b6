package components

import (
	"slot-reservation/internal/handler"
	"slot-reservation/internal/handler/api"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewReservationHandler,
		api.NewHealthHandler,
	),
	fx.Invoke(handler.NewRouter),
)
