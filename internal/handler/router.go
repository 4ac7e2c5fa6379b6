package handler

import (
	"net/http"

	"slot-reservation/internal/handler/api"
	"slot-reservation/internal/handler/middleware"
	"slot-reservation/internal/pkg/config"
	"slot-reservation/internal/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	logger *middleware.Logger,
	reservationHandler *api.ReservationHandler,
	healthHandler *api.HealthHandler,
	m *metrics.Metrics,
) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, reservationHandler, healthHandler, m)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	reservationHandler *api.ReservationHandler,
	healthHandler *api.HealthHandler,
	m *metrics.Metrics,
) {
	engine.GET("/healthz", healthHandler.Health)
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})))

	apiGroup := engine.Group("/api/v1")
	{
		reservations := apiGroup.Group("/reservations")
		{
			addRoutes(reservations, []route{
				{Method: http.MethodPost, Path: "/reserve", Handler: reservationHandler.Reserve},
				{Method: http.MethodGet, Path: "/status/:requestId", Handler: reservationHandler.Status},
				{Method: http.MethodDelete, Path: "/cancel/:id", Handler: reservationHandler.Cancel},
			})
		}
	}
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, r.Handler)
		case http.MethodPost:
			g.POST(r.Path, r.Handler)
		case http.MethodDelete:
			g.DELETE(r.Path, r.Handler)
		default:
			g.Any(r.Path, r.Handler)
		}
	}
}
