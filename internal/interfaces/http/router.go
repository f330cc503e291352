package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/turtacn/NFHS-Explorer/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/NFHS-Explorer/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/NFHS-Explorer/internal/interfaces/http/handlers"
	"github.com/turtacn/NFHS-Explorer/internal/interfaces/http/middleware"
)

// RouterConfig aggregates all handler and middleware dependencies required
// to construct the complete HTTP route tree.
type RouterConfig struct {
	// Handlers
	DashboardHandler *handlers.DashboardHandler
	PageHandler      *handlers.PageHandler
	HealthHandler    *handlers.HealthHandler

	// Middleware
	CORSMiddleware *middleware.CORSMiddleware
	Logging        *middleware.LoggingConfig

	// Infrastructure
	Logger           logging.Logger
	Metrics          *prometheus.AppMetrics
	MetricsCollector prometheus.MetricsCollector
	// MetricsPath defaults to "/metrics".
	MetricsPath string
}

// NewRouter constructs the complete HTTP route tree from the given configuration.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// --- Global middleware (applied to every request) ---
	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	if cfg.CORSMiddleware != nil {
		r.Use(cfg.CORSMiddleware.Handler)
	}
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}
	if cfg.Logging != nil {
		r.Use(middleware.RequestLogging(cfg.Logger, *cfg.Logging))
	}

	// --- Probes ---
	if cfg.HealthHandler != nil {
		r.Get("/healthz", cfg.HealthHandler.Liveness)
		r.Get("/readyz", cfg.HealthHandler.Readiness)
	}

	if cfg.MetricsCollector != nil {
		path := cfg.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.Handle(path, cfg.MetricsCollector.Handler())
	}

	if cfg.PageHandler != nil {
		r.Get("/", cfg.PageHandler.Index)
	}

	if cfg.DashboardHandler != nil {
		r.Route("/api/v1", func(api chi.Router) {
			registerDashboardRoutes(api, cfg.DashboardHandler)
		})
	}

	return r
}

// registerDashboardRoutes mounts the read-only dashboard endpoints.
func registerDashboardRoutes(r chi.Router, h *handlers.DashboardHandler) {
	r.Get("/options", h.Options)
	r.Get("/dashboard", h.Dashboard)
	r.Get("/kpis", h.KPIs)
	r.Get("/comparison", h.Comparison)
	r.Get("/rows", h.Rows)

	r.Get("/chart.svg", h.ChartSVG)
	r.Get("/chart.png", h.ChartPNG)

	r.Get("/export.csv", h.ExportCSV)
	r.Get("/export.xlsx", h.ExportXLSX)
}

//Personal.AI order the ending
