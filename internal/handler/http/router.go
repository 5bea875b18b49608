package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/trueinsight/reviewtrust/internal/service"
	"github.com/trueinsight/reviewtrust/pkg/health"
	"github.com/trueinsight/reviewtrust/pkg/middleware"
)

// RouterConfig carries the cross-cutting pieces the router needs.
type RouterConfig struct {
	CORS           middleware.CORSConfig
	RequestTimeout time.Duration
	AnalyzeLimit   middleware.RateLimitConfig
	Registerer     prometheus.Registerer
	Gatherer       prometheus.Gatherer
}

// NewRouter creates a chi router with all review trust routes registered.
func NewRouter(
	integrityService *service.IntegrityService,
	healthHandler *health.Handler,
	cfg RouterConfig,
	logger *slog.Logger,
) http.Handler {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.Tracing())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.NewHTTPMetrics(cfg.Registerer, "review-trust").Middleware)
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(cfg.RequestTimeout))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Handle("/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))

	integrityHandler := NewIntegrityHandler(integrityService, logger)

	r.Get("/api/v1/products/{productId}/integrity", integrityHandler.GetProductIntegrity)

	r.Route("/api/v1/integrity", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.With(middleware.RateLimit(cfg.AnalyzeLimit, logger)).
			Post("/analyze", integrityHandler.AnalyzeBatch)
	})

	return r
}
