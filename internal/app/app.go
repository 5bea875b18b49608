package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/trueinsight/reviewtrust/internal/classifier"
	"github.com/trueinsight/reviewtrust/internal/config"
	"github.com/trueinsight/reviewtrust/internal/event"
	handler "github.com/trueinsight/reviewtrust/internal/handler/http"
	"github.com/trueinsight/reviewtrust/internal/policy"
	"github.com/trueinsight/reviewtrust/internal/repository"
	"github.com/trueinsight/reviewtrust/internal/repository/postgres"
	"github.com/trueinsight/reviewtrust/internal/scoring"
	"github.com/trueinsight/reviewtrust/internal/sentiment"
	"github.com/trueinsight/reviewtrust/internal/service"
	"github.com/trueinsight/reviewtrust/pkg/breaker"
	"github.com/trueinsight/reviewtrust/pkg/database"
	"github.com/trueinsight/reviewtrust/pkg/health"
	pkgkafka "github.com/trueinsight/reviewtrust/pkg/kafka"
	"github.com/trueinsight/reviewtrust/pkg/middleware"
	"github.com/trueinsight/reviewtrust/pkg/tracing"
)

// App wires together all dependencies and runs the review trust service.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	pool           *pgxpool.Pool
	producer       *pkgkafka.Producer
	httpServer     *http.Server
	tracerShutdown func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
// Model and policy problems are reported before any connection is opened.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	clf, err := classifier.Load(cfg.ModelPath)
	if err != nil {
		return nil, fmt.Errorf("load classifier: %w", err)
	}
	logger.Info("classifier loaded",
		slog.String("path", cfg.ModelPath),
		slog.String("model_version", clf.Version()),
	)

	pol, err := policy.Load(cfg.PolicyPath)
	if err != nil {
		return nil, fmt.Errorf("load policy: %w", err)
	}
	logger.Info("scoring policy loaded",
		slog.String("path", cfg.PolicyPath),
		slog.Any("categories", pol.Categories()),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tracerShutdown, err := tracing.InitTracer(ctx, cfg.Tracing())
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// Initialize PostgreSQL connection pool.
	pgCfg := database.PostgresConfig{
		Host:            cfg.PostgresHost,
		Port:            cfg.PostgresPort,
		User:            cfg.PostgresUser,
		Password:        cfg.PostgresPass,
		DBName:          cfg.PostgresDB,
		SSLMode:         cfg.PostgresSSL,
		MaxConns:        cfg.PostgresMaxConns,
		MinConns:        cfg.PostgresMinConns,
		MaxConnLifetime: time.Hour,
		MaxConnIdleTime: 30 * time.Minute,
	}

	pool, err := database.NewPostgresPool(ctx, &pgCfg, logger)
	if err != nil {
		_ = tracerShutdown(context.Background())
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	logger.Info("connected to PostgreSQL",
		slog.String("host", cfg.PostgresHost),
		slog.Int("port", cfg.PostgresPort),
		slog.String("database", cfg.PostgresDB),
	)
	if err := database.RegisterPoolMetrics(reg, pool, config.ServiceName); err != nil {
		pool.Close()
		_ = tracerShutdown(context.Background())
		return nil, fmt.Errorf("register pool metrics: %w", err)
	}
	database.SetSlowQueryLogging(cfg.SlowQueryThreshold(), logger)

	// Repositories, optionally behind circuit breakers.
	var (
		reviews  repository.ReviewRepository  = postgres.NewReviewRepository(pool)
		products repository.ProductRepository = postgres.NewProductRepository(pool)
	)
	if cfg.BreakerEnabled {
		bm := breaker.NewMetrics(reg)
		reviews = repository.NewBreakerReviews(reviews,
			breaker.New(cfg.Breaker("reviews"), bm, logger, repository.IsExpected))
		products = repository.NewBreakerProducts(products,
			breaker.New(cfg.Breaker("products"), bm, logger, repository.IsExpected))
	}

	// Scoring pipeline.
	extractor := scoring.NewExtractor(sentiment.NewLexicon(), reviews, cfg.BatchActivity)
	pipeline := scoring.NewPipeline(clf, pol, extractor, scoring.NewMetrics(reg), logger)

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.RegisterCritical("postgres", func(ctx context.Context) error {
		return pool.Ping(ctx)
	})

	// Kafka producer for scored events.
	var (
		producer  *pkgkafka.Producer
		publisher service.EventPublisher
	)
	if cfg.EventsEnabled {
		producer = pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)
		publisher = event.NewProducer(producer, logger)
		healthHandler.RegisterNonCritical("kafka", producer.Ping)
		logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))
	} else {
		logger.Info("scored events disabled")
	}

	integrityService := service.NewIntegrityService(products, reviews, pipeline, publisher, clf.Version(), logger)

	// HTTP router.
	router := handler.NewRouter(integrityService, healthHandler, handler.RouterConfig{
		CORS:           middleware.CORSConfig{AllowedOrigins: cfg.CORSAllowedOrigins},
		RequestTimeout: cfg.RequestTimeout,
		AnalyzeLimit:   cfg.AnalyzeRateLimit(),
		Registerer:     reg,
		Gatherer:       reg,
	}, logger)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return &App{
		cfg:            cfg,
		logger:         logger,
		pool:           pool,
		producer:       producer,
		httpServer:     httpServer,
		tracerShutdown: tracerShutdown,
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		_ = a.Shutdown()
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
		}
	}

	a.pool.Close()

	if err := a.tracerShutdown(shutdownCtx); err != nil {
		a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
	}

	a.logger.Info("application shutdown complete")
	return nil
}
