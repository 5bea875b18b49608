package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/trueinsight/reviewtrust/pkg/breaker"
	pkgconfig "github.com/trueinsight/reviewtrust/pkg/config"
	"github.com/trueinsight/reviewtrust/pkg/middleware"
	"github.com/trueinsight/reviewtrust/pkg/tracing"
)

// ServiceName identifies the service in logs, traces and metrics.
const ServiceName = "review-trust"

// Config holds all configuration for the review trust service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort           int           `env:"TRUST_HTTP_PORT" envDefault:"8010"`
	RequestTimeout     time.Duration `env:"TRUST_REQUEST_TIMEOUT" envDefault:"30s"`
	CORSAllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
	AnalyzeRPS         float64       `env:"TRUST_ANALYZE_RPS" envDefault:"5"`
	AnalyzeBurst       int           `env:"TRUST_ANALYZE_BURST" envDefault:"10"`

	// PostgreSQL
	PostgresHost     string        `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort     int           `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser     string        `env:"POSTGRES_USER" envDefault:"ecommerce"`
	PostgresPass     string        `env:"POSTGRES_PASSWORD" envDefault:"ecommerce_secret"`
	PostgresDB       string        `env:"TRUST_DB_NAME" envDefault:"review_db"`
	PostgresSSL      string        `env:"POSTGRES_SSL_MODE" envDefault:"disable"`
	PostgresMaxConns int32         `env:"POSTGRES_MAX_CONNS" envDefault:"25"`
	PostgresMinConns int32         `env:"POSTGRES_MIN_CONNS" envDefault:"5"`
	SlowQueryMS      int           `env:"LOG_SLOW_QUERY_MS" envDefault:"200"`

	// Kafka
	KafkaBrokers  []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`
	EventsEnabled bool     `env:"TRUST_EVENTS_ENABLED" envDefault:"true"`

	// Tracing
	OTELEnabled    bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTELEndpoint   string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	OTELSampleRate float64 `env:"OTEL_SAMPLE_RATE" envDefault:"1.0"`

	// Scoring
	ModelPath     string `env:"MODEL_PATH,required,notEmpty"`
	PolicyPath    string `env:"POLICY_PATH"`
	BatchActivity bool   `env:"TRUST_BATCH_ACTIVITY" envDefault:"true"`

	// Repository circuit breaker
	BreakerEnabled      bool          `env:"REPO_BREAKER_ENABLED" envDefault:"true"`
	BreakerTimeout      time.Duration `env:"REPO_BREAKER_TIMEOUT" envDefault:"30s"`
	BreakerFailureRatio float64       `env:"REPO_BREAKER_FAILURE_RATIO" envDefault:"0.5"`
	BreakerMinRequests  uint32        `env:"REPO_BREAKER_MIN_REQUESTS" envDefault:"5"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load review trust config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		errs = append(errs, fmt.Errorf("invalid HTTP port: %d", c.HTTPPort))
	}
	if c.PostgresMaxConns < 1 || c.PostgresMinConns < 0 || c.PostgresMinConns > c.PostgresMaxConns {
		errs = append(errs, fmt.Errorf("invalid postgres pool size: min %d, max %d", c.PostgresMinConns, c.PostgresMaxConns))
	}
	if c.SlowQueryMS < 0 {
		errs = append(errs, fmt.Errorf("LOG_SLOW_QUERY_MS must not be negative"))
	}
	if c.EventsEnabled && len(c.KafkaBrokers) == 0 {
		errs = append(errs, errors.New("KAFKA_BROKERS is required when TRUST_EVENTS_ENABLED is set"))
	}
	if c.OTELSampleRate < 0 || c.OTELSampleRate > 1 {
		errs = append(errs, fmt.Errorf("OTEL_SAMPLE_RATE must be within [0, 1], got %v", c.OTELSampleRate))
	}
	if c.BreakerFailureRatio <= 0 || c.BreakerFailureRatio > 1 {
		errs = append(errs, fmt.Errorf("REPO_BREAKER_FAILURE_RATIO must be within (0, 1], got %v", c.BreakerFailureRatio))
	}
	if c.BreakerTimeout <= 0 {
		errs = append(errs, errors.New("REPO_BREAKER_TIMEOUT must be positive"))
	}
	if c.AnalyzeRPS < 0 {
		errs = append(errs, fmt.Errorf("TRUST_ANALYZE_RPS must not be negative, got %v", c.AnalyzeRPS))
	}
	if c.AnalyzeRPS > 0 && c.AnalyzeBurst < 1 {
		errs = append(errs, fmt.Errorf("TRUST_ANALYZE_BURST must be at least 1, got %d", c.AnalyzeBurst))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, errors.New("TRUST_REQUEST_TIMEOUT must be positive"))
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("unknown LOG_LEVEL %q", c.LogLevel))
	}
	return errors.Join(errs...)
}

// SlowQueryThreshold returns the duration above which queries are logged.
// Zero disables slow query logging.
func (c *Config) SlowQueryThreshold() time.Duration {
	return time.Duration(c.SlowQueryMS) * time.Millisecond
}

// Tracing returns the OpenTelemetry settings.
func (c *Config) Tracing() tracing.Config {
	tc := tracing.DefaultConfig(ServiceName)
	tc.Environment = c.Environment
	tc.Enabled = c.OTELEnabled
	tc.OTLPEndpoint = c.OTELEndpoint
	tc.SampleRate = c.OTELSampleRate
	return tc
}

// AnalyzeRateLimit returns the per-client limit for batch analysis.
// A zero rate disables it.
func (c *Config) AnalyzeRateLimit() middleware.RateLimitConfig {
	return middleware.RateLimitConfig{RPS: c.AnalyzeRPS, Burst: c.AnalyzeBurst}
}

// Breaker returns the circuit breaker settings for repository reads.
func (c *Config) Breaker(name string) breaker.Config {
	bc := breaker.DefaultConfig(name)
	bc.Timeout = c.BreakerTimeout
	bc.FailureRatio = c.BreakerFailureRatio
	bc.MinRequests = c.BreakerMinRequests
	return bc
}
