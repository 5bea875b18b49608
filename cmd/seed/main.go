// Command seed creates the review tables and loads a demo catalogue that
// exercises every scoring signal. Running it twice is harmless.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/trueinsight/reviewtrust/pkg/config"
	"github.com/trueinsight/reviewtrust/pkg/database"
	"github.com/trueinsight/reviewtrust/pkg/logger"
)

type seedConfig struct {
	LogLevel     string `env:"LOG_LEVEL" envDefault:"info"`
	PostgresHost string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort int    `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser string `env:"POSTGRES_USER" envDefault:"ecommerce"`
	PostgresPass string `env:"POSTGRES_PASSWORD" envDefault:"ecommerce_secret"`
	PostgresDB   string `env:"TRUST_DB_NAME" envDefault:"review_db"`
	PostgresSSL  string `env:"POSTGRES_SSL_MODE" envDefault:"disable"`
}

const schema = `
CREATE TABLE IF NOT EXISTS products (
	id       UUID PRIMARY KEY,
	name     TEXT NOT NULL,
	category TEXT
);

CREATE TABLE IF NOT EXISTS reviews (
	id          UUID PRIMARY KEY,
	product_id  UUID NOT NULL REFERENCES products (id),
	user_id     UUID NOT NULL,
	rating      SMALLINT NOT NULL CHECK (rating BETWEEN 1 AND 5),
	review_text TEXT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_reviews_product_created ON reviews (product_id, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_reviews_user_created ON reviews (user_id, created_at);
`

func main() {
	if err := run(); err != nil {
		slog.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	var cfg seedConfig
	if err := config.Load(&cfg); err != nil {
		return err
	}
	log := logger.New("review-trust-seed", cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, &database.PostgresConfig{
		Host:     cfg.PostgresHost,
		Port:     cfg.PostgresPort,
		User:     cfg.PostgresUser,
		Password: cfg.PostgresPass,
		DBName:   cfg.PostgresDB,
		SSLMode:  cfg.PostgresSSL,
		MaxConns: 2,

		MaxConnLifetime: time.Hour,
		MaxConnIdleTime: time.Minute,
	}, log)
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer pool.Close()

	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	log.Info("schema ready")

	ds := BuildDataset(time.Now())
	inserted, err := load(ctx, pool, ds)
	if err != nil {
		return err
	}

	log.Info("seed complete",
		slog.Int("products", len(ds.Products)),
		slog.Int("reviews", len(ds.Reviews)),
		slog.Int64("rows_inserted", inserted),
	)
	for _, p := range ds.Products {
		log.Info("seeded product",
			slog.String("id", p.ID),
			slog.String("name", p.Name),
			slog.String("category", p.Category),
		)
	}
	return nil
}

type txStarter interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// load writes ds in one transaction, skipping rows that already exist.
func load(ctx context.Context, pool txStarter, ds Dataset) (int64, error) {
	batch := &pgx.Batch{}
	for _, p := range ds.Products {
		batch.Queue(`INSERT INTO products (id, name, category) VALUES ($1, $2, $3)
			ON CONFLICT (id) DO NOTHING`, p.ID, p.Name, p.Category)
	}
	for _, r := range ds.Reviews {
		batch.Queue(`INSERT INTO reviews (id, product_id, user_id, rating, review_text, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (id) DO NOTHING`,
			r.ID, r.ProductID, r.UserID, r.Rating, r.Text, r.CreatedAt)
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	results := tx.SendBatch(ctx, batch)
	var inserted int64
	for i := 0; i < batch.Len(); i++ {
		tag, err := results.Exec()
		if err != nil {
			_ = results.Close()
			return 0, fmt.Errorf("insert row %d: %w", i, err)
		}
		inserted += tag.RowsAffected()
	}
	if err := results.Close(); err != nil {
		return 0, fmt.Errorf("close batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return inserted, nil
}
