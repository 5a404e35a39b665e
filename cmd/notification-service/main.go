package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/ecomstack/ordersaga/pkg/config"
	"github.com/ecomstack/ordersaga/pkg/idempotency"
	"github.com/ecomstack/ordersaga/pkg/logging"
	"github.com/ecomstack/ordersaga/pkg/shutdown"
	"github.com/ecomstack/ordersaga/pkg/tracing"

	"github.com/ecomstack/ordersaga/internal/notification/application"
	notifkafka "github.com/ecomstack/ordersaga/internal/notification/infrastructure/kafka"
	notifpg "github.com/ecomstack/ordersaga/internal/notification/infrastructure/postgres"
)

func main() {
	cfg, err := config.Load(".", "notification-service")
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}
	log := logging.New(cfg.LogLevel)

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	tp, err := tracing.Init(ctx, cfg.ServiceName, cfg.OTLPEndpoint, log)
	if err != nil {
		log.Error("otel init failed", "err", err)
		os.Exit(1)
	}
	defer func() { _ = tp.Shutdown(context.Background()) }()

	pool, err := pgxpool.New(ctx, cfg.PGURL)
	if err != nil {
		log.Error("pg connect failed", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	repo := notifpg.NewRepository(log, pool)
	if err := repo.Migrate(ctx); err != nil {
		log.Error("migrate failed", "err", err)
		os.Exit(1)
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer rdb.Close()
	idem := idempotency.NewStore(rdb, 24*time.Hour)

	svc := application.NewService(log, repo)
	consumer := notifkafka.NewConsumer(log, cfg.KafkaBrokers(), cfg.OrderTopic, cfg.ConsumerGroup, svc, idem)

	log.Info("consuming", "topic", cfg.OrderTopic, "group", cfg.ConsumerGroup)
	if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("consumer stopped with error", "err", err)
	}
	log.Info("notification-service shutdown complete")
}
