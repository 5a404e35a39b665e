package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ecomstack/ordersaga/pkg/config"
	"github.com/ecomstack/ordersaga/pkg/logging"
	"github.com/ecomstack/ordersaga/pkg/shutdown"
	"github.com/ecomstack/ordersaga/pkg/tracing"

	"github.com/ecomstack/ordersaga/internal/catalog/application"
	cataloghttp "github.com/ecomstack/ordersaga/internal/catalog/infrastructure/http"
	catalogpg "github.com/ecomstack/ordersaga/internal/catalog/infrastructure/postgres"
)

func main() {
	cfg, err := config.Load(".", "product-service")
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

	repo := catalogpg.NewRepository(log, pool)
	if err := repo.Migrate(ctx); err != nil {
		log.Error("migrate failed", "err", err)
		os.Exit(1)
	}

	svc := application.NewService(log, repo)
	handler := cataloghttp.NewHandler(log, svc)

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      handler.Routes(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("http listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server error", "err", err)
			cancel()
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = srv.Shutdown(shutdownCtx)
	log.Info("product-service shutdown complete")
}
