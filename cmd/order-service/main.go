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
	"github.com/ecomstack/ordersaga/pkg/outbox"
	"github.com/ecomstack/ordersaga/pkg/shutdown"
	"github.com/ecomstack/ordersaga/pkg/tracing"

	"github.com/ecomstack/ordersaga/internal/order/application"
	orderhttp "github.com/ecomstack/ordersaga/internal/order/infrastructure/http"
	orderkafka "github.com/ecomstack/ordersaga/internal/order/infrastructure/kafka"
	orderpg "github.com/ecomstack/ordersaga/internal/order/infrastructure/postgres"
	"github.com/ecomstack/ordersaga/internal/order/infrastructure/rest"
)

func main() {
	cfg, err := config.Load(".", "order-service")
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

	repo := orderpg.NewRepository(log, pool)
	if err := repo.Migrate(ctx); err != nil {
		log.Error("migrate failed", "err", err)
		os.Exit(1)
	}

	writer := orderkafka.NewWriter(cfg.KafkaBrokers())
	defer writer.Close()

	store := orderpg.NewOutboxStore(log, pool)
	dispatch := outbox.NewDispatcher(log, writer, cfg.OrderTopic)
	relay := outbox.NewRelay(log, store, dispatch, "order-service-relay")

	customers := rest.NewCustomerClient(log, cfg.CustomerURL)
	payments := rest.NewPaymentClient(log, cfg.PaymentURL)
	stock := rest.NewProductClient(log, cfg.ProductURL)
	publisher := orderpg.NewConfirmationOutbox(log, pool)

	svc := application.NewService(log, repo, customers, stock, payments, publisher)
	handler := orderhttp.NewHandler(log, svc)

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      handler.Routes(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		if err := relay.Run(ctx); err != nil {
			log.Error("relay stopped with error", "err", err)
		}
	}()

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
	log.Info("order-service shutdown complete")
}
