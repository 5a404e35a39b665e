package kafka

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/ecomstack/ordersaga/internal/notification/application"
	"github.com/ecomstack/ordersaga/internal/notification/domain"
	orderdomain "github.com/ecomstack/ordersaga/internal/order/domain"
	"github.com/ecomstack/ordersaga/pkg/idempotency"
	"github.com/ecomstack/ordersaga/pkg/tracing"
)

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type dedupStore interface {
	Key(topic string, partition int, offset int64) string
	Seen(ctx context.Context, key string) (bool, error)
	Mark(ctx context.Context, key string) error
}

// Consumer reads order-topic, skips duplicates and appends one notification
// row per confirmation. A message is marked seen and its offset committed
// only after the row is persisted, so a failed insert is redelivered instead
// of dropped.
type Consumer struct {
	log    *slog.Logger
	reader messageReader
	svc    *application.Service
	idem   dedupStore
	tracer trace.Tracer
}

func NewConsumer(log *slog.Logger, brokers []string, topic, group string, svc *application.Service, idem *idempotency.Store) *Consumer {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers: brokers,
		Topic:   topic,
		GroupID: group,
	})
	return &Consumer{
		log:    log,
		reader: r,
		svc:    svc,
		idem:   idem,
		tracer: otel.Tracer("notification-consumer"),
	}
}

func (c *Consumer) Run(ctx context.Context) error {
	defer c.reader.Close()

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			return err
		}
		key := c.idem.Key(msg.Topic, msg.Partition, msg.Offset)
		seen, err := c.idem.Seen(ctx, key)
		if err != nil {
			c.log.Error("idempotency check failed", "err", err)
			continue
		}
		if seen {
			c.log.Info("duplicate message skipped", "key", key)
			_ = c.reader.CommitMessages(ctx, msg)
			continue
		}

		msgCtx := tracing.ExtractKafkaHeaders(ctx, msg.Headers)
		msgCtx, span := c.tracer.Start(msgCtx, "ConsumeOrderConfirmation")

		var confirmation orderdomain.OrderConfirmation
		if err := json.Unmarshal(msg.Value, &confirmation); err != nil {
			// malformed payloads would fail forever; commit and move on
			c.log.Error("unmarshal failed", "err", err)
			span.End()
			_ = c.reader.CommitMessages(ctx, msg)
			continue
		}

		if _, err := c.svc.Record(msgCtx, domain.TypeOrderConfirmation, msg.Value); err != nil {
			// leave the offset uncommitted so the broker redelivers
			c.log.Error("notification record failed", "reference", confirmation.OrderReference, "err", err)
			span.End()
			continue
		}
		if err := c.idem.Mark(ctx, key); err != nil {
			c.log.Error("idempotency mark failed", "key", key, "err", err)
		}
		c.log.Info("order confirmation consumed", "reference", confirmation.OrderReference)
		span.End()
		_ = c.reader.CommitMessages(ctx, msg)
	}
}
