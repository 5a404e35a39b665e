package outbox

import (
	"context"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"

	"github.com/ecomstack/ordersaga/pkg/logging"
)

type fakeProducer struct {
	msgs []kafka.Message
	err  error
}

func (f *fakeProducer) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func TestDispatchBuildsMessage(t *testing.T) {
	producer := &fakeProducer{}
	d := NewDispatcher(logging.New("error"), producer, "order-topic")

	err := d.Dispatch(context.Background(), Event{
		ID:          7,
		AggregateID: "ORD-1",
		Type:        "OrderConfirmation",
		Payload:     []byte(`{"orderReference":"ORD-1"}`),
		Headers:     map[string]string{"source": "order-service"},
		Traceparent: "00-abc-def-01",
	})
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if len(producer.msgs) != 1 {
		t.Fatalf("messages = %d, want 1", len(producer.msgs))
	}

	msg := producer.msgs[0]
	if msg.Topic != "order-topic" || string(msg.Key) != "ORD-1" {
		t.Errorf("msg topic/key = %q/%q", msg.Topic, msg.Key)
	}

	headers := map[string]string{}
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	if headers["event_type"] != "OrderConfirmation" {
		t.Errorf("event_type header = %q", headers["event_type"])
	}
	if headers["traceparent"] != "00-abc-def-01" {
		t.Errorf("traceparent header = %q", headers["traceparent"])
	}
	if headers["source"] != "order-service" {
		t.Errorf("source header = %q", headers["source"])
	}
}

func TestDispatchProducerError(t *testing.T) {
	producer := &fakeProducer{err: errors.New("broker down")}
	d := NewDispatcher(logging.New("error"), producer, "order-topic")

	if err := d.Dispatch(context.Background(), Event{ID: 1}); err == nil {
		t.Fatal("expected producer error to propagate")
	}
}
