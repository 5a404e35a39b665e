package outbox

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/ecomstack/ordersaga/pkg/logging"
)

type fakeStore struct {
	mu       sync.Mutex
	pending  []Event
	sent     []int64
	failed   []int64
	extended [][]int64
}

func (s *fakeStore) LockBatch(_ context.Context, _ string, batchSize int, _ time.Duration) ([]Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.pending) == 0 {
		return nil, nil
	}
	n := batchSize
	if n > len(s.pending) {
		n = len(s.pending)
	}
	batch := s.pending[:n]
	s.pending = s.pending[n:]
	return batch, nil
}

func (s *fakeStore) MarkSent(_ context.Context, ids []int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, ids...)
	return nil
}

func (s *fakeStore) MarkFailed(_ context.Context, id int64, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failed = append(s.failed, id)
	return nil
}

func (s *fakeStore) ExtendLease(_ context.Context, _ string, ids []int64, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.extended = append(s.extended, append([]int64(nil), ids...))
	return nil
}

func (s *fakeStore) snapshot() (sent, failed []int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int64(nil), s.sent...), append([]int64(nil), s.failed...)
}

// selectiveProducer rejects messages with a chosen key so one event in a
// batch can fail while the rest deliver.
type selectiveProducer struct {
	failKey string
}

func (p *selectiveProducer) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	for _, m := range msgs {
		if string(m.Key) == p.failKey {
			return errors.New("broker rejected message")
		}
	}
	return nil
}

// slowProducer simulates a sluggish broker so a batch outlives half its lease.
type slowProducer struct {
	delay time.Duration
}

func (p *slowProducer) WriteMessages(_ context.Context, _ ...kafka.Message) error {
	time.Sleep(p.delay)
	return nil
}

func TestRelayMarksSentAndFailed(t *testing.T) {
	store := &fakeStore{pending: []Event{
		{ID: 1, AggregateID: "ORD-1", Type: "OrderConfirmation", Payload: []byte(`{}`)},
		{ID: 2, AggregateID: "fail", Type: "OrderConfirmation", Payload: []byte(`{}`)},
		{ID: 3, AggregateID: "ORD-3", Type: "OrderConfirmation", Payload: []byte(`{}`)},
	}}
	producer := &selectiveProducer{failKey: "fail"}

	log := logging.New("error")
	relay := NewRelay(log, store, NewDispatcher(log, producer, "order-topic"), "test-relay")
	relay.interval = 10 * time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	_ = relay.Run(ctx)

	sent, failed := store.snapshot()
	if len(sent) != 2 {
		t.Errorf("sent = %v, want ids 1 and 3", sent)
	}
	if len(failed) != 1 || failed[0] != 2 {
		t.Errorf("failed = %v, want [2]", failed)
	}
}

func TestRelayExtendsLeaseDuringSlowBatch(t *testing.T) {
	store := &fakeStore{pending: []Event{
		{ID: 1, AggregateID: "ORD-1", Type: "OrderConfirmation", Payload: []byte(`{}`)},
		{ID: 2, AggregateID: "ORD-2", Type: "OrderConfirmation", Payload: []byte(`{}`)},
	}}
	producer := &slowProducer{delay: 40 * time.Millisecond}

	log := logging.New("error")
	relay := NewRelay(log, store, NewDispatcher(log, producer, "order-topic"), "test-relay")
	relay.interval = 5 * time.Millisecond
	relay.lease = 20 * time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	_ = relay.Run(ctx)

	store.mu.Lock()
	extended := store.extended
	store.mu.Unlock()
	if len(extended) == 0 {
		t.Fatal("expected the lease to be refreshed mid-batch")
	}
	// the first refresh happens after event 1, so it covers the remainder
	if len(extended[0]) != 1 || extended[0][0] != 2 {
		t.Errorf("first refresh ids = %v, want [2]", extended[0])
	}

	sent, failed := store.snapshot()
	if len(sent) != 2 || len(failed) != 0 {
		t.Errorf("sent = %v, failed = %v", sent, failed)
	}
}
