package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ecomstack/ordersaga/pkg/logging"
	"github.com/ecomstack/ordersaga/test/integration"
)

// Exercises the reclamation predicate against a real database: pending rows,
// expired in_progress leases and retryable failures must all come back from
// LockBatch, while live leases and exhausted failures must not.
func TestLockBatchReclaimsExpiredLeases(t *testing.T) {
	if testing.Short() {
		t.Skip("requires docker")
	}
	ctx := context.Background()

	env, err := integration.Setup(ctx)
	if err != nil {
		t.Fatalf("integration setup: %v", err)
	}
	defer env.Teardown(ctx)

	pool, err := pgxpool.New(ctx, env.PGURL)
	if err != nil {
		t.Fatalf("pg connect: %v", err)
	}
	defer pool.Close()

	log := logging.New("error")
	if err := NewRepository(log, pool).Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	store := NewOutboxStore(log, pool)

	seed := `INSERT INTO outbox (aggregate_type, aggregate_id, type, payload, status, relay_id, lease_until, retry_count)
		VALUES ('order', $1, 'OrderConfirmation', '{}', $2, $3, $4, $5)`
	past := time.Now().Add(-time.Minute)
	future := time.Now().Add(time.Minute)
	rows := []struct {
		ref        string
		status     string
		relayID    *string
		leaseUntil *time.Time
		retries    int
	}{
		{"ORD-pending", "pending", nil, nil, 0},
		{"ORD-crashed", "in_progress", ptr("dead-relay"), &past, 0},
		{"ORD-live", "in_progress", ptr("live-relay"), &future, 0},
		{"ORD-retryable", "failed", nil, nil, 1},
		{"ORD-exhausted", "failed", nil, nil, maxDispatchAttempts},
		{"ORD-sent", "sent", nil, nil, 0},
	}
	for _, row := range rows {
		if _, err := pool.Exec(ctx, seed, row.ref, row.status, row.relayID, row.leaseUntil, row.retries); err != nil {
			t.Fatalf("seed %s: %v", row.ref, err)
		}
	}

	events, err := store.LockBatch(ctx, "relay-under-test", 10, time.Minute)
	if err != nil {
		t.Fatalf("LockBatch: %v", err)
	}

	got := map[string]bool{}
	for _, e := range events {
		got[e.AggregateID] = true
	}
	for _, want := range []string{"ORD-pending", "ORD-crashed", "ORD-retryable"} {
		if !got[want] {
			t.Errorf("expected %s in locked batch, got %v", want, got)
		}
	}
	for _, skip := range []string{"ORD-live", "ORD-exhausted", "ORD-sent"} {
		if got[skip] {
			t.Errorf("%s must not be locked, got %v", skip, got)
		}
	}

	// everything reclaimable now carries a fresh lease
	again, err := store.LockBatch(ctx, "second-relay", 10, time.Minute)
	if err != nil {
		t.Fatalf("second LockBatch: %v", err)
	}
	if len(again) != 0 {
		t.Errorf("second LockBatch = %d events, want 0", len(again))
	}
}

func ptr(s string) *string { return &s }
