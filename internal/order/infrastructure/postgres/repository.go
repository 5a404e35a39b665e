package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ecomstack/ordersaga/internal/order/domain"
	"github.com/ecomstack/ordersaga/pkg/web"
)

const uniqueViolation = "23505"

type Repository struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewRepository(log *slog.Logger, pool *pgxpool.Pool) *Repository {
	return &Repository{log: log, pool: pool}
}

// Migrate creates the order, order-line and outbox tables.
func (r *Repository) Migrate(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS orders (
			id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
			reference TEXT NOT NULL UNIQUE,
			total_amount NUMERIC(12,2) NOT NULL,
			payment_method TEXT NOT NULL,
			customer_id TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);
		CREATE TABLE IF NOT EXISTS order_lines (
			id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
			order_id BIGINT NOT NULL REFERENCES orders(id),
			product_id BIGINT NOT NULL,
			quantity DOUBLE PRECISION NOT NULL
		);
		CREATE TABLE IF NOT EXISTS outbox (
			id BIGSERIAL PRIMARY KEY,
			aggregate_type TEXT NOT NULL,
			aggregate_id TEXT NOT NULL,
			type TEXT NOT NULL,
			payload JSONB NOT NULL,
			headers JSONB,
			traceparent TEXT,
			status TEXT NOT NULL DEFAULT 'pending',
			relay_id TEXT,
			lease_until TIMESTAMPTZ,
			retry_count INT NOT NULL DEFAULT 0,
			last_error TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
	`)
	return err
}

// Create persists the header and its lines in one transaction. The header is
// inserted first so the generated id can tag each line.
func (r *Repository) Create(ctx context.Context, o domain.Order, lines []domain.OrderLine) (int, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var id int
	err = tx.QueryRow(ctx, `INSERT INTO orders (reference, total_amount, payment_method, customer_id, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6) RETURNING id`,
		o.Reference, o.TotalAmount, string(o.PaymentMethod), o.CustomerID, o.CreatedAt, o.UpdatedAt).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return 0, &web.BusinessError{Msg: fmt.Sprintf("order reference %s already exists", o.Reference)}
		}
		return 0, err
	}

	batch := &pgx.Batch{}
	for _, line := range lines {
		batch.Queue(`INSERT INTO order_lines (order_id, product_id, quantity) VALUES ($1,$2,$3)`,
			id, line.ProductID, line.Quantity)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *Repository) FindByID(ctx context.Context, id int) (domain.Order, error) {
	var o domain.Order
	var method string
	err := r.pool.QueryRow(ctx, `SELECT id, reference, total_amount, payment_method, customer_id, created_at, updated_at
		FROM orders WHERE id=$1`, id).
		Scan(&o.ID, &o.Reference, &o.TotalAmount, &method, &o.CustomerID, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Order{}, &web.NotFoundError{Msg: fmt.Sprintf("order not found with id %d", id)}
	}
	if err != nil {
		return domain.Order{}, err
	}
	o.PaymentMethod = domain.PaymentMethod(method)
	return o, nil
}

func (r *Repository) FindAll(ctx context.Context) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, reference, total_amount, payment_method, customer_id, created_at, updated_at
		FROM orders ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var o domain.Order
		var method string
		if err := rows.Scan(&o.ID, &o.Reference, &o.TotalAmount, &method, &o.CustomerID, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		o.PaymentMethod = domain.PaymentMethod(method)
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *Repository) LinesByOrderID(ctx context.Context, orderID int) ([]domain.OrderLine, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, order_id, product_id, quantity FROM order_lines
		WHERE order_id=$1 ORDER BY id`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []domain.OrderLine
	for rows.Next() {
		var l domain.OrderLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.ProductID, &l.Quantity); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}
