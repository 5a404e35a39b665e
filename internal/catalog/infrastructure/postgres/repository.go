package postgres

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ecomstack/ordersaga/internal/catalog/domain"
	"github.com/ecomstack/ordersaga/pkg/web"
)

type Repository struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewRepository(log *slog.Logger, pool *pgxpool.Pool) *Repository {
	return &Repository{log: log, pool: pool}
}

// Migrate creates the product table.
func (r *Repository) Migrate(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS products (
		id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		available_quantity DOUBLE PRECISION NOT NULL CHECK (available_quantity >= 0),
		price NUMERIC(12,2) NOT NULL
	)`)
	return err
}

func (r *Repository) Create(ctx context.Context, p domain.Product) (int, error) {
	var id int
	err := r.pool.QueryRow(ctx, `INSERT INTO products (name, description, available_quantity, price)
		VALUES ($1,$2,$3,$4) RETURNING id`,
		p.Name, p.Description, p.AvailableQuantity, p.Price).Scan(&id)
	return id, err
}

func (r *Repository) FindByID(ctx context.Context, id int) (domain.Product, error) {
	var p domain.Product
	err := r.pool.QueryRow(ctx, `SELECT id, name, description, available_quantity, price
		FROM products WHERE id=$1`, id).
		Scan(&p.ID, &p.Name, &p.Description, &p.AvailableQuantity, &p.Price)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Product{}, &web.NotFoundError{Msg: "product not found"}
	}
	if err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

func (r *Repository) FindAll(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, description, available_quantity, price
		FROM products ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.AvailableQuantity, &p.Price); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// Reserve locks the requested product rows in ascending id order, applies the
// all-or-nothing decrement and persists the new quantities as one batch.
// Any failure rolls the transaction back with no partial mutation.
func (r *Repository) Reserve(ctx context.Context, items []domain.PurchaseItem) ([]domain.PurchaseResult, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	ids := domain.DistinctIDs(items)
	rows, err := tx.Query(ctx, `SELECT id, name, description, available_quantity, price
		FROM products WHERE id = ANY($1) ORDER BY id FOR UPDATE`, ids)
	if err != nil {
		return nil, err
	}

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.AvailableQuantity, &p.Price); err != nil {
			rows.Close()
			return nil, err
		}
		products = append(products, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	updated, results, err := domain.ApplyPurchase(products, items)
	if err != nil {
		return nil, err
	}

	batch := &pgx.Batch{}
	for _, p := range updated {
		batch.Queue(`UPDATE products SET available_quantity=$2 WHERE id=$1`, p.ID, p.AvailableQuantity)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return results, nil
}
