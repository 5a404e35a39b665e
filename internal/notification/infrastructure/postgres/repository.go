package postgres

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ecomstack/ordersaga/internal/notification/domain"
)

type Repository struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewRepository(log *slog.Logger, pool *pgxpool.Pool) *Repository {
	return &Repository{log: log, pool: pool}
}

func (r *Repository) Migrate(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS notifications (
		id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
		type TEXT NOT NULL,
		payload JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`)
	return err
}

func (r *Repository) Save(ctx context.Context, n domain.Notification) (int, error) {
	var id int
	err := r.pool.QueryRow(ctx, `INSERT INTO notifications (type, payload, created_at)
		VALUES ($1,$2,$3) RETURNING id`,
		string(n.Type), []byte(n.Payload), n.CreatedAt).Scan(&id)
	return id, err
}
