package application

import (
	"context"

	"github.com/ecomstack/ordersaga/internal/catalog/domain"
)

type ProductRepository interface {
	Create(ctx context.Context, p domain.Product) (int, error)
	FindByID(ctx context.Context, id int) (domain.Product, error)
	FindAll(ctx context.Context) ([]domain.Product, error)

	// Reserve performs the all-or-nothing multi-item decrement in a single
	// transaction, locking the affected rows in ascending id order.
	Reserve(ctx context.Context, items []domain.PurchaseItem) ([]domain.PurchaseResult, error)
}
