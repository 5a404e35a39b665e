package application

import (
	"context"

	"github.com/ecomstack/ordersaga/internal/order/domain"
)

type OrderRepository interface {
	// Create persists the header and its lines in one transaction and
	// returns the generated order id.
	Create(ctx context.Context, o domain.Order, lines []domain.OrderLine) (int, error)
	FindByID(ctx context.Context, id int) (domain.Order, error)
	FindAll(ctx context.Context) ([]domain.Order, error)
	LinesByOrderID(ctx context.Context, orderID int) ([]domain.OrderLine, error)
}

// CustomerDirectory looks a customer up by id. Absence is (nil, nil), not an
// error: the saga maps it to a business failure itself.
type CustomerDirectory interface {
	Find(ctx context.Context, customerID string) (*domain.Customer, error)
}

// StockClient is the product service's atomic multi-item reserve.
type StockClient interface {
	Reserve(ctx context.Context, items []domain.PurchaseItem) ([]domain.PurchaseResult, error)
}

// PaymentClient fires the synchronous payment initiation request.
type PaymentClient interface {
	Request(ctx context.Context, req domain.PaymentRequest) (int, error)
}

// ConfirmationPublisher hands the confirmation to the outbox, from where the
// relay delivers it to order-topic at least once.
type ConfirmationPublisher interface {
	Publish(ctx context.Context, c domain.OrderConfirmation) error
}
