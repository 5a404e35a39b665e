package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ecomstack/ordersaga/internal/order/domain"
	"github.com/ecomstack/ordersaga/pkg/web"
)

// Service coordinates the order-creation saga: customer validation, stock
// reservation, order persistence, payment initiation and confirmation
// publication, strictly in that sequence.
//
// There is no compensation. Once stock is reserved, a later failure leaves
// the decrement (and, after step three, the order) in place; the saga state
// carried in the failure log is what makes the gap observable.
type Service struct {
	log       *slog.Logger
	orders    OrderRepository
	customers CustomerDirectory
	stock     StockClient
	payments  PaymentClient
	publisher ConfirmationPublisher
}

func NewService(
	log *slog.Logger,
	orders OrderRepository,
	customers CustomerDirectory,
	stock StockClient,
	payments PaymentClient,
	publisher ConfirmationPublisher,
) *Service {
	return &Service{
		log:       log,
		orders:    orders,
		customers: customers,
		stock:     stock,
		payments:  payments,
		publisher: publisher,
	}
}

func (s *Service) CreateOrder(ctx context.Context, in CreateOrderInput) (int, error) {
	if errs := in.Validate(); len(errs) > 0 {
		return 0, errs
	}

	state := domain.SagaStarted

	customer, err := s.customers.Find(ctx, in.CustomerID)
	if err != nil {
		return 0, s.fail(state, err)
	}
	if customer == nil {
		return 0, s.fail(state, &web.BusinessError{
			Msg: fmt.Sprintf("cannot create order: customer not found with id %s", in.CustomerID),
		})
	}
	state = domain.SagaCustomerValidated

	purchases, err := s.stock.Reserve(ctx, in.Purchases)
	if err != nil {
		return 0, s.fail(state, err)
	}
	state = domain.SagaStockReserved

	o := domain.NewOrder(in.Reference, in.Amount, in.PaymentMethod, in.CustomerID)
	lines := make([]domain.OrderLine, 0, len(in.Purchases))
	for _, p := range in.Purchases {
		lines = append(lines, domain.OrderLine{ProductID: p.ProductID, Quantity: p.Quantity})
	}
	orderID, err := s.orders.Create(ctx, o, lines)
	if err != nil {
		return 0, s.fail(state, err)
	}
	state = domain.SagaOrderPersisted

	paymentID, err := s.payments.Request(ctx, domain.PaymentRequest{
		Amount:         in.Amount,
		PaymentMethod:  in.PaymentMethod,
		OrderID:        orderID,
		OrderReference: o.Reference,
		Customer:       *customer,
	})
	if err != nil {
		return 0, s.fail(state, err)
	}
	state = domain.SagaPaymentRequested

	err = s.publisher.Publish(ctx, domain.OrderConfirmation{
		OrderReference: o.Reference,
		TotalAmount:    in.Amount,
		PaymentMethod:  in.PaymentMethod,
		Customer:       *customer,
		Purchases:      purchases,
	})
	if err != nil {
		return 0, s.fail(state, err)
	}
	state = domain.SagaConfirmationPublished

	s.log.Info("order created",
		"order_id", orderID,
		"reference", o.Reference,
		"payment_id", paymentID,
		"state", domain.SagaDone,
	)
	return orderID, nil
}

func (s *Service) FindOrder(ctx context.Context, id int) (domain.Order, error) {
	return s.orders.FindByID(ctx, id)
}

func (s *Service) FindAllOrders(ctx context.Context) ([]domain.Order, error) {
	return s.orders.FindAll(ctx)
}

func (s *Service) FindOrderLines(ctx context.Context, orderID int) ([]domain.OrderLine, error) {
	return s.orders.LinesByOrderID(ctx, orderID)
}

func (s *Service) fail(state domain.SagaState, err error) error {
	s.log.Error("order saga failed", "reached", state, "state", domain.SagaFailed, "err", err)
	return err
}
