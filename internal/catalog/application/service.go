package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ecomstack/ordersaga/internal/catalog/domain"
	"github.com/ecomstack/ordersaga/pkg/web"
)

type Service struct {
	log  *slog.Logger
	repo ProductRepository
}

func NewService(log *slog.Logger, repo ProductRepository) *Service {
	return &Service{log: log, repo: repo}
}

// Reserve validates a purchase request and hands it to the repository for the
// atomic decrement. Two identical calls decrement twice: reservations carry
// no deduplication key.
func (s *Service) Reserve(ctx context.Context, items []domain.PurchaseItem) ([]domain.PurchaseResult, error) {
	if errs := validatePurchase(items); len(errs) > 0 {
		return nil, errs
	}

	results, err := s.repo.Reserve(ctx, items)
	if err != nil {
		s.log.Warn("purchase rejected", "items", len(items), "err", err)
		return nil, err
	}
	s.log.Info("purchase reserved", "items", len(items))
	return results, nil
}

func (s *Service) CreateProduct(ctx context.Context, p domain.Product) (int, error) {
	if errs := validateProduct(p); len(errs) > 0 {
		return 0, errs
	}
	return s.repo.Create(ctx, p)
}

func (s *Service) GetProduct(ctx context.Context, id int) (domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *Service) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.repo.FindAll(ctx)
}

func validatePurchase(items []domain.PurchaseItem) web.FieldErrors {
	errs := web.FieldErrors{}
	if len(items) == 0 {
		errs["purchases"] = "purchase request list cannot be empty"
		return errs
	}
	for i, it := range items {
		if it.ProductID <= 0 {
			errs[fmt.Sprintf("purchases[%d].productId", i)] = "product id is mandatory"
		}
		if it.Quantity <= 0 {
			errs[fmt.Sprintf("purchases[%d].quantity", i)] = "quantity must be positive"
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func validateProduct(p domain.Product) web.FieldErrors {
	errs := web.FieldErrors{}
	if p.Name == "" {
		errs["name"] = "name is mandatory"
	}
	if p.AvailableQuantity < 0 {
		errs["availableQuantity"] = "available quantity cannot be negative"
	}
	if p.Price.IsNegative() {
		errs["price"] = "price cannot be negative"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
