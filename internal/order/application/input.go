package application

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ecomstack/ordersaga/internal/order/domain"
	"github.com/ecomstack/ordersaga/pkg/web"
)

// CreateOrderInput is the validated order-creation request. Reference is
// optional; a blank one gets generated.
type CreateOrderInput struct {
	Reference     string                `json:"reference"`
	Amount        decimal.Decimal       `json:"amount"`
	PaymentMethod domain.PaymentMethod  `json:"paymentMethod"`
	CustomerID    string                `json:"customerId"`
	Purchases     []domain.PurchaseItem `json:"purchases"`
}

// Validate runs before any side-effecting saga step and reports every failing
// field at once.
func (in CreateOrderInput) Validate() web.FieldErrors {
	errs := web.FieldErrors{}
	if !in.Amount.IsPositive() {
		errs["amount"] = "total amount must be positive"
	}
	if in.PaymentMethod == "" {
		errs["paymentMethod"] = "payment method should be precised"
	} else if !in.PaymentMethod.Valid() {
		errs["paymentMethod"] = fmt.Sprintf("unknown payment method %q", in.PaymentMethod)
	}
	if strings.TrimSpace(in.CustomerID) == "" {
		errs["customerId"] = "customer id cannot be blank"
	}
	if len(in.Purchases) == 0 {
		errs["purchases"] = "you should at least purchase one product"
	}
	for i, p := range in.Purchases {
		if p.ProductID <= 0 {
			errs[fmt.Sprintf("purchases[%d].productId", i)] = "product id is mandatory"
		}
		if p.Quantity <= 0 {
			errs[fmt.Sprintf("purchases[%d].quantity", i)] = "quantity must be positive"
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
