package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentPaypal       PaymentMethod = "PAYPAL"
	PaymentCreditCard   PaymentMethod = "CREDIT_CARD"
	PaymentDebitCard    PaymentMethod = "DEBIT_CARD"
	PaymentBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentCash         PaymentMethod = "CASH"
	PaymentVisa         PaymentMethod = "VISA"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentPaypal, PaymentCreditCard, PaymentDebitCard, PaymentBankTransfer, PaymentCash, PaymentVisa:
		return true
	}
	return false
}

// Order is the persisted header. Reference is unique; the customer id is a
// cross-service reference checked at creation time only.
type Order struct {
	ID            int
	Reference     string
	TotalAmount   decimal.Decimal
	PaymentMethod PaymentMethod
	CustomerID    string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// OrderLine belongs to exactly one order and references, without owning, a
// product in the stock ledger.
type OrderLine struct {
	ID        int
	OrderID   int
	ProductID int
	Quantity  float64
}

// Customer is the directory snapshot captured while validating an order.
type Customer struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// PurchaseItem is one requested product/quantity pair.
type PurchaseItem struct {
	ProductID int     `json:"productId"`
	Quantity  float64 `json:"quantity"`
}

// PurchaseResult is the ledger's denormalized snapshot for a fulfilled item.
type PurchaseResult struct {
	ProductID   int             `json:"productId"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Quantity    float64         `json:"quantity"`
}

// PaymentRequest initiates the charge for a freshly persisted order.
type PaymentRequest struct {
	Amount         decimal.Decimal `json:"amount"`
	PaymentMethod  PaymentMethod   `json:"paymentMethod"`
	OrderID        int             `json:"orderId"`
	OrderReference string          `json:"orderReference"`
	Customer       Customer        `json:"customer"`
}

// NewOrder builds an unpersisted header, generating a reference when the
// caller did not supply one.
func NewOrder(reference string, amount decimal.Decimal, method PaymentMethod, customerID string) Order {
	if reference == "" {
		reference = fmt.Sprintf("ORD-%s", uuid.NewString())
	}
	now := time.Now().UTC()
	return Order{
		Reference:     reference,
		TotalAmount:   amount,
		PaymentMethod: method,
		CustomerID:    customerID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}
