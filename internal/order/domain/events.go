package domain

import "github.com/shopspring/decimal"

// OrderConfirmation is the payload published to order-topic once the saga
// completes its payment step. The notification consumer reads it downstream.
type OrderConfirmation struct {
	OrderReference string           `json:"orderReference"`
	TotalAmount    decimal.Decimal  `json:"totalAmount"`
	PaymentMethod  PaymentMethod    `json:"paymentMethod"`
	Customer       Customer         `json:"customer"`
	Purchases      []PurchaseResult `json:"purchases"`
}
