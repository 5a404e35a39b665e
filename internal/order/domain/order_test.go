package domain

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewOrderKeepsSuppliedReference(t *testing.T) {
	o := NewOrder("ORD-42", decimal.NewFromInt(100), PaymentVisa, "cust-1")
	if o.Reference != "ORD-42" {
		t.Errorf("reference = %q", o.Reference)
	}
	if o.CreatedAt.IsZero() || !o.CreatedAt.Equal(o.UpdatedAt) {
		t.Errorf("timestamps = %v / %v", o.CreatedAt, o.UpdatedAt)
	}
}

func TestNewOrderGeneratesReference(t *testing.T) {
	a := NewOrder("", decimal.NewFromInt(100), PaymentCash, "cust-1")
	b := NewOrder("", decimal.NewFromInt(100), PaymentCash, "cust-1")
	if !strings.HasPrefix(a.Reference, "ORD-") {
		t.Errorf("reference = %q", a.Reference)
	}
	if a.Reference == b.Reference {
		t.Error("generated references must be unique")
	}
}

func TestPaymentMethodValid(t *testing.T) {
	for _, m := range []PaymentMethod{PaymentPaypal, PaymentCreditCard, PaymentDebitCard, PaymentBankTransfer, PaymentCash, PaymentVisa} {
		if !m.Valid() {
			t.Errorf("%s should be valid", m)
		}
	}
	if PaymentMethod("IOU").Valid() {
		t.Error("IOU should not be valid")
	}
	if PaymentMethod("").Valid() {
		t.Error("empty method should not be valid")
	}
}
