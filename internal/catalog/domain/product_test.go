package domain

import (
	"errors"
	"reflect"
	"testing"

	"github.com/shopspring/decimal"
)

func testProducts() []Product {
	return []Product{
		{ID: 1, Name: "keyboard", Description: "mechanical", AvailableQuantity: 5, Price: decimal.NewFromInt(120)},
		{ID: 2, Name: "mouse", Description: "wireless", AvailableQuantity: 10, Price: decimal.NewFromInt(40)},
	}
}

func TestApplyPurchaseDecrementsExactly(t *testing.T) {
	products := testProducts()

	updated, results, err := ApplyPurchase(products, []PurchaseItem{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 3},
	})
	if err != nil {
		t.Fatalf("ApplyPurchase: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].ProductID != 1 || results[0].Quantity != 2 {
		t.Errorf("result[0] = %+v", results[0])
	}
	if results[0].Name != "keyboard" || results[0].Description != "mechanical" {
		t.Errorf("result[0] snapshot = %+v", results[0])
	}
	if !results[0].Price.Equal(decimal.NewFromInt(120)) {
		t.Errorf("result[0] price = %s", results[0].Price)
	}

	quantities := map[int]float64{}
	for _, p := range updated {
		quantities[p.ID] = p.AvailableQuantity
	}
	if quantities[1] != 3 || quantities[2] != 7 {
		t.Errorf("updated quantities = %v", quantities)
	}

	// inputs must stay untouched
	if products[0].AvailableQuantity != 5 || products[1].AvailableQuantity != 10 {
		t.Errorf("input products mutated: %+v", products)
	}
}

func TestApplyPurchaseMissingProduct(t *testing.T) {
	_, _, err := ApplyPurchase(testProducts(), []PurchaseItem{
		{ProductID: 1, Quantity: 1},
		{ProductID: 7, Quantity: 1},
		{ProductID: 9, Quantity: 1},
	})

	var nf *ProductsNotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected ProductsNotFoundError, got %v", err)
	}
	if !reflect.DeepEqual(nf.IDs, []int{7, 9}) {
		t.Errorf("missing ids = %v", nf.IDs)
	}
}

func TestApplyPurchaseInsufficientStock(t *testing.T) {
	_, _, err := ApplyPurchase(testProducts(), []PurchaseItem{
		{ProductID: 1, Quantity: 10},
	})

	var is *InsufficientStockError
	if !errors.As(err, &is) {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}
	if is.ProductID != 1 || is.Requested != 10 || is.Available != 5 {
		t.Errorf("error detail = %+v", is)
	}
}

func TestApplyPurchaseAggregatesDuplicateItems(t *testing.T) {
	// 3 + 3 exceeds the 5 in stock even though each item alone fits.
	_, _, err := ApplyPurchase(testProducts(), []PurchaseItem{
		{ProductID: 1, Quantity: 3},
		{ProductID: 1, Quantity: 3},
	})

	var is *InsufficientStockError
	if !errors.As(err, &is) {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}

	updated, results, err := ApplyPurchase(testProducts(), []PurchaseItem{
		{ProductID: 1, Quantity: 2},
		{ProductID: 1, Quantity: 2},
	})
	if err != nil {
		t.Fatalf("ApplyPurchase: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected one result per requested item, got %d", len(results))
	}
	if updated[0].AvailableQuantity != 1 {
		t.Errorf("quantity after aggregated decrement = %g", updated[0].AvailableQuantity)
	}
}

func TestDistinctIDs(t *testing.T) {
	ids := DistinctIDs([]PurchaseItem{
		{ProductID: 5, Quantity: 1},
		{ProductID: 2, Quantity: 1},
		{ProductID: 5, Quantity: 2},
		{ProductID: 1, Quantity: 1},
	})
	if !reflect.DeepEqual(ids, []int{1, 2, 5}) {
		t.Errorf("DistinctIDs = %v", ids)
	}
}
