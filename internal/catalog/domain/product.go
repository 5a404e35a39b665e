package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Product is one stock-ledger entry. AvailableQuantity never goes negative;
// it is mutated only through ApplyPurchase inside the repository transaction.
type Product struct {
	ID                int
	Name              string
	Description       string
	AvailableQuantity float64
	Price             decimal.Decimal
}

// PurchaseItem is one requested decrement.
type PurchaseItem struct {
	ProductID int     `json:"productId"`
	Quantity  float64 `json:"quantity"`
}

// PurchaseResult is the denormalized snapshot returned for a fulfilled item.
type PurchaseResult struct {
	ProductID   int             `json:"productId"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Quantity    float64         `json:"quantity"`
}

// ApplyPurchase checks a purchase request against the fetched products and,
// when every item can be fulfilled, returns the products with decremented
// quantities alongside one result per requested item (request order).
// It never mutates its inputs; any failure leaves no effect to persist.
func ApplyPurchase(products []Product, items []PurchaseItem) ([]Product, []PurchaseResult, error) {
	byID := make(map[int]Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	requested := make(map[int]float64, len(items))
	for _, it := range items {
		requested[it.ProductID] += it.Quantity
	}

	ids := make([]int, 0, len(requested))
	for id := range requested {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var missing []int
	for _, id := range ids {
		if _, ok := byID[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return nil, nil, &ProductsNotFoundError{IDs: missing}
	}

	for _, id := range ids {
		qty := requested[id]
		p := byID[id]
		if p.AvailableQuantity < qty {
			return nil, nil, &InsufficientStockError{
				ProductID: id,
				Requested: qty,
				Available: p.AvailableQuantity,
			}
		}
	}

	updated := make([]Product, 0, len(ids))
	for _, id := range ids {
		p := byID[id]
		p.AvailableQuantity -= requested[id]
		byID[id] = p
		updated = append(updated, p)
	}

	results := make([]PurchaseResult, 0, len(items))
	for _, it := range items {
		p := byID[it.ProductID]
		results = append(results, PurchaseResult{
			ProductID:   p.ID,
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price,
			Quantity:    it.Quantity,
		})
	}
	return updated, results, nil
}

// DistinctIDs returns the distinct product ids of a purchase request in
// ascending order, which is also the row-lock acquisition order.
func DistinctIDs(items []PurchaseItem) []int {
	seen := make(map[int]struct{}, len(items))
	ids := make([]int, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it.ProductID]; ok {
			continue
		}
		seen[it.ProductID] = struct{}{}
		ids = append(ids, it.ProductID)
	}
	sort.Ints(ids)
	return ids
}
