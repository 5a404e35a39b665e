package domain

import "fmt"

// ProductsNotFoundError aborts a purchase referencing unknown product ids.
type ProductsNotFoundError struct {
	IDs []int
}

func (e *ProductsNotFoundError) Error() string {
	return fmt.Sprintf("products not found for purchase: %v", e.IDs)
}

// InsufficientStockError aborts a purchase when a product cannot cover the
// requested quantity. The whole batch fails; nothing is decremented.
type InsufficientStockError struct {
	ProductID int
	Requested float64
	Available float64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("not enough stock for product %d: requested %g, available %g",
		e.ProductID, e.Requested, e.Available)
}
