package cart

import "fmt"

// InvalidQuantityError rejects a non-positive line quantity.
type InvalidQuantityError struct {
	Quantity int
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("quantity must be at least 1, got %d", e.Quantity)
}

// InsufficientStockError rejects a product quantity beyond the sellable whole
// units on hand. Available is included so the caller can render the bound.
type InsufficientStockError struct {
	ItemID    string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: requested %d, available %d", e.ItemID, e.Requested, e.Available)
}

// BarrelServiceReason distinguishes the violated bound of a barrel service
// sale.
type BarrelServiceReason string

const (
	BarrelLitersMissing   BarrelServiceReason = "liters_missing"
	BarrelExceedsLiters   BarrelServiceReason = "exceeds_available_liters"
	BarrelExceedsCapacity BarrelServiceReason = "exceeds_capacity"
)

// BarrelServiceError rejects an invalid liters amount on a barrel product
// sold with service.
type BarrelServiceError struct {
	ItemID    string
	Reason    BarrelServiceReason
	Requested float64
	Available float64
	Capacity  float64
}

func (e *BarrelServiceError) Error() string {
	switch e.Reason {
	case BarrelLitersMissing:
		return fmt.Sprintf("service liters must be specified for barrel product %s", e.ItemID)
	case BarrelExceedsLiters:
		return fmt.Sprintf("cannot exceed available liters for %s: requested %.1fL, available %.1fL", e.ItemID, e.Requested, e.Available)
	case BarrelExceedsCapacity:
		return fmt.Sprintf("cannot exceed barrel capacity for %s: requested %.1fL, capacity %.1fL", e.ItemID, e.Requested, e.Capacity)
	default:
		return fmt.Sprintf("invalid barrel service for %s", e.ItemID)
	}
}

// NotSellableError rejects items that are inactive or hidden from the POS.
type NotSellableError struct {
	ItemID string
}

func (e *NotSellableError) Error() string {
	return fmt.Sprintf("item %s is not available for sale", e.ItemID)
}
