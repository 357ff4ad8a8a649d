package domain

import "fmt"

// InvalidStateError reports a stock unit whose opened liters exceed the
// container capacity. This indicates corrupted inventory data upstream and is
// treated as fatal for the operation that observed it.
type InvalidStateError struct {
	ProductID   string
	PartialUnit float64
	Capacity    float64
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("stock state invalid for %s: partial %.1fL exceeds capacity %.1fL", e.ProductID, e.PartialUnit, e.Capacity)
}

// IsBulk reports whether the unit is a partially consumable container.
func (u StockUnit) IsBulk() bool {
	return u.Type == UnitBarrel || u.Type == UnitBucket
}

// AvailableForSale returns the number of sellable whole containers.
func (u StockUnit) AvailableForSale() int {
	return u.FullUnits
}

// AvailableBulkLiters returns the liters remaining in the opened container.
// Non-bulk units always report 0. Partial liters above capacity can only come
// from a bad inventory write upstream; stock mutation happens outside this
// engine.
func (p *Product) AvailableBulkLiters() (float64, error) {
	if !p.Stock.IsBulk() {
		return 0, nil
	}
	if p.Stock.PartialUnit > p.Stock.Capacity {
		return 0, &InvalidStateError{
			ProductID:   p.ID,
			PartialUnit: p.Stock.PartialUnit,
			Capacity:    p.Stock.Capacity,
		}
	}
	return p.Stock.PartialUnit, nil
}

// SellableOnPOS reports whether the product can appear in a cart at all.
func (p *Product) SellableOnPOS() bool {
	return p.AvailableForPOS && p.Status == StatusActive
}
