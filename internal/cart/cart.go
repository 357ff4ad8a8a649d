// Package cart holds the pending line items of a single terminal and
// validates every mutation against stock and pricing before applying it.
// Operations are all-or-nothing: a failed add or update leaves the cart
// exactly as it was.
package cart

import (
	"github.com/shopspring/decimal"

	"lubewash/backend/internal/domain"
	"lubewash/backend/internal/pricing"
)

type Cart struct {
	lines []domain.CartLine
}

func New() *Cart {
	return &Cart{}
}

// AddLine validates the selection and appends it, merging with an existing
// line on the (itemID, isService) key: product lines accumulate quantity,
// service lines replace their add-on selection (last selection wins).
func (c *Cart) AddLine(item domain.Sellable, quantity int, withService bool, serviceLiters float64, selectedAddonIDs []string) error {
	if quantity < 1 {
		return &InvalidQuantityError{Quantity: quantity}
	}

	switch it := item.(type) {
	case *domain.Service:
		return c.addServiceLine(it, quantity, selectedAddonIDs)
	case *domain.Product:
		return c.addProductLine(it, quantity, withService, serviceLiters)
	default:
		return &NotSellableError{ItemID: item.SellableID()}
	}
}

func (c *Cart) addServiceLine(svc *domain.Service, quantity int, selectedAddonIDs []string) error {
	if svc.Status != domain.StatusActive {
		return &NotSellableError{ItemID: svc.ID}
	}

	priced := pricing.ResolveServiceTotal(svc, selectedAddonIDs)

	if idx := c.findLine(svc.ID, true); idx >= 0 {
		// Re-selection of the same service: swap the add-on snapshot, keep
		// the quantity already in the cart.
		c.lines[idx].UnitPrice = priced.Base
		c.lines[idx].SelectedAddonIDs = append([]string(nil), selectedAddonIDs...)
		c.lines[idx].AddonPrices = priced.Addons
		return nil
	}

	c.lines = append(c.lines, domain.CartLine{
		ItemID:           svc.ID,
		Quantity:         quantity,
		UnitPrice:        priced.Base,
		IsService:        true,
		SelectedAddonIDs: append([]string(nil), selectedAddonIDs...),
		AddonPrices:      priced.Addons,
	})
	return nil
}

func (c *Cart) addProductLine(product *domain.Product, quantity int, withService bool, serviceLiters float64) error {
	if !product.SellableOnPOS() {
		return &NotSellableError{ItemID: product.ID}
	}

	newQuantity := quantity
	existing := c.findLine(product.ID, withService)
	if existing >= 0 {
		newQuantity += c.lines[existing].Quantity
	}
	if available := product.Stock.AvailableForSale(); newQuantity > available {
		return &InsufficientStockError{ItemID: product.ID, Requested: newQuantity, Available: available}
	}

	if withService && product.Stock.IsBulk() {
		if err := validateBulkLiters(product, serviceLiters); err != nil {
			return err
		}
	} else {
		serviceLiters = 0
	}

	price, err := pricing.ResolvePrice(product, withService)
	if err != nil {
		return err
	}

	if existing >= 0 {
		c.lines[existing].Quantity = newQuantity
		return nil
	}

	c.lines = append(c.lines, domain.CartLine{
		ItemID:        product.ID,
		Quantity:      quantity,
		UnitPrice:     price,
		IsService:     withService,
		ServiceLiters: serviceLiters,
	})
	return nil
}

func validateBulkLiters(product *domain.Product, serviceLiters float64) error {
	if serviceLiters <= 0 {
		return &BarrelServiceError{ItemID: product.ID, Reason: BarrelLitersMissing, Requested: serviceLiters}
	}

	available, err := product.AvailableBulkLiters()
	if err != nil {
		return err
	}
	if serviceLiters > available {
		return &BarrelServiceError{
			ItemID:    product.ID,
			Reason:    BarrelExceedsLiters,
			Requested: serviceLiters,
			Available: available,
		}
	}
	if serviceLiters > product.Stock.Capacity {
		return &BarrelServiceError{
			ItemID:    product.ID,
			Reason:    BarrelExceedsCapacity,
			Requested: serviceLiters,
			Capacity:  product.Stock.Capacity,
		}
	}
	return nil
}

// UpdateQuantity changes an existing line's quantity after re-validating it
// against current stock. A missing line is a no-op; a failed validation
// leaves the cart unchanged.
func (c *Cart) UpdateQuantity(item domain.Sellable, isService bool, newQuantity int) error {
	idx := c.findLine(item.SellableID(), isService)
	if idx < 0 {
		return nil
	}
	if newQuantity < 1 {
		return &InvalidQuantityError{Quantity: newQuantity}
	}

	if product, ok := item.(*domain.Product); ok {
		if available := product.Stock.AvailableForSale(); newQuantity > available {
			return &InsufficientStockError{ItemID: product.ID, Requested: newQuantity, Available: available}
		}
	}

	c.lines[idx].Quantity = newQuantity
	return nil
}

// RemoveLine drops every line referencing the item. Removing an absent line
// is a no-op.
func (c *Cart) RemoveLine(itemID string) {
	kept := c.lines[:0]
	for _, line := range c.lines {
		if line.ItemID != itemID {
			kept = append(kept, line)
		}
	}
	c.lines = kept
}

// LineTotal computes one line's charge: unit price times quantity, plus the
// snapshotted add-on sum once per unit purchased.
func LineTotal(line domain.CartLine) decimal.Decimal {
	quantity := decimal.NewFromInt(int64(line.Quantity))
	total := line.UnitPrice.Mul(quantity)

	if len(line.AddonPrices) > 0 {
		addonSum := decimal.Decimal{}
		for _, addon := range line.AddonPrices {
			addonSum = addonSum.Add(addon.Price)
		}
		total = total.Add(addonSum.Mul(quantity))
	}
	return total
}

// Total sums LineTotal over all lines. An empty cart totals exactly zero.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Decimal{}
	for _, line := range c.lines {
		total = total.Add(LineTotal(line))
	}
	return total
}

// Lines returns a copy of the pending lines in insertion order.
func (c *Cart) Lines() []domain.CartLine {
	out := make([]domain.CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

func (c *Cart) Clear() {
	c.lines = nil
}

func (c *Cart) findLine(itemID string, isService bool) int {
	for i, line := range c.lines {
		if line.ItemID == itemID && line.IsService == isService {
			return i
		}
	}
	return -1
}
