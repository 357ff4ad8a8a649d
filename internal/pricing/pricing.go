// Package pricing resolves the sale price of a sellable item. Prices are
// decimals end to end; nothing here rounds, display rounding is applied by
// the rendering layer only.
package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"lubewash/backend/internal/domain"
)

// PriceNotFoundError means the catalog entry is missing the price option the
// sale requires. This is operator-facing misconfiguration, not recoverable
// cashier input.
type PriceNotFoundError struct {
	ItemID string
	Kind   domain.PriceKind
}

func (e *PriceNotFoundError) Error() string {
	return fmt.Sprintf("no %s price configured for item %s", e.Kind, e.ItemID)
}

// ResolvePrice returns the base price for selling the item, either as a plain
// unit or with service applied. Standalone services have a single price and
// ignore wantService.
func ResolvePrice(item domain.Sellable, wantService bool) (decimal.Decimal, error) {
	switch it := item.(type) {
	case *domain.Product:
		kind := domain.PriceKindUnit
		if wantService {
			kind = domain.PriceKindService
		}
		for _, opt := range it.PriceOptions {
			if opt.Kind == kind {
				return opt.Price, nil
			}
		}
		return decimal.Decimal{}, &PriceNotFoundError{ItemID: it.ID, Kind: kind}
	case *domain.Service:
		return it.Price, nil
	default:
		return decimal.Decimal{}, fmt.Errorf("unknown sellable %T", item)
	}
}

// ServiceTotal is the priced breakdown of a service with its selected add-ons.
type ServiceTotal struct {
	Base   decimal.Decimal
	Addons []domain.AddonPrice
	Total  decimal.Decimal
}

// ResolveServiceTotal prices a standalone service for the given add-on
// selection. Included add-ons contribute nothing; selecting one anyway is a
// no-op rather than an error.
func ResolveServiceTotal(svc *domain.Service, selectedAddonIDs []string) ServiceTotal {
	selected := make(map[string]bool, len(selectedAddonIDs))
	for _, id := range selectedAddonIDs {
		selected[id] = true
	}

	total := ServiceTotal{Base: svc.Price, Total: svc.Price}
	for _, addon := range svc.Addons {
		if addon.IsIncluded || !selected[addon.ID] {
			continue
		}
		total.Addons = append(total.Addons, domain.AddonPrice{
			ID:    addon.ID,
			Name:  addon.Name,
			Price: addon.Price,
		})
		total.Total = total.Total.Add(addon.Price)
	}
	return total
}
