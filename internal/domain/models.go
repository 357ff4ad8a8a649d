package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type UnitType string

const (
	UnitLiter  UnitType = "liter"
	UnitBarrel UnitType = "barrel"
	UnitGallon UnitType = "gallon"
	UnitBucket UnitType = "bucket"
	UnitOther  UnitType = "other"
)

// StockUnit describes the physical quantity of a product, including a
// partially consumed bulk container (barrel or bucket) resold by the liter.
type StockUnit struct {
	Type        UnitType `json:"type"`
	CustomType  string   `json:"custom_type,omitempty"`
	FullUnits   int      `json:"full_units"`
	PartialUnit float64  `json:"partial_unit"`
	Capacity    float64  `json:"capacity"`
}

type PriceKind string

const (
	PriceKindUnit    PriceKind = "unit"
	PriceKindService PriceKind = "service"
)

type ServiceOption struct {
	Name     string `json:"name"`
	Included bool   `json:"included"`
}

// PriceOption is one of a product's sale modes. A product carries at most one
// option per kind.
type PriceOption struct {
	Kind           PriceKind       `json:"kind"`
	Price          decimal.Decimal `json:"price"`
	Description    string          `json:"description,omitempty"`
	ServiceOptions []ServiceOption `json:"service_options,omitempty"`
}

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

type Product struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	Category        string        `json:"category"`
	Brand           string        `json:"brand,omitempty"`
	Status          string        `json:"status"`
	AvailableForPOS bool          `json:"available_for_pos"`
	Stock           StockUnit     `json:"stock"`
	PriceOptions    []PriceOption `json:"price_options"`
}

// ServiceAddon is an optional extra on a standalone labor service. Included
// add-ons are bundled free regardless of their stored price.
type ServiceAddon struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	IsIncluded bool            `json:"is_included"`
}

type Service struct {
	ID           string          `json:"id"`
	CategoryID   string          `json:"category_id,omitempty"`
	Title        string          `json:"title"`
	VehicleTypes []string        `json:"vehicle_types,omitempty"`
	Price        decimal.Decimal `json:"price"`
	Description  string          `json:"description,omitempty"`
	Addons       []ServiceAddon  `json:"addons"`
	Status       string          `json:"status"`
}

// Sellable is the sealed variant of things a cart line can reference: a
// physical Product or a standalone labor Service. Code consuming a Sellable
// type-switches over the two implementations.
type Sellable interface {
	SellableID() string
	sellable()
}

func (p *Product) SellableID() string { return p.ID }
func (p *Product) sellable()          {}

func (s *Service) SellableID() string { return s.ID }
func (s *Service) sellable()          {}

// AddonPrice is a priced add-on snapshot carried on a cart line so a later
// catalog edit cannot alter an in-progress cart.
type AddonPrice struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// CartLine is one pending selection. UnitPrice and AddonPrices are snapshots
// taken when the line was added; only an explicit add-on re-selection updates
// them. Lines merge on the (ItemID, IsService) key.
type CartLine struct {
	ItemID           string          `json:"item_id"`
	Quantity         int             `json:"quantity"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	IsService        bool            `json:"is_service"`
	ServiceLiters    float64         `json:"service_liters,omitempty"`
	SelectedAddonIDs []string        `json:"selected_addon_ids,omitempty"`
	AddonPrices      []AddonPrice    `json:"addon_prices,omitempty"`
}

type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentCard PaymentMethod = "card"
)

type PaymentDetails struct {
	Method      PaymentMethod `json:"method"`
	CardVoucher string        `json:"card_voucher,omitempty"`
}

type TransactionLine struct {
	CartLine
	Subtotal decimal.Decimal `json:"subtotal"`
}

const TxStatusCompleted = "completed"

// Transaction is the immutable result of a checkout. Date is the creation
// instant in UTC; report bucketing converts it to the shop's local zone.
type Transaction struct {
	ID            string            `json:"id"`
	ReceiptNumber string            `json:"receipt_number"`
	Date          time.Time         `json:"date"`
	Items         []TransactionLine `json:"items"`
	Total         decimal.Decimal   `json:"total"`
	Discount      decimal.Decimal   `json:"discount"`
	FinalTotal    decimal.Decimal   `json:"final_total"`
	Payment       PaymentDetails    `json:"payment"`
	Status        string            `json:"status"`
	CustomerID    string            `json:"customer_id,omitempty"`
}

type Customer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type ProductCreateRequest struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	Category        string        `json:"category"`
	Brand           string        `json:"brand"`
	AvailableForPOS bool          `json:"available_for_pos"`
	Stock           StockUnit     `json:"stock"`
	PriceOptions    []PriceOption `json:"price_options"`
}

type ServiceCreateRequest struct {
	ID           string         `json:"id"`
	CategoryID   string         `json:"category_id"`
	Title        string         `json:"title"`
	VehicleTypes []string       `json:"vehicle_types"`
	Price        decimal.Decimal `json:"price"`
	Description  string         `json:"description"`
	Addons       []ServiceAddon `json:"addons"`
}

type StockSetRequest struct {
	FullUnits   int     `json:"full_units"`
	PartialUnit float64 `json:"partial_unit"`
}

// CartAddRequest covers both item kinds. WithService, ServiceLiters and
// AddonIDs are ignored when they do not apply to the resolved item.
type CartAddRequest struct {
	ItemID        string   `json:"item_id"`
	Quantity      int      `json:"quantity"`
	WithService   bool     `json:"with_service"`
	ServiceLiters float64  `json:"service_liters"`
	AddonIDs      []string `json:"addon_ids"`
}

type CartUpdateRequest struct {
	ItemID    string `json:"item_id"`
	IsService bool   `json:"is_service"`
	Quantity  int    `json:"quantity"`
}

type CartView struct {
	Lines []CartLine      `json:"lines"`
	Total decimal.Decimal `json:"total"`
}

type CheckoutRequest struct {
	Payment    PaymentDetails  `json:"payment"`
	Discount   decimal.Decimal `json:"discount"`
	CustomerID string          `json:"customer_id,omitempty"`
}

type CustomerCreateRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	Role        string `json:"role"`
	ExpiresAt   string `json:"expires_at"`
}

type CashierCreateRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type CashierUser struct {
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

type Actor struct {
	Username string
	Role     string
}

// UserAccount is an internal persistence model for auth credentials.
type UserAccount struct {
	Username  string
	Password  string
	Role      string
	Active    bool
	CreatedAt time.Time
}
