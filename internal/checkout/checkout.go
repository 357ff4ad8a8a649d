// Package checkout converts a validated cart plus payment details into an
// immutable transaction record. It never mutates the source cart: clearing
// after a successful checkout is the caller's explicit follow-up, and any
// failure leaves the cart intact for retry.
package checkout

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"lubewash/backend/internal/cart"
	"lubewash/backend/internal/domain"
	"lubewash/backend/internal/receipt"
	"lubewash/backend/internal/xid"
)

// EmptyCartError rejects checkout of a cart with no lines.
type EmptyCartError struct{}

func (e *EmptyCartError) Error() string {
	return "cart is empty"
}

// PaymentValidationError rejects malformed payment details, such as a card
// payment without a voucher reference.
type PaymentValidationError struct {
	Method domain.PaymentMethod
	Reason string
}

func (e *PaymentValidationError) Error() string {
	return fmt.Sprintf("invalid %s payment: %s", e.Method, e.Reason)
}

// InvalidDiscountError rejects a discount that is negative or would drive
// the final total below zero.
type InvalidDiscountError struct {
	Discount decimal.Decimal
	Total    decimal.Decimal
}

func (e *InvalidDiscountError) Error() string {
	return fmt.Sprintf("invalid discount %s against total %s", e.Discount, e.Total)
}

// Assembler stamps carts into transactions using an injected receipt
// sequencer and clock.
type Assembler struct {
	sequencer *receipt.Sequencer
	now       func() time.Time
}

func NewAssembler(sequencer *receipt.Sequencer) *Assembler {
	return &Assembler{
		sequencer: sequencer,
		now:       time.Now,
	}
}

// Checkout validates payment, computes line subtotals and totals, assigns a
// receipt number, and freezes everything into a Transaction.
func (a *Assembler) Checkout(c *cart.Cart, payment domain.PaymentDetails, discount decimal.Decimal, customerID string) (*domain.Transaction, error) {
	if c.IsEmpty() {
		return nil, &EmptyCartError{}
	}
	if err := validatePayment(payment); err != nil {
		return nil, err
	}

	lines := c.Lines()
	items := make([]domain.TransactionLine, 0, len(lines))
	total := decimal.Decimal{}
	for _, line := range lines {
		subtotal := cart.LineTotal(line)
		items = append(items, domain.TransactionLine{CartLine: line, Subtotal: subtotal})
		total = total.Add(subtotal)
	}

	if discount.IsNegative() || discount.GreaterThan(total) {
		return nil, &InvalidDiscountError{Discount: discount, Total: total}
	}

	receiptNumber, err := a.sequencer.Generate()
	if err != nil {
		return nil, err
	}

	return &domain.Transaction{
		ID:            xid.New("tx"),
		ReceiptNumber: receiptNumber,
		Date:          a.now().UTC(),
		Items:         items,
		Total:         total,
		Discount:      discount,
		FinalTotal:    total.Sub(discount),
		Payment:       payment,
		Status:        domain.TxStatusCompleted,
		CustomerID:    customerID,
	}, nil
}

func validatePayment(payment domain.PaymentDetails) error {
	switch payment.Method {
	case domain.PaymentCash:
		return nil
	case domain.PaymentCard:
		if strings.TrimSpace(payment.CardVoucher) == "" {
			return &PaymentValidationError{Method: payment.Method, Reason: "card voucher is required"}
		}
		return nil
	default:
		return &PaymentValidationError{Method: payment.Method, Reason: "unsupported payment method"}
	}
}
