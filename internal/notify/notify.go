// Package notify renders completed transactions as plain-text receipts and
// hands them to a best-effort delivery collaborator. Delivery runs after the
// transaction is already assembled and persisted; its failure never
// invalidates the sale.
package notify

import (
	"context"
	"fmt"
	"log"
	"strings"

	"lubewash/backend/internal/domain"
	"lubewash/backend/internal/receipt"
)

// Notifier delivers a receipt for a completed transaction. Implementations
// are fire-and-forget collaborators (email, messaging, printer bridge).
type Notifier interface {
	DeliverReceipt(ctx context.Context, tx domain.Transaction) error
}

// LogNotifier writes the rendered receipt to the process log. Used when no
// delivery channel is configured.
type LogNotifier struct {
	ShopName string
}

func (n LogNotifier) DeliverReceipt(_ context.Context, tx domain.Transaction) error {
	log.Printf("[notify] receipt %s issued, total %s\n%s", receipt.Format(tx.ReceiptNumber), tx.FinalTotal.StringFixed(2), Render(tx, n.ShopName))
	return nil
}

// Render produces the customer-facing receipt text. This is the only place
// monetary values are rounded, and only for display.
func Render(tx domain.Transaction, shopName string) string {
	lines := []string{
		shopName,
		"========================",
		"Receipt: " + receipt.Format(tx.ReceiptNumber),
		"Date: " + tx.Date.Format("2006-01-02 15:04:05"),
		"------------------------",
	}

	for _, item := range tx.Items {
		lines = append(lines, fmt.Sprintf("%s x%d", item.ItemID, item.Quantity))
		if item.IsService && item.ServiceLiters > 0 {
			lines = append(lines, fmt.Sprintf("  service (%.1fL)", item.ServiceLiters))
		}
		for _, addon := range item.AddonPrices {
			lines = append(lines, fmt.Sprintf("  + %s %s", addon.Name, addon.Price.StringFixed(2)))
		}
		lines = append(lines, fmt.Sprintf("  %s", item.Subtotal.StringFixed(2)))
	}

	lines = append(lines,
		"------------------------",
		fmt.Sprintf("Total    : %s", tx.Total.StringFixed(2)),
		fmt.Sprintf("Discount : %s", tx.Discount.StringFixed(2)),
		fmt.Sprintf("To pay   : %s", tx.FinalTotal.StringFixed(2)),
		fmt.Sprintf("Payment  : %s", tx.Payment.Method),
		"========================",
		"Thank you",
		"",
	)

	return strings.Join(lines, "\n")
}
