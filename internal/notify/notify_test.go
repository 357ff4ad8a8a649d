package notify

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"lubewash/backend/internal/domain"
)

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestRender(t *testing.T) {
	tx := domain.Transaction{
		ReceiptNumber: "LWC202405010007",
		Date:          time.Date(2024, 5, 1, 14, 30, 0, 0, time.UTC),
		Items: []domain.TransactionLine{
			{
				CartLine: domain.CartLine{ItemID: "OIL-1040-BUCKET", Quantity: 1, IsService: true, ServiceLiters: 3.5},
				Subtotal: price("16.50"),
			},
			{
				CartLine: domain.CartLine{
					ItemID: "SVC-WASH-BASIC", Quantity: 1, IsService: true,
					AddonPrices: []domain.AddonPrice{{ID: "addon-wax", Name: "Hand Wax", Price: price("5.00")}},
				},
				Subtotal: price("17.00"),
			},
		},
		Total:      price("33.50"),
		Discount:   price("3.50"),
		FinalTotal: price("30.00"),
		Payment:    domain.PaymentDetails{Method: domain.PaymentCash},
	}

	text := Render(tx, "Lube & Wash Center")

	for _, want := range []string{
		"Lube & Wash Center",
		"Receipt: LWC-20240501-0007",
		"service (3.5L)",
		"+ Hand Wax 5.00",
		"Total    : 33.50",
		"Discount : 3.50",
		"To pay   : 30.00",
		"Payment  : cash",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("rendered receipt missing %q:\n%s", want, text)
		}
	}
}

func TestRenderRoundsForDisplayOnly(t *testing.T) {
	tx := domain.Transaction{
		ReceiptNumber: "LWC202405010001",
		Date:          time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
		Items: []domain.TransactionLine{
			{CartLine: domain.CartLine{ItemID: "FLT-OIL-802", Quantity: 3}, Subtotal: price("10.005")},
		},
		Total:      price("10.005"),
		Discount:   decimal.Zero,
		FinalTotal: price("10.005"),
		Payment:    domain.PaymentDetails{Method: domain.PaymentCash},
	}

	text := Render(tx, "Shop")
	if !strings.Contains(text, "To pay   : 10.01") {
		t.Fatalf("expected display rounding to 10.01:\n%s", text)
	}
	// The transaction itself keeps full precision.
	if !tx.FinalTotal.Equal(price("10.005")) {
		t.Fatalf("rendering must not mutate the transaction")
	}
}

func TestLogNotifierDeliverReceipt(t *testing.T) {
	n := LogNotifier{ShopName: "Shop"}
	tx := domain.Transaction{
		ReceiptNumber: "LWC202405010001",
		FinalTotal:    price("12.00"),
	}
	if err := n.DeliverReceipt(context.Background(), tx); err != nil {
		t.Fatalf("log delivery must never fail: %v", err)
	}
}
