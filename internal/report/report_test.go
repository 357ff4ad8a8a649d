package report

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"lubewash/backend/internal/domain"
)

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func tx(date time.Time, lines ...domain.TransactionLine) domain.Transaction {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Subtotal)
	}
	return domain.Transaction{
		ID:            "tx-" + date.Format("20060102150405"),
		ReceiptNumber: "LWC202405010001",
		Date:          date,
		Items:         lines,
		Total:         total,
		FinalTotal:    total,
		Payment:       domain.PaymentDetails{Method: domain.PaymentCash},
		Status:        domain.TxStatusCompleted,
	}
}

func productLine(subtotal string) domain.TransactionLine {
	return domain.TransactionLine{
		CartLine: domain.CartLine{ItemID: "FLT-OIL-802", Quantity: 1},
		Subtotal: price(subtotal),
	}
}

func serviceLine(subtotal string) domain.TransactionLine {
	return domain.TransactionLine{
		CartLine: domain.CartLine{ItemID: "SVC-WASH-BASIC", Quantity: 1, IsService: true},
		Subtotal: price(subtotal),
	}
}

func TestDailySplitsServiceAndProductRevenue(t *testing.T) {
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	transactions := []domain.Transaction{
		tx(day.Add(9*time.Hour), productLine("8.50"), serviceLine("12.00")),
		tx(day.Add(15*time.Hour), serviceLine("17.00")),
	}

	totals := Daily(transactions, day, time.UTC)
	if totals.TransactionCount != 2 {
		t.Fatalf("expected 2 transactions, got %d", totals.TransactionCount)
	}
	if !totals.ProductRevenue.Equal(price("8.50")) {
		t.Fatalf("expected product revenue 8.50, got %s", totals.ProductRevenue)
	}
	if !totals.ServiceRevenue.Equal(price("29.00")) {
		t.Fatalf("expected service revenue 29.00, got %s", totals.ServiceRevenue)
	}
	if !totals.TotalRevenue.Equal(price("37.50")) {
		t.Fatalf("expected total revenue 37.50, got %s", totals.TotalRevenue)
	}
	if totals.ServiceCount != 2 || totals.ProductCount != 1 {
		t.Fatalf("unexpected line counts: %+v", totals)
	}
}

func TestDailyExcludesOtherDays(t *testing.T) {
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	transactions := []domain.Transaction{
		tx(day.Add(-time.Second), productLine("5.00")),
		tx(day, productLine("1.00")),
		tx(day.Add(24*time.Hour-time.Second), productLine("2.00")),
		tx(day.Add(24*time.Hour), productLine("9.00")),
	}

	totals := Daily(transactions, day, time.UTC)
	if !totals.TotalRevenue.Equal(price("3.00")) {
		t.Fatalf("day boundary is [start, next): expected 3.00, got %s", totals.TotalRevenue)
	}
}

func TestDailyBucketsByShopLocalDay(t *testing.T) {
	panama, err := time.LoadLocation("America/Panama")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	// 03:00 UTC on May 2 is 22:00 May 1 in Panama.
	lateEvening := tx(time.Date(2024, 5, 2, 3, 0, 0, 0, time.UTC), productLine("10.00"))

	utcTotals := Daily([]domain.Transaction{lateEvening}, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), time.UTC)
	if !utcTotals.TotalRevenue.Equal(decimal.Zero) {
		t.Fatalf("UTC bucketing must place the sale on May 2, got %s on May 1", utcTotals.TotalRevenue)
	}

	localTotals := Daily([]domain.Transaction{lateEvening}, time.Date(2024, 5, 1, 12, 0, 0, 0, panama), panama)
	if !localTotals.TotalRevenue.Equal(price("10.00")) {
		t.Fatalf("shop-local bucketing must place the sale on May 1, got %s", localTotals.TotalRevenue)
	}
}

func TestDailySkipsMalformedTransactions(t *testing.T) {
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	noDate := tx(day.Add(time.Hour), productLine("5.00"))
	noDate.Date = time.Time{}

	noItems := tx(day.Add(time.Hour))

	noPayment := tx(day.Add(time.Hour), productLine("7.00"))
	noPayment.Payment.Method = ""

	good := tx(day.Add(time.Hour), productLine("3.00"))

	totals := Daily([]domain.Transaction{noDate, noItems, noPayment, good}, day, time.UTC)
	if totals.TransactionCount != 1 {
		t.Fatalf("expected only the well-formed record, got %d", totals.TransactionCount)
	}
	if !totals.TotalRevenue.Equal(price("3.00")) {
		t.Fatalf("expected 3.00, got %s", totals.TotalRevenue)
	}
}

func TestWeeklyAggregatesSevenDays(t *testing.T) {
	start := time.Date(2024, 4, 29, 0, 0, 0, 0, time.UTC) // a Monday
	transactions := []domain.Transaction{
		tx(start.Add(10*time.Hour), serviceLine("30.00")),
		tx(start.AddDate(0, 0, 3).Add(11*time.Hour), productLine("10.00")),
		tx(start.AddDate(0, 0, 6).Add(20*time.Hour), productLine("60.00")),
		tx(start.AddDate(0, 0, 7), productLine("99.00")), // next week
	}

	weekly := Weekly(transactions, start, time.UTC)
	if len(weekly.Days) != 7 {
		t.Fatalf("expected 7 day buckets, got %d", len(weekly.Days))
	}
	if !weekly.TotalRevenue.Equal(price("100.00")) {
		t.Fatalf("expected week total 100.00, got %s", weekly.TotalRevenue)
	}
	if weekly.ServicePercentage != 30 || weekly.SalesPercentage != 70 {
		t.Fatalf("expected 30/70 split, got %v/%v", weekly.ServicePercentage, weekly.SalesPercentage)
	}
	if !weekly.EndDate.Equal(start.AddDate(0, 0, 6)) {
		t.Fatalf("unexpected end date: %s", weekly.EndDate)
	}
}

func TestWeeklyZeroRevenueHasZeroPercentages(t *testing.T) {
	start := time.Date(2024, 4, 29, 0, 0, 0, 0, time.UTC)

	weekly := Weekly(nil, start, time.UTC)
	if weekly.ServicePercentage != 0 || weekly.SalesPercentage != 0 {
		t.Fatalf("zero-revenue week must report 0 percentages, got %v/%v", weekly.ServicePercentage, weekly.SalesPercentage)
	}
	if !weekly.TotalRevenue.Equal(decimal.Zero) {
		t.Fatalf("expected zero total, got %s", weekly.TotalRevenue)
	}
}
