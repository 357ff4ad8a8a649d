// Package report computes day and week revenue summaries from persisted
// transactions. It is pure and read-only: the same inputs always produce the
// same totals, and the shop's time zone is an explicit parameter rather than
// ambient process state.
package report

import (
	"time"

	"github.com/shopspring/decimal"

	"lubewash/backend/internal/domain"
)

type DailyTotals struct {
	Date             time.Time       `json:"date"`
	ServiceRevenue   decimal.Decimal `json:"service_revenue"`
	ProductRevenue   decimal.Decimal `json:"product_revenue"`
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
	ServiceCount     int             `json:"service_count"`
	ProductCount     int             `json:"product_count"`
	TransactionCount int             `json:"transaction_count"`
}

type WeeklyTotals struct {
	StartDate         time.Time       `json:"start_date"`
	EndDate           time.Time       `json:"end_date"`
	Days              []DailyTotals   `json:"days"`
	ServiceRevenue    decimal.Decimal `json:"service_revenue"`
	ProductRevenue    decimal.Decimal `json:"product_revenue"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	ServicePercentage float64         `json:"service_percentage"`
	SalesPercentage   float64         `json:"sales_percentage"`
}

// Daily buckets transactions into the shop-local calendar day containing
// date and splits their line subtotals into service and product revenue.
// Malformed records are skipped rather than crashing the aggregation.
func Daily(transactions []domain.Transaction, date time.Time, loc *time.Location) DailyTotals {
	if loc == nil {
		loc = time.UTC
	}
	local := date.In(loc)
	dayStart := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	totals := DailyTotals{
		Date:           dayStart,
		ServiceRevenue: decimal.Decimal{},
		ProductRevenue: decimal.Decimal{},
		TotalRevenue:   decimal.Decimal{},
	}

	for _, tx := range transactions {
		if !wellFormed(tx) {
			continue
		}
		txLocal := tx.Date.In(loc)
		if txLocal.Before(dayStart) || !txLocal.Before(dayEnd) {
			continue
		}

		totals.TransactionCount++
		for _, item := range tx.Items {
			if item.IsService {
				totals.ServiceRevenue = totals.ServiceRevenue.Add(item.Subtotal)
				totals.ServiceCount++
			} else {
				totals.ProductRevenue = totals.ProductRevenue.Add(item.Subtotal)
				totals.ProductCount++
			}
		}
	}

	totals.TotalRevenue = totals.ServiceRevenue.Add(totals.ProductRevenue)
	return totals
}

// Weekly rolls up the 7 calendar days starting at weekStart and derives the
// service/product percentage split, guarding against a zero-revenue week.
func Weekly(transactions []domain.Transaction, weekStart time.Time, loc *time.Location) WeeklyTotals {
	if loc == nil {
		loc = time.UTC
	}
	local := weekStart.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)

	weekly := WeeklyTotals{
		StartDate:      start,
		EndDate:        start.AddDate(0, 0, 6),
		Days:           make([]DailyTotals, 0, 7),
		ServiceRevenue: decimal.Decimal{},
		ProductRevenue: decimal.Decimal{},
		TotalRevenue:   decimal.Decimal{},
	}

	for day := 0; day < 7; day++ {
		daily := Daily(transactions, start.AddDate(0, 0, day), loc)
		weekly.Days = append(weekly.Days, daily)
		weekly.ServiceRevenue = weekly.ServiceRevenue.Add(daily.ServiceRevenue)
		weekly.ProductRevenue = weekly.ProductRevenue.Add(daily.ProductRevenue)
	}

	weekly.TotalRevenue = weekly.ServiceRevenue.Add(weekly.ProductRevenue)
	if weekly.TotalRevenue.IsPositive() {
		total, _ := weekly.TotalRevenue.Float64()
		service, _ := weekly.ServiceRevenue.Float64()
		product, _ := weekly.ProductRevenue.Float64()
		weekly.ServicePercentage = service / total * 100
		weekly.SalesPercentage = product / total * 100
	}
	return weekly
}

// wellFormed filters out records missing the fields aggregation relies on.
// Persisted data shaped by older builds is skipped, not fatal.
func wellFormed(tx domain.Transaction) bool {
	if tx.Date.IsZero() {
		return false
	}
	if len(tx.Items) == 0 {
		return false
	}
	if tx.Payment.Method == "" {
		return false
	}
	return true
}
