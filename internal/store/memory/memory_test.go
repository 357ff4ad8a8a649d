package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"lubewash/backend/internal/domain"
	"lubewash/backend/internal/store"
)

func TestSeededCatalog(t *testing.T) {
	s := NewSeeded()
	ctx := context.Background()

	products, err := s.ListProducts(ctx)
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	if len(products) == 0 {
		t.Fatalf("expected seeded products")
	}
	for _, p := range products {
		if p.Status != domain.StatusActive {
			t.Fatalf("listing must exclude inactive products, got %s", p.ID)
		}
	}

	// The inactive item stays reachable by ID for direct lookups.
	inactive, err := s.GetProductByID(ctx, "OIL-0520-LTR")
	if err != nil {
		t.Fatalf("get inactive product: %v", err)
	}
	if inactive.Status != domain.StatusInactive {
		t.Fatalf("expected inactive seed, got %s", inactive.Status)
	}

	services, err := s.ListServices(ctx)
	if err != nil {
		t.Fatalf("list services: %v", err)
	}
	if len(services) != 3 {
		t.Fatalf("expected 3 seeded services, got %d", len(services))
	}
}

func TestGetProductReturnsCopy(t *testing.T) {
	s := NewSeeded()
	ctx := context.Background()

	p, err := s.GetProductByID(ctx, "FLT-OIL-802")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	p.Stock.FullUnits = 0

	again, err := s.GetProductByID(ctx, "FLT-OIL-802")
	if err != nil {
		t.Fatalf("get again: %v", err)
	}
	if again.Stock.FullUnits == 0 {
		t.Fatalf("mutating a returned product must not touch the store")
	}
}

func TestSetStock(t *testing.T) {
	s := NewSeeded()
	ctx := context.Background()

	if err := s.SetStock(ctx, "OIL-1040-BUCKET", 7, 15.5); err != nil {
		t.Fatalf("set stock: %v", err)
	}
	p, err := s.GetProductByID(ctx, "OIL-1040-BUCKET")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if p.Stock.FullUnits != 7 || p.Stock.PartialUnit != 15.5 {
		t.Fatalf("unexpected stock: %+v", p.Stock)
	}

	if err := s.SetStock(ctx, "NOPE", 1, 0); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := s.SetStock(ctx, "OIL-1040-BUCKET", -1, 0); !errors.Is(err, store.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestCreateProductConflict(t *testing.T) {
	s := NewSeeded()
	ctx := context.Background()

	_, err := s.CreateProduct(ctx, domain.Product{ID: "FLT-OIL-802", Name: "Dup", Category: "filter"})
	if !errors.Is(err, store.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	_, err = s.CreateProduct(ctx, domain.Product{ID: "", Name: "Nameless", Category: "misc"})
	if !errors.Is(err, store.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestCustomerLifecycle(t *testing.T) {
	s := NewSeeded()
	ctx := context.Background()

	created, err := s.CreateCustomer(ctx, domain.Customer{ID: "cus-1", Name: "Ana", CreatedAt: time.Now().UTC()})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := s.GetCustomerByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Ana" {
		t.Fatalf("unexpected customer: %+v", got)
	}

	if _, err := s.GetCustomerByID(ctx, "cus-404"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTransactionsBetween(t *testing.T) {
	s := NewSeeded()
	ctx := context.Background()

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for i, offset := range []time.Duration{0, 24 * time.Hour, 48 * time.Hour} {
		tx := domain.Transaction{
			ID:            "tx-" + string(rune('a'+i)),
			ReceiptNumber: "LWC202405010001",
			Date:          base.Add(offset),
			Items: []domain.TransactionLine{
				{CartLine: domain.CartLine{ItemID: "FLT-OIL-802", Quantity: 1}, Subtotal: decimal.RequireFromString("8.50")},
			},
			Total:      decimal.RequireFromString("8.50"),
			FinalTotal: decimal.RequireFromString("8.50"),
			Payment:    domain.PaymentDetails{Method: domain.PaymentCash},
			Status:     domain.TxStatusCompleted,
		}
		if _, err := s.AppendTransaction(ctx, tx); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	middle, err := s.ListTransactionsBetween(ctx,
		time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(middle) != 1 || middle[0].ID != "tx-b" {
		t.Fatalf("expected only the middle transaction, got %+v", middle)
	}

	all, err := s.ListTransactionsBetween(ctx, time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3, got %d", len(all))
	}
}

func TestAppendTransactionValidation(t *testing.T) {
	s := NewSeeded()
	ctx := context.Background()

	_, err := s.AppendTransaction(ctx, domain.Transaction{ID: "tx-1", ReceiptNumber: "LWC202405010001"})
	if !errors.Is(err, store.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty items, got %v", err)
	}
}

func TestSeededUsersCanAuthenticateRecords(t *testing.T) {
	s := NewSeeded()
	ctx := context.Background()

	users, err := s.ListUsers(ctx)
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected admin and cashier seeds, got %d", len(users))
	}
	for _, u := range users {
		if u.Password == "" || u.Password == "admin123" || u.Password == "cashier123" {
			t.Fatalf("seed passwords must be stored hashed")
		}
	}
}
