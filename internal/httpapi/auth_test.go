package httpapi

import (
	"testing"
	"time"

	"lubewash/backend/internal/domain"
	"lubewash/backend/internal/store/memory"
)

func newTestAuth(t *testing.T) *AuthManager {
	t.Helper()
	return NewAuthManager("test-secret-key", time.Hour, memory.NewSeeded())
}

func TestLoginAndParseToken(t *testing.T) {
	auth := newTestAuth(t)

	resp, err := auth.Login(domain.LoginRequest{Username: "admin", Password: "admin123"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.Role != "admin" {
		t.Fatalf("expected admin role, got %s", resp.Role)
	}

	actor, err := auth.ParseToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if actor.Username != "admin" || actor.Role != "admin" {
		t.Fatalf("unexpected actor: %+v", actor)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	auth := newTestAuth(t)

	if _, err := auth.Login(domain.LoginRequest{Username: "admin", Password: "nope"}); err == nil {
		t.Fatalf("expected login failure")
	}
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	auth := newTestAuth(t)

	if _, err := auth.ParseToken("not-a-jwt"); err == nil {
		t.Fatalf("expected parse failure")
	}
}

func TestParseTokenRejectsForeignSecret(t *testing.T) {
	auth := newTestAuth(t)
	other := NewAuthManager("another-secret-entirely", time.Hour, memory.NewSeeded())

	resp, err := other.Login(domain.LoginRequest{Username: "admin", Password: "admin123"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := auth.ParseToken(resp.AccessToken); err == nil {
		t.Fatalf("token signed with a different secret must be rejected")
	}
}

func TestCreateCashierValidation(t *testing.T) {
	auth := newTestAuth(t)

	cases := []domain.CashierCreateRequest{
		{Username: "ab", Password: "secret99"},
		{Username: "valid user", Password: "secret99"},
		{Username: "validname", Password: "short"},
		{Username: "admin", Password: "secret99"}, // already exists
	}
	for _, req := range cases {
		if _, err := auth.CreateCashier(req); err == nil {
			t.Fatalf("expected rejection for %+v", req)
		}
	}

	created, err := auth.CreateCashier(domain.CashierCreateRequest{Username: "Maria21", Password: "secret99"})
	if err != nil {
		t.Fatalf("create cashier: %v", err)
	}
	if created.Username != "maria21" {
		t.Fatalf("expected lowercased username, got %s", created.Username)
	}
	if created.Role != "cashier" || !created.Active {
		t.Fatalf("unexpected cashier record: %+v", created)
	}

	if _, err := auth.Login(domain.LoginRequest{Username: "maria21", Password: "secret99"}); err != nil {
		t.Fatalf("fresh cashier login: %v", err)
	}
}

func TestListCashiersExcludesAdmins(t *testing.T) {
	auth := newTestAuth(t)

	for _, cashier := range auth.ListCashiers() {
		if cashier.Role != "cashier" {
			t.Fatalf("admins must not appear in the cashier list: %+v", cashier)
		}
	}
}
