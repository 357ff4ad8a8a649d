package config

import "testing"

func TestLoadDoesNotInjectWeakAuthDefaults(t *testing.T) {
	t.Setenv("AUTH_SECRET", "")

	cfg := Load()
	if cfg.AuthSecret != "" {
		t.Fatalf("expected empty AUTH_SECRET when unset, got %q", cfg.AuthSecret)
	}
}

func TestLoadShopDefaults(t *testing.T) {
	t.Setenv("SHOP_TIMEZONE", "")
	t.Setenv("RECEIPT_PREFIX", "")
	t.Setenv("PORT", "")

	cfg := Load()
	if cfg.ShopTimezone != "America/Panama" {
		t.Fatalf("unexpected timezone default %q", cfg.ShopTimezone)
	}
	if cfg.ReceiptPrefix != "LWC" {
		t.Fatalf("unexpected receipt prefix default %q", cfg.ReceiptPrefix)
	}
	if cfg.Address() != ":8080" {
		t.Fatalf("unexpected address %q", cfg.Address())
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SHOP_TIMEZONE", "America/Bogota")
	t.Setenv("RECEIPT_PREFIX", "SHOP")
	t.Setenv("ACCESS_TOKEN_TTL_MINUTES", "60")

	cfg := Load()
	if cfg.ShopTimezone != "America/Bogota" {
		t.Fatalf("expected override, got %q", cfg.ShopTimezone)
	}
	if cfg.ReceiptPrefix != "SHOP" {
		t.Fatalf("expected override, got %q", cfg.ReceiptPrefix)
	}
	if cfg.AccessTokenTTLMinutes != 60 {
		t.Fatalf("expected 60, got %d", cfg.AccessTokenTTLMinutes)
	}
}

func TestLoadBadTokenTTLFallsBack(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_TTL_MINUTES", "not-a-number")

	cfg := Load()
	if cfg.AccessTokenTTLMinutes != 480 {
		t.Fatalf("expected fallback 480, got %d", cfg.AccessTokenTTLMinutes)
	}
}
