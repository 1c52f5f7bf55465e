package config

import "testing"

func TestStoreConfigValidate(t *testing.T) {
	t.Parallel()

	cfg := StoreConfig{WhatsAppNumber: " 918864092866 "}
	if err := cfg.validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.WhatsAppNumber != "918864092866" {
		t.Fatalf("expected trimmed number, got %q", cfg.WhatsAppNumber)
	}
	if cfg.ImageFallback == "" {
		t.Fatal("expected fallback image default")
	}
}

func TestStoreConfigRejectsSeparators(t *testing.T) {
	t.Parallel()

	for _, number := range []string{"", "+918864092866", "91 886 409", "notanumber"} {
		cfg := StoreConfig{WhatsAppNumber: number}
		if err := cfg.validate(); err == nil {
			t.Fatalf("expected error for %q", number)
		}
	}
}

func TestCartConfigValidate(t *testing.T) {
	t.Parallel()

	cfg := CartConfig{Backend: " Redis ", Key: "cart"}
	if err := cfg.validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Backend != CartBackendRedis {
		t.Fatalf("expected normalized backend, got %q", cfg.Backend)
	}

	cfg = CartConfig{Backend: "filesystem", Key: "cart"}
	if err := cfg.validate(); err == nil {
		t.Fatal("expected error for unknown backend")
	}

	cfg = CartConfig{Backend: "sql", Key: "  "}
	if err := cfg.validate(); err == nil {
		t.Fatal("expected error for empty key")
	}
}
