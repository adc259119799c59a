package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const goodSecret = "0123456789abcdef0123456789abcdef"

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return p
}

func TestLoad_FailsWithoutSecret(t *testing.T) {
	t.Setenv("APP_JWT_SECRET", "")
	t.Setenv("APP_DB_DSN", "postgres://localhost/w1")
	p := writeYAML(t, "db:\n  driver: postgres\n")

	if _, err := Load(p); !errors.Is(err, ErrMissingSecret) {
		t.Fatalf("expected ErrMissingSecret, got %v", err)
	}
}

func TestLoad_FailsWithShortSecret(t *testing.T) {
	t.Setenv("APP_JWT_SECRET", "segredoUltraSeguro")
	t.Setenv("APP_DB_DSN", "postgres://localhost/w1")

	if _, err := Load(writeYAML(t, "app:\n  name: w1-app\n")); !errors.Is(err, ErrShortSecret) {
		t.Fatalf("expected ErrShortSecret, got %v", err)
	}
}

func TestLoad_EnvOverridesAndDefaults(t *testing.T) {
	t.Setenv("APP_JWT_SECRET", goodSecret)
	t.Setenv("APP_DB_DRIVER", "sqlite")
	t.Setenv("APP_DB_DSN", "file:test.db")
	t.Setenv("APP_APP_HTTP_RATE_PER_SEC", "50")
	p := writeYAML(t, "app:\n  http:\n    port: 8081\nlog:\n  level: debug\n")

	c, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.JWT.Secret != goodSecret {
		t.Fatalf("secret not read from env")
	}
	if c.App.HTTP.Port != 8081 || c.Log.Level != "debug" {
		t.Fatalf("yaml values not applied: %+v", c)
	}
	if c.DB.Driver != "sqlite" || c.DB.DSN != "file:test.db" {
		t.Fatalf("db env overrides not applied: %+v", c.DB)
	}
	if got := c.JWT.TTL().Hours(); got != 2 {
		t.Fatalf("expected default TTL of 2h, got %vh", got)
	}
	if c.App.HTTP.RatePerSec != 50 || c.App.HTTP.RateBurst != 1000 {
		t.Fatalf("global rate limit = %v/%d, want 50/1000", c.App.HTTP.RatePerSec, c.App.HTTP.RateBurst)
	}
	if c.Auth.BcryptCost != 10 {
		t.Fatalf("expected default bcrypt cost 10, got %d", c.Auth.BcryptCost)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("APP_JWT_SECRET", goodSecret)
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}

func TestValidate_Driver(t *testing.T) {
	c := &Config{
		JWT: JWT{Secret: goodSecret, AccessTokenTTLMin: 120},
		DB:  DB{Driver: "oracle", DSN: "x"},
	}
	if err := c.Validate(); err == nil {
		t.Fatalf("expected unsupported driver error")
	}
	c.DB.Driver = "postgres"
	if err := c.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c.JWT.AccessTokenTTLMin = 0
	if err := c.Validate(); err == nil {
		t.Fatalf("expected TTL error")
	}
}
