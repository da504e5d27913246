package bootstrap

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	if _, err := Load(""); err == nil {
		t.Fatal("expected error without JWT_SECRET")
	}
}

func TestLoadAppliesFileAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	raw := []byte(`
http:
  addr: ":9999"
database:
  url: "postgres://file/db"
redis:
  url: "redis://file:6379/0"
auth:
  failed_threshold: 3
  lockout_cooldown: 10m
`)
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("DB_URL", "postgres://env/db")
	t.Setenv("FAILED_THRESHOLD", "7")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.HTTP.Addr != ":9999" {
		t.Fatalf("file value not applied: %s", cfg.HTTP.Addr)
	}
	if cfg.Database.URL != "postgres://env/db" {
		t.Fatalf("env must override file: %s", cfg.Database.URL)
	}
	if cfg.Auth.FailedThreshold != 7 {
		t.Fatalf("env threshold not applied: %d", cfg.Auth.FailedThreshold)
	}
	if cfg.Auth.LockoutCooldown.Std() != 10*time.Minute {
		t.Fatalf("file cooldown not applied: %s", cfg.Auth.LockoutCooldown.Std())
	}
	if cfg.Auth.TokenTTL.Std() != 24*time.Hour {
		t.Fatalf("default ttl lost: %s", cfg.Auth.TokenTTL.Std())
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("DB_URL", "postgres://env/db")
	t.Setenv("REDIS_URL", "redis://env:6379/0")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Auth.FailedThreshold != 5 || cfg.Auth.LockoutCooldown.Std() != 5*time.Minute {
		t.Fatalf("defaults wrong: %+v", cfg.Auth)
	}
}
