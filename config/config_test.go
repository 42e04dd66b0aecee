package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/parniiyan/To-do-list/config"
)

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
log_level: INFO
api_server:
  address: ":9090"
  timeout: 2s
db:
  driver: sqlite3
  address: "file:todo.db?_foreign_keys=on"
auth:
  secret: "s3cret"
  token_ttl: 1h
  require_auth: true
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.LogLevel != "INFO" || cfg.HTTP.Address != ":9090" || cfg.HTTP.Timeout != 2*time.Second {
		t.Fatalf("unexpected http config: %+v", cfg)
	}
	if cfg.DB.Driver != "sqlite3" || cfg.DB.Address != "file:todo.db?_foreign_keys=on" {
		t.Fatalf("unexpected db config: %+v", cfg.DB)
	}
	if cfg.Auth.Secret != "s3cret" || cfg.Auth.TokenTTL != time.Hour || !cfg.Auth.RequireAuth {
		t.Fatalf("unexpected auth config: %+v", cfg.Auth)
	}
}

// not parallel: t.Setenv
func TestLoad_MissingFileFallsBackToEnv(t *testing.T) {
	t.Setenv("DB_ADDRESS", "postgres://todo@localhost/todo")
	t.Setenv("AUTH_SECRET", "from-env")

	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.DB.Address != "postgres://todo@localhost/todo" || cfg.Auth.Secret != "from-env" {
		t.Fatalf("env values not applied: %+v", cfg)
	}
	if cfg.DB.Driver != "pgx" || cfg.HTTP.Address != ":8080" || cfg.Auth.TokenTTL != 30*time.Minute || cfg.Auth.RequireAuth {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
}

func TestLoad_RequiredEnvMissing(t *testing.T) {
	for _, key := range []string{"DB_ADDRESS", "AUTH_SECRET"} {
		t.Setenv(key, "")
		_ = os.Unsetenv(key)
	}

	if _, err := config.Load(""); err == nil {
		t.Fatalf("expected error without db address and secret")
	}
}
