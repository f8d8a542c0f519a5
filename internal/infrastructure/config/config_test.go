package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"TOKEN_SECRET": "s3cr3t",
	}))
	if err != nil {
		t.Fatalf("LoadFrom returned error: %v", err)
	}

	if cfg.Port != "8080" || cfg.Env != "development" || cfg.LogLevel != "info" {
		t.Fatalf("unexpected server defaults: %+v", cfg)
	}
	if cfg.Auth.TokenSecret != "s3cr3t" || cfg.Auth.TokenTTL != 0 || cfg.Auth.BcryptCost != 10 {
		t.Fatalf("unexpected auth config: %+v", cfg.Auth)
	}
	if cfg.Mongo.URI != "mongodb://localhost:27017" || cfg.Mongo.Database != "auth_service" {
		t.Fatalf("unexpected mongo config: %+v", cfg.Mongo)
	}
	if cfg.Redis.Addr != "localhost:6379" || cfg.Redis.RegistrationLockTTL != 30*time.Second {
		t.Fatalf("unexpected redis config: %+v", cfg.Redis)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Fatalf("unexpected shutdown timeout: %v", cfg.ShutdownTimeout)
	}
	if cfg.IsProduction() {
		t.Fatalf("development must not report production")
	}
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"TOKEN_SECRET": "s3cr3t",
		"TOKEN_TTL":    "24h",
		"BCRYPT_COST":  "12",
		"ENV":          "production",
		"MONGO_DB":     "accounts",
	}))
	if err != nil {
		t.Fatalf("LoadFrom returned error: %v", err)
	}
	if cfg.Auth.TokenTTL != 24*time.Hour || cfg.Auth.BcryptCost != 12 {
		t.Fatalf("unexpected auth config: %+v", cfg.Auth)
	}
	if !cfg.IsProduction() || cfg.Mongo.Database != "accounts" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadFrom_RequiresTokenSecret(t *testing.T) {
	if _, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{})); err == nil {
		t.Fatalf("expected error when TOKEN_SECRET is missing")
	}
}

func TestLoadFrom_InvalidDuration(t *testing.T) {
	_, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"TOKEN_SECRET": "s3cr3t",
		"TOKEN_TTL":    "forever",
	}))
	if err == nil {
		t.Fatalf("expected error for invalid TOKEN_TTL")
	}
}
