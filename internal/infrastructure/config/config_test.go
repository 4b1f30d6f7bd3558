package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8080" || cfg.Database.Driver != "postgres" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.JWT.AccessTTL != 15*time.Minute || cfg.JWT.RefreshTTL != 168*time.Hour {
		t.Fatalf("unexpected token lifetimes: %+v", cfg.JWT)
	}
	if cfg.Redis.Addr != "" {
		t.Fatalf("redis must be disabled by default")
	}
	if cfg.JWT.Secret == "" {
		t.Fatalf("development must fall back to a secret")
	}
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"ENV":            "production",
		"JWT_SECRET":     "s3cret",
		"JWT_ACCESS_TTL": "5m",
		"DB_DRIVER":      "sqlite",
		"DB_DSN":         "file::memory:",
		"REDIS_ADDR":     "redis:6379",
		"NOTIFY_WORKERS": "2",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.JWT.AccessTTL != 5*time.Minute || cfg.Database.Driver != "sqlite" || cfg.Redis.Addr != "redis:6379" || cfg.NotifyWorkers != 2 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}

func TestLoad_Rejects(t *testing.T) {
	cases := map[string]map[string]string{
		"missing secret in production": {"ENV": "production"},
		"unknown driver":               {"DB_DRIVER": "oracle"},
		"bad duration":                 {"JWT_ACCESS_TTL": "soon"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := load(context.Background(), envconfig.MapLookuper(env)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}
