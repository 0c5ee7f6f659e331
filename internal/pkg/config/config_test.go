package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func required() map[string]string {
	return map[string]string{
		"SP_URL":  "https://project.supabase.co",
		"SP_ANON": "anon-key",
	}
}

func TestLoadWith_Defaults(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(required()))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Addr() != "0.0.0.0:8080" {
		t.Fatalf("unexpected addr %s", cfg.Addr())
	}
	if cfg.SecureHTTP {
		t.Fatalf("secure cookies should default to off")
	}
	if cfg.Supabase.Timeout != 10*time.Second {
		t.Fatalf("unexpected timeout %s", cfg.Supabase.Timeout)
	}
	if cfg.Session.Backend != BackendFile || cfg.Session.File != "data/sessions.csv" || cfg.Session.CookieName != "session_id" {
		t.Fatalf("unexpected session config %+v", cfg.Session)
	}
	if cfg.Session.EnforceExpiry {
		t.Fatalf("expiry enforcement should default to off")
	}
	if cfg.Redis.SessionKey != "gateway:sessions" || cfg.Audit.Enabled {
		t.Fatalf("unexpected defaults %+v %+v", cfg.Redis, cfg.Audit)
	}
}

func TestLoadWith_Overrides(t *testing.T) {
	env := required()
	env["IP"] = "127.0.0.1"
	env["PORT"] = "9000"
	env["SECURE_HTTP"] = "true"
	env["SP_TIMEOUT"] = "3s"
	env["SESSION_BACKEND"] = "redis"
	env["REDIS_DB"] = "2"

	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(env))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr() != "127.0.0.1:9000" || !cfg.SecureHTTP {
		t.Fatalf("unexpected server config %+v", cfg)
	}
	if cfg.Supabase.Timeout != 3*time.Second || cfg.Session.Backend != BackendRedis || cfg.Redis.DB != 2 {
		t.Fatalf("overrides not applied: %+v %+v %+v", cfg.Supabase, cfg.Session, cfg.Redis)
	}
}

func TestLoadWith_MissingProvider(t *testing.T) {
	if _, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{})); err == nil {
		t.Fatalf("expected an error without SP_URL and SP_ANON")
	}
}

func TestLoadWith_UnknownBackend(t *testing.T) {
	env := required()
	env["SESSION_BACKEND"] = "postgres"

	if _, err := LoadWith(context.Background(), envconfig.MapLookuper(env)); err == nil {
		t.Fatalf("expected an error for an unknown backend")
	}
}

func TestLoadWith_BackendTimeouts(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(required()))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Redis.Timeout != 5*time.Second || cfg.Mongo.Timeout != 10*time.Second {
		t.Fatalf("unexpected timeouts redis=%s mongo=%s", cfg.Redis.Timeout, cfg.Mongo.Timeout)
	}

	env := required()
	env["SESSION_BACKEND"] = "redis"
	env["REDIS_TIMEOUT"] = "0s"
	if _, err := LoadWith(context.Background(), envconfig.MapLookuper(env)); err == nil {
		t.Fatalf("expected an error for a zero REDIS_TIMEOUT")
	}

	env = required()
	env["AUDIT_ENABLED"] = "true"
	env["MONGO_TIMEOUT"] = "-1s"
	if _, err := LoadWith(context.Background(), envconfig.MapLookuper(env)); err == nil {
		t.Fatalf("expected an error for a negative MONGO_TIMEOUT")
	}
}
