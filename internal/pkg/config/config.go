package config

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	BackendFile  = "file"
	BackendRedis = "redis"
)

type Config struct {
	Host       string `env:"IP,          default=0.0.0.0"`
	Port       string `env:"PORT,        default=8080"`
	Env        string `env:"ENV,         default=development"`
	LogLevel   string `env:"LOG_LEVEL,   default=info"`
	LogPretty  bool   `env:"LOG_PRETTY,  default=false"`
	SecureHTTP bool   `env:"SECURE_HTTP, default=false"`

	Supabase SupabaseConfig
	Session  SessionConfig
	Redis    RedisConfig
	Audit    AuditConfig
	Mongo    MongoConfig
}

type SupabaseConfig struct {
	URL         string        `env:"SP_URL, required"`
	AnonKey     string        `env:"SP_ANON, required"`
	ProjectID   string        `env:"SP_ID"`
	ServiceRole string        `env:"SP_SERVICE_ROLE"`
	Timeout     time.Duration `env:"SP_TIMEOUT, default=10s"`
}

type SessionConfig struct {
	Backend       string `env:"SESSION_BACKEND,        default=file"`
	File          string `env:"SESSION_FILE,           default=data/sessions.csv"`
	CookieName    string `env:"SESSION_COOKIE,         default=session_id"`
	EnforceExpiry bool   `env:"SESSION_ENFORCE_EXPIRY, default=false"`
}

type RedisConfig struct {
	Addr       string        `env:"REDIS_ADDR,        default=localhost:6379"`
	DB         int           `env:"REDIS_DB,          default=0"`
	SessionKey string        `env:"REDIS_SESSION_KEY, default=gateway:sessions"`
	Timeout    time.Duration `env:"REDIS_TIMEOUT,     default=5s"`
}

type AuditConfig struct {
	Enabled bool `env:"AUDIT_ENABLED, default=false"`
	Workers int  `env:"AUDIT_WORKERS, default=4"`
}

type MongoConfig struct {
	URI      string        `env:"MONGO_URI,     default=mongodb://localhost:27017"`
	Database string        `env:"MONGO_DB,      default=login_gateway"`
	Timeout  time.Duration `env:"MONGO_TIMEOUT, default=10s"`
}

// Addr returns the host:port the HTTP server binds to.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// Load reads configuration from environment variables using go-envconfig.
// It panics on invalid configuration.
func Load() *Config {
	cfg, err := LoadWith(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadWith reads configuration through lookuper and validates it.
func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Session.Backend {
	case BackendFile:
		if c.Session.File == "" {
			return fmt.Errorf("SESSION_FILE must not be empty")
		}
	case BackendRedis:
		if c.Redis.Timeout <= 0 {
			return fmt.Errorf("REDIS_TIMEOUT must be positive, got %s", c.Redis.Timeout)
		}
	default:
		return fmt.Errorf("SESSION_BACKEND must be %q or %q, got %q", BackendFile, BackendRedis, c.Session.Backend)
	}
	if c.Session.CookieName == "" {
		return fmt.Errorf("SESSION_COOKIE must not be empty")
	}
	if c.Audit.Enabled && c.Audit.Workers <= 0 {
		return fmt.Errorf("AUDIT_WORKERS must be positive, got %d", c.Audit.Workers)
	}
	if c.Audit.Enabled && c.Mongo.Timeout <= 0 {
		return fmt.Errorf("MONGO_TIMEOUT must be positive, got %s", c.Mongo.Timeout)
	}
	return nil
}
