package mongo

import (
	"context"
	"testing"
	"time"
)

func TestConfig_ClientOptions(t *testing.T) {
	cfg := Config{URI: "mongodb://localhost:27017", Database: "login_gateway", Timeout: 3 * time.Second}
	opts := cfg.clientOptions()

	if opts.AppName == nil || *opts.AppName != appName {
		t.Fatalf("unexpected app name %v", opts.AppName)
	}
	if opts.ServerSelectionTimeout == nil || *opts.ServerSelectionTimeout != 3*time.Second {
		t.Fatalf("unexpected server selection timeout %v", opts.ServerSelectionTimeout)
	}
	if opts.ConnectTimeout == nil || *opts.ConnectTimeout != 3*time.Second {
		t.Fatalf("unexpected connect timeout %v", opts.ConnectTimeout)
	}
}

func TestConnect_InvalidConfig(t *testing.T) {
	cases := map[string]Config{
		"missing uri":      {Database: "db", Timeout: time.Second},
		"missing database": {URI: "mongodb://localhost:27017", Timeout: time.Second},
		"zero timeout":     {URI: "mongodb://localhost:27017", Database: "db"},
	}
	for name, cfg := range cases {
		t.Run(name, func(t *testing.T) {
			if _, _, err := Connect(context.Background(), cfg); err == nil {
				t.Fatalf("expected an error for %+v", cfg)
			}
		})
	}
}
