package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const appName = "auth-gateway"

// Config describes the MongoDB deployment that receives audit events.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

func (c Config) validate() error {
	if c.URI == "" || c.Database == "" {
		return errors.New("mongo: uri and database are required")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("mongo: timeout must be positive, got %s", c.Timeout)
	}
	return nil
}

func (c Config) clientOptions() *options.ClientOptions {
	return options.Client().
		ApplyURI(c.URI).
		SetAppName(appName).
		SetConnectTimeout(c.Timeout).
		SetServerSelectionTimeout(c.Timeout)
}

// Connect opens the audit client, pings the primary and returns the audit
// database handle.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	if err := cfg.validate(); err != nil {
		return nil, nil, err
	}

	connectCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, cfg.clientOptions())
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.WithoutCancel(ctx))
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, client.Database(cfg.Database), nil
}
