package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config describes the Redis instance that holds the session snapshot.
type Config struct {
	Addr    string
	DB      int
	Timeout time.Duration
}

func (c Config) validate() error {
	if c.Addr == "" {
		return errors.New("redis: address is required")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("redis: timeout must be positive, got %s", c.Timeout)
	}
	return nil
}

// Connect opens the snapshot client and pings it once. The same timeout bounds
// dialing, every read and write, and the initial ping.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		DB:           cfg.DB,
		DialTimeout:  cfg.Timeout,
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	return client, nil
}
