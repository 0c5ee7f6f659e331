package redis

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/99minutos/auth-gateway/internal/core/domain"
	"github.com/99minutos/auth-gateway/internal/core/session"
)

const DefaultSessionKey = "gateway:sessions"

// SessionSnapshot keeps the CSV session snapshot under a single Redis key so
// that a restarted gateway on another host can recover its sessions.
type SessionSnapshot struct {
	client *redis.Client
	key    string
}

// NewSessionSnapshot returns a persister writing to key, or DefaultSessionKey
// when key is empty.
func NewSessionSnapshot(client *redis.Client, key string) *SessionSnapshot {
	if key == "" {
		key = DefaultSessionKey
	}
	return &SessionSnapshot{client: client, key: key}
}

// Load returns no sessions and no error when the key does not exist.
func (s *SessionSnapshot) Load(ctx context.Context) ([]domain.Session, error) {
	raw, err := s.client.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", s.key, err)
	}
	return session.ReadSnapshot(strings.NewReader(raw))
}

// Save overwrites the key with the full snapshot.
func (s *SessionSnapshot) Save(ctx context.Context, sessions []domain.Session) error {
	var buf bytes.Buffer
	if err := session.WriteSnapshot(&buf, sessions); err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key, buf.String(), 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.key, err)
	}
	return nil
}

func (s *SessionSnapshot) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
