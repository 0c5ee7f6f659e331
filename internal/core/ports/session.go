package ports

import (
	"context"

	"github.com/99minutos/auth-gateway/internal/core/domain"
)

// SessionStore maps session ids to authenticated users.
type SessionStore interface {
	Create(ctx context.Context, user domain.User) string
	Get(sessionID string) (domain.User, bool)
	Delete(ctx context.Context, sessionID string) (domain.User, bool)
	Len() int
}

// SessionPersister is the durable sink for the full session table.
// Load returns an empty slice and no error when nothing was saved yet.
type SessionPersister interface {
	Load(ctx context.Context) ([]domain.Session, error)
	Save(ctx context.Context, sessions []domain.Session) error
	Ping(ctx context.Context) error
}
