package ports

import (
	"context"

	"github.com/99minutos/auth-gateway/internal/core/domain"
)

// AuthService orchestrates provider calls and session lifecycle.
type AuthService interface {
	Login(ctx context.Context, email, password string) (string, domain.User, error)
	Register(ctx context.Context, input RegisterInput) (string, domain.User, error)
	// Logout ends the session and reports whether one existed.
	Logout(ctx context.Context, sessionID string) bool
}
