package ports

import (
	"context"

	"github.com/99minutos/auth-gateway/internal/core/domain"
)

// RegisterInput carries the sign-up fields forwarded to the identity provider.
type RegisterInput struct {
	Email            string
	Password         string
	Username         string
	PhoneCountryCode *string
	PhoneNumber      *string
}

// IdentityProvider authenticates users against the external identity service.
// Failures are returned as *domain.ProviderError.
type IdentityProvider interface {
	Login(ctx context.Context, email, password string) (domain.User, error)
	Register(ctx context.Context, input RegisterInput) (domain.User, error)
	// Logout revokes the access token. Failures are logged, never returned.
	Logout(ctx context.Context, accessToken string)
}
