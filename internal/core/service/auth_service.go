package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/auth-gateway/internal/core/domain"
	"github.com/99minutos/auth-gateway/internal/core/ports"
)

// AuthService authenticates against the identity provider and owns the
// session lifecycle. Each successful login or registration creates exactly
// one session.
type AuthService struct {
	provider ports.IdentityProvider
	sessions ports.SessionStore
	audit    ports.AuditRecorder
	log      zerolog.Logger
	now      func() time.Time
}

var _ ports.AuthService = (*AuthService)(nil)

// NewAuthService wires the service. A nil audit recorder discards events.
func NewAuthService(provider ports.IdentityProvider, sessions ports.SessionStore, audit ports.AuditRecorder, log zerolog.Logger) *AuthService {
	if audit == nil {
		audit = nopRecorder{}
	}
	return &AuthService{
		provider: provider,
		sessions: sessions,
		audit:    audit,
		log:      log.With().Str("component", "auth_service").Logger(),
		now:      time.Now,
	}
}

// Login returns the new session id and the authenticated user.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, domain.User, error) {
	user, err := s.provider.Login(ctx, email, password)
	if err != nil {
		err = classify(err)
		s.record(domain.EventLoginFailed, domain.User{Email: email}, err)
		return "", domain.User{}, err
	}

	sessionID := s.sessions.Create(ctx, user)
	s.record(domain.EventLogin, user, nil)
	return sessionID, user, nil
}

// Register signs the user up and starts a session for them.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (string, domain.User, error) {
	user, err := s.provider.Register(ctx, input)
	if err != nil {
		err = classify(err)
		s.record(domain.EventRegisterFailed, domain.User{Email: input.Email}, err)
		return "", domain.User{}, err
	}

	sessionID := s.sessions.Create(ctx, user)
	s.record(domain.EventRegister, user, nil)
	return sessionID, user, nil
}

// Logout deletes the session and revokes its access token at the provider.
// Unknown sessions are not an error.
func (s *AuthService) Logout(ctx context.Context, sessionID string) bool {
	user, ok := s.sessions.Delete(ctx, sessionID)
	if !ok {
		return false
	}

	s.provider.Logout(ctx, user.AccessToken)
	s.record(domain.EventLogout, user, nil)
	s.log.Info().Str("user_id", user.ID).Msg("user logged out")
	return true
}

// classify turns a provider rejection of the credentials into
// domain.ErrInvalidCredentials and leaves every other failure untouched.
func classify(err error) error {
	var pe *domain.ProviderError
	if errors.As(err, &pe) && pe.IsCredentialRejection() {
		return domain.ErrInvalidCredentials
	}
	return err
}

func (s *AuthService) record(typ domain.AuthEventType, user domain.User, err error) {
	event := domain.AuthEvent{
		Type:       typ,
		UserID:     user.ID,
		Email:      user.Email,
		OccurredAt: s.now().UTC(),
	}
	if err != nil {
		event.ErrorCode = domain.CodeOf(err)
	}
	s.audit.Record(event)
}

type nopRecorder struct{}

func (nopRecorder) Record(domain.AuthEvent) {}
