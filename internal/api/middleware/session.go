package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/auth-gateway/internal/core/ports"
)

const (
	ContextKeyUser      = "user"
	ContextKeySessionID = "session_id"
)

// SessionConfig configures RequireSession.
type SessionConfig struct {
	CookieName string
	// EnforceExpiry rejects and deletes sessions whose non-zero ExpiresAt has passed.
	EnforceExpiry bool
	// Now defaults to time.Now.
	Now func() time.Time
}

// RequireSession resolves the session cookie to a user and injects it into
// the context. A missing cookie and an unknown session both get an empty 401.
func RequireSession(store ports.SessionStore, cfg SessionConfig) echo.MiddlewareFunc {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	if cfg.CookieName == "" {
		cfg.CookieName = "session_id"
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ck, err := c.Cookie(cfg.CookieName)
			if err != nil || ck.Value == "" {
				return c.NoContent(http.StatusUnauthorized)
			}

			user, ok := store.Get(ck.Value)
			if !ok {
				return c.NoContent(http.StatusUnauthorized)
			}

			if cfg.EnforceExpiry && user.ExpiresAt > 0 && uint64(now().Unix()) >= user.ExpiresAt {
				store.Delete(c.Request().Context(), ck.Value)
				return c.NoContent(http.StatusUnauthorized)
			}

			c.Set(ContextKeyUser, user)
			c.Set(ContextKeySessionID, ck.Value)
			return next(c)
		}
	}
}
