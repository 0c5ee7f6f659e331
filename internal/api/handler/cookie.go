package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const DefaultCookieName = "session_id"

// CookieConfig controls the session cookie attributes.
type CookieConfig struct {
	Name   string
	Secure bool
}

func (cc CookieConfig) name() string {
	if cc.Name == "" {
		return DefaultCookieName
	}
	return cc.Name
}

func (cc CookieConfig) set(c echo.Context, sessionID string) {
	c.SetCookie(&http.Cookie{
		Name:     cc.name(),
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		Secure:   cc.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// clear expires the cookie immediately (Max-Age=0).
func (cc CookieConfig) clear(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     cc.name(),
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cc.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// sessionID returns the session cookie value, or "" when absent.
func (cc CookieConfig) sessionID(c echo.Context) string {
	ck, err := c.Cookie(cc.name())
	if err != nil {
		return ""
	}
	return ck.Value
}
