package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/99minutos/auth-gateway/internal/api/middleware"
	"github.com/99minutos/auth-gateway/internal/core/domain"
)

// ctxUser returns the user injected by the RequireSession middleware.
func ctxUser(c echo.Context) (domain.User, bool) {
	u, ok := c.Get(middleware.ContextKeyUser).(domain.User)
	return u, ok
}
