package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type UserHandler struct{}

func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

// Me returns the user bound to the session cookie.
//
// @Summary      Current user
// @Tags         user
// @Produce      json
// @Success      200  {object}  userResponse
// @Failure      401  "no valid session"
// @Router       /user/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	user, ok := ctxUser(c)
	if !ok {
		return c.NoContent(http.StatusUnauthorized)
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}
