package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/auth-gateway/internal/core/domain"
	"github.com/99minutos/auth-gateway/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	cookie      CookieConfig
	log         zerolog.Logger
}

func NewAuthHandler(authService ports.AuthService, cookie CookieConfig, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cookie:      cookie,
		log:         log.With().Str("component", "auth_handler").Logger(),
	}
}

// Login authenticates a user and starts a session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  userResponse
// @Header       200   {string}  Set-Cookie  "session_id cookie"
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Failure      504   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	sessionID, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	h.cookie.set(c, sessionID)
	h.log.Info().Str("user_id", user.ID).Msg("login successful")
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Register signs a user up and starts a session.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  userResponse
// @Header       201   {string}  Set-Cookie  "session_id cookie"
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Failure      504   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	sessionID, user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Email:            req.Email,
		Password:         req.Password,
		Username:         req.Username,
		PhoneCountryCode: req.PhoneCountryCode,
		PhoneNumber:      req.PhoneNumber,
	})
	if err != nil {
		return err
	}

	h.cookie.set(c, sessionID)
	h.log.Info().Str("user_id", user.ID).Msg("registration successful")
	return c.JSON(http.StatusCreated, toUserResponse(user))
}

// Logout ends the current session, if any, and clears the cookie.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if sid := h.cookie.sessionID(c); sid != "" {
		h.authService.Logout(c.Request().Context(), sid)
	} else {
		h.log.Info().Msg("logout called without session cookie")
	}

	h.cookie.clear(c)
	return c.JSON(http.StatusOK, messageResponse{Message: "Logged out successfully"})
}

// bind decodes and validates the request body. Malformed bodies are reported
// as validation failures without a field.
func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return &domain.ValidationError{Message: "invalid payload"}
	}
	return c.Validate(req)
}
