package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/auth-gateway/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps domain errors to their error code and HTTP status.
//   - Logs every failure internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"code", "message", "field"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = c.JSON(status, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Echo's own errors (404 from router, 405, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code := strings.ToUpper(strings.ReplaceAll(http.StatusText(he.Code), " ", "_"))
		return he.Code, errorResponse{Code: code, Message: fmt.Sprintf("%v", he.Message)}
	}

	code := domain.CodeOf(err)
	body := errorResponse{Code: string(code), Message: code.Message()}

	entry := log.With().
		Str("error_code", string(code)).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Logger()

	var (
		ve *domain.ValidationError
		pe *domain.ProviderError
	)
	switch {
	case errors.As(err, &ve):
		body.Field = ve.Field
		entry.Warn().Str("field", ve.Field).Str("reason", ve.Message).Msg("validation error")
	case code == domain.CodeInvalidCredentials:
		entry.Warn().Msg("authentication failed: invalid credentials")
	case errors.As(err, &pe):
		entry.Error().Err(err).Msg("identity provider error")
	default:
		entry.Error().Err(err).Msg("unhandled error")
	}

	return statusFor(code), body
}

func statusFor(code domain.ErrorCode) int {
	switch code {
	case domain.CodeInvalidCredentials:
		return http.StatusUnauthorized
	case domain.CodeValidationFailed:
		return http.StatusBadRequest
	case domain.CodeProviderHTTP, domain.CodeProviderNetwork, domain.CodeProviderParse:
		return http.StatusBadGateway
	case domain.CodeProviderTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
