package domain

import (
	"errors"
	"fmt"
)

// ErrorCode is the machine readable code rendered in API error responses.
type ErrorCode string

const (
	CodeInvalidCredentials ErrorCode = "AUTH_INVALID_CREDENTIALS"
	CodeProviderHTTP       ErrorCode = "SUPABASE_HTTP_ERROR"
	CodeProviderNetwork    ErrorCode = "SUPABASE_NETWORK_ERROR"
	CodeProviderParse      ErrorCode = "SUPABASE_PARSE_ERROR"
	CodeProviderTimeout    ErrorCode = "SUPABASE_TIMEOUT"
	CodeValidationFailed   ErrorCode = "VALIDATION_FAILED"
	CodeInternal           ErrorCode = "INTERNAL_ERROR"
)

// Message returns the client facing message for the code.
func (c ErrorCode) Message() string {
	switch c {
	case CodeInvalidCredentials:
		return "Invalid email or password"
	case CodeProviderHTTP:
		return "Authentication service error"
	case CodeProviderNetwork:
		return "Unable to reach authentication service"
	case CodeProviderParse:
		return "Authentication service returned invalid data"
	case CodeProviderTimeout:
		return "Authentication service timed out"
	case CodeValidationFailed:
		return "Invalid input data"
	default:
		return "Internal server error"
	}
}

var ErrInvalidCredentials = errors.New("invalid email or password")

// ProviderErrorKind classifies a failed call to the identity provider.
type ProviderErrorKind string

const (
	ProviderHTTP    ProviderErrorKind = "http"
	ProviderNetwork ProviderErrorKind = "network"
	ProviderParse   ProviderErrorKind = "parse"
	ProviderTimeout ProviderErrorKind = "timeout"
)

// ProviderError is returned by the identity client for every failed call.
type ProviderError struct {
	Kind ProviderErrorKind
	// Status and Body are set for ProviderHTTP only.
	Status int
	Body   string
	Err    error
}

func (e *ProviderError) Error() string {
	switch e.Kind {
	case ProviderHTTP:
		return fmt.Sprintf("identity provider: http %d: %s", e.Status, e.Body)
	default:
		if e.Err != nil {
			return fmt.Sprintf("identity provider: %s: %v", e.Kind, e.Err)
		}
		return fmt.Sprintf("identity provider: %s", e.Kind)
	}
}

func (e *ProviderError) Unwrap() error { return e.Err }

// Code maps the failure kind to its API error code.
func (e *ProviderError) Code() ErrorCode {
	switch e.Kind {
	case ProviderNetwork:
		return CodeProviderNetwork
	case ProviderParse:
		return CodeProviderParse
	case ProviderTimeout:
		return CodeProviderTimeout
	default:
		return CodeProviderHTTP
	}
}

// IsCredentialRejection reports whether the provider refused the credentials
// themselves rather than failing.
func (e *ProviderError) IsCredentialRejection() bool {
	return e.Kind == ProviderHTTP && (e.Status == 400 || e.Status == 401)
}

// ValidationError reports the first request field that failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// CodeOf maps any error to its API error code.
func CodeOf(err error) ErrorCode {
	var (
		pe *ProviderError
		ve *ValidationError
	)
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return CodeInvalidCredentials
	case errors.As(err, &ve):
		return CodeValidationFailed
	case errors.As(err, &pe):
		if pe.IsCredentialRejection() {
			return CodeInvalidCredentials
		}
		return pe.Code()
	default:
		return CodeInternal
	}
}
