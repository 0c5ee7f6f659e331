package domain

import "time"

type AuthEventType string

const (
	EventLogin          AuthEventType = "login"
	EventLoginFailed    AuthEventType = "login_failed"
	EventRegister       AuthEventType = "register"
	EventRegisterFailed AuthEventType = "register_failed"
	EventLogout         AuthEventType = "logout"
)

// AuthEvent is an audit record of an authentication attempt or logout.
type AuthEvent struct {
	Type       AuthEventType
	UserID     string
	Email      string
	ErrorCode  ErrorCode
	OccurredAt time.Time
}

// ShardKey returns the key used to keep one user's events in order.
func (e AuthEvent) ShardKey() string {
	if e.UserID != "" {
		return e.UserID
	}
	return e.Email
}
