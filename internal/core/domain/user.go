package domain

// User is the identity returned by the provider and carried inside a session.
// Tokens are bearer secrets and never leave the server in a response body.
type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	Role         string `json:"role"`
	AccessToken  string `json:"-"`
	RefreshToken string `json:"-"`
	// ExpiresAt is the access token expiry in unix seconds, 0 when unknown.
	ExpiresAt uint64 `json:"-"`
}

// Session binds a session id to the user it authenticates.
type Session struct {
	ID   string
	User User
}
