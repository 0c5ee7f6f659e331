package supabase

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/99minutos/auth-gateway/internal/core/domain"
)

const (
	tokenPath  = "/auth/v1/token?grant_type=password"
	signupPath = "/auth/v1/signup"
	logoutPath = "/auth/v1/logout"
)

type loginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerBody struct {
	Email    string           `json:"email"`
	Password string           `json:"password"`
	Data     registerMetadata `json:"data"`
}

type registerMetadata struct {
	Username         string  `json:"username"`
	PhoneCountryCode *string `json:"phone_country_code,omitempty"`
	PhoneNumber      *string `json:"phone_number,omitempty"`
}

type authResponse struct {
	AccessToken  string  `json:"access_token"`
	TokenType    string  `json:"token_type"`
	ExpiresIn    uint64  `json:"expires_in"`
	ExpiresAt    uint64  `json:"expires_at"`
	RefreshToken string  `json:"refresh_token"`
	User         rawUser `json:"user"`
}

type rawUser struct {
	ID           string         `json:"id"`
	Email        string         `json:"email"`
	Role         string         `json:"role"`
	Aud          string         `json:"aud"`
	UserMetadata map[string]any `json:"user_metadata"`
}

// toUser maps a provider response onto the domain user. When the response
// carries no expires_at, the access token's exp claim is used, then
// now + expires_in.
func (r authResponse) toUser(now time.Time) domain.User {
	username, _ := r.User.UserMetadata["username"].(string)

	return domain.User{
		ID:           r.User.ID,
		Email:        r.User.Email,
		Username:     username,
		Role:         r.User.Role,
		AccessToken:  r.AccessToken,
		RefreshToken: r.RefreshToken,
		ExpiresAt:    r.expiresAt(now),
	}
}

func (r authResponse) expiresAt(now time.Time) uint64 {
	if r.ExpiresAt > 0 {
		return r.ExpiresAt
	}
	if exp, ok := tokenExpiry(r.AccessToken); ok {
		return exp
	}
	if r.ExpiresIn > 0 {
		return uint64(now.Unix()) + r.ExpiresIn
	}
	return 0
}

// tokenExpiry reads the exp claim without verifying the signature. The result
// must never be used for authorization.
func tokenExpiry(token string) (uint64, bool) {
	if token == "" {
		return 0, false
	}
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return 0, false
	}
	if claims.ExpiresAt == nil || claims.ExpiresAt.Unix() <= 0 {
		return 0, false
	}
	return uint64(claims.ExpiresAt.Unix()), true
}
