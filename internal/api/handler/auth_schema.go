package handler

import "github.com/99minutos/auth-gateway/internal/core/domain"

type loginRequest struct {
	Email    string `json:"email" validate:"required,max=255,email"`
	Password string `json:"password" validate:"min=6,max=128"`
}

type registerRequest struct {
	Email            string  `json:"email" validate:"required,max=255,email"`
	Password         string  `json:"password" validate:"min=6,max=128"`
	Username         string  `json:"username" validate:"min=3,max=50"`
	PhoneCountryCode *string `json:"phone_country_code,omitempty" validate:"omitempty,max=5"`
	PhoneNumber      *string `json:"phone_number,omitempty" validate:"omitempty,max=20"`
}

// userResponse is the only user shape sent to clients. It never carries tokens.
type userResponse struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// errorResponse documents the envelope rendered by the API error handler.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func toUserResponse(u domain.User) userResponse {
	return userResponse{Email: u.Email, Username: u.Username, Role: u.Role}
}
