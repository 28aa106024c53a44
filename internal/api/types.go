// Package api defines shared request/response types for the HTTP surface.
package api

// ErrorResponse is the JSON body returned for all error statuses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the JSON body for simple acknowledgements.
type MessageResponse struct {
	Message string `json:"message"`
}

// TokenResponse carries a signed JWT after a successful login.
type TokenResponse struct {
	Token string `json:"token"`
}

// SignupRequest is the JSON body for user registration.
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest is the JSON body for user login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
