package models

import "time"

// UserResponse holds the public fields of a user
type UserResponse struct {
	ID        string    `json:"id"` // UUID
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// RegisterResponse represents the response after user registration
type RegisterResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}

// LoginResponse represents the response after successful authentication
type LoginResponse struct {
	Token     string    `json:"token"` // JWT token
	ExpiresAt time.Time `json:"expires_at"`
}

// MeResponse wraps the authenticated user
type MeResponse struct {
	User UserResponse `json:"user"`
}
