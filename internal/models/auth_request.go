package models

// RegisterRequest represents the request body for user registration.
// The auth service additionally rejects whitespace-only values.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest represents the request body for user login. Fields carry no
// binding tags: a blank login must fail with the generic credentials error.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
