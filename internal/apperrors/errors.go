// Package apperrors defines the sentinel errors shared by the repository,
// service and controller layers. Callers match them with errors.Is.
package apperrors

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks missing or invalid input. Use Validation to attach
	// a client-facing message.
	ErrValidation = errors.New("validation error")

	// ErrNotFound is returned when a record does not exist or is not owned
	// by the caller. The two cases are never distinguished.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a unique value (user email) is taken.
	ErrConflict = errors.New("conflict")

	// ErrInvalidCredentials is the single login failure, whether the email
	// is unknown or the password is wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrUnauthenticated is returned when no caller identity is available.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrInvalidToken covers bad signatures, malformed tokens and expiry.
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired wraps ErrInvalidToken so both errors.Is checks hold.
	ErrTokenExpired = fmt.Errorf("%w: token expired", ErrInvalidToken)
)

// ErrEmailTaken is the registration conflict returned for a duplicate email.
var ErrEmailTaken = Conflict("user with this email already exists")

// Validation returns an ErrValidation carrying msg.
func Validation(msg string) error {
	return &kindError{msg: msg, kind: ErrValidation}
}

// Conflict returns an ErrConflict carrying msg.
func Conflict(msg string) error {
	return &kindError{msg: msg, kind: ErrConflict}
}

// kindError is a client-facing message classified by one of the sentinels.
type kindError struct {
	msg  string
	kind error
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.kind }
