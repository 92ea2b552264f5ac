package service

import (
	"errors"
	"fmt"
)

// Sentinel errors controllers translate into HTTP statuses. Ownership
// failures map onto ErrFormNotFound on purpose: a caller probing a foreign
// form id must not learn whether it exists.
var (
	ErrFormNotFound       = errors.New("form not found or access denied")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("an account with this email already exists")
)

// ValidationError carries the structured violation list for a malformed
// submission or form payload.
type ValidationError struct {
	Message string
	Details []string
}

func (e *ValidationError) Error() string {
	if len(e.Details) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Details)
}

func newValidationError(message string, details ...string) *ValidationError {
	return &ValidationError{Message: message, Details: details}
}
