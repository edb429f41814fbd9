package core

import (
	"errors"
)

// ErrAuthRequired means the operation needs a logged-in user.
// The web layer turns it into a redirect to the login page.
var ErrAuthRequired = errors.New("authentication required")

// ErrNotFound covers both missing entities and entities owned by somebody
// else. Callers must not be able to tell these cases apart.
var ErrNotFound = errors.New("not found")

// A ValidationError rejects a request. It is displayed at the named form field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// A ConflictError rejects a request because a unique value is already taken.
// It is displayed at the named form field.
type ConflictError struct {
	Field   string
	Message string
}

func (e ConflictError) Error() string {
	return e.Field + ": " + e.Message
}
