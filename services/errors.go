package services

import "errors"

// ErrNotFound is returned when an identifier does not resolve to a stored entity.
var ErrNotFound = errors.New("not found")

// ValidationError carries a message that is safe to hand back to the client.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
