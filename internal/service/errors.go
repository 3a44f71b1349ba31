package service

import (
	"errors"
	"fmt"
)

// ErrNotConfigured is returned when a relay is invoked without the
// credentials its upstream backend requires. Operator-facing.
var ErrNotConfigured = errors.New("upstream credentials not configured")

// InvalidInputError marks a client-caused failure; the message names the
// violated constraint.
type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string {
	return e.Message
}

func invalidInput(format string, args ...interface{}) error {
	return &InvalidInputError{Message: fmt.Sprintf(format, args...)}
}

// ParseError marks an upstream reply that did not match the expected
// schema.
type ParseError struct {
	Message string
}

func (e *ParseError) Error() string {
	return e.Message
}
