package utils

import "strings"

// ValidationError is a client-side rejection raised before any backend call.
// Message is a user-facing sentence; Fields maps form fields to their problem.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	msgs := make([]string, 0, len(e.Fields))
	for _, m := range e.Fields {
		msgs = append(msgs, m)
	}
	return strings.Join(msgs, "; ")
}

// Invalid builds a single-message validation error
func Invalid(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

// FieldErrors collects per-field validation messages
type FieldErrors map[string]string

// Err returns nil when no field failed
func (f FieldErrors) Err(msg string) error {
	if len(f) == 0 {
		return nil
	}
	return &ValidationError{Message: msg, Fields: f}
}
