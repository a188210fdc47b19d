package forge

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorType categorizes failures of remote forge operations.
type ErrorType string

const (
	ErrorTypeNotFound     ErrorType = "not_found"
	ErrorTypeUnauthorized ErrorType = "unauthorized"
	ErrorTypeConflict     ErrorType = "conflict"
	ErrorTypeTransport    ErrorType = "transport"
)

// ForgeError is a structured error from a forge operation.
type ForgeError struct {
	Type     ErrorType
	Message  string
	Resource string
	Cause    error
}

// Error implements the error interface.
func (e *ForgeError) Error() string {
	if e.Resource != "" {
		return fmt.Sprintf("%s error for %s: %s", e.Type, e.Resource, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error.
func (e *ForgeError) Unwrap() error {
	return e.Cause
}

// NewForgeError creates a ForgeError with the given type and message.
func NewForgeError(errorType ErrorType, resource, message string, cause error) *ForgeError {
	return &ForgeError{
		Type:     errorType,
		Message:  message,
		Resource: resource,
		Cause:    cause,
	}
}

// IsNotFound reports whether err is a not-found forge error, possibly
// wrapped. The differ relies on this to turn fetch misses into missing
// outcomes instead of failures.
func IsNotFound(err error) bool {
	var forgeErr *ForgeError
	return errors.As(err, &forgeErr) && forgeErr.Type == ErrorTypeNotFound
}

// errorTypeForStatus maps an HTTP status from the forge API into the error
// taxonomy.
func errorTypeForStatus(status int) ErrorType {
	switch status {
	case http.StatusNotFound:
		return ErrorTypeNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrorTypeUnauthorized
	case http.StatusConflict, http.StatusUnprocessableEntity:
		return ErrorTypeConflict
	default:
		return ErrorTypeTransport
	}
}

// ValidationError describes one invalid field of a desired-state file.
type ValidationError struct {
	Field   string
	Value   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("validation error for field '%s' (value: %s): %s", e.Field, e.Value, e.Message)
	}
	return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
}

// ValidationErrors collects all problems found in one desired-state file so
// the operator sees them in a single run.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	if len(e) == 1 {
		return e[0].Error()
	}
	messages := make([]string, len(e))
	for i, err := range e {
		messages[i] = err.Error()
	}
	return fmt.Sprintf("validation failed with %d errors: %s", len(e), strings.Join(messages, "; "))
}

// Add appends a validation error to the collection.
func (e *ValidationErrors) Add(field, value, message string) {
	*e = append(*e, ValidationError{Field: field, Value: value, Message: message})
}

// HasErrors reports whether any validation error was collected.
func (e ValidationErrors) HasErrors() bool {
	return len(e) > 0
}
