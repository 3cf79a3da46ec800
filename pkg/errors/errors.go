package errors

import (
	"errors"
	"fmt"
)

// Common application errors with proper types for error handling

var (
	// ErrNotFound indicates a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates invalid input data
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedMedia indicates an upload of a content type we do not accept
	ErrUnsupportedMedia = errors.New("unsupported media type")

	// ErrUnavailable indicates a dependency (upstream API, storage) could not serve the call
	ErrUnavailable = errors.New("service unavailable")

	// ErrInternal indicates an internal server error
	ErrInternal = errors.New("internal error")
)

// NotFoundError creates a not found error with context
func NotFoundError(resource string) error {
	return fmt.Errorf("%s %w", resource, ErrNotFound)
}

// InvalidInputError creates an invalid input error with context
func InvalidInputError(field, reason string) error {
	return fmt.Errorf("%s: %s: %w", field, reason, ErrInvalidInput)
}

// UnsupportedMediaError reports a rejected content type
func UnsupportedMediaError(contentType string) error {
	return fmt.Errorf("content type %q: %w", contentType, ErrUnsupportedMedia)
}

// UnavailableError wraps a dependency failure
func UnavailableError(dependency string, err error) error {
	return fmt.Errorf("%s: %w: %w", dependency, ErrUnavailable, err)
}

// InternalError creates an internal error with context
func InternalError(msg string) error {
	return fmt.Errorf("%s: %w", msg, ErrInternal)
}

// Is checks if an error matches a target error (works with wrapped errors)
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return errors.As(err, target)
}
