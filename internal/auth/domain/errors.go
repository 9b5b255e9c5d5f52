package domain

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrNotFound is returned by lookups that match nothing.
	ErrNotFound = errors.New("not found")

	ErrDuplicateEmail      = errors.New("email already registered")
	ErrDuplicateUsername   = errors.New("username already taken")
	ErrAmbiguousIdentifier = errors.New("exactly one of id, email or username must be set")

	// ErrUnauthorized is the single outward failure for login, whatever the
	// internal reason.
	ErrUnauthorized = errors.New("invalid credentials")

	// ErrUnauthenticated is the single outward failure for bearer-token
	// authentication.
	ErrUnauthenticated = errors.New("not authorized")

	ErrForbidden  = errors.New("forbidden")
	ErrValidation = errors.New("validation failed")
)

// ValidationError carries per-field messages. errors.Is(err, ErrValidation)
// holds for every ValidationError.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
