package model

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by every calculation package.
// Callers classify failures with errors.Is.
var (
	// ErrValidation marks malformed or out-of-range input (caller's fault).
	ErrValidation = errors.New("validation failed")
	// ErrNotFound marks a key missing from a static lookup table.
	ErrNotFound = errors.New("not found")
	// ErrConfiguration marks a required static table that is absent or empty.
	ErrConfiguration = errors.New("invalid configuration")
)

// NotFoundError reports the exact table key that was missing.
type NotFoundError struct {
	Table string
	Key   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %s %q", ErrNotFound, e.Table, e.Key)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// NewNotFound builds a NotFoundError for table/key.
func NewNotFound(table, key string) error {
	return &NotFoundError{Table: table, Key: key}
}

// Validationf wraps ErrValidation with a formatted message.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// Configurationf wraps ErrConfiguration with a formatted message.
func Configurationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, fmt.Sprintf(format, args...))
}
