// Package errors defines the error categories shared by every domain package.
//
// Domain errors wrap one of the sentinels below; the HTTP layer and the CLI
// classify failures with Code instead of matching domain errors one by one.
package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested clip or record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates the request contradicts stored state.
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput indicates the input data is invalid or fails validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates a password that does not verify.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrLocked indicates unlocking is refused after too many failed attempts.
	ErrLocked = errors.New("locked")

	// ErrUnavailable indicates storage or the keystore cannot serve the request right now.
	ErrUnavailable = errors.New("unavailable")
)

// Error codes returned by Code.
const (
	CodeNotFound     = "not_found"
	CodeConflict     = "conflict"
	CodeInvalidInput = "invalid_input"
	CodeUnauthorized = "unauthorized"
	CodeLocked       = "locked"
	CodeUnavailable  = "unavailable"
	CodeInternal     = "internal_error"
)

var codes = []struct {
	sentinel error
	code     string
}{
	{ErrNotFound, CodeNotFound},
	{ErrConflict, CodeConflict},
	{ErrInvalidInput, CodeInvalidInput},
	{ErrUnauthorized, CodeUnauthorized},
	{ErrLocked, CodeLocked},
	{ErrUnavailable, CodeUnavailable},
}

// Code returns the category of err, CodeInternal for errors outside every
// category and "" for nil.
func Code(err error) string {
	if err == nil {
		return ""
	}
	for _, c := range codes {
		if errors.Is(err, c.sentinel) {
			return c.code
		}
	}
	return CodeInternal
}

// New creates a new error with the given message.
func New(message string) error {
	return errors.New(message)
}

// Wrap prefixes err with message and keeps it in the chain. Wrap(nil, ...) is nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf is Wrap with a formatted message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}
