package domain

import (
	"errors"
	"fmt"
)

// ErrorKind represents the failure domain of an error.
type ErrorKind string

const (
	// ErrorKindConfig indicates required configuration is missing or invalid.
	ErrorKindConfig ErrorKind = "config"

	// ErrorKindCredential indicates every credential-resolution strategy failed.
	ErrorKindCredential ErrorKind = "credential"

	// ErrorKindProvider indicates the completion-provider call failed.
	ErrorKindProvider ErrorKind = "provider"

	// ErrorKindStore indicates the spreadsheet open or append failed.
	ErrorKindStore ErrorKind = "store"
)

// Error is the canonical error carried across the bot's failure domains.
// The handler decides per path whether an Error is surfaced (debug probe)
// or logged and swallowed (normal webhook flow).
type Error struct {
	// Kind is the failure domain.
	Kind ErrorKind

	// Message is the human-readable description.
	Message string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the underlying cause to errors.Is/errors.As chains.
func (e *Error) Unwrap() error {
	return e.Err
}

// WithCause attaches an underlying cause to the error.
func (e *Error) WithCause(err error) *Error {
	e.Err = err
	return e
}

// NewError creates a new error of the given kind.
func NewError(kind ErrorKind, message string) *Error {
	return &Error{
		Kind:    kind,
		Message: message,
	}
}

// Convenience constructors for the four failure domains

// ErrConfig creates a configuration error.
func ErrConfig(message string) *Error {
	return NewError(ErrorKindConfig, message)
}

// ErrCredential creates a credential-resolution error.
func ErrCredential(message string) *Error {
	return NewError(ErrorKindCredential, message)
}

// ErrProvider creates a completion-provider error.
func ErrProvider(message string) *Error {
	return NewError(ErrorKindProvider, message)
}

// ErrStore creates a spreadsheet-store error.
func ErrStore(message string) *Error {
	return NewError(ErrorKindStore, message)
}

// KindOf returns the kind of the outermost domain error in err's chain, or
// the empty string when err carries no domain error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
