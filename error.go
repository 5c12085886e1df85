package linksum

import (
	"errors"
	"fmt"
)

// Application error codes.
//
// These are meant to be wire-agnostic: boundaries (chat adapters, CLI) map
// them to user-facing behavior, while internal layers branch on them to
// decide whether to escalate, retry, or give up.
const (
	EINVALID       = "invalid"       // malformed URL or invalid input
	EDENIED        = "denied"        // rejected by allow/deny policy
	EUNRECOVERABLE = "unrecoverable" // share-card URL could not be recovered
	EUNAVAILABLE   = "unavailable"   // network failure (timeout, connection, status)
	EBLOCKED       = "blocked"       // platform requires login or verification
	EEMPTY         = "empty"         // all extraction tiers exhausted with no text
	ERENDER        = "render"        // headless engine error or timeout
	EINTERNAL      = "internal"      // unexpected internal error
)

// Error represents an application-specific error. Errors can be unwrapped to
// inspect the underlying cause while keeping the code stable across layers.
type Error struct {
	// Machine-readable error code.
	Code string

	// Human-readable message.
	Message string

	// Wrapped error, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("linksum error: code=%s message=%s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("linksum error: code=%s message=%s", e.Code, e.Message)
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	return e.Err
}

// ErrorCode returns the code of the root error, if available.
// Returns EINTERNAL for non-application errors and "" for nil.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage returns the message of the root error, if available.
// Non-application errors return a generic message so internal details
// never leak to users.
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// Errorf is a helper to construct an Error with a formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// WrapError wraps err with an application code and message.
func WrapError(err error, code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}
