package apperrors

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic error.
	ExitErrorTimeout  = 2   // Indicates the operation timed out.
	ExitErrorMismatch = 3   // Indicates a result mismatch between widths.
	ExitErrorConfig   = 4   // Indicates a configuration error.
	ExitErrorParse    = 5   // Indicates the index text was not an unsigned integer.
	ExitErrorRange    = 6   // Indicates the index was outside the collection.
	ExitErrorOverflow = 7   // Indicates a sequence term did not fit its width.
	ExitErrorCanceled = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// Sentinel errors for the three core failure classes. The concrete error
// types below match them through errors.Is.
var (
	ErrParse              = errors.New("parse error")
	ErrIndexOutOfRange    = errors.New("index out of range")
	ErrArithmeticOverflow = errors.New("arithmetic overflow")
)

// ConfigError represents a user configuration error, such as invalid flags or
// values. It indicates that the application cannot proceed due to incorrect user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// ParseError reports that a raw index could not be read as a non-negative
// integer literal.
type ParseError struct {
	// Input is the text as received, before trimming.
	Input string
	// Cause is the strconv error, if any.
	Cause error
}

// Error returns a formatted message describing the parse failure.
func (e ParseError) Error() string {
	return fmt.Sprintf("index %q is not a valid non-negative integer", strings.TrimSpace(e.Input))
}

// Unwrap returns the underlying strconv error.
func (e ParseError) Unwrap() error { return e.Cause }

// Is reports whether target is ErrParse.
func (e ParseError) Is(target error) bool { return target == ErrParse }

// IndexOutOfRangeError reports an index outside [0, Length).
type IndexOutOfRangeError struct {
	Index  uint64
	Length int
}

// Error returns a formatted message describing the range failure.
func (e IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("index %d out of range for collection of length %d", e.Index, e.Length)
}

// Is reports whether target is ErrIndexOutOfRange.
func (e IndexOutOfRangeError) Is(target error) bool { return target == ErrIndexOutOfRange }

// OverflowError reports a sequence term that cannot be represented in the
// selected integer width.
type OverflowError struct {
	// Width is the display name of the integer width (e.g. "u32").
	Width string
	// Step is the zero-based position of the term in the seeded sequence.
	Step uint64
}

// Error returns a formatted message describing the overflow.
func (e OverflowError) Error() string {
	return fmt.Sprintf("term %d overflows %s", e.Step, e.Width)
}

// Is reports whether target is ErrArithmeticOverflow.
func (e OverflowError) Is(target error) bool { return target == ErrArithmeticOverflow }

// TimeoutError represents an operation timeout. It captures the operation
// name and the duration limit that was exceeded.
type TimeoutError struct {
	// Operation is the name of the operation that timed out.
	Operation string
	// Limit is the duration after which the operation was considered timed out.
	Limit time.Duration
}

// Error returns a formatted message describing the timeout.
func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// ValidationError represents an input validation failure. It identifies which
// field failed validation and provides a human-readable explanation.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// This allows the wrapped error to be unwrapped with errors.Unwrap() and
// checked with errors.Is() and errors.As().
//
// Returns nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ExitCodeFor maps an error to the process exit code that reports it.
func ExitCodeFor(err error) int {
	var configErr ConfigError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, context.DeadlineExceeded):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	case errors.Is(err, ErrParse):
		return ExitErrorParse
	case errors.Is(err, ErrIndexOutOfRange):
		return ExitErrorRange
	case errors.Is(err, ErrArithmeticOverflow):
		return ExitErrorOverflow
	case errors.As(err, &configErr):
		return ExitErrorConfig
	}
	var timeoutErr TimeoutError
	if errors.As(err, &timeoutErr) {
		return ExitErrorTimeout
	}
	return ExitErrorGeneric
}
