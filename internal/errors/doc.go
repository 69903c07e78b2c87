// Package apperrors defines structured application error types,
// allowing for a clear distinction between error classes (configuration,
// input parsing, index validation, arithmetic overflow) and for carrying
// the underlying cause.
//
// Error Wrapping Guidelines:
// This package follows Go's error wrapping conventions using fmt.Errorf with %w.
// Error types implement Unwrap() or Is() so that errors.Is() and errors.As()
// find both the concrete type and the matching sentinel.
package apperrors
