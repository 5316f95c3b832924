// Package errors provides structured error types for gentree.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and library entry points
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// The layout core surfaces four caller-visible failure kinds:
//
//   - ANCHOR_NOT_FOUND: a named anchor vertex cannot be resolved; the run is
//     aborted before traversal starts
//   - NON_FOREST_INPUT: a vertex has more than one eligible earlier-time
//     neighbour; traversal of that root is aborted, other roots proceed
//   - DEGENERATE_GEOMETRY: a zero-length vector was met during normalization;
//     classifiers recover with label ordering and the code is reported as a
//     warning (ordering.GeometryError, pipeline.LayoutOutput.Warning)
//   - SINK_FAILURE: the sink rejected a draw call; propagated immediately
//
// The remaining codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - *_NOT_FOUND: Resource not found
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeAnchorNotFound, "no vertex labelled %q", label)
//	if errors.Is(err, errors.ErrCodeAnchorNotFound) {
//	    // Ask for another label
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeSinkFailure, origErr, "add node %s", id)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Layout core errors
	ErrCodeAnchorNotFound      Code = "ANCHOR_NOT_FOUND"
	ErrCodeNonForestInput      Code = "NON_FOREST_INPUT"
	ErrCodeDegenerateGeometry  Code = "DEGENERATE_GEOMETRY"
	ErrCodeSinkFailure         Code = "SINK_FAILURE"
	ErrCodeInvalidInput        Code = "INVALID_INPUT"
	ErrCodeInvalidConfig       Code = "INVALID_CONFIG"
	ErrCodeInvalidFormat       Code = "INVALID_FORMAT"
	ErrCodeInvalidStrategy     Code = "INVALID_STRATEGY"
	ErrCodeInvalidVertexID     Code = "INVALID_VERTEX_ID"
	ErrCodeFileNotFound        Code = "FILE_NOT_FOUND"
	ErrCodeVertexNotFound      Code = "VERTEX_NOT_FOUND"
	ErrCodeRendererUnavailable Code = "RENDERER_UNAVAILABLE"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err, or any error it wraps, has the given code.
// Every branch of errors produced by errors.Join is searched.
func Is(err error, code Code) bool {
	for err != nil {
		if e, ok := err.(*Error); ok && e.Code == code {
			return true
		}
		switch u := err.(type) {
		case interface{ Unwrap() []error }:
			for _, inner := range u.Unwrap() {
				if Is(inner, code) {
					return true
				}
			}
			return false
		case interface{ Unwrap() error }:
			err = u.Unwrap()
		default:
			return false
		}
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
