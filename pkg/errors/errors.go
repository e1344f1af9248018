package errors

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// Common sentinel errors for quick checks
var (
	// ErrNoSigner is returned when no account is configured for the selected network.
	ErrNoSigner = errors.New("no signer configured")

	// ErrArtifactNotFound is returned when a contract artifact is missing.
	ErrArtifactNotFound = errors.New("artifact not found")
)

// Error is the base interface for all custom errors in the system.
// It extends the standard error interface with additional context.
type Error interface {
	error
	// Code returns the error code
	Code() string
	// Message returns the human-readable error message
	Message() string
	// Unwrap returns the underlying cause
	Unwrap() error
}

// BaseError provides a foundation for all typed errors.
type BaseError struct {
	code    string
	message string
	cause   error
	stack   []uintptr
}

// Error implements the error interface.
func (e *BaseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Code returns the error code.
func (e *BaseError) Code() string {
	return e.code
}

// Message returns the error message.
func (e *BaseError) Message() string {
	return e.message
}

// Unwrap returns the underlying cause.
func (e *BaseError) Unwrap() error {
	return e.cause
}

// Stack returns the captured stack trace.
func (e *BaseError) Stack() []uintptr {
	return e.stack
}

// captureStack captures the current stack trace.
func captureStack(skip int) []uintptr {
	const maxDepth = 32
	stack := make([]uintptr, maxDepth)
	n := runtime.Callers(skip+2, stack)
	return stack[:n]
}

// StackTrace returns a formatted stack trace string.
func (e *BaseError) StackTrace() string {
	if len(e.stack) == 0 {
		return ""
	}

	var buf strings.Builder
	frames := runtime.CallersFrames(e.stack)
	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.File, "runtime/") {
			fmt.Fprintf(&buf, "%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line)
		}
		if !more {
			break
		}
	}
	return buf.String()
}

// ValidationError represents an input validation error.
type ValidationError struct {
	*BaseError
	Field string
	Value interface{}
}

// NewValidationError creates a new validation error.
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return &ValidationError{
		BaseError: &BaseError{
			code:    CodeValidation,
			message: message,
			stack:   captureStack(1),
		},
		Field: field,
		Value: value,
	}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.message)
	}
	return fmt.Sprintf("validation error: %s", e.message)
}

// EnvironmentError is returned when the execution environment cannot provide
// a usable signer: no accounts configured, an index out of range, or a key
// that does not decode.
type EnvironmentError struct {
	*BaseError
	Network string
}

// NewEnvironmentError creates a new environment error.
func NewEnvironmentError(network, message string, cause error) *EnvironmentError {
	if message == "" {
		message = "no usable signer"
	}
	return &EnvironmentError{
		BaseError: &BaseError{
			code:    CodeEnvironment,
			message: message,
			cause:   cause,
			stack:   captureStack(1),
		},
		Network: network,
	}
}

// Error implements the error interface.
func (e *EnvironmentError) Error() string {
	msg := e.message
	if e.Network != "" {
		msg = fmt.Sprintf("network %q: %s", e.Network, e.message)
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.cause)
	}
	return msg
}

// ArtifactNotFoundError is returned when a named contract artifact was not
// built, or was built but cannot be deployed.
type ArtifactNotFoundError struct {
	*BaseError
	Name   string
	Reason string
}

// NewArtifactNotFoundError creates a new artifact error. An empty reason means
// the artifact does not exist at all.
func NewArtifactNotFoundError(name, reason string) *ArtifactNotFoundError {
	message := fmt.Sprintf("artifact %q not found", name)
	if reason != "" {
		message = fmt.Sprintf("artifact %q cannot be deployed: %s", name, reason)
	}
	return &ArtifactNotFoundError{
		BaseError: &BaseError{
			code:    CodeArtifactNotFound,
			message: message,
			stack:   captureStack(1),
		},
		Name:   name,
		Reason: reason,
	}
}

// Is reports whether target is ErrArtifactNotFound.
func (e *ArtifactNotFoundError) Is(target error) bool {
	return target == ErrArtifactNotFound
}

// NetworkError represents a failure talking to the chain: dialing, a chain ID
// mismatch, submitting the creation transaction or waiting for it.
type NetworkError struct {
	*BaseError
	Op     string
	TxHash string
}

// NewNetworkError creates a new network error for the given operation.
func NewNetworkError(op, message string, cause error) *NetworkError {
	if message == "" {
		message = fmt.Sprintf("%s failed", op)
	}
	return &NetworkError{
		BaseError: &BaseError{
			code:    CodeNetwork,
			message: message,
			cause:   cause,
			stack:   captureStack(1),
		},
		Op: op,
	}
}

// WithTxHash records the hash of a transaction that may still be pending.
func (e *NetworkError) WithTxHash(hash string) *NetworkError {
	e.TxHash = hash
	return e
}

// Error implements the error interface.
func (e *NetworkError) Error() string {
	msg := e.message
	if e.TxHash != "" {
		msg = fmt.Sprintf("%s (tx %s)", msg, e.TxHash)
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.cause)
	}
	return msg
}

// InternalError represents an internal error.
type InternalError struct {
	*BaseError
	Operation string
}

// NewInternalError creates a new internal error.
func NewInternalError(message string, cause error) *InternalError {
	if message == "" {
		message = "internal error"
	}
	return &InternalError{
		BaseError: &BaseError{
			code:    CodeInternal,
			message: message,
			cause:   cause,
			stack:   captureStack(1),
		},
	}
}

// WithOperation sets the operation context.
func (e *InternalError) WithOperation(op string) *InternalError {
	e.Operation = op
	return e
}

// Wrap wraps an error with additional context.
// If the error is already one of our custom types, it preserves the type
// and adds the cause chain. Otherwise, it creates an InternalError.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}

	// If it's already our error type, wrap it
	if e, ok := err.(Error); ok {
		return &BaseError{
			code:    e.Code(),
			message: message,
			cause:   err,
			stack:   captureStack(1),
		}
	}

	// Otherwise create an internal error
	return &InternalError{
		BaseError: &BaseError{
			code:    CodeInternal,
			message: message,
			cause:   err,
			stack:   captureStack(1),
		},
	}
}

// Wrapf wraps an error with a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

// New creates a new error with a message.
func New(message string) error {
	return &BaseError{
		code:    CodeInternal,
		message: message,
		stack:   captureStack(1),
	}
}
