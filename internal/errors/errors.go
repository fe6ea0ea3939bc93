package apperrors

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess         = 0   // Indicates successful execution.
	ExitErrorGeneric    = 1   // Indicates a generic error.
	ExitErrorTimeout    = 2   // Indicates the operation timed out.
	ExitErrorValidation = 3   // Indicates the request was rejected before submission.
	ExitErrorConfig     = 4   // Indicates a configuration error.
	ExitErrorCanceled   = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

var (
	// ErrInFlight is returned when a submission is attempted while another
	// generation is still running on the same orchestrator.
	ErrInFlight = errors.New("a generation is already in progress")

	// ErrNotTerminal is returned when acknowledging an orchestrator that is
	// still running.
	ErrNotTerminal = errors.New("generation has not reached a terminal state")

	// ErrNothingSubmitted is returned when waiting on an orchestrator that
	// has never started a cycle.
	ErrNothingSubmitted = errors.New("no generation has been submitted")
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
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// ValidationError represents an input validation failure. It identifies which
// field failed validation and provides a human-readable explanation.
// A ValidationError never reaches the network.
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

// NetworkError represents a transport failure where no response was obtained
// (DNS, connection refused, reset, canceled context).
type NetworkError struct {
	// Op names the remote operation, e.g. "generate" or "download".
	Op string
	// Cause is the underlying client error.
	Cause error
}

// Error returns a formatted message describing the network failure.
func (e NetworkError) Error() string {
	return fmt.Sprintf("%s: request failed: %v", e.Op, e.Cause)
}

// Unwrap returns the underlying client error.
func (e NetworkError) Unwrap() error { return e.Cause }

// ProtocolError represents a response that was received but signals failure,
// either through a non-success HTTP status or a success=false payload.
type ProtocolError struct {
	// Status is the HTTP status code. It is 2xx for success=false payloads.
	Status int
	// Message is the service-provided message, or a derived fallback.
	Message string
}

// Error returns a formatted message describing the protocol failure.
func (e ProtocolError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("service error (HTTP %d)", e.Status)
	}
	return fmt.Sprintf("service error (HTTP %d): %s", e.Status, e.Message)
}

// DecodeError represents a malformed response body.
type DecodeError struct {
	// Cause is the underlying decoder error.
	Cause error
}

// Error returns a formatted message describing the decode failure.
func (e DecodeError) Error() string {
	return fmt.Sprintf("malformed response: %v", e.Cause)
}

// Unwrap returns the underlying decoder error.
func (e DecodeError) Unwrap() error { return e.Cause }

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// It returns nil if err is nil.
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

// IsTransportError reports whether err belongs to the transport taxonomy
// (network, protocol or decode failure).
func IsTransportError(err error) bool {
	var (
		netErr   NetworkError
		protoErr ProtocolError
		decErr   DecodeError
	)
	return errors.As(err, &netErr) || errors.As(err, &protoErr) || errors.As(err, &decErr)
}

// Messages holds the localized generic fallbacks used by UserMessage.
type Messages struct {
	// Network is shown when no response was obtained.
	Network string
	// Generic is shown for protocol failures without a service message.
	Generic string
	// Decode is shown for malformed response bodies.
	Decode string
}

// UserMessage derives the human-readable message presented for a failed
// submission. Protocol messages supplied by the service are surfaced
// verbatim; every other class maps to a generic message so raw client or
// parser errors never reach the user.
func UserMessage(err error, msgs Messages) string {
	if err == nil {
		return ""
	}

	var protoErr ProtocolError
	if errors.As(err, &protoErr) {
		if msg := strings.TrimSpace(protoErr.Message); msg != "" {
			return msg
		}
		return msgs.Generic
	}

	var validationErr ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Message
	}

	var decErr DecodeError
	if errors.As(err, &decErr) {
		return msgs.Decode
	}

	return msgs.Network
}

// ExitCode maps an error to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	switch {
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return ExitErrorTimeout
	}

	var configErr ConfigError
	if errors.As(err, &configErr) {
		return ExitErrorConfig
	}
	var validationErr ValidationError
	if errors.As(err, &validationErr) {
		return ExitErrorValidation
	}
	return ExitErrorGeneric
}
