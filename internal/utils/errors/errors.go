// Package errors provides enhanced error handling for the irrigo backend,
// carrying an error code and optional metadata alongside the wrapped cause.
package errors

import (
	"errors"
	"fmt"
	"strings"

	errorConstants "github.com/chrisharrington/irrigo/pkg/constants"
)

// customError implements enhanced error handling with a stable code and
// optional structured metadata.
type customError struct {
	originalError error
	code          string
	metadata      map[string]interface{}
}

// Error implements the error interface with formatted output.
func (e *customError) Error() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("[%s] %v", e.code, e.originalError))
	if len(e.metadata) > 0 {
		b.WriteString(fmt.Sprintf(" metadata=%+v", e.metadata))
	}
	return b.String()
}

// Unwrap implements error unwrapping while preserving context.
func (e *customError) Unwrap() error {
	return e.originalError
}

// Code returns the error's stable code, or ErrInternalServer if err does not
// carry one.
func Code(err error) string {
	var ce *customError
	if errors.As(err, &ce) {
		return ce.code
	}
	return errorConstants.ErrInternalServer
}

// NewError creates a new error with a standardized code prefix.
func NewError(code string, message string) error {
	if code == "" || message == "" {
		return errors.New("[INTERNAL_SERVER_ERROR] error code and message are required")
	}
	if !errorConstants.IsValidCode(code) {
		code = errorConstants.ErrInternalServer
	}
	return &customError{originalError: errors.New(message), code: code}
}

// NewErrorWithMetadata is NewError plus structured metadata, used by
// handlers that need to surface field-level validation context.
func NewErrorWithMetadata(code string, message string, metadata map[string]interface{}) error {
	err := NewError(code, message)
	ce := err.(*customError)
	ce.metadata = metadata
	return ce
}

// WrapError wraps an existing error with additional context, preserving its
// original code if present.
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	code := errorConstants.ErrInternalServer
	var ce *customError
	if errors.As(err, &ce) {
		code = ce.code
	}
	return &customError{
		originalError: fmt.Errorf("%s: %w", message, err),
		code:          code,
	}
}
