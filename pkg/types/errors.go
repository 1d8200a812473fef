package types

import (
	"errors"
	"fmt"
)

// ErrorType classifies every outcome of an API call
type ErrorType string

const (
	ErrorTypeNetwork      ErrorType = "network"
	ErrorTypeUnauthorized ErrorType = "unauthorized"
	ErrorTypeForbidden    ErrorType = "forbidden"
	ErrorTypeValidation   ErrorType = "validation"
	ErrorTypeNotFound     ErrorType = "not_found"
	ErrorTypeServer       ErrorType = "server"
	ErrorTypeUnexpected   ErrorType = "unexpected"
	ErrorTypeAuth         ErrorType = "authentication"
)

// ConsoleError represents a structured error in the console
type ConsoleError struct {
	Type    ErrorType `json:"type"`
	Code    string    `json:"code"`
	Message string    `json:"message"`
	Status  int       `json:"status,omitempty"`
	Cause   error     `json:"-"`
}

// Error implements the error interface
func (e *ConsoleError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error
func (e *ConsoleError) Unwrap() error {
	return e.Cause
}

// NewNetworkError creates a transport-level failure error
func NewNetworkError(message string, cause error) *ConsoleError {
	return &ConsoleError{
		Type:    ErrorTypeNetwork,
		Code:    ErrCodeNetwork,
		Message: message,
		Cause:   cause,
	}
}

// NewUnauthorizedError creates an invalid-session error
func NewUnauthorizedError(message string) *ConsoleError {
	return &ConsoleError{
		Type:    ErrorTypeUnauthorized,
		Code:    ErrCodeUnauthorized,
		Message: message,
		Status:  401,
	}
}

// NewForbiddenError creates an insufficient-role error
func NewForbiddenError(message string) *ConsoleError {
	return &ConsoleError{
		Type:    ErrorTypeForbidden,
		Code:    ErrCodeForbidden,
		Message: message,
		Status:  403,
	}
}

// NewValidationError creates a bad-input error
func NewValidationError(message string) *ConsoleError {
	return &ConsoleError{
		Type:    ErrorTypeValidation,
		Code:    ErrCodeValidationFailed,
		Message: message,
		Status:  400,
	}
}

// NewNotFoundError creates a missing-resource error
func NewNotFoundError(message string) *ConsoleError {
	return &ConsoleError{
		Type:    ErrorTypeNotFound,
		Code:    ErrCodeNotFound,
		Message: message,
		Status:  404,
	}
}

// NewServerError creates a 5xx error
func NewServerError(message string, status int) *ConsoleError {
	return &ConsoleError{
		Type:    ErrorTypeServer,
		Code:    ErrCodeServerError,
		Message: message,
		Status:  status,
	}
}

// NewUnexpectedError creates an error for any response the client
// cannot classify, including malformed JSON bodies
func NewUnexpectedError(message string, status int) *ConsoleError {
	return &ConsoleError{
		Type:    ErrorTypeUnexpected,
		Code:    ErrCodeUnexpected,
		Message: message,
		Status:  status,
	}
}

// NewAuthError creates a login failure error
func NewAuthError(code, message string) *ConsoleError {
	return &ConsoleError{
		Type:    ErrorTypeAuth,
		Code:    code,
		Message: message,
	}
}

// ErrorTypeOf extracts the classification of an error; unexpected
// when the error did not come from the gateway
func ErrorTypeOf(err error) ErrorType {
	var ce *ConsoleError
	if errors.As(err, &ce) {
		return ce.Type
	}
	return ErrorTypeUnexpected
}

// IsUnauthorized reports whether the error means the session is invalid
func IsUnauthorized(err error) bool {
	return ErrorTypeOf(err) == ErrorTypeUnauthorized
}

// IsNetwork reports whether the error is a transport failure
func IsNetwork(err error) bool {
	return ErrorTypeOf(err) == ErrorTypeNetwork
}

// Common error codes
const (
	ErrCodeNetwork            = "NETWORK_ERROR"
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeValidationFailed   = "VALIDATION_FAILED"
	ErrCodeServerError        = "SERVER_ERROR"
	ErrCodeUnexpected         = "UNEXPECTED_RESPONSE"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeInactiveAccount    = "INACTIVE_ACCOUNT"
)
