package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Template errors
	ErrTemplateNotFound ErrorCode = "TEMPLATE_NOT_FOUND"
	ErrTemplateSyntax   ErrorCode = "TEMPLATE_SYNTAX"
	ErrTemplateParse    ErrorCode = "TEMPLATE_PARSE"
	ErrVariableMissing  ErrorCode = "VARIABLE_MISSING"
	ErrSchemaInvalid    ErrorCode = "SCHEMA_INVALID"

	// Catalog errors
	ErrNotInitialized ErrorCode = "NOT_INITIALIZED"
	ErrDiscovery      ErrorCode = "DISCOVERY"

	// FileSystem errors
	ErrFileNotFound ErrorCode = "FILE_NOT_FOUND"
	ErrFileAccess   ErrorCode = "FILE_ACCESS"
	ErrFileWrite    ErrorCode = "FILE_WRITE"
)

// StampError represents a structured error with code and details
type StampError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *StampError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *StampError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *StampError) Is(target error) bool {
	var targetErr *StampError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new StampError with the given code and message
func New(code ErrorCode, message string) *StampError {
	return &StampError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new StampError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *StampError {
	return &StampError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a StampError
func Wrap(err error, code ErrorCode, message string) *StampError {
	if err == nil {
		return nil
	}
	return &StampError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *StampError {
	if err == nil {
		return nil
	}
	return &StampError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *StampError) WithDetail(key string, value interface{}) *StampError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var stampErr *StampError
	if errors.As(err, &stampErr) {
		return stampErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a StampError
func GetErrorCode(err error) ErrorCode {
	var stampErr *StampError
	if errors.As(err, &stampErr) {
		return stampErr.Code
	}
	return ErrUnknown
}
