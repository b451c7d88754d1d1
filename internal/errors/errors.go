package errors

import (
	"errors"
	"fmt"
)

// Standard application errors
var (
	ErrEmptyInput     = errors.New("input is empty or contains only whitespace")
	ErrTrailingData   = errors.New("non-whitespace content after the JSON value")
	ErrNestingTooDeep = errors.New("nesting too deep")
	ErrNoInput        = errors.New("no input provided: please specify a file with -i or pipe JSON data to stdin")
	ErrFileNotFound   = errors.New("file not found")
	ErrInvalidTier    = errors.New("unknown codec tier")
)

// ErrorType categorizes errors
type ErrorType string

const (
	// ErrorTypeMalformed covers grammar violations and trailing
	// content found while decoding or formatting JSON text.
	ErrorTypeMalformed ErrorType = "malformed"
	// ErrorTypeUnsupported means no encoder tier recognized the value.
	ErrorTypeUnsupported ErrorType = "unsupported"
	// ErrorTypeCasting means a decoded shape did not fit the target
	// type's field list.
	ErrorTypeCasting ErrorType = "casting"
	// ErrorTypeInput and ErrorTypeOutput cover I/O around the codec.
	ErrorTypeInput   ErrorType = "input"
	ErrorTypeOutput  ErrorType = "output"
	ErrorTypeUnknown ErrorType = "unknown"
)

// AppError is an application-specific error with context
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for comparison
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// NewMalformedError creates a new error for invalid JSON text.
// No position is attached; the error names only the failing
// production.
func NewMalformedError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeMalformed,
		Message: message,
		Err:     err,
	}
}

// NewUnsupportedError creates a new error for an unencodable value.
func NewUnsupportedError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeUnsupported,
		Message: message,
		Err:     err,
	}
}

// NewCastingError creates a new error for a failed target-type cast.
func NewCastingError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeCasting,
		Message: message,
		Err:     err,
	}
}

// NewInputError creates a new error related to reading input.
func NewInputError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeInput,
		Message: message,
		Err:     err,
	}
}

// NewOutputError creates a new error related to writing output.
func NewOutputError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeOutput,
		Message: message,
		Err:     err,
	}
}

// IsMalformed reports whether err is a malformed-input error.
func IsMalformed(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == ErrorTypeMalformed
}

// IsUnsupported reports whether err is an unsupported-type error.
func IsUnsupported(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == ErrorTypeUnsupported
}

// IsCasting reports whether err is a casting error.
func IsCasting(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == ErrorTypeCasting
}

// UserFriendlyError returns a user-friendly error message
func UserFriendlyError(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case ErrorTypeMalformed:
			return fmt.Sprintf("JSON error: %s", appErr.Message)
		case ErrorTypeUnsupported:
			return fmt.Sprintf("Encoding error: %s", appErr.Message)
		case ErrorTypeCasting:
			return fmt.Sprintf("Casting error: %s", appErr.Message)
		case ErrorTypeInput:
			return fmt.Sprintf("Input error: %s", appErr.Message)
		case ErrorTypeOutput:
			return fmt.Sprintf("Output error: %s", appErr.Message)
		default:
			return fmt.Sprintf("Error: %s", appErr.Message)
		}
	}

	if errors.Is(err, ErrEmptyInput) {
		return "Error: The input is empty. Please provide valid JSON data."
	}
	if errors.Is(err, ErrTrailingData) {
		return "Error: Extra content found after the JSON value."
	}
	if errors.Is(err, ErrNestingTooDeep) {
		return "Error: The JSON document is nested too deeply."
	}
	if errors.Is(err, ErrNoInput) {
		return "Error: No input provided. Please specify a file with -i or pipe JSON data to stdin."
	}
	if errors.Is(err, ErrFileNotFound) {
		return "Error: The specified file could not be found. Please check the file path."
	}

	return fmt.Sprintf("Error: %v", err)
}
