// Package errors provides error handling utilities.
package errors

import (
	"fmt"
)

// Type identifies the category of error
type Type string

const (
	// TypeUnknownFormat indicates a format token that is not in the catalog
	TypeUnknownFormat Type = "UNKNOWN_FORMAT"

	// TypeInfeasibleFormat indicates a trim size larger than the usable sheet area
	TypeInfeasibleFormat Type = "INFEASIBLE_FORMAT"

	// TypePaperNotFound indicates a paper type absent from the stock catalog
	TypePaperNotFound Type = "PAPER_TYPE_NOT_FOUND"

	// TypeDensityNotAvailable indicates a density absent for a known paper type
	TypeDensityNotAvailable Type = "DENSITY_NOT_AVAILABLE"

	// TypeEmptyLines indicates a priced response with no material or service lines
	TypeEmptyLines Type = "EMPTY_MATERIALS_OR_SERVICES"

	// TypeNonPositivePrice indicates a computed or remote total <= 0
	TypeNonPositivePrice Type = "NON_POSITIVE_PRICE"

	// TypeValidation indicates field-level validation errors exist
	TypeValidation Type = "VALIDATION_FAILED"

	// TypeRemote indicates a network failure talking to the pricing service
	TypeRemote Type = "REMOTE_UNAVAILABLE"

	// TypeConfig indicates a configuration error
	TypeConfig Type = "CONFIG_ERROR"

	// TypeParsing indicates a parsing error
	TypeParsing Type = "PARSING_ERROR"

	// TypeInternal indicates an internal error
	TypeInternal Type = "INTERNAL_ERROR"
)

// Error represents a domain error with context
type Error struct {
	Type    Type                   `json:"type"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is checks if the error is of a specific type
func (e *Error) Is(t Type) bool {
	return e.Type == t
}

// WithContext adds context to the error
func (e *Error) WithContext(key string, value interface{}) *Error {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// New creates a new error
func New(errType Type, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
	}
}

// Newf creates a new formatted error
func Newf(errType Type, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with context
func Wrap(errType Type, message string, cause error) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// Wrapf wraps an error with formatted context
func Wrapf(errType Type, cause error, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// IsType checks if an error is of a specific type
func IsType(err error, t Type) bool {
	if e, ok := err.(*Error); ok {
		return e.Type == t
	}
	return false
}

// TypeOf returns the error type, or TypeInternal for foreign errors
func TypeOf(err error) Type {
	if e, ok := err.(*Error); ok {
		return e.Type
	}
	return TypeInternal
}

// UnknownFormat creates an unknown format error
func UnknownFormat(token string) *Error {
	return Newf(TypeUnknownFormat, "unknown format: %q", token)
}

// InfeasibleFormat creates an infeasible format error
func InfeasibleFormat(width, height, sheetWidth, sheetHeight float64) *Error {
	return Newf(TypeInfeasibleFormat,
		"trim size %.0fx%.0fmm does not fit working area %.0fx%.0fmm",
		width, height, sheetWidth, sheetHeight)
}

// PaperNotFound creates a paper type lookup error
func PaperNotFound(paperType string) *Error {
	return Newf(TypePaperNotFound, "paper type not found: %q", paperType)
}

// DensityNotAvailable creates a density lookup error
func DensityNotAvailable(paperType string, density int) *Error {
	return Newf(TypeDensityNotAvailable, "density %dg/m2 not available for paper type %q", density, paperType)
}

// Validation creates a validation error
func Validation(message string) *Error {
	return New(TypeValidation, message)
}

// Remote creates a remote pricing service error
func Remote(message string, cause error) *Error {
	return Wrap(TypeRemote, message, cause)
}

// Config creates a configuration error
func Config(message string) *Error {
	return New(TypeConfig, message)
}

// Parsing creates a parsing error
func Parsing(message string, cause error) *Error {
	return Wrap(TypeParsing, message, cause)
}

// Internal creates an internal error
func Internal(message string, cause error) *Error {
	return Wrap(TypeInternal, message, cause)
}
