// Package errors provides a lightweight structured error type (RefgenError)
// for category-based classification and exit code selection in the CLI.
package errors

import (
	stdErrors "errors"
	"fmt"
)

// ErrorCategory represents the category of a refgen error for classification
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig ErrorCategory = "config"
	CategoryInput  ErrorCategory = "input"

	// Rendering and output errors
	CategoryTemplate   ErrorCategory = "template"
	CategoryFileSystem ErrorCategory = "filesystem"
	CategoryDrift      ErrorCategory = "drift"
	CategoryLint       ErrorCategory = "lint"

	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution
	SeverityError   ErrorSeverity = "error"   // Error, but not fatal
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
)

// RefgenError is a structured error with category, severity and context
type RefgenError struct {
	Category ErrorCategory `json:"category"`
	Severity ErrorSeverity `json:"severity"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	Context  ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for RefgenError
type ContextFields map[string]any

// Error implements the error interface
func (e *RefgenError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling
func (e *RefgenError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *RefgenError) WithContext(key string, value any) *RefgenError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new RefgenError
func New(category ErrorCategory, severity ErrorSeverity, message string) *RefgenError {
	return &RefgenError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new RefgenError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *RefgenError {
	return &RefgenError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}

// IsCategory checks if an error, or any error it wraps, belongs to a specific category
func IsCategory(err error, category ErrorCategory) bool {
	var rge *RefgenError
	if stdErrors.As(err, &rge) {
		return rge.Category == category
	}
	return false
}

// GetCategory extracts the category from an error, or returns CategoryInternal if not a RefgenError
func GetCategory(err error) ErrorCategory {
	var rge *RefgenError
	if stdErrors.As(err, &rge) {
		return rge.Category
	}
	return CategoryInternal
}

// As is errors.As re-exported so callers do not need both packages.
func As(err error, target any) bool {
	return stdErrors.As(err, target)
}

// Is is errors.Is re-exported so callers do not need both packages.
func Is(err, target error) bool {
	return stdErrors.Is(err, target)
}
