// Package errors provides structured error types for the Priceboard system.
// All errors include a category, code, message, and retryable flag for
// consistent error handling across components.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCategory classifies errors by system component.
type ErrorCategory string

const (
	ErrCategoryValidation ErrorCategory = "VALIDATION"
	ErrCategoryDataset    ErrorCategory = "DATASET"
	ErrCategoryStorage    ErrorCategory = "STORAGE"
	ErrCategoryQuery      ErrorCategory = "QUERY"
	ErrCategoryInternal   ErrorCategory = "INTERNAL"
)

// Error codes for each category.
const (
	// Validation codes
	CodeInvalidFilter = "INVALID_FILTER"
	CodeInvalidConfig = "INVALID_CONFIG"

	// Dataset codes
	CodeSourceMissing  = "SOURCE_MISSING"
	CodeSchemaMismatch = "SCHEMA_MISMATCH"
	CodeMalformedRow   = "MALFORMED_ROW"

	// Storage codes
	CodeDownloadFailed = "DOWNLOAD_FAILED"
	CodeObjectNotFound = "OBJECT_NOT_FOUND"

	// Query codes
	CodeUnknownColumn = "UNKNOWN_COLUMN"

	// Internal codes
	CodeUnexpected = "UNEXPECTED"
)

// PriceboardError is the structured error type used throughout the system.
type PriceboardError struct {
	Category  ErrorCategory
	Code      string
	Message   string
	Details   map[string]interface{}
	Cause     error
	Retryable bool
}

// Error returns a formatted error string.
func (e *PriceboardError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s:%s] %s: %v", e.Category, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Category, e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *PriceboardError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches this error's category and code.
func (e *PriceboardError) Is(target error) bool {
	var t *PriceboardError
	if errors.As(target, &t) {
		return e.Category == t.Category && e.Code == t.Code
	}
	return false
}

// New creates a new PriceboardError.
func New(category ErrorCategory, code, message string) *PriceboardError {
	return &PriceboardError{
		Category:  category,
		Code:      code,
		Message:   message,
		Retryable: isRetryable(category, code),
	}
}

// Wrap creates a new PriceboardError wrapping an existing error.
func Wrap(category ErrorCategory, code, message string, cause error) *PriceboardError {
	return &PriceboardError{
		Category:  category,
		Code:      code,
		Message:   message,
		Cause:     cause,
		Retryable: isRetryable(category, code),
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *PriceboardError) WithDetails(details map[string]interface{}) *PriceboardError {
	cp := *e
	cp.Details = details
	return &cp
}

// IsRetryable checks whether an error (or its chain) is retryable.
func IsRetryable(err error) bool {
	var pe *PriceboardError
	if errors.As(err, &pe) {
		return pe.Retryable
	}
	return false
}

// GetCategory extracts the error category from an error chain.
// Returns empty string if the error is not a PriceboardError.
func GetCategory(err error) ErrorCategory {
	var pe *PriceboardError
	if errors.As(err, &pe) {
		return pe.Category
	}
	return ""
}

// GetCode extracts the error code from an error chain.
// Returns empty string if the error is not a PriceboardError.
func GetCode(err error) string {
	var pe *PriceboardError
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ""
}

// isRetryable determines if an error code is retryable. Only transient
// storage fetches qualify; a dataset or filter failure is final for the
// render cycle that produced it.
func isRetryable(category ErrorCategory, code string) bool {
	return category == ErrCategoryStorage && code == CodeDownloadFailed
}

// Convenience constructors for common errors.

func NewValidationError(code, message string) *PriceboardError {
	return New(ErrCategoryValidation, code, message)
}

func NewDatasetError(code, message string, cause error) *PriceboardError {
	return Wrap(ErrCategoryDataset, code, message, cause)
}

func NewStorageError(code, message string, cause error) *PriceboardError {
	return Wrap(ErrCategoryStorage, code, message, cause)
}

func NewQueryError(code, message string) *PriceboardError {
	return New(ErrCategoryQuery, code, message)
}

func NewInternalError(message string, cause error) *PriceboardError {
	return Wrap(ErrCategoryInternal, CodeUnexpected, message, cause)
}
