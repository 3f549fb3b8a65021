package gpltools

import (
	"errors"
	"fmt"
)

// ErrorCategory represents the type of error for categorization purposes.
type ErrorCategory int

const (
	// ErrorCategoryUnknown is the default category for uncategorized errors.
	ErrorCategoryUnknown ErrorCategory = iota
	// ErrorCategoryConfig is for configuration parsing and validation errors.
	ErrorCategoryConfig
	// ErrorCategoryParse is for malformed palette files.
	ErrorCategoryParse
	// ErrorCategoryRender is for HTML and swatch rendering errors.
	ErrorCategoryRender
	// ErrorCategoryIO is for file and I/O errors.
	ErrorCategoryIO
)

// String returns a human-readable name for the error category.
func (c ErrorCategory) String() string {
	switch c {
	case ErrorCategoryConfig:
		return "config"
	case ErrorCategoryParse:
		return "parse"
	case ErrorCategoryRender:
		return "render"
	case ErrorCategoryIO:
		return "io"
	default:
		return "unknown"
	}
}

// CategorizedError wraps an error with the category of the failing step
// and the file it concerns, if any.
type CategorizedError struct {
	// Err is the underlying error.
	Err error
	// Category classifies the type of error.
	Category ErrorCategory
	// Path is the palette, output or configuration file involved.
	Path string
}

// Error implements the error interface.
func (e *CategorizedError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("[%s] (no error)", e.Category)
	}
	return fmt.Sprintf("[%s] %s", e.Category, e.Err.Error())
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *CategorizedError) Unwrap() error {
	return e.Err
}

// NewCategorizedError creates a new CategorizedError.
func NewCategorizedError(err error, category ErrorCategory, path string) *CategorizedError {
	return &CategorizedError{Err: err, Category: category, Path: path}
}

// CategoryOf returns the category of the first CategorizedError in err's
// chain, or ErrorCategoryUnknown.
func CategoryOf(err error) ErrorCategory {
	var cerr *CategorizedError
	if errors.As(err, &cerr) {
		return cerr.Category
	}
	return ErrorCategoryUnknown
}
