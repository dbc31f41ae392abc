package errors

import "fmt"

// Category represents the type of error.
type Category string

const (
	CategoryRuntime   Category = "runtime"
	CategoryReconcile Category = "reconcile"
	CategoryProtocol  Category = "protocol"
	CategoryConfig    Category = "config"
	CategoryCLI       Category = "cli"
)

// TideError is a structured error with a stable code, a category, and
// optional remediation hints.
type TideError struct {
	// Code is a unique error identifier (e.g., "T001").
	Code string

	// Category is the error type (runtime, reconcile, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// DocURL is a link to documentation about this error.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *TideError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *TideError) Unwrap() error {
	return e.Wrapped
}

// WithDetail adds a detailed explanation to the error.
func (e *TideError) WithDetail(d string) *TideError {
	e.Detail = d
	return e
}

// WithDetailf adds a formatted detailed explanation to the error.
func (e *TideError) WithDetailf(format string, args ...any) *TideError {
	e.Detail = fmt.Sprintf(format, args...)
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *TideError) WithSuggestion(s string) *TideError {
	e.Suggestion = s
	return e
}

// WrapErr attaches an underlying error.
func (e *TideError) WrapErr(err error) *TideError {
	e.Wrapped = err
	return e
}

// New creates a TideError from a registered error code.
func New(code string) *TideError {
	template, ok := registry[code]
	if !ok {
		return &TideError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &TideError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
		DocURL:   template.DocURL,
	}
}

// Newf creates a new TideError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *TideError {
	return &TideError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// Wrap wraps err under a registered code with extra detail. It returns
// err unchanged when err is already a TideError, so wrapping at multiple
// layers keeps the innermost code.
func Wrap(err error, code, detail string) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*TideError); ok {
		return err
	}
	e := New(code).WrapErr(err)
	if detail != "" {
		e.Detail = detail
	}
	return e
}

// FromError wraps a standard error in a TideError.
func FromError(err error, code string) *TideError {
	if err == nil {
		return nil
	}
	if te, ok := err.(*TideError); ok {
		return te
	}
	return New(code).WrapErr(err)
}
