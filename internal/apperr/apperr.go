package apperr

import "fmt"

// Error codes surfaced in API responses.
const (
	CodeValidation = "VALIDATION_ERROR"
	CodeBadRequest = "BAD_REQUEST"
	CodeInternal   = "INTERNAL_ERROR"
)

// Error is an application error carrying an HTTP status and a stable code.
type Error struct {
	Code    string
	Message string
	Status  int
	Err     error // wrapped underlying error, optional
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// Validation creates a VALIDATION_ERROR for a specific field.
func Validation(field, reason string) *Error {
	return &Error{
		Code:    CodeValidation,
		Message: fmt.Sprintf("validation failed for %s: %s", field, reason),
		Status:  400,
	}
}

// BadRequest creates a BAD_REQUEST error.
func BadRequest(message string) *Error {
	return &Error{
		Code:    CodeBadRequest,
		Message: message,
		Status:  400,
	}
}

// Internal wraps an unexpected error as INTERNAL_ERROR. The underlying
// error is logged server-side but never echoed to the client.
func Internal(err error) *Error {
	return &Error{
		Code:    CodeInternal,
		Message: "internal server error",
		Status:  500,
		Err:     err,
	}
}
