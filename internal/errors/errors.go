package errors

import "fmt"

// ErrorCode represents a qnote error code.
type ErrorCode string

const (
	ErrInvalidRequest ErrorCode = "INVALID_REQUEST" // 400
	ErrNotFound       ErrorCode = "NOT_FOUND"       // 404
	ErrEmptyNote      ErrorCode = "EMPTY_NOTE"      // 422
	ErrStorage        ErrorCode = "STORAGE"         // 503
	ErrInternal       ErrorCode = "INTERNAL"        // 500
)

// Error represents a structured error with code, status, and details.
type Error struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *Error {
	return &Error{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for when a note cannot be found.
func NewNotFound(id string) *Error {
	return &Error{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("note not found: %s", id),
		Details: map[string]any{"id": id},
	}
}

// NewEmptyNote creates a 422 error for the empty-note save rejection.
// Saving a note whose trimmed title and content are both empty is a
// validation no-op, not a storage failure.
func NewEmptyNote() *Error {
	return &Error{
		Code:    ErrEmptyNote,
		Status:  422,
		Message: "note has no title and no content; nothing was saved",
	}
}

// NewStorage creates a 503 error for persistence backend failures.
func NewStorage(err error) *Error {
	msg := "persistence backend unavailable"
	if err != nil {
		msg = err.Error()
	}
	return &Error{
		Code:    ErrStorage,
		Status:  503,
		Message: msg,
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *Error {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &Error{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if an error is a qnote Error with the given code.
func Is(err error, code ErrorCode) bool {
	if qErr, ok := err.(*Error); ok {
		return qErr.Code == code
	}
	return false
}
