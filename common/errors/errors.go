package errors

import (
	"fmt"
	"net/http"
)

// Error represents an application error
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error with the same code and message, so
// wrapped copies of a sentinel still match it under errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// New creates a new Error
func New(code int, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Wrap returns a copy of base carrying err as its cause. The sentinel itself
// is never mutated.
func Wrap(base *Error, err error) *Error {
	return New(base.Code, base.Message, err)
}

// Common error types
var (
	ErrInternalServer = New(http.StatusInternalServerError, "Internal server error", nil)
)

// Database error types
var (
	ErrStoreUnavailable = New(http.StatusServiceUnavailable, "Database connection error", nil)
)

// Validation error types
var (
	ErrValidation = New(http.StatusBadRequest, "Validation error", nil)
)

// Authentication error types
var (
	ErrDuplicateUser   = New(http.StatusBadRequest, "Existing user already registered with same email address", nil)
	ErrPasswordTooLong = New(http.StatusBadRequest, "password must be at most 72 bytes", nil)
	ErrUserNotFound    = New(http.StatusNotFound, "User not found", nil)
	ErrWrongPassword   = New(http.StatusUnauthorized, "Wrong password", nil)
	ErrMissingToken    = New(http.StatusUnauthorized, "Please authenticate using a valid token", nil)
	ErrInvalidToken    = New(http.StatusUnauthorized, "Invalid token", nil)
)

// Catalog error types
var (
	ErrProductIDTaken = New(http.StatusConflict, "Product id already taken, please retry", nil)
)

// Upload error types
var (
	ErrUnsupportedImage = New(http.StatusBadRequest, "Only jpeg, png, webp or gif images are accepted", nil)
	ErrImageTooLarge    = New(http.StatusRequestEntityTooLarge, "Image exceeds the upload size limit", nil)
	ErrImageNotFound    = New(http.StatusNotFound, "Image not found", nil)
)
