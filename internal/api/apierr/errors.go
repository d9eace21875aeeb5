package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// The service layer reports failures through this small taxonomy so the
// handlers can map them to HTTP status codes in one place.

// ValidationError: a field or cross-field rule was violated. 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func Validation(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// DuplicateResourceError: the resource already exists, e.g. a second
// review for the same (title, author) pair. 400.
type DuplicateResourceError struct {
	Message string
}

func (e *DuplicateResourceError) Error() string { return e.Message }

func Duplicate(format string, args ...any) error {
	return &DuplicateResourceError{Message: fmt.Sprintf(format, args...)}
}

// ConflictError: a storage uniqueness constraint was hit, e.g. username
// or email already registered. 409.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

func Conflict(format string, args ...any) error {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

// UnauthenticatedError: no usable identity on the request. 401.
type UnauthenticatedError struct {
	Message string
}

func (e *UnauthenticatedError) Error() string { return e.Message }

func Unauthenticated(format string, args ...any) error {
	return &UnauthenticatedError{Message: fmt.Sprintf(format, args...)}
}

// ForbiddenError: identity is known but the action is not permitted. 403.
type ForbiddenError struct {
	Message string
}

func (e *ForbiddenError) Error() string { return e.Message }

func Forbidden(format string, args ...any) error {
	return &ForbiddenError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError: the addressed resource does not exist. 404.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

func NotFound(format string, args ...any) error {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

// HTTPStatus maps an error to its response status. Unknown errors are
// internal server errors.
func HTTPStatus(err error) int {
	var (
		validation      *ValidationError
		duplicate       *DuplicateResourceError
		conflict        *ConflictError
		unauthenticated *UnauthenticatedError
		forbidden       *ForbiddenError
		notFound        *NotFoundError
	)
	switch {
	case errors.As(err, &validation), errors.As(err, &duplicate):
		return http.StatusBadRequest
	case errors.As(err, &conflict):
		return http.StatusConflict
	case errors.As(err, &unauthenticated):
		return http.StatusUnauthorized
	case errors.As(err, &forbidden):
		return http.StatusForbidden
	case errors.As(err, &notFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// IsNotFound reports whether err is a NotFoundError anywhere in its chain.
func IsNotFound(err error) bool {
	var notFound *NotFoundError
	return errors.As(err, &notFound)
}
