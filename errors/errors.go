package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

const (
	AllFieldsRequired         = "All fields are required"
	EmailAndPasswordRequired  = "Email and password are required"
	InvalidCredentials        = "Invalid email or password"
	UnauthorizedRequest       = "Unauthorized request"
	InvalidRefreshToken       = "Invalid or expired refresh token"
	RefreshTokenRequired      = "Refresh token is required"
	UserAlreadyExists         = "User with this email or phone already exists"
	PhoneAlreadyExists        = "Phone number is already in use"
	UserNotFound              = "User not found"
	PropertyNotFound          = "Property not found"
	InvalidID                 = "Invalid id"
	InvalidPagination         = "Invalid pagination parameters"
	InvalidFilter             = "Invalid filter parameters"
	InvalidRequestFormatError = "Invalid request format"
	ValidationFailed          = "Validation failed"
	Forbidden                 = "Forbidden"
	InternalServerError       = "Internal server error"
	RouteNotFound             = "Route not found"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindAuthentication
	KindAuthorization
	KindNotFound
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "ValidationError"
	case KindAuthentication:
		return "AuthenticationError"
	case KindAuthorization:
		return "AuthorizationError"
	case KindNotFound:
		return "NotFoundError"
	case KindConflict:
		return "ConflictError"
	default:
		return "InternalError"
	}
}

// StatusCode is the HTTP status the kind is reported with.
func (k Kind) StatusCode() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// AppError is the single error type services hand to the HTTP boundary.
// Errors holds per-field detail messages and is never nil once built by a
// constructor, so it always encodes as a JSON array.
type AppError struct {
	Kind    Kind
	Message string
	Errors  []string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) StatusCode() int {
	return e.Kind.StatusCode()
}

func newError(kind Kind, message string, details []string) *AppError {
	if details == nil {
		details = []string{}
	}
	return &AppError{Kind: kind, Message: message, Errors: details}
}

func Validation(message string, details ...string) *AppError {
	return newError(KindValidation, message, details)
}

func Authentication(message string) *AppError {
	return newError(KindAuthentication, message, nil)
}

func Authorization(message string) *AppError {
	return newError(KindAuthorization, message, nil)
}

func NotFound(message string) *AppError {
	return newError(KindNotFound, message, nil)
}

func Conflict(message string) *AppError {
	return newError(KindConflict, message, nil)
}

func Internal(err error) *AppError {
	e := newError(KindInternal, InternalServerError, nil)
	e.Err = err
	return e
}

// From returns err as an *AppError, wrapping anything unexpected as Internal.
func From(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}

// Is reports whether err is an *AppError of the given kind.
func Is(err error, kind Kind) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr) && appErr.Kind == kind
}
