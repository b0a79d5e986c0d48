package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// JWT and tokens
	ErrInvalidSigningMethod = errors.New("invalid token signing method")
	ErrInvalidToken         = errors.New("invalid token")
	ErrTokenExpired         = errors.New("token has expired")
	ErrTokenIsNotRefresh    = errors.New("token is not a refresh token")
	ErrTokenIsNotAccess     = errors.New("token is not an access token")

	// Authorization
	ErrEmptyAuthHeader    = errors.New("authorization header is missing")
	ErrInvalidAuthHeader  = errors.New("invalid authorization header format")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("access denied")

	// Context
	ErrUserIDNotFoundInContext = errors.New("user id not found in request context")
	ErrInvalidUserID           = errors.New("invalid user id")

	// Common
	ErrNotFound          = errors.New("record not found")
	ErrBadRequest        = errors.New("bad request")
	ErrEmailTaken        = errors.New("email is already registered")
	ErrRequestNotOwned   = errors.New("request belongs to another user")
	ErrRequestNotPending = errors.New("only pending requests can be cancelled")
	ErrInsufficientStock = errors.New("requested quantity exceeds available stock")
)

// statusByErr maps sentinels to HTTP status codes for ErrorResponse.
var statusByErr = map[error]int{
	ErrInvalidToken:         http.StatusUnauthorized,
	ErrTokenExpired:         http.StatusUnauthorized,
	ErrInvalidSigningMethod: http.StatusUnauthorized,
	ErrTokenIsNotRefresh:    http.StatusUnauthorized,
	ErrTokenIsNotAccess:     http.StatusUnauthorized,
	ErrEmptyAuthHeader:      http.StatusUnauthorized,
	ErrInvalidAuthHeader:    http.StatusUnauthorized,
	ErrInvalidCredentials:   http.StatusUnauthorized,
	ErrUnauthorized:         http.StatusUnauthorized,
	ErrForbidden:            http.StatusForbidden,
	ErrNotFound:             http.StatusNotFound,
	ErrBadRequest:           http.StatusBadRequest,
	ErrEmailTaken:           http.StatusConflict,
	ErrRequestNotOwned:      http.StatusForbidden,
	ErrRequestNotPending:    http.StatusUnprocessableEntity,
	ErrInsufficientStock:    http.StatusUnprocessableEntity,
	ErrInvalidUserID:        http.StatusUnauthorized,
}

// HttpError carries a user-facing message and status code alongside the cause.
type HttpError struct {
	Code    int
	Message string
	Err     error
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err}
}

// StatusAndMessage resolves the HTTP status and safe message for any error.
// Unknown errors collapse to a generic 500 so internals never leak.
func StatusAndMessage(err error) (int, string) {
	var httpErr *HttpError
	if errors.As(err, &httpErr) {
		return httpErr.Code, httpErr.Message
	}
	for sentinel, code := range statusByErr {
		if errors.Is(err, sentinel) {
			return code, sentinel.Error()
		}
	}
	var invalidInput *InvalidInputError
	if errors.As(err, &invalidInput) {
		return http.StatusBadRequest, invalidInput.Message
	}
	return http.StatusInternalServerError, "internal server error"
}

type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string { return e.Message }

func NewInvalidInputError(format string, args ...interface{}) error {
	return &InvalidInputError{Message: fmt.Sprintf(format, args...)}
}
