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
	ErrTokenNotYetValid     = errors.New("token is not yet valid")
	ErrTokenIsNotAccess     = errors.New("token is not an access token")
	ErrTokenIsNotRefresh    = errors.New("token is not a refresh token")

	// Authentication / authorization
	ErrEmptyAuthHeader    = errors.New("authorization header is missing")
	ErrInvalidAuthHeader  = errors.New("malformed authorization header")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionRevoked     = errors.New("session has been revoked")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("not permitted")

	// Context
	ErrUserIDNotFoundInContext = errors.New("user id not found in request context")
	ErrActorNotFoundInContext  = errors.New("actor not found in request context")

	// Generic
	ErrNotFound       = errors.New("record not found")
	ErrBadRequest     = errors.New("bad request")
	ErrInternalServer = errors.New("internal server error")

	// Domain
	ErrAllocationExhausted = errors.New("job order sequence exhausted for this month")
	ErrJoNumberTaken       = errors.New("job order number is already taken")
	ErrSerialNumberTaken   = errors.New("serial number is already registered")
	ErrOfficeInUse         = errors.New("office still has users or equipment assigned")
	ErrLaterHistoryExists  = errors.New("a later-dated history entry already exists")
)

// HttpError carries the status code and user-facing message for a failed
// request. Err holds the underlying cause for logging only and is never
// serialized. Details carries per-field validation messages.
type HttpError struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Err     error             `json:"-"`
	Details map[string]string `json:"details,omitempty"`
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, details map[string]string) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err, Details: details}
}

// NewValidationError reports field-level validation failures without any
// partial state change.
func NewValidationError(details map[string]string) *HttpError {
	return &HttpError{Code: http.StatusUnprocessableEntity, Message: "validation failed", Details: details}
}

func NewNotFoundError(message string) *HttpError {
	return &HttpError{Code: http.StatusNotFound, Message: message, Err: ErrNotFound}
}

func NewForbiddenError(message string) *HttpError {
	return &HttpError{Code: http.StatusForbidden, Message: message, Err: ErrForbidden}
}
