// Package apperr defines the error taxonomy shared by services and handlers
// and the mapping from each error class to an HTTP status.
package apperr

import (
	"errors"
	"net/http"
	"strings"
)

var (
	ErrValidation           = errors.New("validation failed")
	ErrDuplicateUser        = errors.New("username already taken")
	ErrAuthenticationFailed = errors.New("invalid username or password")
	ErrMissingAuthHeader    = errors.New("authorization header not provided")
	ErrMissingToken         = errors.New("token not provided")
	ErrInvalidToken         = errors.New("invalid token")
	ErrExpiredToken         = errors.New("token expired")
	ErrUnknownUser          = errors.New("user not found")
	ErrNotFound             = errors.New("not found")
	ErrBadRequest           = errors.New("bad request")
	ErrConfig               = errors.New("invalid configuration")
	ErrStore                = errors.New("store error")
)

// FieldError is a single failed check on one input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every field error found in one input, not just the first.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Field+": "+f.Message)
	}
	return ErrValidation.Error() + ": " + strings.Join(msgs, ", ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Add appends a field error.
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// Err returns nil when no field failed, so callers can write `return v.Err()`.
func (e *ValidationError) Err() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// Status maps an error to the HTTP status it is reported with.
func Status(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation), errors.Is(err, ErrDuplicateUser):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrAuthenticationFailed),
		errors.Is(err, ErrMissingAuthHeader),
		errors.Is(err, ErrMissingToken),
		errors.Is(err, ErrInvalidToken),
		errors.Is(err, ErrUnknownUser):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the client-facing text for err. Internal failures never
// leak their cause.
func Message(err error) string {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		return ErrValidation.Error()
	case errors.Is(err, ErrExpiredToken):
		return ErrExpiredToken.Error()
	}
	for _, known := range []error{
		ErrDuplicateUser, ErrAuthenticationFailed, ErrMissingAuthHeader, ErrMissingToken,
		ErrInvalidToken, ErrUnknownUser, ErrNotFound,
	} {
		if errors.Is(err, known) {
			return known.Error()
		}
	}
	if errors.Is(err, ErrBadRequest) {
		return err.Error()
	}
	return "internal server error"
}

// Code is a stable machine-readable name for the error class.
func Code(err error) string {
	switch {
	case errors.Is(err, ErrValidation):
		return "ValidationError"
	case errors.Is(err, ErrDuplicateUser):
		return "DuplicateUser"
	case errors.Is(err, ErrAuthenticationFailed):
		return "AuthenticationFailed"
	case errors.Is(err, ErrMissingAuthHeader):
		return "MissingAuthHeader"
	case errors.Is(err, ErrMissingToken):
		return "MissingToken"
	case errors.Is(err, ErrExpiredToken):
		return "ExpiredToken"
	case errors.Is(err, ErrInvalidToken):
		return "InvalidToken"
	case errors.Is(err, ErrUnknownUser):
		return "UnknownUser"
	case errors.Is(err, ErrNotFound):
		return "NotFound"
	case errors.Is(err, ErrBadRequest):
		return "BadRequest"
	case errors.Is(err, ErrConfig):
		return "ConfigError"
	case errors.Is(err, ErrStore):
		return "StoreError"
	default:
		return "InternalError"
	}
}
