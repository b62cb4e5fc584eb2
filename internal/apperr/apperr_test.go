package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	v := &ValidationError{}
	v.Add("username", "required")

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", v, http.StatusUnprocessableEntity},
		{"duplicate", ErrDuplicateUser, http.StatusUnprocessableEntity},
		{"auth failed", ErrAuthenticationFailed, http.StatusUnauthorized},
		{"missing header", ErrMissingAuthHeader, http.StatusUnauthorized},
		{"missing token", ErrMissingToken, http.StatusUnauthorized},
		{"expired wraps invalid", fmt.Errorf("%w: %w", ErrInvalidToken, ErrExpiredToken), http.StatusUnauthorized},
		{"unknown user", ErrUnknownUser, http.StatusUnauthorized},
		{"not found", fmt.Errorf("lesson 1: %w", ErrNotFound), http.StatusNotFound},
		{"bad request", ErrBadRequest, http.StatusBadRequest},
		{"store", fmt.Errorf("%w: boom", ErrStore), http.StatusInternalServerError},
		{"unclassified", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Status(tt.err))
		})
	}
}

func TestValidationError(t *testing.T) {
	v := &ValidationError{}
	assert.NoError(t, v.Err())

	v.Add("username", "is required")
	v.Add("email", "must be a valid email")

	err := v.Err()
	assert.ErrorIs(t, err, ErrValidation)
	assert.Len(t, v.Fields, 2)
	assert.Equal(t, "validation failed: username: is required, email: must be a valid email", err.Error())
	assert.Equal(t, "ValidationError", Code(err))
}

func TestMessageHidesInternalCause(t *testing.T) {
	err := fmt.Errorf("%w: connection refused to 10.0.0.3", ErrStore)
	assert.Equal(t, "internal server error", Message(err))
	assert.Equal(t, "StoreError", Code(err))
}

func TestCode_UnclassifiedIsInternal(t *testing.T) {
	err := fmt.Errorf("save avatar: %w", errors.New("disk full"))
	assert.Equal(t, "InternalError", Code(err))
	assert.Equal(t, "internal server error", Message(err))
	assert.Equal(t, http.StatusInternalServerError, Status(err))
}

func TestCodeDistinguishesExpiry(t *testing.T) {
	expired := fmt.Errorf("%w: %w", ErrInvalidToken, ErrExpiredToken)
	assert.Equal(t, "ExpiredToken", Code(expired))
	assert.Equal(t, "InvalidToken", Code(ErrInvalidToken))
	assert.Equal(t, ErrExpiredToken.Error(), Message(expired))
}
