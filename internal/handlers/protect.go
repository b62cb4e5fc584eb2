package handlers

import (
	"context"
	"net/http"

	"github.com/AnshRaj112/lessonhub-backend/internal/models"
	"github.com/AnshRaj112/lessonhub-backend/internal/services"
)

// Authenticator resolves the caller from an Authorization header value.
type Authenticator interface {
	Authenticate(ctx context.Context, authorization string) (*models.User, error)
}

// ProtectedHandlerFunc receives the user the gate resolved.
type ProtectedHandlerFunc func(w http.ResponseWriter, r *http.Request, user *models.User)

// Protected runs the auth gate and only then calls next. Rejections are
// written by writeError and next is never reached.
func Protected(gate Authenticator, next ProtectedHandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := gate.Authenticate(r.Context(), r.Header.Get("Authorization"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		r = r.WithContext(services.WithUser(r.Context(), user))
		next(w, r, user)
	}
}
