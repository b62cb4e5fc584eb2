package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/rs/zerolog/hlog"

	"github.com/AnshRaj112/lessonhub-backend/internal/handlers"
)

// Recoverer turns a handler panic into a 500 envelope and logs it through the
// request logger. Mount it after RequestLogging so the entry carries the request id.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rvr := recover()
			if rvr == nil {
				return
			}
			if rvr == http.ErrAbortHandler {
				panic(rvr)
			}
			hlog.FromRequest(r).Error().
				Interface("panic", rvr).
				Bytes("stack", debug.Stack()).
				Msg("handler panicked")
			if r.Header.Get("Connection") != "Upgrade" {
				handlers.RenderError(w, r, http.StatusInternalServerError, "InternalError", "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
