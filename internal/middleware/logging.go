package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
)

// RequestLogging attaches logger to each request and writes one access line
// per request.
func RequestLogging(logger zerolog.Logger, trustProxy bool) []func(http.Handler) http.Handler {
	chain := []func(http.Handler) http.Handler{
		hlog.NewHandler(logger),
		hlog.RequestIDHandler("req_id", middleware.RequestIDHeader),
		hlog.MethodHandler("method"),
		hlog.URLHandler("url"),
		hlog.UserAgentHandler("user_agent"),
	}
	if trustProxy {
		chain = append(chain, hlog.RemoteIPHandler("ip"))
	} else {
		chain = append(chain, hlog.RemoteAddrHandler("ip"))
	}
	return append(chain, hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		event := hlog.FromRequest(r).Info()
		if status >= http.StatusInternalServerError {
			event = hlog.FromRequest(r).Error()
		}
		event.Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("request")
	}))
}
