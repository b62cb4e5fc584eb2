package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/AnshRaj112/lessonhub-backend/internal/handlers"
	"github.com/AnshRaj112/lessonhub-backend/pkg/clientip"
)

const (
	headerXContentTypeOptions     = "X-Content-Type-Options"
	headerXFrameOptions           = "X-Frame-Options"
	headerXXSSProtection          = "X-XSS-Protection"
	headerContentSecurityPolicy   = "Content-Security-Policy"
	headerStrictTransportSecurity = "Strict-Transport-Security"
)

// SecurityHeaders sets security-related response headers.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(headerXContentTypeOptions, "nosniff")
		w.Header().Set(headerXFrameOptions, "DENY")
		w.Header().Set(headerXXSSProtection, "1; mode=block")
		w.Header().Set(headerContentSecurityPolicy, "default-src 'self'")
		w.Header().Set(headerStrictTransportSecurity, "max-age=31536000; includeSubDomains")
		next.ServeHTTP(w, r)
	})
}

// HostCheck returns 403 when r.Host does not match allowedHost.
// allowedHost is the bare hostname without scheme or port; empty disables the check.
func HostCheck(allowedHost string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if allowedHost == "" {
				next.ServeHTTP(w, r)
				return
			}
			reqHost := r.Host
			if host, _, err := net.SplitHostPort(reqHost); err == nil {
				reqHost = host
			}
			if !strings.EqualFold(strings.TrimSpace(reqHost), strings.TrimSpace(allowedHost)) {
				w.WriteHeader(http.StatusForbidden)
				w.Write([]byte("Forbidden"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

const limiterTTL = 30 * time.Minute

type limiterEntry struct {
	limiter *rate.Limiter
	lastUse time.Time
}

// IPLimiter keeps one token bucket per client IP. Idle buckets are dropped
// lazily on access once they pass limiterTTL.
type IPLimiter struct {
	mu         sync.Mutex
	entries    map[string]*limiterEntry
	limit      rate.Limit
	burst      int
	trustProxy bool
	message    string
	lastSweep  time.Time
	now        func() time.Time
}

func NewIPLimiter(limit rate.Limit, burst int, trustProxy bool, message string) *IPLimiter {
	return &IPLimiter{
		entries:    make(map[string]*limiterEntry),
		limit:      limit,
		burst:      burst,
		trustProxy: trustProxy,
		message:    message,
		now:        time.Now,
	}
}

func (l *IPLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) > limiterTTL {
		for key, e := range l.entries {
			if now.Sub(e.lastUse) > limiterTTL {
				delete(l.entries, key)
			}
		}
		l.lastSweep = now
	}

	e, ok := l.entries[ip]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.entries[ip] = e
	}
	e.lastUse = now
	return e.limiter.AllowN(now, 1)
}

// Handler limits every request passing through it.
func (l *IPLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.allow(clientip.RealClientIP(r, l.trustProxy)) {
			tooManyRequests(w, r, l.message)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func tooManyRequests(w http.ResponseWriter, r *http.Request, message string) {
	handlers.RenderError(w, r, http.StatusTooManyRequests, "TooManyRequests", message)
}

// NewGlobalLimiter allows each IP 10 req/s with a burst of 30.
func NewGlobalLimiter(trustProxy bool) *IPLimiter {
	return NewIPLimiter(rate.Limit(10), 30, trustProxy, "Too many requests. Please slow down.")
}

// NewCredentialLimiter allows each IP one attempt every 2s with a burst of 5.
// Mount it on the login and register routes only.
func NewCredentialLimiter(trustProxy bool) *IPLimiter {
	return NewIPLimiter(rate.Every(2*time.Second), 5, trustProxy, "Too many login attempts. Please try again later.")
}

// ProductionSecurity returns middlewares for production: SecurityHeaders, HostCheck, global limiter.
func ProductionSecurity(allowedHost string, trustProxy bool) []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		SecurityHeaders,
		HostCheck(allowedHost),
		NewGlobalLimiter(trustProxy).Handler,
	}
}
