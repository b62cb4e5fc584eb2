package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/hlog"

	"github.com/AnshRaj112/lessonhub-backend/pkg/clientip"
)

const (
	RateLimitWindow      = 120 * time.Second
	RateLimitMaxRequests = 300
	RateLimitKeyPrefix   = "ratelimit:"
)

// RedisRateLimit is a fixed-window per-IP counter shared by every instance
// behind the same Redis. Redis failures let the request through.
func RedisRateLimit(client *redis.Client, maxRequests int64, window time.Duration, trustProxy bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := RateLimitKeyPrefix + clientip.RealClientIP(r, trustProxy)
			ctx := r.Context()

			count, err := client.Incr(ctx, key).Result()
			if err == nil && count == 1 {
				err = client.Expire(ctx, key, window).Err()
			}
			var reset time.Duration
			if err == nil {
				reset, err = client.PTTL(ctx, key).Result()
			}
			if err != nil {
				hlog.FromRequest(r).Warn().Err(err).Msg("rate limiter unavailable")
				next.ServeHTTP(w, r)
				return
			}
			if reset < 0 {
				// key lost its TTL (e.g. a crash between INCR and EXPIRE)
				client.Expire(ctx, key, window)
				reset = window
			}

			remaining := maxRequests - count
			if remaining < 0 {
				remaining = 0
			}
			w.Header().Set("X-RateLimit-Limit", strconv.FormatInt(maxRequests, 10))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(reset).Unix(), 10))

			if count > maxRequests {
				w.Header().Set("Retry-After", strconv.Itoa(int(reset.Seconds())+1))
				tooManyRequests(w, r, "Rate limit exceeded. Please try again later.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
