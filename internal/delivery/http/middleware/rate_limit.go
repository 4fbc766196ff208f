package middleware

import (
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"clinic-api/pkg/response"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const rateLimitKeyPrefix = "ratelimit:"

// fixedWindowScript increments the caller's counter and starts the window on first hit.
// Returns {count, ttl_seconds}.
var fixedWindowScript = redis.NewScript(`
	local current = redis.call('INCR', KEYS[1])
	if current == 1 then
		redis.call('EXPIRE', KEYS[1], ARGV[1])
	end
	local ttl = redis.call('TTL', KEYS[1])
	return {current, ttl}
`)

// RateLimiter enforces a per-client fixed-window request budget stored in Redis.
// Redis failures let the request through.
type RateLimiter struct {
	redisClient *redis.Client
	log         *logrus.Logger
	limit       int
	window      time.Duration
	trustProxy  bool
}

// NewRateLimiter builds the limiter. With trustProxy set, clients are keyed by the first
// X-Forwarded-For hop; otherwise by the connection address.
func NewRateLimiter(redisClient *redis.Client, log *logrus.Logger, limit int, window time.Duration, trustProxy bool) *RateLimiter {
	return &RateLimiter{
		redisClient: redisClient,
		log:         log,
		limit:       limit,
		window:      window,
		trustProxy:  trustProxy,
	}
}

func (m *RateLimiter) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := rateLimitKeyPrefix + clientIP(r, m.trustProxy)
		windowSeconds := int(m.window / time.Second)
		if windowSeconds < 1 {
			windowSeconds = 1
		}

		result, err := fixedWindowScript.Run(r.Context(), m.redisClient, []string{key}, windowSeconds).Int64Slice()
		if err != nil || len(result) != 2 {
			m.log.Warnf("Failed to evaluate rate limit for %s: %+v", key, err)
			next.ServeHTTP(w, r)
			return
		}

		count, ttl := result[0], result[1]
		remaining := int64(m.limit) - count
		if remaining < 0 {
			remaining = 0
		}
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(m.limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if count > int64(m.limit) {
			retryAfter := int(ttl)
			if retryAfter < 1 {
				retryAfter = 1
			}
			response.TooManyRequests(w, retryAfter)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientIP returns the connection address, or the first X-Forwarded-For hop when the
// service sits behind a trusted proxy.
func clientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
			if hop := strings.TrimSpace(strings.Split(forwarded, ",")[0]); hop != "" {
				return hop
			}
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (m *RateLimiter) String() string {
	return fmt.Sprintf("%d requests per %s", m.limit, m.window)
}
