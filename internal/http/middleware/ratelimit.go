package middleware

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/campusfind/lostfound-api/pkg/logging"
)

// Limiter decides whether a request from ip may proceed.
type Limiter interface {
	Allow(ctx context.Context, ip string) bool
}

// MemoryLimiter provides per-IP rate limiting using a token bucket.
type MemoryLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	rate    float64 // tokens per second
	burst   int     // max tokens
}

type bucket struct {
	tokens   float64
	lastTime time.Time
}

// NewMemoryLimiter creates a limiter allowing rate requests/sec with the
// given burst size per IP.
func NewMemoryLimiter(rate float64, burst int) *MemoryLimiter {
	rl := &MemoryLimiter{
		buckets: make(map[string]*bucket),
		rate:    rate,
		burst:   burst,
	}
	// Periodically evict stale entries to prevent memory growth.
	go rl.cleanup()
	return rl
}

// Allow returns true if the request from ip is within the rate limit.
func (rl *MemoryLimiter) Allow(_ context.Context, ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	b, ok := rl.buckets[ip]
	if !ok {
		b = &bucket{tokens: float64(rl.burst), lastTime: now}
		rl.buckets[ip] = b
	}

	elapsed := now.Sub(b.lastTime).Seconds()
	b.tokens += elapsed * rl.rate
	if b.tokens > float64(rl.burst) {
		b.tokens = float64(rl.burst)
	}
	b.lastTime = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

func (rl *MemoryLimiter) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		rl.mu.Lock()
		cutoff := time.Now().Add(-10 * time.Minute)
		for ip, b := range rl.buckets {
			if b.lastTime.Before(cutoff) {
				delete(rl.buckets, ip)
			}
		}
		rl.mu.Unlock()
	}
}

// RedisLimiter provides per-IP rate limiting shared across instances,
// using a fixed window keyed by IP.
type RedisLimiter struct {
	client *redis.Client
	window time.Duration
	max    int
	logger *logging.Logger
}

// NewRedisLimiter creates a limiter allowing max requests per window per IP.
func NewRedisLimiter(client *redis.Client, window time.Duration, max int, logger *logging.Logger) *RedisLimiter {
	if logger == nil {
		logger = logging.Default()
	}
	return &RedisLimiter{
		client: client,
		window: window,
		max:    max,
		logger: logger,
	}
}

// Allow increments the window counter for ip. Redis errors fail open so a
// cache outage never blocks submissions.
func (rl *RedisLimiter) Allow(ctx context.Context, ip string) bool {
	key := "ratelimit:contact:" + ip
	count, err := rl.client.Incr(ctx, key).Result()
	if err != nil {
		rl.logger.Warn("rate limiter redis error, allowing request", "error", err, "ip", ip)
		return true
	}
	if count == 1 {
		if err := rl.client.Expire(ctx, key, rl.window).Err(); err != nil {
			rl.logger.Warn("rate limiter expire failed", "error", err, "ip", ip)
		}
	}
	return count <= int64(rl.max)
}

// RateLimit returns an HTTP middleware that rejects requests exceeding the
// limiter's budget with 429 Too Many Requests.
func RateLimit(limiter Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// chi's RealIP middleware has already folded trusted proxy
			// headers into RemoteAddr; raw connections carry ip:port.
			ip := r.RemoteAddr
			if host, _, err := net.SplitHostPort(ip); err == nil {
				ip = host
			}
			if !limiter.Allow(r.Context(), ip) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"success":false,"error":"Too many submissions. Please try again later."}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

var _ Limiter = (*MemoryLimiter)(nil)
var _ Limiter = (*RedisLimiter)(nil)
