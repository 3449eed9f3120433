package middleware

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"workforce/shared"
	"workforce/shared/constant"
	"workforce/transport/http/response"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	cacheKeyRateLimit = "limiter"
	defaultBurst      = 5
	maxLimiterKeys    = 10000
	minLimiterIdle    = time.Minute
	maxLimiterIdle    = time.Hour
)

// RateLimit throttles per client. The redis backend keeps a fixed window counter shared by
// every instance, the memory backend a token bucket per process.
func (a *appMiddleware) RateLimit() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !a.config.App.RateLimiter.Enable {
				next.ServeHTTP(w, r)

				return
			}

			key := shared.BuildCacheKey(cacheKeyRateLimit, clientIP(r), userAgent(r))

			var allowed bool
			if a.config.App.RateLimiter.Backend == constant.RateLimiterBackendMemory || a.redis == nil {
				allowed = a.allowMemory(w, key)
			} else {
				allowed = a.allowRedis(w, r, key)
			}

			if !allowed {
				response.WithRequestLimitExceeded(w)

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// allowRedis counts the request with INCR. The window starts on the first hit; a counter left
// without a TTL gets one on the next request.
func (a *appMiddleware) allowRedis(w http.ResponseWriter, r *http.Request, key string) bool {
	maxReqs := a.config.App.RateLimiter.MaxRequests
	windowSecs := a.config.App.RateLimiter.WindowSeconds
	window := time.Duration(windowSecs) * time.Second

	pipe := a.redis.Pipeline()
	incr := pipe.Incr(r.Context(), key)
	ttl := pipe.TTL(r.Context(), key)

	if _, err := pipe.Exec(r.Context()); err != nil {
		// limiter store unavailable, fail open
		log.Warn().Err(err).Str("key", key).Msg("rate limiter unavailable")

		return true
	}

	if incr.Val() == 1 || ttl.Val() < 0 {
		if err := a.redis.Expire(r.Context(), key, window).Err(); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("failed to set rate limit window")
		}
	}

	count := int(incr.Val())

	w.Header().Set(constant.RequestHeaderRateLimit, strconv.Itoa(maxReqs))
	w.Header().Set(constant.RequestHeaderRateLimitRemaining, strconv.Itoa(max(0, maxReqs-count)))
	w.Header().Set(constant.RequestHeaderRateLimitWindow, strconv.Itoa(windowSecs))

	return count <= maxReqs
}

func (a *appMiddleware) allowMemory(w http.ResponseWriter, key string) bool {
	lim := a.limiter.get(key)

	w.Header().Set(constant.RequestHeaderRateLimit, strconv.Itoa(lim.Burst()))

	if !lim.Allow() {
		return false
	}

	w.Header().Set(constant.RequestHeaderRateLimitRemaining, strconv.Itoa(max(0, int(lim.Tokens()))))

	return true
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// memoryLimiter holds one token bucket per key. Buckets idle long enough to have refilled are
// swept, and the map never grows past maxKeys.
type memoryLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	rps       float64
	burst     int
	idle      time.Duration
	maxKeys   int
	lastSweep time.Time
	now       func() time.Time
}

func newMemoryLimiter(rps float64, burst int) *memoryLimiter {
	if burst <= 0 {
		burst = defaultBurst
	}

	idle := maxLimiterIdle
	if rps > 0 {
		idle = min(maxLimiterIdle, max(minLimiterIdle, time.Duration(float64(burst)/rps*float64(time.Second))))
	}

	return &memoryLimiter{
		visitors: make(map[string]*visitor),
		rps:      rps,
		burst:    burst,
		idle:     idle,
		maxKeys:  maxLimiterKeys,
		now:      time.Now,
	}
}

func (l *memoryLimiter) get(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	if v, ok := l.visitors[key]; ok {
		v.lastSeen = now

		return v.limiter
	}

	if now.Sub(l.lastSweep) >= l.idle || len(l.visitors) >= l.maxKeys {
		l.sweep(now)
	}

	if len(l.visitors) >= l.maxKeys {
		l.evictOldest()
	}

	lim := rate.NewLimiter(rate.Limit(l.rps), l.burst)
	l.visitors[key] = &visitor{limiter: lim, lastSeen: now}

	return lim
}

func (l *memoryLimiter) sweep(now time.Time) {
	for key, v := range l.visitors {
		if now.Sub(v.lastSeen) >= l.idle {
			delete(l.visitors, key)
		}
	}

	l.lastSweep = now
}

func (l *memoryLimiter) evictOldest() {
	var (
		oldestKey string
		oldest    time.Time
	)

	for key, v := range l.visitors {
		if oldestKey == "" || v.lastSeen.Before(oldest) {
			oldestKey, oldest = key, v.lastSeen
		}
	}

	delete(l.visitors, oldestKey)
}

func userAgent(r *http.Request) string {
	ua := r.Header.Get(constant.RequestHeaderUserAgent)
	if ua == "" {
		ua = "unknown"
	}

	return ua
}

func clientIP(r *http.Request) string {
	if xff := r.Header.Get(constant.RequestHeaderForwardedFor); xff != "" {
		first, _, _ := strings.Cut(xff, ",")

		return strings.TrimSpace(first)
	}

	if xri := r.Header.Get(constant.RequestHeaderRealIP); xri != "" {
		return strings.TrimSpace(xri)
	}

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}

	return r.RemoteAddr
}
