package middleware

import (
	"fmt"
	"net/http"
	"time"

	"workforce/config"
	"workforce/infras/otel"
	"workforce/shared/constant"
	"workforce/shared/metrics"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	goRedis "github.com/redis/go-redis/v9"
)

const (
	otelHTTPScopeName = "http"
	routeUnmatched    = "unmatched"
)

type AppMiddleware interface {
	Tracing(next http.Handler) http.Handler
	Metrics(next http.Handler) http.Handler
	RateLimit() func(http.Handler) http.Handler
}

type appMiddleware struct {
	otel    otel.Otel
	config  *config.Config
	redis   *goRedis.Client
	limiter *memoryLimiter
}

func NewAppMiddleware(otel otel.Otel, config *config.Config, redis *goRedis.Client) AppMiddleware {
	return &appMiddleware{
		otel:    otel,
		config:  config,
		redis:   redis,
		limiter: newMemoryLimiter(config.App.RateLimiter.RPS, config.App.RateLimiter.Burst),
	}
}

// Tracing opens the root span of a request.
func (a *appMiddleware) Tracing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		spanName := fmt.Sprintf("%s %s", request.Method, request.URL.Path)

		ctx, scope := a.otel.NewScope(request.Context(), otelHTTPScopeName, spanName)
		defer scope.End()

		scope.SetAttributes(map[string]any{
			"app.name":        a.config.App.Name,
			"http.path":       request.URL.Path,
			"http.method":     request.Method,
			"http.user_agent": request.Header.Get(constant.RequestHeaderUserAgent),
			"http.host":       request.Host,
			"http.source":     clientIP(request),
			"http.request_id": chiMiddleware.GetReqID(request.Context()),
		})

		ww := chiMiddleware.NewWrapResponseWriter(writer, request.ProtoMajor)
		next.ServeHTTP(ww, request.WithContext(ctx))

		scope.SetAttributes(map[string]any{
			"http.route":       routePattern(request),
			"http.status_code": ww.Status(),
		})

		if ww.Status() >= http.StatusInternalServerError {
			scope.TraceError(fmt.Errorf("%s responded %d", spanName, ww.Status()))
		}
	})
}

// Metrics records request count and latency labelled by route pattern.
func (a *appMiddleware) Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		start := time.Now()
		ww := chiMiddleware.NewWrapResponseWriter(writer, request.ProtoMajor)

		next.ServeHTTP(ww, request)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		metrics.ObserveHTTP(routePattern(request), request.Method, status, time.Since(start))
	})
}

// routePattern reads the matched pattern once chi has routed the request.
func routePattern(request *http.Request) string {
	rctx := chi.RouteContext(request.Context())
	if rctx == nil {
		return routeUnmatched
	}

	if pattern := rctx.RoutePattern(); pattern != "" {
		return pattern
	}

	return routeUnmatched
}
