package router

import (
	"net/http"
	"time"

	"workforce/config"
	_ "workforce/docs" // swagger docs
	"workforce/internal/handlers/auth"
	"workforce/internal/handlers/booking"
	"workforce/internal/handlers/health"
	"workforce/internal/handlers/invoice"
	"workforce/internal/handlers/lodging"
	"workforce/internal/handlers/user"
	"workforce/shared/constant"
	"workforce/transport/http/middleware"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

const requestTimeout = 30 * time.Second

type DomainHandlers struct {
	Health  health.Handler
	Auth    auth.Handler
	User    user.Handler
	Lodging lodging.Handler
	Booking booking.Handler
	Invoice invoice.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	App            middleware.AppMiddleware
	AuthRole       middleware.AuthRole
	Config         *config.Config
}

func New(domainHandlers DomainHandlers, app middleware.AppMiddleware, authRole middleware.AuthRole, cfg *config.Config) Router {
	return Router{
		DomainHandlers: domainHandlers,
		App:            app,
		AuthRole:       authRole,
		Config:         cfg,
	}
}

// Handler builds the full route tree. readiness wraps /health so it can answer 503 while the
// server drains.
func (r *Router) Handler(readiness func(http.Handler) http.Handler) http.Handler {
	router := chi.NewRouter()

	r.SetupMiddlewares(router)

	router.With(readiness).Get("/health", r.DomainHandlers.Health.Health)
	r.SetupRoutes(router)

	return router
}

func (r *Router) SetupMiddlewares(router chi.Router) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.Recoverer)

	if r.Config.App.CORS.Enable {
		corsCfg := r.Config.App.CORS

		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   corsCfg.AllowedOrigins,
			AllowedMethods:   corsCfg.AllowedMethods,
			AllowedHeaders:   corsCfg.AllowedHeaders,
			ExposedHeaders:   []string{constant.RequestHeaderRequestID, constant.RequestHeaderRateLimitRemaining},
			AllowCredentials: corsCfg.AllowCredentials,
			MaxAge:           corsCfg.MaxAgeSeconds,
		}))
	}

	router.Use(r.App.Tracing)
	router.Use(r.App.Metrics)
	router.Use(r.App.RateLimit())
	router.Use(chiMiddleware.Timeout(requestTimeout))
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Handle("/metrics", promhttp.Handler())
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.DomainHandlers.Health.Router(router)

	router.Route(constant.APIVersionPrefix, r.mountDomains)
	r.mountDomains(router)
}

func (r *Router) mountDomains(router chi.Router) {
	guard := r.AuthRole.Guard

	r.DomainHandlers.Auth.Router(router, guard)
	r.DomainHandlers.User.Router(router, guard)
	r.DomainHandlers.Lodging.Router(router, guard)
	r.DomainHandlers.Booking.Router(router, guard)
	r.DomainHandlers.Invoice.Router(router, guard)
}
