//go:build wireinject
// +build wireinject

package di

import (
	"workforce/config"
	"workforce/infras/jwt"
	"workforce/infras/kafka"
	"workforce/infras/otel"
	"workforce/infras/postgres"
	"workforce/infras/redis"
	"workforce/infras/s3"
	"workforce/permissions"
	"workforce/shared/cache"
	"workforce/shared/event"
	"workforce/transport/http"
	"workforce/transport/http/middleware"
	"workforce/transport/http/router"

	"github.com/google/wire"

	authService "workforce/internal/domains/auth/service"
	bookingRepository "workforce/internal/domains/booking/repository"
	bookingService "workforce/internal/domains/booking/service"
	invoiceRepository "workforce/internal/domains/invoice/repository"
	invoiceService "workforce/internal/domains/invoice/service"
	lodgingRepository "workforce/internal/domains/lodging/repository"
	lodgingService "workforce/internal/domains/lodging/service"
	userRepository "workforce/internal/domains/user/repository"
	userService "workforce/internal/domains/user/service"
	authHandler "workforce/internal/handlers/auth"
	bookingHandler "workforce/internal/handlers/booking"
	healthHandler "workforce/internal/handlers/health"
	invoiceHandler "workforce/internal/handlers/invoice"
	lodgingHandler "workforce/internal/handlers/lodging"
	userHandler "workforce/internal/handlers/user"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	event.NewPublisher,
	permissions.Get,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
)

var authDomain = wire.NewSet(
	authService.New,
)

var lodgingDomain = wire.NewSet(
	lodgingRepository.New,
	lodgingService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var invoiceDomain = wire.NewSet(
	invoiceRepository.New,
	invoiceService.New,
)

var domains = wire.NewSet(
	userDomain,
	authDomain,
	lodgingDomain,
	bookingDomain,
	invoiceDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	wire.Bind(new(healthHandler.Pinger), new(*postgres.Connection)),
	healthHandler.New,
	authHandler.New,
	userHandler.New,
	lodgingHandler.New,
	bookingHandler.New,
	invoiceHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}

func InitializeUserService() userService.User {
	wire.Build(
		configurations,
		postgres.New,
		otel.New,
		userDomain,
	)

	return nil
}

func InitializeAuditConsumer() *event.Consumer {
	wire.Build(
		configurations,
		kafka.New,
		event.NewConsumer,
	)

	return nil
}
