//go:build wireinject
// +build wireinject

package di

import (
	"agenda/config"
	"agenda/infras/jwt"
	"agenda/infras/kafka"
	"agenda/infras/otel"
	"agenda/infras/postgres"
	"agenda/infras/redis"
	"agenda/infras/s3"
	"agenda/permissions"
	"agenda/shared/cache"
	"agenda/transport/http"
	"agenda/transport/http/middleware"
	"agenda/transport/http/router"

	"github.com/google/wire"

	authService "agenda/internal/domains/auth/service"
	availabilityService "agenda/internal/domains/availability/service"
	bookingRepository "agenda/internal/domains/booking/repository"
	bookingService "agenda/internal/domains/booking/service"
	businessRepository "agenda/internal/domains/business/repository"
	businessService "agenda/internal/domains/business/service"
	catalogRepository "agenda/internal/domains/catalog/repository"
	catalogService "agenda/internal/domains/catalog/service"
	customerRepository "agenda/internal/domains/customer/repository"
	customerService "agenda/internal/domains/customer/service"
	teamRepository "agenda/internal/domains/team/repository"
	teamService "agenda/internal/domains/team/service"
	userRepository "agenda/internal/domains/user/repository"

	authHandler "agenda/internal/handlers/auth"
	bookingHandler "agenda/internal/handlers/booking"
	businessHandler "agenda/internal/handlers/business"
	catalogHandler "agenda/internal/handlers/catalog"
	customerHandler "agenda/internal/handlers/customer"
	publicHandler "agenda/internal/handlers/public"
	teamHandler "agenda/internal/handlers/team"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
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
)

var authDomain = wire.NewSet(
	userRepository.New,
	authService.New,
)

var businessDomain = wire.NewSet(
	businessRepository.New,
	businessService.New,
)

var catalogDomain = wire.NewSet(
	catalogRepository.New,
	catalogService.New,
)

var teamDomain = wire.NewSet(
	teamRepository.New,
	teamService.New,
)

var customerDomain = wire.NewSet(
	customerRepository.New,
	customerService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
	availabilityService.New,
)

var domains = wire.NewSet(
	authDomain,
	businessDomain,
	catalogDomain,
	teamDomain,
	customerDomain,
	bookingDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	businessHandler.New,
	catalogHandler.New,
	teamHandler.New,
	customerHandler.New,
	bookingHandler.New,
	publicHandler.New,
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
