//go:build wireinject
// +build wireinject

package di

import (
	"rental/config"
	"rental/infras/jwt"
	"rental/infras/kafka"
	"rental/infras/otel"
	"rental/infras/postgres"
	"rental/infras/redis"
	"rental/infras/s3"
	"rental/permissions"
	"rental/shared/cache"
	"rental/shared/limiter"
	"rental/transport/http"
	"rental/transport/http/middleware"
	"rental/transport/http/router"

	authService "rental/internal/domains/auth/service"
	bikeRepository "rental/internal/domains/bike/repository"
	bikeService "rental/internal/domains/bike/service"
	bookingEvent "rental/internal/domains/booking/event"
	bookingRepository "rental/internal/domains/booking/repository"
	bookingService "rental/internal/domains/booking/service"
	carRepository "rental/internal/domains/car/repository"
	carService "rental/internal/domains/car/service"
	inspectionRepository "rental/internal/domains/inspection/repository"
	inspectionService "rental/internal/domains/inspection/service"
	userRepository "rental/internal/domains/user/repository"
	userService "rental/internal/domains/user/service"
	vehicleService "rental/internal/domains/vehicle/service"

	authHandler "rental/internal/handlers/auth"
	bikeHandler "rental/internal/handlers/bike"
	bookingHandler "rental/internal/handlers/booking"
	carHandler "rental/internal/handlers/car"
	healthHandler "rental/internal/handlers/health"
	inspectionHandler "rental/internal/handlers/inspection"
	userHandler "rental/internal/handlers/user"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	postgres.NewTransactor,
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
	limiter.NewTokenBucket,
)

var vehicleDomain = wire.NewSet(
	carRepository.New,
	bikeRepository.New,
	provideVehicleStores,
	vehicleService.New,
	carService.New,
	bikeService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingEvent.New,
	bookingService.New,
)

var inspectionDomain = wire.NewSet(
	inspectionRepository.New,
	inspectionService.New,
)

var authDomain = wire.NewSet(
	userRepository.New,
	userService.New,
	authService.New,
)

var domains = wire.NewSet(
	vehicleDomain,
	bookingDomain,
	inspectionDomain,
	authDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	healthHandler.New,
	authHandler.New,
	userHandler.New,
	carHandler.New,
	bikeHandler.New,
	bookingHandler.New,
	inspectionHandler.New,
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
