//go:build wireinject
// +build wireinject

package di

import (
	"schedly/config"
	"schedly/infras/kafka"
	"schedly/infras/otel"
	"schedly/infras/postgres"
	"schedly/infras/redis"
	"schedly/shared/cache"
	"schedly/transport/http"
	"schedly/transport/http/middleware"
	"schedly/transport/http/router"

	availabilityHandler "schedly/internal/handlers/availability"
	bookingHandler "schedly/internal/handlers/booking"
	eventHandler "schedly/internal/handlers/event"
	slotHandler "schedly/internal/handlers/slot"

	availabilityRepository "schedly/internal/domains/availability/repository"
	availabilityService "schedly/internal/domains/availability/service"
	bookingRepository "schedly/internal/domains/booking/repository"
	bookingService "schedly/internal/domains/booking/service"
	eventRepository "schedly/internal/domains/event/repository"
	eventService "schedly/internal/domains/event/service"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	kafka.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var availabilityDomain = wire.NewSet(
	availabilityRepository.New,
	availabilityService.New,
)

var eventDomain = wire.NewSet(
	eventRepository.New,
	eventService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var domains = wire.NewSet(
	availabilityDomain,
	eventDomain,
	bookingDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	availabilityHandler.New,
	eventHandler.New,
	bookingHandler.New,
	slotHandler.New,
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
