//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"
	goRedis "github.com/redis/go-redis/v9"

	"roombooker/config"
	"roombooker/infras/jwt"
	"roombooker/infras/kafka"
	"roombooker/infras/otel"
	"roombooker/infras/postgres"
	"roombooker/infras/redis"
	"roombooker/infras/s3"
	"roombooker/permissions"
	"roombooker/shared/cache"
	"roombooker/shared/timezone"
	"roombooker/transport/event"
	"roombooker/transport/http"
	"roombooker/transport/http/middleware"
	"roombooker/transport/http/router"

	adminRepository "roombooker/internal/domains/admin/repository"
	auditRepository "roombooker/internal/domains/audit/repository"
	authService "roombooker/internal/domains/auth/service"
	bookingEvent "roombooker/internal/domains/booking/event"
	bookingRepository "roombooker/internal/domains/booking/repository"
	bookingService "roombooker/internal/domains/booking/service"
	calendarService "roombooker/internal/domains/calendar/service"
	historyService "roombooker/internal/domains/history/service"
	notificationSender "roombooker/internal/domains/notification/sender"
	notificationService "roombooker/internal/domains/notification/service"
	roomRepository "roombooker/internal/domains/room/repository"
	roomService "roombooker/internal/domains/room/service"
	uploadService "roombooker/internal/domains/upload/service"

	authHandler "roombooker/internal/handlers/auth"
	bookingHandler "roombooker/internal/handlers/booking"
	calendarHandler "roombooker/internal/handlers/calendar"
	historyHandler "roombooker/internal/handlers/history"
	roomHandler "roombooker/internal/handlers/room"
	uploadHandler "roombooker/internal/handlers/upload"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	wire.Bind(new(postgres.Transactor), new(*postgres.Connection)),
	otel.New,
	redis.New,
	wire.Bind(new(goRedis.UniversalClient), new(*goRedis.Client)),
	jwt.New,
	s3.New,
	kafka.NewOptional,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	timezone.NewClock,
)

var repositories = wire.NewSet(
	adminRepository.New,
	auditRepository.New,
	bookingRepository.New,
	roomRepository.New,
)

var domains = wire.NewSet(
	authService.New,
	roomService.New,
	bookingEvent.NewPublisher,
	bookingService.New,
	calendarService.New,
	historyService.New,
	uploadService.New,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	roomHandler.New,
	bookingHandler.New,
	calendarHandler.New,
	historyHandler.New,
	uploadHandler.New,
	router.New,
)

func InitializeService() (*http.HTTP, error) {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		repositories,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}, nil
}

func InitializeConsumer() (*event.Consumer, error) {
	wire.Build(
		config.Get,
		otel.New,
		kafka.New,
		notificationSender.NewLogSender,
		notificationService.New,
		event.New,
	)

	return &event.Consumer{}, nil
}
