package main

import (
	"context"

	"github.com/rs/zerolog/log"

	"roombooker/config"
	"roombooker/helper"
	"roombooker/infras/otel"
	"roombooker/infras/postgres"
	adminRepository "roombooker/internal/domains/admin/repository"
	roomRepository "roombooker/internal/domains/room/repository"
	"roombooker/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	db, err := postgres.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}

	defer db.Close()

	tracer, err := otel.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize tracing")
	}

	seeder := helper.NewSeeder(cfg, adminRepository.New(db, tracer), roomRepository.New(db, tracer))

	if err := seeder.Seed(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Seed failed")
	}
}
