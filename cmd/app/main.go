package main

import (
	"github.com/rs/zerolog/log"

	"roombooker/config"
	"roombooker/di"
	"roombooker/helper"
	"roombooker/shared/logger"
)

// @title Room Booker API
// @version 1.0
// @description Meeting room booking with a weekly availability calendar and admin approval.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the admin token.
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to run database migrations")
		}
	}

	http, err := di.InitializeService()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize service")
	}

	http.Serve()
}
