package main

import (
	"os"

	"github.com/rs/zerolog/log"

	"roombooker/config"
	"roombooker/helper"
	"roombooker/shared/logger"
)

func main() {
	logger.InitLogger()

	if len(os.Args) < 2 {
		log.Fatal().Msg("usage: migrate <up|down|step-up|drop|version>")
	}

	action, err := helper.ParseMigrationAction(os.Args[1])
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid migration action")
	}

	if err := helper.Migrate(config.Get(), action); err != nil {
		log.Fatal().Err(err).Str("action", string(action)).Msg("Migration failed")
	}
}
