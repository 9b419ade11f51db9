package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"roombooker/config"
	"roombooker/di"
	"roombooker/shared/logger"
)

const closeTimeout = 10 * time.Second

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	if !cfg.Kafka.Enable {
		log.Fatal().Msg("Kafka is disabled, nothing to consume")
	}

	consumer, err := di.InitializeConsumer()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize consumer")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := consumer.Run(ctx); err != nil {
		log.Error().Err(err).Msg("Consumer stopped with error")
	}

	closeCtx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	if err := consumer.Close(closeCtx); err != nil {
		log.Error().Err(err).Msg("Failed to close consumer")
	}

	log.Info().Msg("Consumer shut down")
}
