package event

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"roombooker/config"
	"roombooker/infras/kafka"
	"roombooker/infras/otel"
	"roombooker/internal/domains/notification/service"
)

// Consumer feeds the booking events topic to the notification service.
type Consumer struct {
	Config       *config.Config
	Client       kafka.Client
	Notification service.Notification
	Otel         otel.Otel
}

func New(cfg *config.Config, client kafka.Client, notification service.Notification, otel otel.Otel) *Consumer {
	return &Consumer{
		Config:       cfg,
		Client:       client,
		Notification: notification,
		Otel:         otel,
	}
}

// Run blocks until ctx is cancelled. Closing the client and flushing spans is
// left to Close.
func (c *Consumer) Run(ctx context.Context) error {
	topic := c.Config.Kafka.Topics.BookingEvents

	log.Info().
		Str("topic", topic).
		Str("group", c.Config.Kafka.ConsumerGroup).
		Msg("Starting booking event consumer")

	err := c.Client.Consume(ctx, c.Config.Kafka.ConsumerGroup, topic, c.Notification.Handle)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("failed to consume %s: %w", topic, err)
	}

	return nil
}

func (c *Consumer) Close(ctx context.Context) error {
	return errors.Join(c.Client.Close(), c.Otel.Shutdown(ctx))
}
