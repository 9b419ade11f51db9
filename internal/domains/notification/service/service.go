package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"

	"roombooker/infras/kafka"
	"roombooker/infras/otel"
	"roombooker/internal/domains/booking/event"
	"roombooker/internal/domains/notification/model"
	"roombooker/internal/domains/notification/sender"
	"roombooker/shared/constant"
)

type Notification interface {
	Handle(ctx context.Context, message kafkaGo.Message) error
}

type serviceImpl struct {
	sender sender.Sender
	otel   otel.Otel
}

func New(sender sender.Sender, otel otel.Otel) Notification {
	return &serviceImpl{
		sender: sender,
		otel:   otel,
	}
}

// Handle implements kafka.Handler. Undecodable payloads are logged and committed.
// Send failures are returned so the message is redelivered.
func (s *serviceImpl) Handle(ctx context.Context, message kafkaGo.Message) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".notification.Handle")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	evt, decodeErr := kafka.DecodeKafkaMessage[event.BookingEvent](message)
	if decodeErr != nil {
		log.Error().Err(decodeErr).Str("key", string(message.Key)).Msg("dropping undecodable booking event")

		return nil
	}

	notification, ok := Compose(evt)
	if !ok {
		log.Warn().Str("type", string(evt.Type)).Str("bookingID", evt.BookingID).Msg("no notification for booking event")

		return nil
	}

	if err = s.sender.Send(ctx, notification); err != nil {
		log.Error().Err(err).Str("bookingID", evt.BookingID).Msg("failed to send notification")

		return fmt.Errorf("failed to send notification: %w", err)
	}

	return nil
}

// Compose renders the requester notification for evt. ok is false for events
// without a recipient or of an unknown type.
func Compose(evt event.BookingEvent) (notification model.Notification, ok bool) {
	if evt.Email == constant.Empty {
		return notification, false
	}

	room := evt.RoomName
	if room == constant.Empty {
		room = "the room"
	}

	slot := fmt.Sprintf("%s on %s from %s to %s", room, evt.Date, evt.StartTime, evt.EndTime)

	var body strings.Builder

	fmt.Fprintf(&body, "Hello %s,\n\n", evt.FullName)

	switch evt.Type {
	case event.TypeCreated:
		notification.Subject = "Booking request received"
		fmt.Fprintf(&body, "We received your request for %s. It is pending approval.\n", slot)

		if evt.CancellationToken != constant.Empty {
			fmt.Fprintf(&body, "To cancel it, use this code: %s\n", evt.CancellationToken)
		}
	case event.TypeApproved:
		notification.Subject = "Booking approved"
		fmt.Fprintf(&body, "Your booking for %s has been approved.\n", slot)
	case event.TypeRejected:
		notification.Subject = "Booking rejected"
		fmt.Fprintf(&body, "Your booking for %s has been rejected.\n", slot)
	case event.TypeCancelled:
		notification.Subject = "Booking cancelled"
		fmt.Fprintf(&body, "Your booking for %s has been cancelled.\n", slot)
	default:
		return notification, false
	}

	if evt.Reason != constant.Empty {
		fmt.Fprintf(&body, "Reason: %s\n", evt.Reason)
	}

	notification.BookingID = evt.BookingID
	notification.EventType = string(evt.Type)
	notification.Recipient = evt.Email
	notification.Body = body.String()

	return notification, true
}
