package sender

//go:generate go run go.uber.org/mock/mockgen -source=./sender.go -destination=../mocks/sender_mock.go -package=mocks

import (
	"context"

	"github.com/rs/zerolog/log"

	"roombooker/internal/domains/notification/model"
)

type Sender interface {
	Send(ctx context.Context, notification model.Notification) error
}

type logSender struct{}

// NewLogSender writes notifications to the application log instead of a mail server.
func NewLogSender() Sender {
	return logSender{}
}

func (logSender) Send(_ context.Context, notification model.Notification) error {
	log.Info().
		Str("bookingID", notification.BookingID).
		Str("event", notification.EventType).
		Str("recipient", notification.Recipient).
		Str("subject", notification.Subject).
		Str("body", notification.Body).
		Msg("notification dispatched")

	return nil
}
