package event

//go:generate go run go.uber.org/mock/mockgen -source=./event.go -destination=../mocks/event_mock.go -package=mocks

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"roombooker/config"
	"roombooker/infras/kafka"
	"roombooker/infras/otel"
	"roombooker/internal/domains/booking/model"
	"roombooker/shared/constant"
	"roombooker/shared/timezone"
)

type Type string

const (
	TypeCreated   Type = "booking.created"
	TypeApproved  Type = "booking.approved"
	TypeRejected  Type = "booking.rejected"
	TypeCancelled Type = "booking.cancelled"
)

// BookingEvent is the payload written to the booking events topic.
type BookingEvent struct {
	Type              Type      `json:"type"`
	BookingID         string    `json:"booking_id"`
	RoomID            string    `json:"room_id"`
	RoomName          string    `json:"room_name,omitempty"`
	FullName          string    `json:"full_name"`
	Email             string    `json:"email"`
	Date              string    `json:"date"`
	StartTime         string    `json:"start_time"`
	EndTime           string    `json:"end_time"`
	Status            string    `json:"status"`
	Reason            string    `json:"reason,omitempty"`
	PerformedBy       string    `json:"performed_by"`
	CancellationToken string    `json:"cancellation_token,omitempty"`
	OccurredAt        time.Time `json:"occurred_at"`
}

// New describes booking after a change of kind eventType made by performedBy.
func New(eventType Type, booking model.Booking, performedBy, reason string) BookingEvent {
	return BookingEvent{
		Type:        eventType,
		BookingID:   booking.ID,
		RoomID:      booking.RoomID,
		RoomName:    booking.RoomName,
		FullName:    booking.FullName,
		Email:       booking.Email,
		Date:        booking.Date.Format(constant.DateOnly),
		StartTime:   booking.StartTime,
		EndTime:     booking.EndTime,
		Status:      string(booking.Status),
		Reason:      reason,
		PerformedBy: performedBy,
		OccurredAt:  timezone.Now(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, evt BookingEvent)
}

type publisherImpl struct {
	client kafka.Client
	topic  string
	otel   otel.Otel
}

// NewPublisher writes to the booking events topic. A nil client turns publishing
// into a debug log, which is how the service runs with Kafka disabled.
func NewPublisher(client kafka.Client, cfg *config.Config, otel otel.Otel) Publisher {
	return &publisherImpl{
		client: client,
		topic:  cfg.Kafka.Topics.BookingEvents,
		otel:   otel,
	}
}

// Publish sends in the background and never fails the caller. Events are keyed by
// booking id so one booking's history stays ordered within a partition.
func (p *publisherImpl) Publish(ctx context.Context, evt BookingEvent) {
	if p.client == nil {
		log.Debug().Str("type", string(evt.Type)).Str("bookingID", evt.BookingID).Msg("event publishing disabled")

		return
	}

	go func() {
		c, scope := p.otel.NewScope(context.WithoutCancel(ctx), constant.OtelEventScopeName, constant.OtelEventScopeName+".booking.Publish")
		defer scope.End()

		scope.SetAttributes(map[string]any{
			"event.type": string(evt.Type),
			"booking.id": evt.BookingID,
		})

		err := p.client.SendMessages(c, p.topic, kafka.Message{Key: evt.BookingID, Value: evt})
		if err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Str("type", string(evt.Type)).Str("bookingID", evt.BookingID).Msg("failed to publish booking event")
		}
	}()
}
