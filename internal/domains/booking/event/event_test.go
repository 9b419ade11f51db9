package event_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"roombooker/config"
	"roombooker/infras/kafka"
	kafkaMocks "roombooker/infras/kafka/mocks"
	otelMocks "roombooker/infras/otel/mocks"
	"roombooker/internal/domains/booking/event"
	"roombooker/internal/domains/booking/model"
)

func sampleBooking() model.Booking {
	return model.Booking{
		ID:        "b-1",
		RoomID:    "r-1",
		RoomName:  "Sala VIP",
		FullName:  "Ana",
		Email:     "ana@example.com",
		Date:      time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
		StartTime: "10:00",
		EndTime:   "11:00",
		Status:    model.StatusApproved,
	}
}

func TestNew(t *testing.T) {
	evt := event.New(event.TypeApproved, sampleBooking(), "admin", "")

	assert.Equal(t, event.TypeApproved, evt.Type)
	assert.Equal(t, "2025-03-12", evt.Date)
	assert.Equal(t, "approved", evt.Status)
	assert.Equal(t, "admin", evt.PerformedBy)
	assert.False(t, evt.OccurredAt.IsZero())
}

func TestPublisher_Publish(t *testing.T) {
	for _, sendErr := range []error{nil, errors.New("broker unavailable")} {
		ctrl := gomock.NewController(t)
		client := kafkaMocks.NewMockClient(ctrl)

		cfg := &config.Config{}
		cfg.Kafka.Topics.BookingEvents = "booking-events"

		sent := make(chan kafka.Message, 1)

		client.EXPECT().
			SendMessages(gomock.Any(), "booking-events", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
				sent <- messages[0]

				return sendErr
			})

		publisher := event.NewPublisher(client, cfg, otelMocks.NewOtel())
		publisher.Publish(context.Background(), event.New(event.TypeCreated, sampleBooking(), "Ana", ""))

		select {
		case msg := <-sent:
			assert.Equal(t, "b-1", msg.Key)

			evt, ok := msg.Value.(event.BookingEvent)
			require.True(t, ok)
			assert.Equal(t, event.TypeCreated, evt.Type)
		case <-time.After(time.Second):
			t.Fatal("event was not published")
		}
	}
}

func TestPublisher_Disabled(t *testing.T) {
	publisher := event.NewPublisher(nil, &config.Config{}, otelMocks.NewOtel())

	assert.NotPanics(t, func() {
		publisher.Publish(context.Background(), event.New(event.TypeRejected, sampleBooking(), "admin", "overlap"))
	})
}
