package kafka_test

import (
	"context"
	"testing"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roombooker/config"
	"roombooker/infras/kafka"
)

type payload struct {
	BookingID string `json:"booking_id"`
	Type      string `json:"type"`
}

func TestMessage_RoundTrip(t *testing.T) {
	message := kafka.Message{Key: "b-1", Value: payload{BookingID: "b-1", Type: "booking.approved"}}

	raw, err := message.ToKafkaMessage("booking-events")
	require.NoError(t, err)

	assert.Equal(t, "booking-events", raw.Topic)
	assert.Equal(t, []byte("b-1"), raw.Key)
	assert.JSONEq(t, `{"booking_id":"b-1","type":"booking.approved"}`, string(raw.Value))

	decoded, err := kafka.DecodeKafkaMessage[payload](raw)
	require.NoError(t, err)
	assert.Equal(t, "booking.approved", decoded.Type)
}

func TestDecodeKafkaMessage_Invalid(t *testing.T) {
	_, err := kafka.DecodeKafkaMessage[payload](kafkaGo.Message{Value: []byte("{")})

	assert.Error(t, err)
}

func TestClient_EmptyTopic(t *testing.T) {
	client := kafka.New(&config.Config{})

	assert.ErrorIs(t, client.SendMessages(context.Background(), "", kafka.Message{Key: "k"}), kafka.ErrEmptyTopic)
	assert.ErrorIs(t, client.Consume(context.Background(), "", "", nil), kafka.ErrEmptyTopic)
	assert.NoError(t, client.Close())
}

func TestNewOptional(t *testing.T) {
	cfg := &config.Config{}

	assert.Nil(t, kafka.NewOptional(cfg))

	cfg.Kafka.Enable = true
	cfg.Kafka.Brokers = []string{"localhost:9092"}

	client := kafka.NewOptional(cfg)
	require.NotNil(t, client)
	assert.NoError(t, client.Close())
}
