package kafka_test

import (
	"context"
	"math"
	"rental/config"
	"rental/infras/kafka"
	"rental/infras/otel/mocks"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessage_ToKafkaMessage(t *testing.T) {
	message := kafka.Message{
		Key:   "booking-1",
		Value: map[string]string{"status": "active"},
	}

	msg, err := message.ToKafkaMessage("rental.booking.events")
	require.NoError(t, err)

	assert.Equal(t, "rental.booking.events", msg.Topic)
	assert.Equal(t, []byte("booking-1"), msg.Key)
	assert.JSONEq(t, `{"status":"active"}`, string(msg.Value))

	bad := kafka.Message{Key: "booking-1", Value: math.Inf(1)}
	_, err = bad.ToKafkaMessage("rental.booking.events")
	assert.Error(t, err)
}

func TestNew_Disabled(t *testing.T) {
	client := kafka.New(&config.Config{}, mocks.NewOtel())

	assert.NoError(t, client.SendMessages(context.Background(), "rental.booking.events", kafka.Message{Key: "k", Value: "v"}))
	assert.NoError(t, client.Close())
}
