package kafka_test

import (
	"context"
	"testing"
	"time"

	"workforce/config"
	"workforce/infras/kafka"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bookingEvent struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

func TestMessageRoundTrip(t *testing.T) {
	msg := kafka.Message{Key: "b-1", Value: bookingEvent{ID: "b-1", Status: "pending"}}

	kafkaMsg, err := msg.ToKafkaMessage("lodging.bookings")
	require.NoError(t, err)
	assert.Equal(t, "lodging.bookings", kafkaMsg.Topic)

	key, decoded, err := kafka.DecodeKafkaMessage[bookingEvent](kafkaMsg)
	require.NoError(t, err)
	assert.Equal(t, "b-1", key)
	assert.Equal(t, "pending", decoded.Status)

	_, _, err = kafka.DecodeKafkaMessage[bookingEvent](kafkaGo.Message{Value: []byte("{")})
	assert.Error(t, err)
}

func TestDisabledClient(t *testing.T) {
	cfg := &config.Config{}
	cfg.Kafka.TopicPrefix = "lodging"

	client := kafka.New(cfg)

	assert.Equal(t, "lodging.invoices", client.Topic("invoices"))
	assert.NoError(t, client.SendMessages(context.Background(), "lodging.invoices", kafka.Message{Key: "k"}))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	client.Consume(ctx, "", "lodging.invoices", func(kafkaGo.Message) { t.Fail() })
	assert.NoError(t, client.Close())
}
