package event_test

import (
	"context"
	"encoding/json"
	"testing"

	kafkaMocks "workforce/infras/kafka/mocks"
	"workforce/shared/event"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestConsumerDecodesEvents(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := kafkaMocks.NewMockClient(ctrl)

	payload, err := json.Marshal(event.Event{
		Action:     event.ActionDeleted,
		Entity:     "invoice",
		EntityID:   "i-1",
		ActorEmail: "admin@example.com",
	})
	require.NoError(t, err)

	client.EXPECT().Topic(event.TopicBookings).Return("lodging.bookings")
	client.EXPECT().Topic(event.TopicInvoices).Return("lodging.invoices")
	client.EXPECT().Consume(gomock.Any(), "audit", "lodging.bookings", gomock.Any())
	client.EXPECT().
		Consume(gomock.Any(), "audit", "lodging.invoices", gomock.Any()).
		Do(func(_ context.Context, _, _ string, handler func(kafka.Message)) {
			handler(kafka.Message{Key: []byte("i-1"), Value: []byte("not json")})
			handler(kafka.Message{Key: []byte("i-1"), Value: payload})
		})

	var received []event.Event

	event.NewConsumer(client).
		WithSink(func(topic string, evt event.Event) {
			assert.Equal(t, "lodging.invoices", topic)

			received = append(received, evt)
		}).
		Run(context.Background())

	require.Len(t, received, 1)
	assert.Equal(t, "i-1", received[0].EntityID)
	assert.Equal(t, event.ActionDeleted, received[0].Action)
	assert.Equal(t, "admin@example.com", received[0].ActorEmail)
}
