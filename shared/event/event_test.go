package event_test

import (
	"context"
	"testing"
	"time"

	"workforce/infras/kafka"
	kafkaMocks "workforce/infras/kafka/mocks"
	"workforce/shared/event"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestPublish(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := kafkaMocks.NewMockClient(ctrl)

	sent := make(chan kafka.Message, 1)

	client.EXPECT().Topic(event.TopicBookings).Return("lodging.bookings")
	client.EXPECT().
		SendMessages(gomock.Any(), "lodging.bookings", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
			sent <- messages[0]

			return nil
		})

	event.NewPublisher(client).Publish(context.Background(), event.TopicBookings, event.Event{
		Action:   event.ActionCreated,
		Entity:   "booking",
		EntityID: "b-1",
	})

	select {
	case msg := <-sent:
		assert.Equal(t, "b-1", msg.Key)

		evt, ok := msg.Value.(event.Event)
		assert.True(t, ok)
		assert.Equal(t, event.ActionCreated, evt.Action)
		assert.False(t, evt.OccurredAt.IsZero())
	case <-time.After(time.Second):
		t.Fatal("event was not published")
	}
}
