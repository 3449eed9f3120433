package event

import (
	"context"
	"sync"

	"workforce/infras/kafka"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

const auditConsumerGroup = "audit"

// Sink receives every decoded event.
type Sink func(topic string, evt Event)

// Consumer tails the booking and invoice topics.
type Consumer struct {
	client kafka.Client
	sink   Sink
}

func NewConsumer(client kafka.Client) *Consumer {
	return &Consumer{client: client, sink: LogSink}
}

func (c *Consumer) WithSink(sink Sink) *Consumer {
	c.sink = sink

	return c
}

// Run blocks until ctx is done.
func (c *Consumer) Run(ctx context.Context) {
	var wg sync.WaitGroup

	for _, topic := range []string{TopicBookings, TopicInvoices} {
		name := c.client.Topic(topic)

		wg.Add(1)

		go func() {
			defer wg.Done()

			c.client.Consume(ctx, auditConsumerGroup, name, func(msg kafkaGo.Message) {
				c.Handle(name, msg)
			})
		}()
	}

	wg.Wait()
}

// Handle decodes one message. Undecodable messages are logged and skipped.
func (c *Consumer) Handle(topic string, msg kafkaGo.Message) {
	key, evt, err := kafka.DecodeKafkaMessage[Event](msg)
	if err != nil {
		log.Error().Err(err).Str("topic", topic).Str("key", key).Msg("skipping malformed domain event")

		return
	}

	c.sink(topic, evt)
}

// LogSink writes events as structured audit log lines.
func LogSink(topic string, evt Event) {
	log.Info().
		Str("topic", topic).
		Str("action", evt.Action).
		Str("entity", evt.Entity).
		Str("entity_id", evt.EntityID).
		Str("actor", evt.ActorEmail).
		Time("occurred_at", evt.OccurredAt).
		Msg("audit")
}
