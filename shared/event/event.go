// Package event publishes booking and invoice changes to the audit stream.
package event

import (
	"context"
	"time"

	"workforce/infras/kafka"
	"workforce/shared/constant"
	"workforce/shared/metrics"
	"workforce/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	TopicBookings = "bookings"
	TopicInvoices = "invoices"

	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// Event is the JSON payload written to the topic, keyed by EntityID.
type Event struct {
	Action     string    `json:"action"`
	Entity     string    `json:"entity"`
	EntityID   string    `json:"entity_id"`
	ActorEmail string    `json:"actor_email,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
	Data       any       `json:"data,omitempty"`
}

type Publisher interface {
	Publish(ctx context.Context, topic string, evt Event)
}

type publisherImpl struct {
	client kafka.Client
}

func NewPublisher(client kafka.Client) Publisher {
	return &publisherImpl{client: client}
}

// Publish sends evt in the background. Failures are logged and counted, never returned.
func (p *publisherImpl) Publish(ctx context.Context, topic string, evt Event) {
	if evt.OccurredAt.IsZero() {
		evt.OccurredAt = timezone.Now()
	}

	name := p.client.Topic(topic)

	go func() {
		c := context.WithoutCancel(ctx)

		err := p.client.SendMessages(c, name, kafka.Message{Key: evt.EntityID, Value: evt})
		metrics.IncEvent(name, err)

		if err != nil {
			log.Error().Err(err).Str("topic", name).Str("entity_id", evt.EntityID).Msg("failed to publish domain event")
		}
	}()
}

// ActorFromContext returns the authenticated email stored by the auth middleware.
func ActorFromContext(ctx context.Context) string {
	email, _ := ctx.Value(constant.ContextKeyUserEmail).(string)

	return email
}
