package service

import (
	"context"
	"encoding/json"
	"fmt"

	"cascade-softdelete/internal/dto"
	"cascade-softdelete/pkg/events"
	pktNats "cascade-softdelete/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

type IPublisherService interface {
	Publish(ctx context.Context, event events.Event) error
}

type publisherService struct {
	topicName string
	publisher message.Publisher
}

// NewPublisherService publishes events on a watermill topic as JSON
// dto.SoftDeleteEventMessage payloads.
func NewPublisherService(topicName string, publisher message.Publisher) IPublisherService {
	return &publisherService{
		topicName: topicName,
		publisher: publisher,
	}
}

func (ps *publisherService) Publish(ctx context.Context, event events.Event) error {
	payload, err := json.Marshal(dto.SoftDeleteEventMessage{
		Type:       event.EventType(),
		Data:       event.Payload(),
		OccurredAt: event.Timestamp(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal event %s: %w", event.EventType(), err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_type", event.EventType())
	msg.SetContext(ctx)

	return ps.publisher.Publish(ps.topicName, msg)
}

type natsPublisherService struct {
	publisher *pktNats.Publisher
}

// NewNatsPublisherService sends events to JetStream instead of the in-process
// channel.
func NewNatsPublisherService(publisher *pktNats.Publisher) IPublisherService {
	return &natsPublisherService{publisher: publisher}
}

func (ps *natsPublisherService) Publish(ctx context.Context, event events.Event) error {
	return ps.publisher.Publish(ctx, event)
}
