package service

import (
	"context"
	"encoding/json"

	"cascade-softdelete/internal/dto"
	"cascade-softdelete/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/message"
)

const auditModule = "SoftDeleteAudit"

// IConsumerService writes every published soft delete event to the audit
// log.
type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	logger     logger.ILogger
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	logger logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		logger:     logger,
	}
}

// Consume subscribes and returns; messages are handled until ctx is done.
func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	var payload dto.SoftDeleteEventMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error(auditModule, "Failed to unmarshal soft delete event", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	details := map[string]interface{}{
		"message_id":  msg.UUID,
		"event_type":  payload.Type,
		"occurred_at": payload.OccurredAt,
	}
	for k, v := range payload.Data {
		details[k] = v
	}
	cs.logger.Info(auditModule, "Soft delete event", details)
	msg.Ack()
}
