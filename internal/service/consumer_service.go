// FILE: internal/service/consumer_service.go
package service

import (
	"context"
	"encoding/json"

	"notekeeper-be/internal/pkg/logger"
	"notekeeper-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

// ChangeDelivery pushes an event to the live connections of one user.
type ChangeDelivery interface {
	Send(userID uuid.UUID, evt events.ChangeEvent)
}

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	delivery   ChangeDelivery
	logger     logger.ILogger
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	delivery ChangeDelivery,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		delivery:   delivery,
		logger:     log,
	}
}

// Consume subscribes and forwards events in the background until ctx is done.
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
	// Live sync is best effort: every message is acked, nothing is redelivered.
	defer msg.Ack()

	var evt events.ChangeEvent
	if err := json.Unmarshal(msg.Payload, &evt); err != nil {
		cs.logger.Error("Consumer", "Failed to unmarshal change event", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		return
	}
	if evt.UserId == uuid.Nil {
		cs.logger.Warn("Consumer", "Change event without owner dropped", map[string]interface{}{
			"type": evt.Type,
		})
		return
	}

	cs.delivery.Send(evt.UserId, evt)
}
