package service

import (
	"context"
	"encoding/json"

	"notekeeper-be/internal/pkg/logger"
	"notekeeper-be/pkg/events"
	pktNats "notekeeper-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

type IPublisherService interface {
	Publish(ctx context.Context, evt events.ChangeEvent) error
}

type publisherService struct {
	topicName      string
	publisher      message.Publisher
	eventPublisher *pktNats.Publisher // optional
	logger         logger.ILogger
}

func NewPublisherService(
	topicName string,
	publisher message.Publisher,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IPublisherService {
	return &publisherService{
		topicName:      topicName,
		publisher:      publisher,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

// Publish puts the event on the in-process bus and, when configured, on NATS.
// A NATS failure is logged only; the in-process bus is the one live sync depends on.
func (p *publisherService) Publish(ctx context.Context, evt events.ChangeEvent) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return err
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := p.publisher.Publish(p.topicName, msg); err != nil {
		return err
	}

	if p.eventPublisher != nil {
		if err := p.eventPublisher.Publish(ctx, evt); err != nil {
			p.logger.Warn("Publisher", "Failed to publish event to NATS", map[string]interface{}{
				"type":  evt.Type,
				"error": err.Error(),
			})
		}
	}

	return nil
}

// publishQuietly is used after a committed mutation: the request already succeeded,
// so a publish failure is only logged.
func publishQuietly(ctx context.Context, p IPublisherService, log logger.ILogger, evt events.ChangeEvent) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, evt); err != nil {
		log.Warn("Publisher", "Failed to publish change event", map[string]interface{}{
			"type":      evt.Type,
			"user_id":   evt.UserId.String(),
			"entity_id": evt.EntityId.String(),
			"error":     err.Error(),
		})
	}
}
