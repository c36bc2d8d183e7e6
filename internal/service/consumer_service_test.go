package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"notekeeper-be/internal/pkg/logger"
	"notekeeper-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingDelivery struct {
	mu        sync.Mutex
	delivered map[uuid.UUID][]events.ChangeEvent
}

func (d *recordingDelivery) Send(userID uuid.UUID, evt events.ChangeEvent) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.delivered[userID] = append(d.delivered[userID], evt)
}

func (d *recordingDelivery) count(userID uuid.UUID) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.delivered[userID])
}

func TestPublishConsumeRoundTrip(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	log := logger.NewNopLogger()
	delivery := &recordingDelivery{delivered: map[uuid.UUID][]events.ChangeEvent{}}

	consumer := NewConsumerService(pubSub, "NOTE_EVENTS", delivery, log)
	require.NoError(t, consumer.Consume(ctx))

	publisher := NewPublisherService("NOTE_EVENTS", pubSub, nil, log)

	alice, folderId := uuid.New(), uuid.New()
	require.NoError(t, publisher.Publish(ctx, events.NewChangeEvent(events.FolderDeleted, alice, folderId, map[string]interface{}{
		"detached_notes": 3,
	})))

	require.Eventually(t, func() bool { return delivery.count(alice) == 1 }, time.Second, 5*time.Millisecond)

	delivery.mu.Lock()
	got := delivery.delivered[alice][0]
	delivery.mu.Unlock()
	assert.Equal(t, events.FolderDeleted, got.Type)
	assert.Equal(t, folderId, got.EntityId)
	assert.EqualValues(t, 3, got.Data["detached_notes"])
}

func TestConsumerDropsMalformedMessages(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pubSub := gochannel.NewGoChannel(gochannel.Config{BlockPublishUntilSubscriberAck: true}, watermill.NopLogger{})
	defer pubSub.Close()

	delivery := &recordingDelivery{delivered: map[uuid.UUID][]events.ChangeEvent{}}
	consumer := NewConsumerService(pubSub, "NOTE_EVENTS", delivery, logger.NewNopLogger())
	require.NoError(t, consumer.Consume(ctx))

	// Publish blocks until the message is acked, so these return only once processed.
	require.NoError(t, pubSub.Publish("NOTE_EVENTS", message.NewMessage(watermill.NewUUID(), []byte("not json"))))
	require.NoError(t, pubSub.Publish("NOTE_EVENTS", message.NewMessage(watermill.NewUUID(), []byte(`{"type":"note.created"}`))))

	delivery.mu.Lock()
	defer delivery.mu.Unlock()
	assert.Empty(t, delivery.delivered)
}
