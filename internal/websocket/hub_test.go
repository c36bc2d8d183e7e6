package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"notekeeper-be/internal/pkg/logger"
	"notekeeper-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	hub := NewHub(nil, logger.NewNopLogger())
	go hub.Run(ctx)
	return hub
}

func connect(t *testing.T, hub *Hub, userID uuid.UUID, buffer int) *Client {
	t.Helper()
	client := &Client{Hub: hub, UserID: userID, Send: make(chan []byte, buffer)}
	require.True(t, hub.Register(client))
	return client
}

func waitForClients(t *testing.T, hub *Hub, userID uuid.UUID, want int) {
	t.Helper()
	require.Eventually(t, func() bool {
		return hub.ConnectedClients(userID) == want
	}, time.Second, 5*time.Millisecond)
}

func TestHub_SendReachesOnlyTheOwner(t *testing.T) {
	hub := startHub(t)
	alice, bob := uuid.New(), uuid.New()

	laptop := connect(t, hub, alice, 4)
	phone := connect(t, hub, alice, 4)
	bobs := connect(t, hub, bob, 4)
	waitForClients(t, hub, alice, 2)
	waitForClients(t, hub, bob, 1)

	noteId := uuid.New()
	hub.Send(alice, events.NewChangeEvent(events.NoteCreated, alice, noteId, nil))

	for _, client := range []*Client{laptop, phone} {
		select {
		case msg := <-client.Send:
			var frame struct {
				Type string             `json:"type"`
				Data events.ChangeEvent `json:"data"`
			}
			require.NoError(t, json.Unmarshal(msg, &frame))
			assert.Equal(t, events.NoteCreated, frame.Type)
			assert.Equal(t, noteId, frame.Data.EntityId)
		case <-time.After(time.Second):
			t.Fatal("event not delivered")
		}
	}

	select {
	case <-bobs.Send:
		t.Fatal("another user received the event")
	default:
	}
}

func TestHub_UnregisterClosesOnce(t *testing.T) {
	hub := startHub(t)
	alice := uuid.New()

	client := connect(t, hub, alice, 1)
	waitForClients(t, hub, alice, 1)

	hub.Unregister(client)
	waitForClients(t, hub, alice, 0)

	_, open := <-client.Send
	assert.False(t, open)

	// A second unregister must not close the channel again.
	assert.NotPanics(t, func() {
		hub.Unregister(client)
		waitForClients(t, hub, alice, 0)
	})
}

func TestHub_SlowClientIsDropped(t *testing.T) {
	hub := startHub(t)
	alice := uuid.New()

	slow := connect(t, hub, alice, 1)
	waitForClients(t, hub, alice, 1)

	evt := events.NewChangeEvent(events.NoteUpdated, alice, uuid.New(), nil)
	hub.Send(alice, evt) // fills the buffer
	hub.Send(alice, evt) // overflows

	waitForClients(t, hub, alice, 0)
	<-slow.Send
	_, open := <-slow.Send
	assert.False(t, open)
}

func TestHub_StoppedHubDoesNotBlock(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(nil, logger.NewNopLogger())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()

	alice := uuid.New()
	full := connect(t, hub, alice, 0)
	waitForClients(t, hub, alice, 1)

	cancel()
	<-stopped

	finished := make(chan struct{})
	go func() {
		defer close(finished)
		hub.Unregister(full)
		hub.Send(alice, events.NewChangeEvent(events.NoteDeleted, alice, uuid.New(), nil))
		assert.False(t, hub.Register(&Client{Hub: hub, UserID: alice, Send: make(chan []byte, 1)}))
	}()

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("hub calls blocked after Run returned")
	}
}
