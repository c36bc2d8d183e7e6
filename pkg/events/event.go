package events

import (
	"time"

	"github.com/google/uuid"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "note.created").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

const (
	NoteCreated   = "note.created"
	NoteUpdated   = "note.updated"
	NoteDeleted   = "note.deleted"
	FolderCreated = "folder.created"
	FolderUpdated = "folder.updated"
	FolderDeleted = "folder.deleted"
)

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// ChangeEvent is a change to one entity owned by UserId.
type ChangeEvent struct {
	Type       string                 `json:"type"`
	UserId     uuid.UUID              `json:"user_id"`
	EntityId   uuid.UUID              `json:"entity_id"`
	Data       map[string]interface{} `json:"data,omitempty"`
	OccurredAt time.Time              `json:"occurred_at"`
}

func NewChangeEvent(eventType string, userId, entityId uuid.UUID, data map[string]interface{}) ChangeEvent {
	return ChangeEvent{
		Type:       eventType,
		UserId:     userId,
		EntityId:   entityId,
		Data:       data,
		OccurredAt: time.Now(),
	}
}

func (e ChangeEvent) EventType() string {
	return e.Type
}

func (e ChangeEvent) Payload() map[string]interface{} {
	payload := map[string]interface{}{
		"user_id":   e.UserId.String(),
		"entity_id": e.EntityId.String(),
	}
	for k, v := range e.Data {
		payload[k] = v
	}
	return payload
}

func (e ChangeEvent) Timestamp() time.Time {
	return e.OccurredAt
}
