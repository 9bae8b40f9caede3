package ws

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"vecino/internal/domain"
)

// Event types - Server → Client
const (
	EventTypeMessageCreated = "message_created"
	EventTypeMessageEdited  = "message_edited"
	EventTypeMessageDeleted = "message_deleted"
	// EventTypeEcho re-emits a raw inbound frame to the channel. Diagnostic
	// path only; it never writes anything.
	EventTypeEcho = "echo"
)

// Event is the envelope for everything the hub delivers.
type Event struct {
	Type      string          `json:"type"`
	ChannelID *uuid.UUID      `json:"channel_id,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp int64           `json:"ts,omitempty"`
}

type MessagePayload struct {
	domain.Message
}

type MessageDeletedPayload struct {
	ID        uuid.UUID `json:"id"`
	ChannelID uuid.UUID `json:"channel_id"`
}

type EchoPayload struct {
	Data string `json:"data"`
}

// NewEvent builds an event with the current timestamp.
func NewEvent(eventType string, channelID *uuid.UUID, payload any) (*Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Event{
		Type:      eventType,
		ChannelID: channelID,
		Payload:   data,
		Timestamp: time.Now().Unix(),
	}, nil
}
