package ws

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"vecino/internal/domain"
)

func TestHubBroadcasterMessageCreated(t *testing.T) {
	hub := NewHub()
	channelID := uuid.New()
	conn := NewConn(hub, nil, channelID, uuid.New())
	hub.Attach(conn, channelID)

	msg := &domain.Message{
		ID:        uuid.New(),
		ChannelID: channelID,
		SenderID:  uuid.New(),
		Content:   "hello",
		CreatedAt: time.Now(),
	}
	NewHubBroadcaster(hub).MessageCreated(msg)

	evt := receive(t, conn)
	require.Equal(t, EventTypeMessageCreated, evt.Type)

	var payload MessagePayload
	require.NoError(t, json.Unmarshal(evt.Payload, &payload))
	require.Equal(t, msg.ID, payload.ID)
	require.Equal(t, "hello", payload.Content)
}

func TestHubBroadcasterMessageDeleted(t *testing.T) {
	hub := NewHub()
	channelID := uuid.New()
	conn := NewConn(hub, nil, channelID, uuid.New())
	hub.Attach(conn, channelID)

	messageID := uuid.New()
	NewHubBroadcaster(hub).MessageDeleted(channelID, messageID)

	evt := receive(t, conn)
	require.Equal(t, EventTypeMessageDeleted, evt.Type)

	var payload MessageDeletedPayload
	require.NoError(t, json.Unmarshal(evt.Payload, &payload))
	require.Equal(t, messageID, payload.ID)
	require.Equal(t, channelID, payload.ChannelID)
}
