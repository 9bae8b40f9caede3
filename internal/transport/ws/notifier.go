package ws

import (
	"log"

	"github.com/google/uuid"

	"vecino/internal/domain"
)

// HubBroadcaster implements service.Broadcaster on top of the Hub.
type HubBroadcaster struct {
	hub *Hub
}

func NewHubBroadcaster(hub *Hub) *HubBroadcaster {
	return &HubBroadcaster{hub: hub}
}

func (b *HubBroadcaster) MessageCreated(msg *domain.Message) {
	evt, err := NewEvent(EventTypeMessageCreated, &msg.ChannelID, MessagePayload{Message: *msg})
	if err != nil {
		log.Printf("ws broadcaster: marshal error: %v", err)
		return
	}
	b.hub.Broadcast(evt, msg.ChannelID)
}

func (b *HubBroadcaster) MessageEdited(msg *domain.Message) {
	evt, err := NewEvent(EventTypeMessageEdited, &msg.ChannelID, MessagePayload{Message: *msg})
	if err != nil {
		log.Printf("ws broadcaster: marshal error: %v", err)
		return
	}
	b.hub.Broadcast(evt, msg.ChannelID)
}

func (b *HubBroadcaster) MessageDeleted(channelID, messageID uuid.UUID) {
	evt, err := NewEvent(EventTypeMessageDeleted, &channelID, MessageDeletedPayload{ID: messageID, ChannelID: channelID})
	if err != nil {
		log.Printf("ws broadcaster: marshal error: %v", err)
		return
	}
	b.hub.Broadcast(evt, channelID)
}
