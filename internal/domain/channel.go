package domain

import (
	"time"

	"github.com/google/uuid"
)

// Channel is a conversation scope inside a community. Direct-message channels
// carry no name and may be blocked by one of their two participants.
type Channel struct {
	ID              uuid.UUID  `json:"id"`
	CommunityID     uuid.UUID  `json:"community_id"`
	Name            *string    `json:"name,omitempty"`
	IsDirectMessage bool       `json:"is_direct_message"`
	IsBlocked       bool       `json:"is_blocked"`
	BlockedBy       *uuid.UUID `json:"blocked_by,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

type ChannelParticipant struct {
	ChannelID uuid.UUID `json:"channel_id"`
	UserID    uuid.UUID `json:"user_id"`
	JoinedAt  time.Time `json:"joined_at"`
}
