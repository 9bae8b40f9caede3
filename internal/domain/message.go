package domain

import (
	"time"

	"github.com/google/uuid"
)

type Message struct {
	ID        uuid.UUID  `json:"id"`
	ChannelID uuid.UUID  `json:"channel_id"`
	SenderID  uuid.UUID  `json:"sender_id"`
	Content   string     `json:"content"`
	IsEdited  bool       `json:"is_edited"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	// Joined fields: sender profile snapshot as of read time
	SenderUsername  string     `json:"sender_username,omitempty"`
	SenderAvatarURL *string    `json:"sender_avatar_url,omitempty"`
	SenderJoinedAt  *time.Time `json:"sender_joined_at,omitempty"`
}
