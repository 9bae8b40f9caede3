package domain

import (
	"time"

	"github.com/google/uuid"
)

// Notification is the best-effort "you have a new message" side record. It is
// written by the messaging service but lives outside the chat tables;
// ReferenceID points back at the message that produced it.
type Notification struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	IsRead      bool       `json:"is_read"`
	ReferenceID *uuid.UUID `json:"reference_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}
