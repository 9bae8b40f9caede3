package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is the profile record owned by the auth side of the system. The
// messaging core only ever reads it.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	AvatarURL    *string   `json:"avatar_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
