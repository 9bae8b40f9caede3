package domain

import (
	"time"

	"github.com/google/uuid"
)

type Community struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}

// Community roles. Admin and up manage the member roster; everyone chats.
const (
	RoleAdmin     = "admin"
	RoleOwner     = "owner"
	RolePresident = "president"
	RoleNeighbor  = "neighbor"
	RoleTenant    = "tenant"
)

type CommunityMember struct {
	CommunityID uuid.UUID `json:"community_id"`
	UserID      uuid.UUID `json:"user_id"`
	Role        string    `json:"role"`
	JoinedAt    time.Time `json:"joined_at"`
}
