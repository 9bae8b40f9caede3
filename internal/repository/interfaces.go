package repository

import (
	"context"

	"github.com/google/uuid"

	"vecino/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type CommunityRepository interface {
	Create(ctx context.Context, community *domain.Community) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Community, error)
	AddMember(ctx context.Context, member *domain.CommunityMember) error
	GetMember(ctx context.Context, communityID, userID uuid.UUID) (*domain.CommunityMember, error)
}

type ChannelRepository interface {
	Create(ctx context.Context, channel *domain.Channel) error
	// CreateWithParticipants inserts the channel and its participant rows in a
	// single transaction. Used for DM channels, which must come into existence
	// with exactly their two members.
	CreateWithParticipants(ctx context.Context, channel *domain.Channel, userIDs []uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Channel, error)
	GetDefaultChannel(ctx context.Context, communityID uuid.UUID) (*domain.Channel, error)
	Update(ctx context.Context, channel *domain.Channel) error
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Channel, error)
	ListIDsByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	AddParticipant(ctx context.Context, p *domain.ChannelParticipant) error
	GetParticipant(ctx context.Context, channelID, userID uuid.UUID) (*domain.ChannelParticipant, error)
	ListParticipants(ctx context.Context, channelID uuid.UUID) ([]domain.ChannelParticipant, error)
}

type MessageRepository interface {
	Create(ctx context.Context, msg *domain.Message) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Message, error)
	// GetInChannel returns nil when the message does not exist in that channel,
	// even if the id exists elsewhere.
	GetInChannel(ctx context.Context, id, channelID uuid.UUID) (*domain.Message, error)
	ListByChannel(ctx context.Context, channelID uuid.UUID) ([]domain.Message, error)
	Update(ctx context.Context, msg *domain.Message) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// NotificationRepository is the alert collaborator. All writes through it are
// best-effort from the messaging service's point of view.
type NotificationRepository interface {
	CreateBatch(ctx context.Context, notifications []domain.Notification) error
	UpdateByReference(ctx context.Context, referenceID uuid.UUID, content string) error
	DeleteByReference(ctx context.Context, referenceID uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Notification, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
}
