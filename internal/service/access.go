package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"vecino/internal/domain"
	"vecino/internal/repository"
)

var (
	ErrAccessDenied       = errors.New("access denied to this channel")
	ErrMessageNotFound    = errors.New("message not found")
	ErrNotMessageOwner    = errors.New("only the message sender can perform this action")
	ErrChannelNotFound    = errors.New("channel not found")
	ErrMembershipNotFound = errors.New("community membership not found")
	ErrWrongRole          = errors.New("community role does not allow this action")
)

// Access runs the membership and ownership checks every chat operation starts
// with. Checks always re-read storage; nothing is cached.
type Access struct {
	channelRepo   repository.ChannelRepository
	messageRepo   repository.MessageRepository
	communityRepo repository.CommunityRepository
}

func NewAccess(
	channelRepo repository.ChannelRepository,
	messageRepo repository.MessageRepository,
	communityRepo repository.CommunityRepository,
) *Access {
	return &Access{
		channelRepo:   channelRepo,
		messageRepo:   messageRepo,
		communityRepo: communityRepo,
	}
}

// ChannelAccess returns the participant row proving userID belongs to the
// channel, or ErrAccessDenied.
func (a *Access) ChannelAccess(ctx context.Context, channelID, userID uuid.UUID) (*domain.ChannelParticipant, error) {
	p, err := a.channelRepo.GetParticipant(ctx, channelID, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrAccessDenied
	}
	return p, nil
}

// MessageOwnership returns the message iff it exists in the channel and was
// sent by userID. A missing message is ErrMessageNotFound; someone else's
// message is ErrNotMessageOwner.
func (a *Access) MessageOwnership(ctx context.Context, messageID, channelID, userID uuid.UUID) (*domain.Message, error) {
	msg, err := a.messageRepo.GetInChannel(ctx, messageID, channelID)
	if err != nil {
		return nil, err
	}
	if msg == nil {
		return nil, ErrMessageNotFound
	}
	if msg.SenderID != userID {
		return nil, ErrNotMessageOwner
	}
	return msg, nil
}

// CommunityRole returns the membership row iff userID holds the required role
// in the community.
func (a *Access) CommunityRole(ctx context.Context, communityID, userID uuid.UUID, role string) (*domain.CommunityMember, error) {
	m, err := a.communityRepo.GetMember(ctx, communityID, userID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrMembershipNotFound
	}
	if m.Role != role {
		return nil, ErrWrongRole
	}
	return m, nil
}
