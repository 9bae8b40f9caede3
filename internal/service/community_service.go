package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"vecino/internal/domain"
	"vecino/internal/repository"
)

const defaultChannelName = "General"

// CommunityService provisions communities and their default channel, and keeps
// the member roster in sync with channel participation.
type CommunityService struct {
	communityRepo repository.CommunityRepository
	channelRepo   repository.ChannelRepository
	access        *Access
}

func NewCommunityService(
	communityRepo repository.CommunityRepository,
	channelRepo repository.ChannelRepository,
	access *Access,
) *CommunityService {
	return &CommunityService{
		communityRepo: communityRepo,
		channelRepo:   channelRepo,
		access:        access,
	}
}

type CreateCommunityInput struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// Create provisions the community, makes the creator its admin and sets up the
// default channel with the creator as first participant.
func (s *CommunityService) Create(ctx context.Context, creatorID uuid.UUID, input CreateCommunityInput) (*domain.Community, error) {
	now := time.Now()
	community := &domain.Community{
		ID:        uuid.New(),
		Name:      input.Name,
		Address:   input.Address,
		CreatedAt: now,
	}
	if err := s.communityRepo.Create(ctx, community); err != nil {
		return nil, fmt.Errorf("creating community: %w", err)
	}

	if err := s.communityRepo.AddMember(ctx, &domain.CommunityMember{
		CommunityID: community.ID,
		UserID:      creatorID,
		Role:        domain.RoleAdmin,
		JoinedAt:    now,
	}); err != nil {
		return nil, fmt.Errorf("adding creator as admin: %w", err)
	}

	name := defaultChannelName
	channel := &domain.Channel{
		ID:          uuid.New(),
		CommunityID: community.ID,
		Name:        &name,
		CreatedAt:   now,
	}
	if err := s.channelRepo.CreateWithParticipants(ctx, channel, []uuid.UUID{creatorID}); err != nil {
		return nil, fmt.Errorf("provisioning default channel: %w", err)
	}

	return community, nil
}

// AddMember registers a user in the community and joins them to the default
// channel so they can chat immediately. Only admins may add members.
func (s *CommunityService) AddMember(ctx context.Context, communityID, requesterID, userID uuid.UUID, role string) error {
	if _, err := s.access.CommunityRole(ctx, communityID, requesterID, domain.RoleAdmin); err != nil {
		return err
	}

	if role == "" {
		role = domain.RoleNeighbor
	}

	now := time.Now()
	if err := s.communityRepo.AddMember(ctx, &domain.CommunityMember{
		CommunityID: communityID,
		UserID:      userID,
		Role:        role,
		JoinedAt:    now,
	}); err != nil {
		return fmt.Errorf("adding member: %w", err)
	}

	def, err := s.channelRepo.GetDefaultChannel(ctx, communityID)
	if err != nil {
		return err
	}
	if def == nil {
		return ErrChannelNotFound
	}
	return s.channelRepo.AddParticipant(ctx, &domain.ChannelParticipant{
		ChannelID: def.ID,
		UserID:    userID,
		JoinedAt:  now,
	})
}
