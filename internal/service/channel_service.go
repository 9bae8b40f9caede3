package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"vecino/internal/domain"
	"vecino/internal/repository"
)

var (
	ErrInvalidTarget    = errors.New("target user is not a member of this channel")
	ErrChannelBlocked   = errors.New("this conversation has been blocked")
	ErrNotDirectMessage = errors.New("channel is not a direct message channel")
	ErrNotBlocked       = errors.New("this channel is not blocked")
	ErrNotBlocker       = errors.New("only the user who blocked this channel can unblock it")
	ErrCannotDMSelf     = errors.New("cannot start a direct message with yourself")
)

// ChannelService resolves which channel a request targets and owns the DM
// lifecycle: dedup lookup, lazy creation, block and unblock.
type ChannelService struct {
	channelRepo repository.ChannelRepository
	access      *Access
}

func NewChannelService(channelRepo repository.ChannelRepository, access *Access) *ChannelService {
	return &ChannelService{
		channelRepo: channelRepo,
		access:      access,
	}
}

// ListForUser returns every channel the user participates in.
func (s *ChannelService) ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.Channel, error) {
	ids, err := s.channelRepo.ListIDsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []domain.Channel{}, nil
	}
	return s.channelRepo.ListByIDs(ctx, ids)
}

// GetOrCreateDirectChannel resolves the DM channel between requester and
// target, creating it lazily. Both users must share the base channel, which
// proves they belong to the same community. A blocked DM is never handed back
// through this path.
func (s *ChannelService) GetOrCreateDirectChannel(ctx context.Context, baseChannelID, requesterID, targetID uuid.UUID) (*domain.Channel, error) {
	if requesterID == targetID {
		return nil, ErrCannotDMSelf
	}

	if _, err := s.access.ChannelAccess(ctx, baseChannelID, requesterID); err != nil {
		return nil, err
	}

	base, err := s.channelRepo.GetByID(ctx, baseChannelID)
	if err != nil {
		return nil, err
	}
	if base == nil {
		return nil, ErrChannelNotFound
	}

	targetPart, err := s.channelRepo.GetParticipant(ctx, baseChannelID, targetID)
	if err != nil {
		return nil, err
	}
	if targetPart == nil {
		return nil, ErrInvalidTarget
	}

	existing, err := s.findDirectChannel(ctx, base.CommunityID, requesterID, targetID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.IsBlocked {
			return nil, ErrChannelBlocked
		}
		return existing, nil
	}

	ch := &domain.Channel{
		ID:              uuid.New(),
		CommunityID:     base.CommunityID,
		IsDirectMessage: true,
		CreatedAt:       time.Now(),
	}
	if err := s.channelRepo.CreateWithParticipants(ctx, ch, []uuid.UUID{requesterID, targetID}); err != nil {
		return nil, fmt.Errorf("creating direct channel: %w", err)
	}
	return ch, nil
}

// findDirectChannel intersects the two users' membership sets, restricted to
// DM channels of the community. Creation keeps (requester, target) pairs
// unique, so at most one id survives the intersection; the oldest channel
// wins any tie left by legacy data (candidates arrive ordered by created_at).
func (s *ChannelService) findDirectChannel(ctx context.Context, communityID, requesterID, targetID uuid.UUID) (*domain.Channel, error) {
	requesterIDs, err := s.channelRepo.ListIDsByUser(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	if len(requesterIDs) == 0 {
		return nil, nil
	}

	channels, err := s.channelRepo.ListByIDs(ctx, requesterIDs)
	if err != nil {
		return nil, err
	}
	candidates := lo.Filter(channels, func(ch domain.Channel, _ int) bool {
		return ch.IsDirectMessage && ch.CommunityID == communityID
	})
	if len(candidates) == 0 {
		return nil, nil
	}

	targetIDs, err := s.channelRepo.ListIDsByUser(ctx, targetID)
	if err != nil {
		return nil, err
	}
	targetSet := lo.SliceToMap(targetIDs, func(id uuid.UUID) (uuid.UUID, struct{}) {
		return id, struct{}{}
	})

	for _, ch := range candidates {
		if _, ok := targetSet[ch.ID]; ok {
			found := ch
			return &found, nil
		}
	}
	return nil, nil
}

// BlockDirectChannel marks a DM as blocked by the requester. Re-blocking an
// already-blocked channel is a plain update; the later blocker wins.
func (s *ChannelService) BlockDirectChannel(ctx context.Context, channelID, requesterID uuid.UUID) (*domain.Channel, error) {
	if _, err := s.access.ChannelAccess(ctx, channelID, requesterID); err != nil {
		return nil, err
	}

	ch, err := s.channelRepo.GetByID(ctx, channelID)
	if err != nil {
		return nil, err
	}
	if ch == nil {
		return nil, ErrChannelNotFound
	}
	if !ch.IsDirectMessage {
		return nil, ErrNotDirectMessage
	}

	ch.IsBlocked = true
	ch.BlockedBy = &requesterID
	if err := s.channelRepo.Update(ctx, ch); err != nil {
		return nil, fmt.Errorf("blocking channel: %w", err)
	}
	return ch, nil
}

// UnblockDirectChannel reverses a block. Only the original blocker may do it.
func (s *ChannelService) UnblockDirectChannel(ctx context.Context, channelID, requesterID uuid.UUID) (*domain.Channel, error) {
	if _, err := s.access.ChannelAccess(ctx, channelID, requesterID); err != nil {
		return nil, err
	}

	ch, err := s.channelRepo.GetByID(ctx, channelID)
	if err != nil {
		return nil, err
	}
	if ch == nil {
		return nil, ErrChannelNotFound
	}
	if !ch.IsDirectMessage {
		return nil, ErrNotDirectMessage
	}
	if !ch.IsBlocked {
		return nil, ErrNotBlocked
	}
	if ch.BlockedBy == nil || *ch.BlockedBy != requesterID {
		return nil, ErrNotBlocker
	}

	ch.IsBlocked = false
	ch.BlockedBy = nil
	if err := s.channelRepo.Update(ctx, ch); err != nil {
		return nil, fmt.Errorf("unblocking channel: %w", err)
	}
	return ch, nil
}
