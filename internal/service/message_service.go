package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"vecino/internal/domain"
	"vecino/internal/repository"
	"vecino/pkg/preview"
)

// Broadcaster pushes persisted chat events to live listeners. Delivery is
// fire-and-forget; the write path never waits on it.
type Broadcaster interface {
	MessageCreated(msg *domain.Message)
	MessageEdited(msg *domain.Message)
	MessageDeleted(channelID, messageID uuid.UUID)
}

// MessageService orchestrates the write path: access check, durable write,
// notification fan-out, then hub broadcast. The durable write always commits
// before anything touches the hub.
type MessageService struct {
	messageRepo repository.MessageRepository
	channelRepo repository.ChannelRepository
	notifRepo   repository.NotificationRepository
	access      *Access
	broadcaster Broadcaster
}

func NewMessageService(
	messageRepo repository.MessageRepository,
	channelRepo repository.ChannelRepository,
	notifRepo repository.NotificationRepository,
	access *Access,
) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		channelRepo: channelRepo,
		notifRepo:   notifRepo,
		access:      access,
	}
}

// SetBroadcaster wires the live fan-out (optional dependency).
func (s *MessageService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

func (s *MessageService) Send(ctx context.Context, channelID, senderID uuid.UUID, content string) (*domain.Message, error) {
	if _, err := s.access.ChannelAccess(ctx, channelID, senderID); err != nil {
		return nil, err
	}

	msg := &domain.Message{
		ID:        uuid.New(),
		ChannelID: channelID,
		SenderID:  senderID,
		Content:   content,
		IsEdited:  false,
		CreatedAt: time.Now(),
	}
	if err := s.messageRepo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("creating message: %w", err)
	}

	full, err := s.messageRepo.GetByID(ctx, msg.ID)
	if err != nil {
		return nil, err
	}

	s.notifyParticipants(ctx, full)

	if s.broadcaster != nil {
		s.broadcaster.MessageCreated(full)
	}

	return full, nil
}

func (s *MessageService) Edit(ctx context.Context, messageID, channelID, senderID uuid.UUID, content string) (*domain.Message, error) {
	msg, err := s.access.MessageOwnership(ctx, messageID, channelID, senderID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	msg.Content = content
	msg.IsEdited = true
	msg.UpdatedAt = &now
	if err := s.messageRepo.Update(ctx, msg); err != nil {
		return nil, fmt.Errorf("updating message: %w", err)
	}

	updated, err := s.messageRepo.GetByID(ctx, msg.ID)
	if err != nil {
		return nil, err
	}

	if err := s.notifRepo.UpdateByReference(ctx, messageID, preview.Truncate(content)); err != nil {
		log.Printf("messages: updating notification for %s: %v", messageID, err)
	}

	if s.broadcaster != nil {
		s.broadcaster.MessageEdited(updated)
	}

	return updated, nil
}

func (s *MessageService) Delete(ctx context.Context, messageID, channelID, senderID uuid.UUID) error {
	if _, err := s.access.MessageOwnership(ctx, messageID, channelID, senderID); err != nil {
		return err
	}

	if err := s.messageRepo.Delete(ctx, messageID); err != nil {
		return fmt.Errorf("deleting message: %w", err)
	}

	if err := s.notifRepo.DeleteByReference(ctx, messageID); err != nil {
		log.Printf("messages: deleting notification for %s: %v", messageID, err)
	}

	if s.broadcaster != nil {
		s.broadcaster.MessageDeleted(channelID, messageID)
	}

	return nil
}

// History returns the channel's messages oldest first, each carrying the
// sender profile snapshot joined at read time.
func (s *MessageService) History(ctx context.Context, channelID, requesterID uuid.UUID) ([]domain.Message, error) {
	if _, err := s.access.ChannelAccess(ctx, channelID, requesterID); err != nil {
		return nil, err
	}

	messages, err := s.messageRepo.ListByChannel(ctx, channelID)
	if err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []domain.Message{}
	}
	return messages, nil
}

// notifyParticipants writes one unread alert per other participant. Failures
// are logged and swallowed; the message itself is already durable.
func (s *MessageService) notifyParticipants(ctx context.Context, msg *domain.Message) {
	participants, err := s.channelRepo.ListParticipants(ctx, msg.ChannelID)
	if err != nil {
		log.Printf("messages: listing participants of %s: %v", msg.ChannelID, err)
		return
	}

	others := lo.Filter(participants, func(p domain.ChannelParticipant, _ int) bool {
		return p.UserID != msg.SenderID
	})
	if len(others) == 0 {
		return
	}

	body := preview.Truncate(msg.Content)
	refID := msg.ID
	notifications := lo.Map(others, func(p domain.ChannelParticipant, _ int) domain.Notification {
		return domain.Notification{
			ID:          uuid.New(),
			UserID:      p.UserID,
			Title:       fmt.Sprintf("New message from %s", msg.SenderUsername),
			Content:     body,
			IsRead:      false,
			ReferenceID: &refID,
			CreatedAt:   msg.CreatedAt,
		}
	})

	if err := s.notifRepo.CreateBatch(ctx, notifications); err != nil {
		log.Printf("messages: creating notifications for %s: %v", msg.ID, err)
	}
}
