package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"vecino/internal/domain"
	"vecino/internal/repository"
)

var ErrNotificationNotFound = errors.New("notification not found")

// NotificationService is the read side of the alert collaborator: users list
// their own alerts and mark them read.
type NotificationService struct {
	notifRepo repository.NotificationRepository
}

func NewNotificationService(notifRepo repository.NotificationRepository) *NotificationService {
	return &NotificationService{notifRepo: notifRepo}
}

func (s *NotificationService) ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.Notification, error) {
	notifications, err := s.notifRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if notifications == nil {
		notifications = []domain.Notification{}
	}
	return notifications, nil
}

// MarkRead flags a notification as read. Hides other users' notifications
// behind the same not-found error.
func (s *NotificationService) MarkRead(ctx context.Context, id, userID uuid.UUID) (*domain.Notification, error) {
	n, err := s.notifRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if n == nil || n.UserID != userID {
		return nil, ErrNotificationNotFound
	}

	if err := s.notifRepo.MarkRead(ctx, id); err != nil {
		return nil, err
	}
	n.IsRead = true
	return n, nil
}
