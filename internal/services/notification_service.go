package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/socially/backend/internal/models"
	"github.com/socially/backend/internal/repositories"
	"gorm.io/gorm"
)

// EnrichedNotification is a notification with its creator's identity fields.
type EnrichedNotification struct {
	models.Notification
	Creator models.UserCompact `json:"creator"`
}

// NotificationService is the read model over notification rows. It never
// creates notifications — that happens only inside the toggle and
// interaction transactions — and the only mutation it performs is flipping
// the read flag.
type NotificationService struct {
	store  repositories.Store
	logger *slog.Logger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(store repositories.Store, logger *slog.Logger) *NotificationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &NotificationService{store: store, logger: logger}
}

// List returns one page of the actor's notifications, newest first, each
// enriched with the triggering actor's identity.
func (s *NotificationService) List(ctx context.Context, actorID uint, page, limit int) ([]EnrichedNotification, int64, error) {
	repos := s.store.Repos()

	notifications, total, err := repos.Notifications.ListByRecipient(ctx, actorID, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list notifications: %w", err)
	}

	creatorIDSet := make(map[uint]struct{})
	for _, n := range notifications {
		creatorIDSet[n.CreatorID] = struct{}{}
	}
	creatorIDs := make([]uint, 0, len(creatorIDSet))
	for id := range creatorIDSet {
		creatorIDs = append(creatorIDs, id)
	}
	creators, err := repos.Users.GetUsersByIDs(ctx, creatorIDs)
	if err != nil {
		return nil, 0, fmt.Errorf("load creators: %w", err)
	}
	creatorMap := make(map[uint]models.UserCompact, len(creators))
	for _, u := range creators {
		creatorMap[u.ID] = u.ToCompact()
	}

	enriched := make([]EnrichedNotification, len(notifications))
	for i, n := range notifications {
		enriched[i] = EnrichedNotification{Notification: n, Creator: creatorMap[n.CreatorID]}
	}
	return enriched, total, nil
}

// UnreadCount returns the number of unread notifications for the actor.
func (s *NotificationService) UnreadCount(ctx context.Context, actorID uint) (int64, error) {
	return s.store.Repos().Notifications.UnreadCount(ctx, actorID)
}

// MarkRead marks one of the actor's notifications as read.
func (s *NotificationService) MarkRead(ctx context.Context, actorID, notificationID uint) error {
	err := s.store.Repos().Notifications.MarkAsRead(ctx, notificationID, actorID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotificationNotFound
	}
	return err
}

// MarkAllRead marks every unread notification of the actor as read.
func (s *NotificationService) MarkAllRead(ctx context.Context, actorID uint) error {
	return s.store.Repos().Notifications.MarkAllAsRead(ctx, actorID)
}
