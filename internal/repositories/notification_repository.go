package repositories

import (
	"context"

	"github.com/socially/backend/internal/models"
	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification operations.
// CreateNotification is only ever called from inside the transaction that
// performs the triggering write; the remaining methods serve the read model.
type NotificationRepository interface {
	CreateNotification(ctx context.Context, notification *models.Notification) error
	ListByRecipient(ctx context.Context, recipientID uint, page, limit int) ([]models.Notification, int64, error)
	UnreadCount(ctx context.Context, recipientID uint) (int64, error)
	MarkAsRead(ctx context.Context, id, recipientID uint) error
	MarkAllAsRead(ctx context.Context, recipientID uint) error
}

type postgresNotificationRepository struct {
	db *gorm.DB
}

func NewPostgresNotificationRepository(db *gorm.DB) NotificationRepository {
	return &postgresNotificationRepository{db: db}
}

func (r *postgresNotificationRepository) CreateNotification(ctx context.Context, notification *models.Notification) error {
	return translateError(r.db.WithContext(ctx).Create(notification).Error)
}

func (r *postgresNotificationRepository) ListByRecipient(ctx context.Context, recipientID uint, page, limit int) ([]models.Notification, int64, error) {
	var notifications []models.Notification
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("recipient_id = ?", recipientID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := r.db.WithContext(ctx).
		Where("recipient_id = ?", recipientID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&notifications).Error

	return notifications, total, err
}

func (r *postgresNotificationRepository) UnreadCount(ctx context.Context, recipientID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = false", recipientID).
		Count(&count).Error
	return count, err
}

// MarkAsRead flips the read flag. Scoped to the recipient so actors cannot
// acknowledge each other's notifications.
func (r *postgresNotificationRepository) MarkAsRead(ctx context.Context, id, recipientID uint) error {
	res := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ? AND recipient_id = ?", id, recipientID).
		Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *postgresNotificationRepository) MarkAllAsRead(ctx context.Context, recipientID uint) error {
	return r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = false", recipientID).
		Update("is_read", true).Error
}
