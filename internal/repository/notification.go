package repository

import (
	"context"

	"scrimhub/internal/models"

	"gorm.io/gorm"
)

// ListLimit caps how many notifications a single fetch returns.
const notificationListLimit = 50

// NotificationRepository defines interface for notification operations
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	ListByUser(ctx context.Context, userID uint) ([]*models.Notification, error)
	CountUnread(ctx context.Context, userID uint) (int64, error)
	MarkAllRead(ctx context.Context, userID uint) error
	DeleteForConversation(ctx context.Context, userID, conversationID uint) error
}

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

// ListByUser returns the newest notifications first, capped so the bell
// dropdown never pages.
func (r *notificationRepository) ListByUser(ctx context.Context, userID uint) ([]*models.Notification, error) {
	var notifications []*models.Notification
	err := r.db.WithContext(ctx).
		Preload("Sender").
		Where("user_id = ?", userID).
		Order("created_at desc, id desc").
		Limit(notificationListLimit).
		Find(&notifications).Error
	return notifications, err
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Update("read", true).Error
}

// DeleteForConversation drops message notifications once the recipient has
// opened the conversation, so the bell does not lag behind the chat view.
func (r *notificationRepository) DeleteForConversation(ctx context.Context, userID, conversationID uint) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND conversation_id = ? AND type = ?", userID, conversationID, models.NotificationMessage).
		Delete(&models.Notification{}).Error
}
