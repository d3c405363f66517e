package repository

import (
	"context"
	"errors"
	"time"

	"scrimhub/internal/models"

	"gorm.io/gorm"
)

// ChatRepository defines interface for conversation and message operations
type ChatRepository interface {
	GetOrCreateConversation(ctx context.Context, userA, userB uint) (*models.Conversation, bool, error)
	GetConversation(ctx context.Context, id uint) (*models.Conversation, error)
	ListConversations(ctx context.Context, userID uint) ([]*models.Conversation, error)
	IsParticipant(ctx context.Context, conversationID, userID uint) (bool, error)

	CreateMessage(ctx context.Context, message *models.Message) error
	ListMessages(ctx context.Context, conversationID uint, before uint, limit int) ([]*models.Message, error)
	MarkRead(ctx context.Context, conversationID, userID uint) error
	CountUnread(ctx context.Context, conversationID, userID uint) (int64, error)
}

type chatRepository struct {
	db *gorm.DB
}

// NewChatRepository creates a new ChatRepository
func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{db: db}
}

// GetOrCreateConversation returns the existing conversation between the two
// users or creates one. The second return reports whether it was created.
func (r *chatRepository) GetOrCreateConversation(ctx context.Context, userA, userB uint) (*models.Conversation, bool, error) {
	var conversation models.Conversation
	created := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var id uint
		err := tx.Raw(`
			SELECT cp1.conversation_id FROM conversation_participants cp1
			INNER JOIN conversation_participants cp2
				ON cp1.conversation_id = cp2.conversation_id
			WHERE cp1.user_id = ? AND cp2.user_id = ?
			LIMIT 1
		`, userA, userB).Scan(&id).Error
		if err != nil {
			return err
		}
		if id != 0 {
			return tx.Preload("Participants").First(&conversation, id).Error
		}

		conversation = models.Conversation{CreatedBy: userA}
		if err := tx.Create(&conversation).Error; err != nil {
			return err
		}
		participants := []models.ConversationParticipant{
			{ConversationID: conversation.ID, UserID: userA},
			{ConversationID: conversation.ID, UserID: userB},
		}
		if err := tx.Create(&participants).Error; err != nil {
			return err
		}
		created = true
		return tx.Preload("Participants").First(&conversation, conversation.ID).Error
	})
	if err != nil {
		return nil, false, err
	}
	return &conversation, created, nil
}

func (r *chatRepository) GetConversation(ctx context.Context, id uint) (*models.Conversation, error) {
	var conversation models.Conversation
	err := r.db.WithContext(ctx).
		Preload("Participants").
		First(&conversation, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Conversation", id)
		}
		return nil, err
	}
	return &conversation, nil
}

func (r *chatRepository) ListConversations(ctx context.Context, userID uint) ([]*models.Conversation, error) {
	var conversations []*models.Conversation
	err := r.db.WithContext(ctx).
		Preload("Participants").
		Joins("INNER JOIN conversation_participants cp ON cp.conversation_id = conversations.id").
		Where("cp.user_id = ?", userID).
		Order("conversations.updated_at desc").
		Find(&conversations).Error
	if err != nil {
		return nil, err
	}
	for _, c := range conversations {
		unread, err := r.CountUnread(ctx, c.ID, userID)
		if err != nil {
			return nil, err
		}
		c.UnreadCount = int(unread)
	}
	return conversations, nil
}

func (r *chatRepository) IsParticipant(ctx context.Context, conversationID, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ConversationParticipant{}).
		Where("conversation_id = ? AND user_id = ?", conversationID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *chatRepository) CreateMessage(ctx context.Context, message *models.Message) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(message).Error; err != nil {
			return err
		}
		// Bump updated_at so the conversation list sorts by activity.
		return tx.Model(&models.Conversation{}).
			Where("id = ?", message.ConversationID).
			Update("updated_at", time.Now()).Error
	})
}

// ListMessages returns messages newest-first. Pass before=0 for the latest
// page, otherwise only messages older than that id are returned.
func (r *chatRepository) ListMessages(ctx context.Context, conversationID uint, before uint, limit int) ([]*models.Message, error) {
	q := r.db.WithContext(ctx).
		Preload("Sender").
		Where("conversation_id = ?", conversationID).
		Order("id desc").
		Limit(limit)
	if before != 0 {
		q = q.Where("id < ?", before)
	}
	var messages []*models.Message
	err := q.Find(&messages).Error
	return messages, err
}

// MarkRead flags every message from the other participant as read and stamps
// the participant row.
func (r *chatRepository) MarkRead(ctx context.Context, conversationID, userID uint) error {
	now := time.Now()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Message{}).
			Where("conversation_id = ? AND sender_id <> ? AND is_read = ?", conversationID, userID, false).
			Updates(map[string]interface{}{"is_read": true, "read_at": now}).Error
		if err != nil {
			return err
		}
		return tx.Model(&models.ConversationParticipant{}).
			Where("conversation_id = ? AND user_id = ?", conversationID, userID).
			Update("last_read_at", now).Error
	})
}

func (r *chatRepository) CountUnread(ctx context.Context, conversationID, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("conversation_id = ? AND sender_id <> ? AND is_read = ?", conversationID, userID, false).
		Count(&count).Error
	return count, err
}
